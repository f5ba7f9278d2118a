package sheetsclient

import (
	"fmt"

	"github.com/calross/medic-roster/internal/config"
	"github.com/calross/medic-roster/pkg/db"
)

// Expected column names in the staff directory sheet
var personnelFields = []string{
	"Unique ID",
	"Name",
	"Post",
	"Client",
	"Location",
	"Email",
}

// ListPersonnel retrieves and parses the staff directory from the configured
// spreadsheet
func (c *Client) ListPersonnel(cfg *config.Config) ([]db.Personnel, error) {
	values, err := c.GetValues(cfg.PersonnelSheetID, cfg.PersonnelSheetTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get staff directory data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("staff directory sheet is empty")
	}

	people, err := parsePersonnel(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse staff directory: %w", err)
	}

	return people, nil
}

// parsePersonnel converts raw spreadsheet data into Personnel records
func parsePersonnel(raw [][]interface{}) ([]db.Personnel, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	// Build field index map from header row
	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range personnelFields {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && cellStr == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index, ok := fieldIndexes[field]
		if !ok || index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return str
		}
		return ""
	}

	var people []db.Personnel
	for _, row := range raw[1:] {
		id := getField("Unique ID", row)
		if id == "" {
			continue // blank spacer rows are common in the directory
		}

		people = append(people, db.Personnel{
			ID:       id,
			Name:     getField("Name", row),
			Post:     getField("Post", row),
			Client:   getField("Client", row),
			Location: getField("Location", row),
			Email:    getField("Email", row),
		})
	}

	return people, nil
}
