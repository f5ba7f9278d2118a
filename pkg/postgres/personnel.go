package postgres

import (
	"context"
	"fmt"

	"github.com/calross/medic-roster/pkg/db"
)

// GetPersonnel retrieves all personnel records
func (d *DB) GetPersonnel(ctx context.Context) ([]db.Personnel, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, post, client, location, email
		FROM personnel
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query personnel: %w", err)
	}
	defer rows.Close()

	var people []db.Personnel
	for rows.Next() {
		var p db.Personnel
		if err := rows.Scan(&p.ID, &p.Name, &p.Post, &p.Client, &p.Location, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan personnel: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personnel: %w", err)
	}

	return people, nil
}

// InsertPersonnel inserts a new personnel record
func (d *DB) InsertPersonnel(ctx context.Context, person *db.Personnel) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO personnel (id, name, post, client, location, email)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, person.ID, person.Name, person.Post, person.Client, person.Location, person.Email)
	if err != nil {
		return fmt.Errorf("failed to insert personnel: %w", err)
	}
	return nil
}
