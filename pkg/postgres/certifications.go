package postgres

import (
	"context"
	"fmt"

	"github.com/calross/medic-roster/pkg/db"
)

// GetCertifications retrieves all certification records
func (d *DB) GetCertifications(ctx context.Context) ([]db.Certification, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, person_id, course, expiry
		FROM certification
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query certifications: %w", err)
	}
	defer rows.Close()

	var certs []db.Certification
	for rows.Next() {
		var c db.Certification
		var expiry *string
		if err := rows.Scan(&c.ID, &c.PersonID, &c.Course, &expiry); err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}
		if expiry != nil {
			c.Expiry = *expiry
		}
		certs = append(certs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating certifications: %w", err)
	}

	return certs, nil
}
