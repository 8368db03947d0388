package sqlite

import (
	"context"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type accessRepo struct {
	db dbtx
}

func (r *accessRepo) ListAccessMatrix(ctx context.Context) ([]domain.AccessRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.registry_no, p.name, u.name, a.id, a.name, COALESCE(g.granted, 0)
		FROM personnel p
		JOIN units u ON u.id = p.unit_id
		CROSS JOIN applications a
		LEFT JOIN access_grants g ON g.person_id = p.id AND g.application_id = a.id
		ORDER BY p.registry_no, p.id, a.name, a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.AccessRow, 0)
	for rows.Next() {
		var (
			row     domain.AccessRow
			granted int
		)
		if err := rows.Scan(&row.PersonID, &row.RegistryNo, &row.PersonName, &row.UnitName,
			&row.ApplicationID, &row.ApplicationName, &granted); err != nil {
			return nil, err
		}
		row.Granted = granted != 0
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *accessRepo) SetAccess(ctx context.Context, personID, applicationID string, granted bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_grants (person_id, application_id, granted) VALUES (?, ?, ?)
		ON CONFLICT(person_id, application_id) DO UPDATE SET granted = excluded.granted`,
		personID, applicationID, boolToInt(granted))
	if isForeignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}
