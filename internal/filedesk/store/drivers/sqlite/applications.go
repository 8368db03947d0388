package sqlite

import (
	"context"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
)

type applicationsRepo struct {
	db dbtx
}

func scanApplication(sc interface{ Scan(...any) error }) (domain.Application, error) {
	var a domain.Application
	if err := sc.Scan(&a.ID, &a.Name, &a.Endpoint, &a.Description); err != nil {
		return domain.Application{}, err
	}
	return a, nil
}

func (r *applicationsRepo) ListApplications(ctx context.Context) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, endpoint, description FROM applications ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *applicationsRepo) GetApplication(ctx context.Context, id string) (domain.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx,
		`SELECT id, name, endpoint, description FROM applications WHERE id = ?`, id))
	if err != nil {
		return domain.Application{}, mapNotFound(err)
	}
	return a, nil
}

func (r *applicationsRepo) CreateApplication(ctx context.Context, a domain.Application) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (id, name, endpoint, description) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, a.Endpoint, a.Description)
	return err
}

func (r *applicationsRepo) DeleteApplication(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = ?`, id))
}
