package sqlite

import (
	"context"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type personnelRepo struct {
	db dbtx
}

func scanPerson(sc interface{ Scan(...any) error }) (domain.Person, error) {
	var p domain.Person
	if err := sc.Scan(&p.ID, &p.UnitID, &p.Name, &p.RegistryNo); err != nil {
		return domain.Person{}, err
	}
	return p, nil
}

func (r *personnelRepo) ListPersonnel(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, unit_id, name, registry_no FROM personnel ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *personnelRepo) GetPerson(ctx context.Context, id string) (domain.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx,
		`SELECT id, unit_id, name, registry_no FROM personnel WHERE id = ?`, id))
	if err != nil {
		return domain.Person{}, mapNotFound(err)
	}
	return p, nil
}

func (r *personnelRepo) CreatePerson(ctx context.Context, p domain.Person) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO personnel (id, unit_id, name, registry_no) VALUES (?, ?, ?, ?)`,
		p.ID, p.UnitID, p.Name, p.RegistryNo)
	if isForeignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}

func (r *personnelRepo) UpdatePerson(ctx context.Context, id, name, registryNo string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE personnel SET name = ?, registry_no = ? WHERE id = ?`, name, registryNo, id))
}

func (r *personnelRepo) DeletePerson(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM personnel WHERE id = ?`, id))
}

func (r *personnelRepo) DeletePersonnelByUnit(ctx context.Context, unitID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM personnel WHERE unit_id = ?`, unitID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
