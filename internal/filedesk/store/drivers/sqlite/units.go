package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type unitsRepo struct {
	db dbtx
}

func scanUnit(sc interface{ Scan(...any) error }) (domain.Unit, error) {
	var (
		u      domain.Unit
		parent sql.NullString
	)
	if err := sc.Scan(&u.ID, &parent, &u.Name); err != nil {
		return domain.Unit{}, err
	}
	u.ParentID = mapNullStringPtr(parent)
	return u, nil
}

func (r *unitsRepo) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, parent_id, name FROM units ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *unitsRepo) GetUnit(ctx context.Context, id string) (domain.Unit, error) {
	u, err := scanUnit(r.db.QueryRowContext(ctx, `SELECT id, parent_id, name FROM units WHERE id = ?`, id))
	if err != nil {
		return domain.Unit{}, mapNotFound(err)
	}
	return u, nil
}

func (r *unitsRepo) CreateUnit(ctx context.Context, u domain.Unit) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO units (id, parent_id, name) VALUES (?, ?, ?)`,
		u.ID, mapOptionalString(u.ParentID), u.Name)
	if isForeignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}

func (r *unitsRepo) RenameUnit(ctx context.Context, id, name string) error {
	return requireAffected(r.db.ExecContext(ctx, `UPDATE units SET name = ? WHERE id = ?`, name, id))
}

func (r *unitsRepo) DeleteUnit(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM units WHERE id = ?`, id))
}
