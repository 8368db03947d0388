package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type foldersRepo struct {
	db dbtx
}

func scanFolder(sc interface{ Scan(...any) error }) (domain.Folder, error) {
	var (
		f       domain.Folder
		parent  sql.NullString
		created int64
	)
	if err := sc.Scan(&f.ID, &parent, &f.Name, &f.CreatedBy, &created); err != nil {
		return domain.Folder{}, err
	}
	f.ParentID = mapNullStringPtr(parent)
	f.CreatedAt = fromMillis(created)
	return f, nil
}

func (r *foldersRepo) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, parent_id, name, created_by, created_at FROM folders ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *foldersRepo) GetFolder(ctx context.Context, id string) (domain.Folder, error) {
	f, err := scanFolder(r.db.QueryRowContext(ctx, `
		SELECT id, parent_id, name, created_by, created_at FROM folders WHERE id = ?`, id))
	if err != nil {
		return domain.Folder{}, mapNotFound(err)
	}
	return f, nil
}

func (r *foldersRepo) CreateFolder(ctx context.Context, f domain.Folder) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO folders (id, parent_id, name, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
		f.ID, mapOptionalString(f.ParentID), f.Name, f.CreatedBy, toMillis(f.CreatedAt),
	)
	if isForeignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}

func (r *foldersRepo) RenameFolder(ctx context.Context, id, name string) error {
	return requireAffected(r.db.ExecContext(ctx, `UPDATE folders SET name = ? WHERE id = ?`, name, id))
}

func (r *foldersRepo) DeleteFolder(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id))
}

func (r *foldersRepo) ListObjectKeysUnder(ctx context.Context, id string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		WITH RECURSIVE subtree(id) AS (
			SELECT id FROM folders WHERE id = ?
			UNION ALL
			SELECT f.id FROM folders f JOIN subtree s ON f.parent_id = s.id
		)
		SELECT v.object_key
		FROM versions v
		JOIN files fi ON fi.id = v.file_id
		WHERE fi.folder_id IN (SELECT id FROM subtree)`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
