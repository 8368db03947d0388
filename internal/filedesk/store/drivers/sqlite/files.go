package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type filesRepo struct {
	db dbtx
}

func scanFile(sc interface{ Scan(...any) error }) (domain.File, error) {
	var (
		f       domain.File
		created int64
	)
	if err := sc.Scan(&f.ID, &f.FolderID, &f.Name, &created); err != nil {
		return domain.File{}, err
	}
	f.CreatedAt = fromMillis(created)
	return f, nil
}

func (r *filesRepo) ListFiles(ctx context.Context) ([]domain.File, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, folder_id, name, created_at FROM files ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *filesRepo) GetFile(ctx context.Context, id string) (domain.File, error) {
	f, err := scanFile(r.db.QueryRowContext(ctx, `SELECT id, folder_id, name, created_at FROM files WHERE id = ?`, id))
	if err != nil {
		return domain.File{}, mapNotFound(err)
	}
	return f, nil
}

func (r *filesRepo) CreateFile(ctx context.Context, f domain.File) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO files (id, folder_id, name, created_at) VALUES (?, ?, ?, ?)`,
		f.ID, f.FolderID, f.Name, toMillis(f.CreatedAt),
	)
	if isForeignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}

func (r *filesRepo) RenameFile(ctx context.Context, id, name string) error {
	return requireAffected(r.db.ExecContext(ctx, `UPDATE files SET name = ? WHERE id = ?`, name, id))
}

func (r *filesRepo) DeleteFile(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id))
}
