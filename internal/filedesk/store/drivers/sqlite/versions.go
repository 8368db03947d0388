package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type versionsRepo struct {
	db dbtx
}

const versionColumns = `id, file_id, number, object_key, size, content_type, created_by, created_at`

func scanVersion(sc interface{ Scan(...any) error }) (domain.Version, error) {
	var (
		v       domain.Version
		created int64
	)
	if err := sc.Scan(&v.ID, &v.FileID, &v.Number, &v.ObjectKey, &v.Size, &v.ContentType, &v.CreatedBy, &created); err != nil {
		return domain.Version{}, err
	}
	v.CreatedAt = fromMillis(created)
	return v, nil
}

func (r *versionsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Version, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Version, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *versionsRepo) ListVersions(ctx context.Context) ([]domain.Version, error) {
	return r.list(ctx, `SELECT `+versionColumns+` FROM versions ORDER BY file_id, created_at, id`)
}

func (r *versionsRepo) ListVersionsByFile(ctx context.Context, fileID string) ([]domain.Version, error) {
	return r.list(ctx, `SELECT `+versionColumns+` FROM versions WHERE file_id = ? ORDER BY created_at, id`, fileID)
}

func (r *versionsRepo) GetVersion(ctx context.Context, id string) (domain.Version, error) {
	v, err := scanVersion(r.db.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM versions WHERE id = ?`, id))
	if err != nil {
		return domain.Version{}, mapNotFound(err)
	}
	return v, nil
}

func (r *versionsRepo) CreateVersion(ctx context.Context, v domain.Version) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO versions (`+versionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.FileID, v.Number, v.ObjectKey, v.Size, v.ContentType, v.CreatedBy, toMillis(v.CreatedAt),
	)
	if isForeignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}

func (r *versionsRepo) DeleteVersion(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM versions WHERE id = ?`, id))
}

func (r *versionsRepo) DeleteVersionsByFile(ctx context.Context, fileID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM versions WHERE file_id = ?`, fileID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
