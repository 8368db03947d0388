package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type resetTokensRepo struct {
	db dbtx
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reset_tokens (id, email, token_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Email, t.TokenHash, toMillis(t.ExpiresAt), toMillis(t.CreatedAt),
	)
	if isConstraintViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *resetTokensRepo) GetResetToken(ctx context.Context, tokenHash string) (domain.ResetToken, error) {
	var (
		t       domain.ResetToken
		expires int64
		created int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, token_hash, expires_at, created_at
		FROM reset_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(&t.ID, &t.Email, &t.TokenHash, &expires, &created)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	t.ExpiresAt = fromMillis(expires)
	t.CreatedAt = fromMillis(created)
	return t, nil
}

func (r *resetTokensRepo) DeleteResetToken(ctx context.Context, tokenHash string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM reset_tokens WHERE token_hash = ?`, tokenHash))
}

func (r *resetTokensRepo) DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reset_tokens WHERE expires_at < ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
