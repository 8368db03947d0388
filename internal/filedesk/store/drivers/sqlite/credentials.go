package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

const birthDateLayout = "2006-01-02"

type credentialsRepo struct {
	db dbtx
}

const credentialColumns = `email, password_hash, display_name, birth_date, national_id,
	failed_attempts, last_attempt_at, locked, created_at, updated_at`

func (r *credentialsRepo) CreateCredential(ctx context.Context, c domain.Credential) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (`+credentialColumns+`)
		VALUES (?, ?, ?, ?, ?, 0, NULL, 0, ?, ?)
		ON CONFLICT(email) DO NOTHING`,
		c.Email, c.PasswordHash, c.DisplayName, c.BirthDate.Format(birthDateLayout), c.NationalID,
		toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *credentialsRepo) GetCredentialByEmail(ctx context.Context, email string) (domain.Credential, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE email = ?`, email)

	var (
		c           domain.Credential
		birth       string
		lastAttempt sql.NullInt64
		locked      int
		created     int64
		updated     int64
	)
	err := row.Scan(&c.Email, &c.PasswordHash, &c.DisplayName, &birth, &c.NationalID,
		&c.FailedAttempts, &lastAttempt, &locked, &created, &updated)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}

	// Stored by CreateCredential in a fixed layout; a parse failure leaves
	// the zero date rather than hiding the credential.
	c.BirthDate, _ = time.Parse(birthDateLayout, birth)
	c.LastAttemptAt = mapNullMillisPtr(lastAttempt)
	c.Locked = locked != 0
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return c, nil
}

func (r *credentialsRepo) RecordFailedAttempt(
	ctx context.Context,
	email string,
	threshold int,
	at time.Time,
) (int, bool, error) {
	var (
		attempts int
		locked   int
	)
	err := r.db.QueryRowContext(ctx, `
		UPDATE credentials
		SET failed_attempts = failed_attempts + 1,
		    last_attempt_at = ?,
		    locked = CASE WHEN failed_attempts + 1 >= ? THEN 1 ELSE locked END,
		    updated_at = ?
		WHERE email = ?
		RETURNING failed_attempts, locked`,
		toMillis(at), threshold, toMillis(at), email,
	).Scan(&attempts, &locked)
	if err != nil {
		return 0, false, mapNotFound(err)
	}
	return attempts, locked != 0, nil
}

func (r *credentialsRepo) ClearExpiredLockout(ctx context.Context, email string, lockedBefore, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE credentials
		SET locked = 0, failed_attempts = 0, updated_at = ?
		WHERE email = ? AND locked = 1
		  AND (last_attempt_at IS NULL OR last_attempt_at <= ?)`,
		toMillis(at), email, toMillis(lockedBefore),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *credentialsRepo) ResetAttempts(ctx context.Context, email string, at time.Time) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE credentials
		SET failed_attempts = 0, locked = 0, updated_at = ?
		WHERE email = ?`,
		toMillis(at), email,
	))
}

func (r *credentialsRepo) UpdatePasswordHash(ctx context.Context, email, hash string, at time.Time) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE credentials SET password_hash = ?, updated_at = ? WHERE email = ?`,
		hash, toMillis(at), email,
	))
}
