package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable, and so a
// transaction cannot accidentally be opened inside another one.
type Store interface {
	Credentials() Credentials
	ResetTokens() ResetTokens
	Folders() Folders
	Files() Files
	Versions() Versions
	Units() Units
	Personnel() Personnel
	Applications() Applications
	Access() Access
	AuditLog() AuditLog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Credentials interface {
	// CreateCredential inserts a new credential. Returns ErrAlreadyExists when
	// the email is taken; the check is the table's unique key.
	CreateCredential(ctx context.Context, c domain.Credential) error

	GetCredentialByEmail(ctx context.Context, email string) (domain.Credential, error)

	// RecordFailedAttempt atomically increments failed_attempts, stamps
	// last_attempt_at and sets locked once the new count reaches threshold.
	// Returns the post-update counter and lock flag.
	RecordFailedAttempt(ctx context.Context, email string, threshold int, at time.Time) (attempts int, locked bool, err error)

	// ClearExpiredLockout unlocks the credential only if it is still locked
	// and its last attempt is at or before lockedBefore. Reports whether a row
	// changed.
	ClearExpiredLockout(ctx context.Context, email string, lockedBefore, at time.Time) (bool, error)

	// ResetAttempts zeroes the counter and clears the lock after a
	// successful login.
	ResetAttempts(ctx context.Context, email string, at time.Time) error

	// UpdatePasswordHash replaces the hash without touching lockout state.
	// All credential writes stamp updated_at with the caller's at.
	UpdatePasswordHash(ctx context.Context, email, hash string, at time.Time) error
}

type ResetTokens interface {
	CreateResetToken(ctx context.Context, t domain.ResetToken) error

	// GetResetToken looks a token up by fingerprint. Expiry is the caller's
	// concern so validity checks share one clock.
	GetResetToken(ctx context.Context, tokenHash string) (domain.ResetToken, error)

	DeleteResetToken(ctx context.Context, tokenHash string) error

	// DeleteExpiredResetTokens removes every token with expires_at < now.
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type Folders interface {
	ListFolders(ctx context.Context) ([]domain.Folder, error)
	GetFolder(ctx context.Context, id string) (domain.Folder, error)
	CreateFolder(ctx context.Context, f domain.Folder) error
	RenameFolder(ctx context.Context, id, name string) error

	// DeleteFolder removes the folder; sub folders, files and versions
	// cascade (per schema).
	DeleteFolder(ctx context.Context, id string) error

	// ListObjectKeysUnder returns blob keys of every version stored anywhere
	// beneath the folder, so they can be removed after a cascade delete.
	ListObjectKeysUnder(ctx context.Context, id string) ([]string, error)
}

type Files interface {
	ListFiles(ctx context.Context) ([]domain.File, error)
	GetFile(ctx context.Context, id string) (domain.File, error)
	CreateFile(ctx context.Context, f domain.File) error
	RenameFile(ctx context.Context, id, name string) error
	DeleteFile(ctx context.Context, id string) error
}

type Versions interface {
	ListVersions(ctx context.Context) ([]domain.Version, error)
	ListVersionsByFile(ctx context.Context, fileID string) ([]domain.Version, error)
	GetVersion(ctx context.Context, id string) (domain.Version, error)
	CreateVersion(ctx context.Context, v domain.Version) error
	DeleteVersion(ctx context.Context, id string) error
	DeleteVersionsByFile(ctx context.Context, fileID string) (int64, error)
}

type Units interface {
	ListUnits(ctx context.Context) ([]domain.Unit, error)
	GetUnit(ctx context.Context, id string) (domain.Unit, error)
	CreateUnit(ctx context.Context, u domain.Unit) error
	RenameUnit(ctx context.Context, id, name string) error

	// DeleteUnit removes the unit; child units cascade (per schema).
	DeleteUnit(ctx context.Context, id string) error
}

type Personnel interface {
	ListPersonnel(ctx context.Context) ([]domain.Person, error)
	GetPerson(ctx context.Context, id string) (domain.Person, error)
	CreatePerson(ctx context.Context, p domain.Person) error
	UpdatePerson(ctx context.Context, id, name, registryNo string) error
	DeletePerson(ctx context.Context, id string) error
	DeletePersonnelByUnit(ctx context.Context, unitID string) (int64, error)
}

type Applications interface {
	ListApplications(ctx context.Context) ([]domain.Application, error)
	GetApplication(ctx context.Context, id string) (domain.Application, error)
	CreateApplication(ctx context.Context, a domain.Application) error
	DeleteApplication(ctx context.Context, id string) error
}

type Access interface {
	// ListAccessMatrix returns one row per (person, application) pair with
	// Granted=false where no grant was recorded.
	ListAccessMatrix(ctx context.Context) ([]domain.AccessRow, error)

	// SetAccess upserts the grant for a person/application pair.
	SetAccess(ctx context.Context, personID, applicationID string, granted bool) error
}

// AuditQuery filters the audit log. Search matches description, kind, table
// and actor case-insensitively.
type AuditQuery struct {
	Search string
	Limit  int
	Offset int
}

type AuditLog interface {
	AppendEntry(ctx context.Context, e domain.AuditEntry) error

	// QueryEntries returns a page of entries newest first and the total
	// number of matching entries.
	QueryEntries(ctx context.Context, q AuditQuery) ([]domain.AuditEntry, int, error)
}
