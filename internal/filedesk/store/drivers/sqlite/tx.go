package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits or rolls back; the outer DB stays open

// Ping is a no-op; the connection is held for the life of the transaction.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Credentials() store.Credentials   { return &credentialsRepo{db: t.tx} }
func (t *txStore) ResetTokens() store.ResetTokens   { return &resetTokensRepo{db: t.tx} }
func (t *txStore) Folders() store.Folders           { return &foldersRepo{db: t.tx} }
func (t *txStore) Files() store.Files               { return &filesRepo{db: t.tx} }
func (t *txStore) Versions() store.Versions         { return &versionsRepo{db: t.tx} }
func (t *txStore) Units() store.Units               { return &unitsRepo{db: t.tx} }
func (t *txStore) Personnel() store.Personnel       { return &personnelRepo{db: t.tx} }
func (t *txStore) Applications() store.Applications { return &applicationsRepo{db: t.tx} }
func (t *txStore) Access() store.Access             { return &accessRepo{db: t.tx} }
func (t *txStore) AuditLog() store.AuditLog         { return &auditLogRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
