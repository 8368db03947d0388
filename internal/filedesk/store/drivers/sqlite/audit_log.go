package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
)

type auditLogRepo struct {
	db dbtx
}

func (r *auditLogRepo) AppendEntry(ctx context.Context, e domain.AuditEntry) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, description, kind, table_name, actor, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Description, string(e.Kind), e.Table, e.Actor, toMillis(e.OccurredAt),
	)
	return err
}

const auditSearchClause = `
	WHERE ? = ''
	   OR lower(description) LIKE ? ESCAPE '\'
	   OR lower(kind)        LIKE ? ESCAPE '\'
	   OR lower(table_name)  LIKE ? ESCAPE '\'
	   OR lower(actor)       LIKE ? ESCAPE '\'`

func (r *auditLogRepo) QueryEntries(ctx context.Context, q store.AuditQuery) ([]domain.AuditEntry, int, error) {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	pattern := "%" + escapeLike(search) + "%"
	searchArgs := []any{search, pattern, pattern, pattern, pattern}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`+auditSearchClause, searchArgs...).
		Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	args := append(searchArgs, limit, q.Offset)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, kind, table_name, actor, occurred_at
		FROM audit_log`+auditSearchClause+`
		ORDER BY occurred_at DESC, id DESC
		LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var (
			e        domain.AuditEntry
			kind     string
			occurred int64
		)
		if err := rows.Scan(&e.ID, &e.Description, &kind, &e.Table, &e.Actor, &occurred); err != nil {
			return nil, 0, err
		}
		e.Kind = domain.AuditKind(kind)
		e.OccurredAt = fromMillis(occurred)
		out = append(out, e)
	}
	return out, total, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
