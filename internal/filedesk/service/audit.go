package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
	"github.com/aussiebroadwan/filedesk/pkg/idx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"
)

const (
	DefaultAuditPageSize = 10
	MaxAuditPageSize     = 100
	MaxAuditPages        = 10
)

// Recorder appends audit entries. Implementations must not let a failed
// write change the outcome of the operation being audited.
type Recorder interface {
	Record(ctx context.Context, e domain.AuditEntry)
}

type AuditService struct {
	Store store.Store
	Now   func() time.Time
}

// Record is fire-and-forget: failures are logged only.
func (s *AuditService) Record(ctx context.Context, e domain.AuditEntry) {
	if e.OccurredAt.IsZero() {
		if s.Now != nil {
			e.OccurredAt = s.Now()
		} else {
			e.OccurredAt = time.Now()
		}
	}
	if e.ID == "" {
		e.ID = idx.NewAt(e.OccurredAt).String()
	}
	if err := s.Store.AuditLog().AppendEntry(ctx, e); err != nil {
		slogx.FromContext(ctx).Warn("failed to record audit entry",
			slog.String("kind", string(e.Kind)),
			slog.String("table", e.Table),
			slog.Any("err", err))
	}
}

type AuditPage struct {
	Entries    []domain.AuditEntry
	Page       int
	TotalPages int
}

// Query returns one page of the log, newest first. page is 1-based.
func (s *AuditService) Query(ctx context.Context, page, limit int, search string) (AuditPage, error) {
	if limit <= 0 {
		limit = DefaultAuditPageSize
	}
	if limit > MaxAuditPageSize {
		limit = MaxAuditPageSize
	}
	if page <= 0 {
		page = 1
	}

	entries, total, err := s.Store.AuditLog().QueryEntries(ctx, store.AuditQuery{
		Search: search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return AuditPage{}, err
	}

	totalPages := (total + limit - 1) / limit
	if totalPages > MaxAuditPages {
		totalPages = MaxAuditPages
	}
	return AuditPage{Entries: entries, Page: page, TotalPages: totalPages}, nil
}
