package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/stretchr/testify/require"
)

func TestAuditQuery(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	svc := &AuditService{Store: newTestStore(t), Now: clock.Now}

	for i := range 25 {
		clock.Advance(time.Second)
		svc.Record(ctx, domain.AuditEntry{
			Description: fmt.Sprintf("entry %02d", i),
			Kind:        domain.AuditCreate,
			Table:       domain.TableFolders,
			Actor:       "Ada",
		})
	}

	t.Run("defaults", func(t *testing.T) {
		page, err := svc.Query(ctx, 0, 0, "")
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Entries, DefaultAuditPageSize)
		require.Equal(t, "entry 24", page.Entries[0].Description)
	})

	t.Run("last page", func(t *testing.T) {
		page, err := svc.Query(ctx, 3, 10, "")
		require.NoError(t, err)
		require.Len(t, page.Entries, 5)
		require.Equal(t, "entry 00", page.Entries[4].Description)
	})

	t.Run("total pages are capped", func(t *testing.T) {
		page, err := svc.Query(ctx, 1, 1, "")
		require.NoError(t, err)
		require.Equal(t, MaxAuditPages, page.TotalPages)
	})

	t.Run("limit is capped", func(t *testing.T) {
		page, err := svc.Query(ctx, 1, 1000, "")
		require.NoError(t, err)
		require.Len(t, page.Entries, 25)
		require.Equal(t, 1, page.TotalPages)
	})

	t.Run("search", func(t *testing.T) {
		page, err := svc.Query(ctx, 1, 10, "ENTRY 1")
		require.NoError(t, err)
		require.Len(t, page.Entries, 10)
		require.Equal(t, "entry 19", page.Entries[0].Description)
	})
}

func TestAuditRecordFailureIsSwallowed(t *testing.T) {
	s := newTestStore(t)
	svc := &AuditService{Store: s}
	require.NoError(t, s.Close())

	svc.Record(context.Background(), domain.AuditEntry{Description: "x", Kind: domain.AuditCreate})
}
