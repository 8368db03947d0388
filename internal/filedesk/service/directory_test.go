package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newDirectoryFixture(t *testing.T) (*DirectoryService, *AuditService) {
	t.Helper()
	s := newTestStore(t)
	audit := &AuditService{Store: s}
	return &DirectoryService{Store: s, Recorder: audit}, audit
}

func TestDirectoryUnits(t *testing.T) {
	ctx := context.Background()
	svc, audit := newDirectoryFixture(t)

	hq, err := svc.CreateUnit(ctx, "Ada", "HQ", nil)
	require.NoError(t, err)
	it, err := svc.CreateUnit(ctx, "Ada", "IT", &hq.ID)
	require.NoError(t, err)
	_, err = svc.AddPerson(ctx, "Ada", hq.ID, "Alice", "001")
	require.NoError(t, err)
	_, err = svc.AddPerson(ctx, "Ada", it.ID, "Bob", "002")
	require.NoError(t, err)

	require.NoError(t, svc.RenameUnit(ctx, "Ada", it.ID, "Engineering"))

	dir, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, dir.Units, 2)
	require.Len(t, dir.Personnel, 2)

	t.Run("delete cascades through children", func(t *testing.T) {
		require.NoError(t, svc.DeleteUnit(ctx, "Ada", hq.ID))

		dir, err := svc.List(ctx)
		require.NoError(t, err)
		require.Empty(t, dir.Units)
		require.Empty(t, dir.Personnel)
	})

	t.Run("failed transaction is audited", func(t *testing.T) {
		require.ErrorIs(t, svc.RenameUnit(ctx, "Ada", hq.ID, "Gone"), ErrNotFound)

		page, err := audit.Query(ctx, 1, 10, string(domain.AuditFailure))
		require.NoError(t, err)
		require.Len(t, page.Entries, 1)
		require.Equal(t, domain.TableUnits, page.Entries[0].Table)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.CreateUnit(ctx, "Ada", "", nil)
		require.ErrorIs(t, err, ErrInvalidInput)

		missing := idx.New().String()
		_, err = svc.CreateUnit(ctx, "Ada", "Orphan", &missing)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDirectoryPersonnel(t *testing.T) {
	ctx := context.Background()
	svc, _ := newDirectoryFixture(t)

	unit, err := svc.CreateUnit(ctx, "Ada", "Finance", nil)
	require.NoError(t, err)

	_, err = svc.AddPerson(ctx, "Ada", unit.ID, "Alice", " ")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.AddPerson(ctx, "Ada", idx.New().String(), "Alice", "001")
	require.ErrorIs(t, err, ErrNotFound)

	p, err := svc.AddPerson(ctx, "Ada", unit.ID, "Alice", "001")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePerson(ctx, "Ada", p.ID, "Alice Smith", "001A"))
	dir, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", dir.Personnel[0].Name)
	require.Equal(t, "001A", dir.Personnel[0].RegistryNo)

	require.NoError(t, svc.DeletePerson(ctx, "Ada", p.ID))
	require.ErrorIs(t, svc.DeletePerson(ctx, "Ada", p.ID), ErrNotFound)
	require.ErrorIs(t, svc.UpdatePerson(ctx, "Ada", p.ID, "x", "y"), ErrNotFound)
}
