package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/filedesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestApplicationsAndAccess(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	audit := &AuditService{Store: s}
	dir := &DirectoryService{Store: s, Recorder: audit}
	apps := &ApplicationService{Store: s, Recorder: audit}
	access := &AccessService{Store: s, Recorder: audit}

	_, err := apps.Create(ctx, "Ada", "", "https://x", "")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = apps.Create(ctx, "Ada", "Ledger", " ", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	ledger, err := apps.Create(ctx, "Ada", "Ledger", "https://ledger.local", "accounts")
	require.NoError(t, err)
	wiki, err := apps.Create(ctx, "Ada", "Wiki", "https://wiki.local", "")
	require.NoError(t, err)

	list, err := apps.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	unit, err := dir.CreateUnit(ctx, "Ada", "Finance", nil)
	require.NoError(t, err)
	alice, err := dir.AddPerson(ctx, "Ada", unit.ID, "Alice", "001")
	require.NoError(t, err)

	rows, err := access.Matrix(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		require.False(t, r.Granted)
	}

	require.NoError(t, access.Set(ctx, "Ada", alice.ID, ledger.ID, true))
	rows, err = access.Matrix(ctx)
	require.NoError(t, err)
	for _, r := range rows {
		require.Equal(t, r.ApplicationID == ledger.ID, r.Granted)
	}

	require.ErrorIs(t, access.Set(ctx, "Ada", idx.New().String(), ledger.ID, true), ErrNotFound)
	require.ErrorIs(t, access.Set(ctx, "Ada", "", ledger.ID, true), ErrInvalidInput)

	require.NoError(t, apps.Delete(ctx, "Ada", wiki.ID))
	require.ErrorIs(t, apps.Delete(ctx, "Ada", wiki.ID), ErrNotFound)
	rows, err = access.Matrix(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	page, err := audit.Query(ctx, 1, 100, "access_grants")
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
}
