package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/stretchr/testify/require"
)

func TestDirectoryEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.login(t)

	hq, err := s.CreateUnit(ctx, "Headquarters", nil)
	require.NoError(t, err)
	it, err := s.CreateUnit(ctx, "IT", &hq.ID)
	require.NoError(t, err)

	ada, err := s.AddPerson(ctx, hq.ID, "Ada", "R-001")
	require.NoError(t, err)
	_, err = s.AddPerson(ctx, it.ID, "Grace", "R-002")
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		dir, err := s.GetDirectory(ctx)
		require.NoError(t, err)
		require.Len(t, dir.Units, 2)
		require.Len(t, dir.Personnel, 2)
	})

	t.Run("update and rename", func(t *testing.T) {
		require.NoError(t, s.UpdatePerson(ctx, ada.ID, "Ada King", "R-001"))
		require.NoError(t, s.RenameUnit(ctx, it.ID, "Engineering"))

		err := s.UpdatePerson(ctx, ada.ID, "Ada", "")
		requireAPIError(t, err, http.StatusBadRequest, desksdk.ErrorCodeValidation)
		err = s.UpdatePerson(ctx, "missing", "x", "y")
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})

	t.Run("failed mutation is audited", func(t *testing.T) {
		page, err := s.QueryAudit(ctx, 0, 0, "failure")
		require.NoError(t, err)
		require.NotEmpty(t, page.Entries)
		require.Equal(t, "personnel", page.Entries[0].Table)
	})

	t.Run("unit delete takes children and personnel", func(t *testing.T) {
		require.NoError(t, s.DeleteUnit(ctx, hq.ID))
		dir, err := s.GetDirectory(ctx)
		require.NoError(t, err)
		require.Empty(t, dir.Units)
		require.Empty(t, dir.Personnel)
	})

	t.Run("missing unit", func(t *testing.T) {
		_, err := s.AddPerson(ctx, "missing", "Nobody", "R-404")
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})
}

func TestApplicationsAndAccess(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.login(t)

	unit, err := s.CreateUnit(ctx, "Finance", nil)
	require.NoError(t, err)
	person, err := s.AddPerson(ctx, unit.ID, "Grace", "R-100")
	require.NoError(t, err)

	wiki, err := s.CreateApplication(ctx, desksdk.CreateApplicationRequest{
		Name: "Wiki", Endpoint: "https://wiki.internal", Description: "Team wiki",
	})
	require.NoError(t, err)
	mail, err := s.CreateApplication(ctx, desksdk.CreateApplicationRequest{
		Name: "Mail", Endpoint: "https://mail.internal",
	})
	require.NoError(t, err)

	_, err = s.CreateApplication(ctx, desksdk.CreateApplicationRequest{Name: "NoEndpoint"})
	requireAPIError(t, err, http.StatusBadRequest, desksdk.ErrorCodeValidation)

	apps, err := s.ListApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 2)

	t.Run("matrix defaults to denied", func(t *testing.T) {
		rows, err := s.GetAccessMatrix(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			require.False(t, row.Granted)
			require.Equal(t, "Finance", row.UnitName)
			require.Equal(t, "R-100", row.RegistryNo)
		}
	})

	t.Run("grant and revoke", func(t *testing.T) {
		require.NoError(t, s.SetAccess(ctx, person.ID, wiki.ID, true))

		rows, err := s.GetAccessMatrix(ctx)
		require.NoError(t, err)
		granted := map[string]bool{}
		for _, row := range rows {
			granted[row.ApplicationName] = row.Granted
		}
		require.True(t, granted["Wiki"])
		require.False(t, granted["Mail"])

		require.NoError(t, s.SetAccess(ctx, person.ID, wiki.ID, false))
		rows, err = s.GetAccessMatrix(ctx)
		require.NoError(t, err)
		for _, row := range rows {
			require.False(t, row.Granted)
		}
	})

	t.Run("unknown person or application", func(t *testing.T) {
		err := s.SetAccess(ctx, "missing", wiki.ID, true)
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
		err = s.SetAccess(ctx, person.ID, "missing", true)
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})

	t.Run("deleting an application drops its column", func(t *testing.T) {
		require.NoError(t, s.DeleteApplication(ctx, mail.ID))
		rows, err := s.GetAccessMatrix(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)

		err = s.DeleteApplication(ctx, mail.ID)
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})
}

func TestAuditPaging(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.login(t)

	for i := 0; i < 12; i++ {
		_, err := s.CreateFolder(ctx, fmt.Sprintf("folder-%02d", i), nil)
		require.NoError(t, err)
		env.clock.Advance(time.Millisecond)
	}

	first, err := s.QueryAudit(ctx, 0, 0, "")
	require.NoError(t, err)
	require.Equal(t, 1, first.Page)
	require.Equal(t, 2, first.TotalPages)
	require.Len(t, first.Entries, 10)
	require.Contains(t, first.Entries[0].Description, "folder-11")

	second, err := s.QueryAudit(ctx, 2, 0, "")
	require.NoError(t, err)
	require.Len(t, second.Entries, 2)

	filtered, err := s.QueryAudit(ctx, 1, 5, "FOLDER-03")
	require.NoError(t, err)
	require.Len(t, filtered.Entries, 1)
	require.Equal(t, 1, filtered.TotalPages)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/v1/audit?page=abc", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+s.AccessToken())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
