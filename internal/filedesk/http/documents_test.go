package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/stretchr/testify/require"
)

func TestV1RequiresToken(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, path := range []string{"/v1/tree", "/v1/units", "/v1/applications", "/v1/access", "/v1/audit"} {
		resp, err := http.Get(env.server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	}

	bogus := env.client.NewSession("not-a-jwt", "")
	_, err := bogus.GetTree(context.Background())
	requireAPIError(t, err, http.StatusUnauthorized, "invalid_token")
}

func TestDocumentLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()
	s := env.login(t)

	root, err := s.CreateFolder(ctx, "Reports", nil)
	require.NoError(t, err)
	require.Nil(t, root.ParentID)
	require.Equal(t, "Ada Lovelace", root.CreatedBy)

	child, err := s.CreateFolder(ctx, "2026", &root.ID)
	require.NoError(t, err)
	require.Equal(t, root.ID, *child.ParentID)

	file, err := s.CreateFile(ctx, child.ID, "budget.pdf")
	require.NoError(t, err)

	v, err := s.UploadVersion(ctx, file.ID, "1.0", "budget.pdf", strings.NewReader("%PDF-1.7 hello"))
	require.NoError(t, err)
	require.Equal(t, "1.0", v.Number)
	require.Equal(t, int64(len("%PDF-1.7 hello")), v.Size)
	require.Equal(t, "application/pdf", v.ContentType)

	t.Run("tree", func(t *testing.T) {
		tree, err := s.GetTree(ctx)
		require.NoError(t, err)
		require.Len(t, tree.Folders, 2)
		require.Len(t, tree.Files, 1)
		require.Len(t, tree.Versions, 1)
		require.Equal(t, file.ID, tree.Versions[0].FileID)
	})

	t.Run("download streams an attachment", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, env.server.URL+"/v1/versions/"+v.ID+"/download", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+s.AccessToken())
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		require.Equal(t, `attachment; filename=1.0.pdf`, resp.Header.Get("Content-Disposition"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "%PDF-1.7 hello", string(body))
	})

	t.Run("rename", func(t *testing.T) {
		require.NoError(t, s.RenameFolder(ctx, child.ID, "FY2026"))
		require.NoError(t, s.RenameFile(ctx, file.ID, "budget-final.pdf"))

		err := s.RenameFolder(ctx, child.ID, "  ")
		requireAPIError(t, err, http.StatusBadRequest, desksdk.ErrorCodeValidation)
		err = s.RenameFile(ctx, "missing", "x")
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})

	t.Run("audit records the actor", func(t *testing.T) {
		page, err := s.QueryAudit(ctx, 1, 50, "download")
		require.NoError(t, err)
		require.Len(t, page.Entries, 1)
		require.Equal(t, "Ada Lovelace", page.Entries[0].Actor)
		require.Equal(t, "versions", page.Entries[0].Table)
	})

	t.Run("folder delete cascades and removes blobs", func(t *testing.T) {
		require.NoError(t, s.DeleteFolder(ctx, root.ID))

		tree, err := s.GetTree(ctx)
		require.NoError(t, err)
		require.Empty(t, tree.Folders)
		require.Empty(t, tree.Files)
		require.Empty(t, tree.Versions)

		_, _, err = s.Download(ctx, v.ID)
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)

		err = s.DeleteFolder(ctx, root.ID)
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})
}

func TestDocumentErrors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, withMaxUpload(2048))
	ctx := context.Background()
	s := env.login(t)

	t.Run("missing parent", func(t *testing.T) {
		missing := "01J00000000000000000000000"
		_, err := s.CreateFolder(ctx, "orphan", &missing)
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)

		_, err = s.CreateFile(ctx, missing, "orphan.txt")
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := s.CreateFolder(ctx, "", nil)
		requireAPIError(t, err, http.StatusBadRequest, desksdk.ErrorCodeValidation)
	})

	folder, err := s.CreateFolder(ctx, "Inbox", nil)
	require.NoError(t, err)
	file, err := s.CreateFile(ctx, folder.ID, "notes.txt")
	require.NoError(t, err)

	t.Run("upload over the limit", func(t *testing.T) {
		_, err := s.UploadVersion(ctx, file.ID, "1", "notes.txt", bytes.NewReader(make([]byte, 8192)))
		requireAPIError(t, err, http.StatusRequestEntityTooLarge, "payload_too_large")
	})

	t.Run("upload without version number", func(t *testing.T) {
		_, err := s.UploadVersion(ctx, file.ID, "", "n.txt", strings.NewReader("x"))
		requireAPIError(t, err, http.StatusBadRequest, desksdk.ErrorCodeValidation)
	})

	t.Run("upload to missing file leaves no blob", func(t *testing.T) {
		_, err := s.UploadVersion(ctx, "missing", "1", "n.txt", strings.NewReader("x"))
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})

	t.Run("delete file then its version is gone", func(t *testing.T) {
		v, err := s.UploadVersion(ctx, file.ID, "1", "n.txt", strings.NewReader("tiny"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteFile(ctx, file.ID))
		err = s.DeleteVersion(ctx, v.ID)
		requireAPIError(t, err, http.StatusNotFound, desksdk.ErrorCodeNotFound)
	})
}
