package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/pkg/idx"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	svc   *DocumentService
	blobs *memBlobs
	audit *AuditService
}

func newDocumentFixture(t *testing.T) documentFixture {
	t.Helper()
	s := newTestStore(t)
	blobs := newMemBlobs()
	audit := &AuditService{Store: s}
	return documentFixture{
		svc:   &DocumentService{Store: s, Blobs: blobs, Recorder: audit},
		blobs: blobs,
		audit: audit,
	}
}

func (f documentFixture) upload(t *testing.T, fileID, number, content string) domain.Version {
	t.Helper()
	v, err := f.svc.AddVersion(context.Background(), "Ada", Upload{
		FileID:      fileID,
		Number:      number,
		Filename:    "report.txt",
		ContentType: "text/plain",
		Size:        int64(len(content)),
		Body:        strings.NewReader(content),
	})
	require.NoError(t, err)
	return v
}

func TestDocumentTree(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)

	root, err := f.svc.CreateFolder(ctx, "Ada", "Reports", nil)
	require.NoError(t, err)
	child, err := f.svc.CreateFolder(ctx, "Ada", "2026", &root.ID)
	require.NoError(t, err)
	file, err := f.svc.CreateFile(ctx, "Ada", child.ID, "q1.txt")
	require.NoError(t, err)
	v := f.upload(t, file.ID, "1.0", "hello")

	tree, err := f.svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree.Folders, 2)
	require.Len(t, tree.Files, 1)
	require.Len(t, tree.Versions, 1)
	require.Equal(t, v.ID, tree.Versions[0].ID)
	require.Equal(t, "Ada", tree.Folders[0].CreatedBy)

	t.Run("download streams content and is audited", func(t *testing.T) {
		got, obj, err := f.svc.OpenVersion(ctx, "Grace", v.ID)
		require.NoError(t, err)
		defer obj.Close()
		body, err := io.ReadAll(obj)
		require.NoError(t, err)
		require.Equal(t, "hello", string(body))
		require.Equal(t, "1.0", got.Number)

		page, err := f.audit.Query(ctx, 1, 10, "download")
		require.NoError(t, err)
		require.Len(t, page.Entries, 1)
		require.Equal(t, "Grace", page.Entries[0].Actor)
	})

	t.Run("deleting the root folder cascades and removes blobs", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteFolder(ctx, "Ada", root.ID))

		tree, err := f.svc.Tree(ctx)
		require.NoError(t, err)
		require.Empty(t, tree.Folders)
		require.Empty(t, tree.Files)
		require.Empty(t, tree.Versions)
		require.Empty(t, f.blobs.keys())
	})

	t.Run("missing folder", func(t *testing.T) {
		require.ErrorIs(t, f.svc.DeleteFolder(ctx, "Ada", root.ID), ErrNotFound)
		require.ErrorIs(t, f.svc.RenameFolder(ctx, "Ada", root.ID, "x"), ErrNotFound)
	})
}

func TestDocumentValidation(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)

	_, err := f.svc.CreateFolder(ctx, "Ada", "   ", nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	missing := idx.New().String()
	_, err = f.svc.CreateFolder(ctx, "Ada", "orphan", &missing)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.CreateFile(ctx, "Ada", missing, "a.txt")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.AddVersion(ctx, "Ada", Upload{FileID: missing, Number: "1", Body: strings.NewReader("x")})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.AddVersion(ctx, "Ada", Upload{FileID: missing, Number: "", Body: strings.NewReader("x")})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDocumentRename(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)

	folder, err := f.svc.CreateFolder(ctx, "Ada", "Old", nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.RenameFolder(ctx, "Ada", folder.ID, "New"))

	file, err := f.svc.CreateFile(ctx, "Ada", folder.ID, "a.txt")
	require.NoError(t, err)
	require.NoError(t, f.svc.RenameFile(ctx, "Ada", file.ID, "b.txt"))
	require.ErrorIs(t, f.svc.RenameFile(ctx, "Ada", file.ID, ""), ErrInvalidInput)

	tree, err := f.svc.Tree(ctx)
	require.NoError(t, err)
	require.Equal(t, "New", tree.Folders[0].Name)
	require.Equal(t, "b.txt", tree.Files[0].Name)

	page, err := f.audit.Query(ctx, 1, 10, "rename")
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
}

func TestDeleteFileRemovesVersions(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)

	folder, err := f.svc.CreateFolder(ctx, "Ada", "Docs", nil)
	require.NoError(t, err)
	file, err := f.svc.CreateFile(ctx, "Ada", folder.ID, "a.txt")
	require.NoError(t, err)
	f.upload(t, file.ID, "1", "one")
	f.upload(t, file.ID, "2", "two")
	require.Len(t, f.blobs.keys(), 2)

	require.NoError(t, f.svc.DeleteFile(ctx, "Ada", file.ID))
	require.Empty(t, f.blobs.keys())

	tree, err := f.svc.Tree(ctx)
	require.NoError(t, err)
	require.Empty(t, tree.Files)
	require.Empty(t, tree.Versions)
	require.Len(t, tree.Folders, 1)

	require.ErrorIs(t, f.svc.DeleteFile(ctx, "Ada", file.ID), ErrNotFound)
}

func TestDeleteVersion(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)

	folder, err := f.svc.CreateFolder(ctx, "Ada", "Docs", nil)
	require.NoError(t, err)
	file, err := f.svc.CreateFile(ctx, "Ada", folder.ID, "a.txt")
	require.NoError(t, err)
	v1 := f.upload(t, file.ID, "1", "one")
	f.upload(t, file.ID, "2", "two")

	require.NoError(t, f.svc.DeleteVersion(ctx, "Ada", v1.ID))
	require.Len(t, f.blobs.keys(), 1)

	_, _, err = f.svc.OpenVersion(ctx, "Ada", v1.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, f.svc.DeleteVersion(ctx, "Ada", v1.ID), ErrNotFound)
}

func TestUploadBlobFailureLeavesNoRow(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture(t)

	folder, err := f.svc.CreateFolder(ctx, "Ada", "Docs", nil)
	require.NoError(t, err)
	file, err := f.svc.CreateFile(ctx, "Ada", folder.ID, "a.txt")
	require.NoError(t, err)

	f.blobs.putErr = errBoom
	_, err = f.svc.AddVersion(ctx, "Ada", Upload{FileID: file.ID, Number: "1", Body: strings.NewReader("x")})
	require.ErrorIs(t, err, errBoom)

	tree, err := f.svc.Tree(ctx)
	require.NoError(t, err)
	require.Empty(t, tree.Versions)
}
