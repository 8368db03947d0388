package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/blob"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/domain"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
	"github.com/aussiebroadwan/filedesk/pkg/idx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"
)

var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidInput = errors.New("invalid_input")
)

// Tree is the whole document hierarchy in adjacency-list form.
type Tree struct {
	Folders  []domain.Folder
	Files    []domain.File
	Versions []domain.Version
}

type Upload struct {
	FileID      string
	Number      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type DocumentService struct {
	Store    store.Store
	Blobs    blob.Store
	Recorder Recorder
	Now      func() time.Time
}

func (s *DocumentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DocumentService) audit(ctx context.Context, actor string, kind domain.AuditKind, table, format string, args ...any) {
	if s.Recorder == nil {
		return
	}
	s.Recorder.Record(ctx, domain.AuditEntry{
		Description: fmt.Sprintf(format, args...),
		Kind:        kind,
		Table:       table,
		Actor:       actor,
	})
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return name, nil
}

func (s *DocumentService) Tree(ctx context.Context) (Tree, error) {
	folders, err := s.Store.Folders().ListFolders(ctx)
	if err != nil {
		return Tree{}, err
	}
	files, err := s.Store.Files().ListFiles(ctx)
	if err != nil {
		return Tree{}, err
	}
	versions, err := s.Store.Versions().ListVersions(ctx)
	if err != nil {
		return Tree{}, err
	}
	return Tree{Folders: folders, Files: files, Versions: versions}, nil
}

func (s *DocumentService) CreateFolder(ctx context.Context, actor, name string, parentID *string) (domain.Folder, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.Folder{}, err
	}
	if parentID != nil && strings.TrimSpace(*parentID) == "" {
		parentID = nil
	}

	now := s.now()
	f := domain.Folder{
		ID:        idx.NewAt(now).String(),
		ParentID:  parentID,
		Name:      name,
		CreatedBy: actor,
		CreatedAt: now,
	}
	if err := s.Store.Folders().CreateFolder(ctx, f); err != nil {
		return domain.Folder{}, mapStoreErr(err)
	}
	s.audit(ctx, actor, domain.AuditCreate, domain.TableFolders, "created folder %q", name)
	return f, nil
}

func (s *DocumentService) RenameFolder(ctx context.Context, actor, id, name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	if err := s.Store.Folders().RenameFolder(ctx, id, name); err != nil {
		return mapStoreErr(err)
	}
	s.audit(ctx, actor, domain.AuditRename, domain.TableFolders, "renamed folder %s to %q", id, name)
	return nil
}

// DeleteFolder removes the folder subtree. Blobs of removed versions are
// deleted after the commit; failures there only leave orphaned objects.
func (s *DocumentService) DeleteFolder(ctx context.Context, actor, id string) error {
	var keys []string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		keys, err = tx.Folders().ListObjectKeysUnder(ctx, id)
		if err != nil {
			return err
		}
		return tx.Folders().DeleteFolder(ctx, id)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	s.removeBlobs(ctx, keys)
	s.audit(ctx, actor, domain.AuditDelete, domain.TableFolders, "deleted folder %s", id)
	return nil
}

func (s *DocumentService) CreateFile(ctx context.Context, actor, folderID, name string) (domain.File, error) {
	name, err := requireName(name)
	if err != nil {
		return domain.File{}, err
	}
	now := s.now()
	f := domain.File{
		ID:        idx.NewAt(now).String(),
		FolderID:  folderID,
		Name:      name,
		CreatedAt: now,
	}
	if err := s.Store.Files().CreateFile(ctx, f); err != nil {
		return domain.File{}, mapStoreErr(err)
	}
	s.audit(ctx, actor, domain.AuditCreate, domain.TableFiles, "created file %q", name)
	return f, nil
}

func (s *DocumentService) RenameFile(ctx context.Context, actor, id, name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	if err := s.Store.Files().RenameFile(ctx, id, name); err != nil {
		return mapStoreErr(err)
	}
	s.audit(ctx, actor, domain.AuditRename, domain.TableFiles, "renamed file %s to %q", id, name)
	return nil
}

// DeleteFile removes the versions and then the file in one transaction.
func (s *DocumentService) DeleteFile(ctx context.Context, actor, id string) error {
	var keys []string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		versions, err := tx.Versions().ListVersionsByFile(ctx, id)
		if err != nil {
			return err
		}
		for _, v := range versions {
			keys = append(keys, v.ObjectKey)
		}
		if _, err := tx.Versions().DeleteVersionsByFile(ctx, id); err != nil {
			return err
		}
		return tx.Files().DeleteFile(ctx, id)
	})
	if err != nil {
		return mapStoreErr(err)
	}

	s.removeBlobs(ctx, keys)
	s.audit(ctx, actor, domain.AuditDelete, domain.TableFiles, "deleted file %s with %d versions", id, len(keys))
	return nil
}

// AddVersion stores the blob first and then the row. If the row cannot be
// written the blob is removed again.
func (s *DocumentService) AddVersion(ctx context.Context, actor string, up Upload) (domain.Version, error) {
	number := strings.TrimSpace(up.Number)
	if number == "" {
		return domain.Version{}, fmt.Errorf("%w: version number is required", ErrInvalidInput)
	}
	if up.Body == nil {
		return domain.Version{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if _, err := s.Store.Files().GetFile(ctx, up.FileID); err != nil {
		return domain.Version{}, mapStoreErr(err)
	}

	ct := up.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	now := s.now()
	id := idx.NewAt(now).String()
	key := path.Join("versions", up.FileID, id+path.Ext(up.Filename))

	if err := s.Blobs.Put(ctx, key, up.Body, up.Size, ct); err != nil {
		return domain.Version{}, fmt.Errorf("store blob: %w", err)
	}

	v := domain.Version{
		ID:          id,
		FileID:      up.FileID,
		Number:      number,
		ObjectKey:   key,
		Size:        up.Size,
		ContentType: ct,
		CreatedBy:   actor,
		CreatedAt:   now,
	}
	if err := s.Store.Versions().CreateVersion(ctx, v); err != nil {
		s.removeBlobs(ctx, []string{key})
		return domain.Version{}, mapStoreErr(err)
	}

	s.audit(ctx, actor, domain.AuditUpload, domain.TableVersions, "uploaded version %s of file %s", number, up.FileID)
	return v, nil
}

// OpenVersion returns the version row and its content. The caller closes
// the object.
func (s *DocumentService) OpenVersion(ctx context.Context, actor, id string) (domain.Version, *blob.Object, error) {
	v, err := s.Store.Versions().GetVersion(ctx, id)
	if err != nil {
		return domain.Version{}, nil, mapStoreErr(err)
	}
	obj, err := s.Blobs.Open(ctx, v.ObjectKey)
	if errors.Is(err, blob.ErrNotFound) {
		return domain.Version{}, nil, ErrNotFound
	}
	if err != nil {
		return domain.Version{}, nil, fmt.Errorf("open blob: %w", err)
	}

	s.audit(ctx, actor, domain.AuditDownload, domain.TableVersions, "downloaded version %s of file %s", v.Number, v.FileID)
	return v, obj, nil
}

func (s *DocumentService) DeleteVersion(ctx context.Context, actor, id string) error {
	v, err := s.Store.Versions().GetVersion(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if err := s.Store.Versions().DeleteVersion(ctx, id); err != nil {
		return mapStoreErr(err)
	}
	s.removeBlobs(ctx, []string{v.ObjectKey})
	s.audit(ctx, actor, domain.AuditDelete, domain.TableVersions, "deleted version %s of file %s", v.Number, v.FileID)
	return nil
}

func (s *DocumentService) removeBlobs(ctx context.Context, keys []string) {
	l := slogx.FromContext(ctx)
	for _, k := range keys {
		if err := s.Blobs.Delete(ctx, k); err != nil {
			l.Warn("failed to delete blob", slog.String("key", k), slog.Any("err", err))
		}
	}
}
