package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to a temp file.
const multipartMemory = 8 << 20

// DocumentsHandler serves the folder, file and version endpoints.
type DocumentsHandler struct {
	DocumentService *service.DocumentService
	MaxUploadBytes  int64
}

// HandleTree handles GET /v1/tree
//
//	@Summary		Document tree
//	@Description	Returns every folder, file and version as flat lists linked by parent ids.
//	@Tags			Documents
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	desksdk.TreeResponse
//	@Failure		401	{object}	desksdk.ErrorResponse
//	@Router			/v1/tree [get].
func (h *DocumentsHandler) HandleTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.DocumentService.Tree(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to load tree")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTree(tree))
}

// HandleCreateFolder handles POST /v1/folders
//
//	@Summary		Create a folder
//	@Tags			Documents
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		desksdk.CreateFolderRequest	true	"Folder name and optional parent"
//	@Success		201		{object}	desksdk.Folder
//	@Failure		400		{object}	desksdk.ErrorResponse
//	@Failure		404		{object}	desksdk.ErrorResponse	"parent folder not found"
//	@Router			/v1/folders [post].
func (h *DocumentsHandler) HandleCreateFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.CreateFolderRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	folder, err := h.DocumentService.CreateFolder(ctx, httpx.ActorFromContext(ctx), req.Name, req.ParentID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create folder")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toFolder(folder))
}

// HandleRenameFolder handles PATCH /v1/folders/{id}
//
//	@Summary	Rename a folder
//	@Tags		Documents
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	string					true	"Folder id"
//	@Param		request	body	desksdk.RenameRequest	true	"New name"
//	@Success	204
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/folders/{id} [patch].
func (h *DocumentsHandler) HandleRenameFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.RenameRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	if err := h.DocumentService.RenameFolder(ctx, httpx.ActorFromContext(ctx), r.PathValue("id"), req.Name); err != nil {
		writeServiceError(w, r, err, "Failed to rename folder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteFolder handles DELETE /v1/folders/{id}
//
//	@Summary		Delete a folder
//	@Description	Removes the folder with all subfolders, files and versions.
//	@Tags			Documents
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Folder id"
//	@Success		204
//	@Failure		404	{object}	desksdk.ErrorResponse
//	@Router			/v1/folders/{id} [delete].
func (h *DocumentsHandler) HandleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.DocumentService.DeleteFolder(ctx, httpx.ActorFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "Failed to delete folder")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateFile handles POST /v1/folders/{id}/files
//
//	@Summary	Create a file
//	@Tags		Documents
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"Folder id"
//	@Param		request	body		desksdk.CreateFileRequest	true	"File name"
//	@Success	201		{object}	desksdk.File
//	@Failure	404		{object}	desksdk.ErrorResponse
//	@Router		/v1/folders/{id}/files [post].
func (h *DocumentsHandler) HandleCreateFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.CreateFileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	file, err := h.DocumentService.CreateFile(ctx, httpx.ActorFromContext(ctx), r.PathValue("id"), req.Name)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create file")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toFile(file))
}

// HandleRenameFile handles PATCH /v1/files/{id}
//
//	@Summary	Rename a file
//	@Tags		Documents
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	string					true	"File id"
//	@Param		request	body	desksdk.RenameRequest	true	"New name"
//	@Success	204
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/files/{id} [patch].
func (h *DocumentsHandler) HandleRenameFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.RenameRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	if err := h.DocumentService.RenameFile(ctx, httpx.ActorFromContext(ctx), r.PathValue("id"), req.Name); err != nil {
		writeServiceError(w, r, err, "Failed to rename file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteFile handles DELETE /v1/files/{id}
//
//	@Summary	Delete a file and its versions
//	@Tags		Documents
//	@Security	BearerAuth
//	@Param		id	path	string	true	"File id"
//	@Success	204
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/files/{id} [delete].
func (h *DocumentsHandler) HandleDeleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.DocumentService.DeleteFile(ctx, httpx.ActorFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "Failed to delete file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUploadVersion handles POST /v1/files/{id}/versions
//
//	@Summary	Upload a version
//	@Tags		Documents
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id			path		string	true	"File id"
//	@Param		versionNo	formData	string	true	"Version label"
//	@Param		file		formData	file	true	"Content"
//	@Success	201			{object}	desksdk.Version
//	@Failure	400			{object}	desksdk.ErrorResponse
//	@Failure	404			{object}	desksdk.ErrorResponse
//	@Failure	413			{object}	desksdk.ErrorResponse	"payload_too_large"
//	@Router		/v1/files/{id}/versions [post].
func (h *DocumentsHandler) HandleUploadVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = DefaultMaxUploadBytes
	}
	if r.ContentLength > limit {
		writeTooLarge(w, limit)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeTooLarge(w, limit)
			return
		}
		httpx.WriteError(w, http.StatusBadRequest, desksdk.ErrorCodeValidation, "Expected a multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, desksdk.ErrorCodeValidation, "file is required")
		return
	}
	defer file.Close()

	v, err := h.DocumentService.AddVersion(ctx, httpx.ActorFromContext(ctx), service.Upload{
		FileID:      r.PathValue("id"),
		Number:      r.FormValue("versionNo"),
		Filename:    header.Filename,
		ContentType: uploadContentType(header.Header.Get("Content-Type"), header.Filename),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to store version")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toVersion(v))
}

func writeTooLarge(w http.ResponseWriter, limit int64) {
	httpx.WriteError(w, http.StatusRequestEntityTooLarge, "payload_too_large",
		"Upload exceeds "+strconv.FormatInt(limit, 10)+" bytes")
}

// uploadContentType prefers the part's declared type unless it is the
// generic octet-stream, in which case the extension decides.
func uploadContentType(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(path.Ext(filename)); byExt != "" {
		return byExt
	}
	return declared
}

// HandleDownloadVersion handles GET /v1/versions/{id}/download
//
//	@Summary	Download a version
//	@Tags		Documents
//	@Produce	octet-stream
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Version id"
//	@Success	200	{file}	binary
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/versions/{id}/download [get].
func (h *DocumentsHandler) HandleDownloadVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	v, obj, err := h.DocumentService.OpenVersion(ctx, httpx.ActorFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to open version")
		return
	}
	defer obj.Close()

	ct := obj.ContentType
	if ct == "" {
		ct = v.ContentType
	}
	filename := v.Number + path.Ext(v.ObjectKey)
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	if obj.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj); err != nil {
		slogx.FromContext(ctx).Warn("download interrupted", "version_id", v.ID, "err", err)
	}
}

// HandleDeleteVersion handles DELETE /v1/versions/{id}
//
//	@Summary	Delete a version
//	@Tags		Documents
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Version id"
//	@Success	204
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/versions/{id} [delete].
func (h *DocumentsHandler) HandleDeleteVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.DocumentService.DeleteVersion(ctx, httpx.ActorFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "Failed to delete version")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
