package http

import (
	"net/http"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
)

// DirectoryHandler serves the unit and personnel endpoints.
type DirectoryHandler struct {
	DirectoryService *service.DirectoryService
}

// HandleList handles GET /v1/units
//
//	@Summary	Units and personnel
//	@Tags		Directory
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	desksdk.DirectoryResponse
//	@Router		/v1/units [get].
func (h *DirectoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	dir, err := h.DirectoryService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to load directory")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toDirectory(dir))
}

// HandleCreateUnit handles POST /v1/units
//
//	@Summary	Create a unit
//	@Tags		Directory
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		desksdk.CreateUnitRequest	true	"Unit name and optional parent"
//	@Success	201		{object}	desksdk.Unit
//	@Failure	400		{object}	desksdk.ErrorResponse
//	@Failure	404		{object}	desksdk.ErrorResponse	"parent unit not found"
//	@Router		/v1/units [post].
func (h *DirectoryHandler) HandleCreateUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.CreateUnitRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	unit, err := h.DirectoryService.CreateUnit(ctx, httpx.ActorFromContext(ctx), req.Name, req.ParentID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create unit")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toUnit(unit))
}

// HandleRenameUnit handles PATCH /v1/units/{id}
//
//	@Summary	Rename a unit
//	@Tags		Directory
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	string					true	"Unit id"
//	@Param		request	body	desksdk.RenameRequest	true	"New name"
//	@Success	204
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/units/{id} [patch].
func (h *DirectoryHandler) HandleRenameUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.RenameRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	if err := h.DirectoryService.RenameUnit(ctx, httpx.ActorFromContext(ctx), r.PathValue("id"), req.Name); err != nil {
		writeServiceError(w, r, err, "Failed to rename unit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteUnit handles DELETE /v1/units/{id}
//
//	@Summary		Delete a unit
//	@Description	Removes the unit, its personnel and its child units in one transaction.
//	@Tags			Directory
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Unit id"
//	@Success		204
//	@Failure		404	{object}	desksdk.ErrorResponse
//	@Router			/v1/units/{id} [delete].
func (h *DirectoryHandler) HandleDeleteUnit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.DirectoryService.DeleteUnit(ctx, httpx.ActorFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "Failed to delete unit")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddPerson handles POST /v1/units/{id}/personnel
//
//	@Summary	Add a person to a unit
//	@Tags		Directory
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"Unit id"
//	@Param		request	body		desksdk.PersonRequest	true	"Name and registry number"
//	@Success	201		{object}	desksdk.Person
//	@Failure	404		{object}	desksdk.ErrorResponse
//	@Router		/v1/units/{id}/personnel [post].
func (h *DirectoryHandler) HandleAddPerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.PersonRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	person, err := h.DirectoryService.AddPerson(ctx, httpx.ActorFromContext(ctx), r.PathValue("id"), req.Name, req.RegistryNo)
	if err != nil {
		writeServiceError(w, r, err, "Failed to add person")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPerson(person))
}

// HandleUpdatePerson handles PATCH /v1/personnel/{id}
//
//	@Summary	Update a person
//	@Tags		Directory
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	string					true	"Person id"
//	@Param		request	body	desksdk.PersonRequest	true	"Name and registry number"
//	@Success	204
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/personnel/{id} [patch].
func (h *DirectoryHandler) HandleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.PersonRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	err := h.DirectoryService.UpdatePerson(ctx, httpx.ActorFromContext(ctx), r.PathValue("id"), req.Name, req.RegistryNo)
	if err != nil {
		writeServiceError(w, r, err, "Failed to update person")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeletePerson handles DELETE /v1/personnel/{id}
//
//	@Summary	Delete a person
//	@Tags		Directory
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Person id"
//	@Success	204
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/personnel/{id} [delete].
func (h *DirectoryHandler) HandleDeletePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.DirectoryService.DeletePerson(ctx, httpx.ActorFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "Failed to delete person")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
