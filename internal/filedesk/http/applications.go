package http

import (
	"net/http"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
)

type ApplicationsHandler struct {
	ApplicationService *service.ApplicationService
}

// HandleList handles GET /v1/applications
//
//	@Summary	List applications
//	@Tags		Applications
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	desksdk.Application
//	@Router		/v1/applications [get].
func (h *ApplicationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	apps, err := h.ApplicationService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to list applications")
		return
	}

	out := make([]desksdk.Application, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplication(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /v1/applications
//
//	@Summary	Register an application
//	@Tags		Applications
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		desksdk.CreateApplicationRequest	true	"Name, endpoint and description"
//	@Success	201		{object}	desksdk.Application
//	@Failure	400		{object}	desksdk.ErrorResponse
//	@Router		/v1/applications [post].
func (h *ApplicationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.CreateApplicationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	app, err := h.ApplicationService.Create(ctx, httpx.ActorFromContext(ctx), req.Name, req.Endpoint, req.Description)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create application")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toApplication(app))
}

// HandleDelete handles DELETE /v1/applications/{id}
//
//	@Summary	Delete an application
//	@Tags		Applications
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Application id"
//	@Success	204
//	@Failure	404	{object}	desksdk.ErrorResponse
//	@Router		/v1/applications/{id} [delete].
func (h *ApplicationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.ApplicationService.Delete(ctx, httpx.ActorFromContext(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "Failed to delete application")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
