package http

import (
	"net/http"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
)

type AccessHandler struct {
	AccessService *service.AccessService
}

// HandleMatrix handles GET /v1/access
//
//	@Summary		Access matrix
//	@Description	One row per person and application. Missing grants read as false.
//	@Tags			Access
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}	desksdk.AccessRow
//	@Router			/v1/access [get].
func (h *AccessHandler) HandleMatrix(w http.ResponseWriter, r *http.Request) {
	rows, err := h.AccessService.Matrix(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Failed to load access matrix")
		return
	}

	out := make([]desksdk.AccessRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAccessRow(row))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleSet handles PUT /v1/access
//
//	@Summary	Grant or revoke access
//	@Tags		Access
//	@Accept		json
//	@Security	BearerAuth
//	@Param		request	body	desksdk.SetAccessRequest	true	"Person, application and grant flag"
//	@Success	204
//	@Failure	400	{object}	desksdk.ErrorResponse
//	@Failure	404	{object}	desksdk.ErrorResponse	"unknown person or application"
//	@Router		/v1/access [put].
func (h *AccessHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req desksdk.SetAccessRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, "")
		return
	}

	if err := h.AccessService.Set(ctx, httpx.ActorFromContext(ctx), req.PersonID, req.ApplicationID, req.Granted); err != nil {
		writeServiceError(w, r, err, "Failed to update access")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
