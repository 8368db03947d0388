package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
)

type AuditHandler struct {
	AuditService *service.AuditService
}

// HandleQuery handles GET /v1/audit
//
//	@Summary		Search the audit log
//	@Description	Case-insensitive substring search over description, kind, table and actor. Newest entries first.
//	@Tags			Audit
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page	query		int		false	"1-based page"
//	@Param			limit	query		int		false	"Page size, default 10, at most 100"
//	@Param			search	query		string	false	"Substring filter"
//	@Success		200		{object}	desksdk.AuditPageResponse
//	@Failure		400		{object}	desksdk.ErrorResponse
//	@Router			/v1/audit [get].
func (h *AuditHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, ok := intParam(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := intParam(w, q.Get("limit"), "limit")
	if !ok {
		return
	}

	res, err := h.AuditService.Query(r.Context(), page, limit, q.Get("search"))
	if err != nil {
		writeServiceError(w, r, err, "Failed to query audit log")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAuditPage(res))
}

// intParam parses an optional non-negative query parameter. Empty means 0.
func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		httpx.WriteError(w, http.StatusBadRequest, desksdk.ErrorCodeValidation, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
