package http

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/pkg/desksdk"
	"github.com/aussiebroadwan/filedesk/pkg/httpx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"
)

// writeServiceError maps a service error onto its status code and body.
// Anything unrecognised is logged and reported as a 500 with fallback as
// the message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var locked *service.LockedOutError

	switch {
	case errors.As(err, &locked):
		writeLockedOut(w, locked)
	case errors.Is(err, httpx.ErrBadJSON):
		httpx.WriteError(w, http.StatusBadRequest, desksdk.ErrorCodeValidation, "Invalid JSON in request body")
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, desksdk.ErrorCodeValidation, detail(err))
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, desksdk.ErrorCodeEmailTaken, "Email is already registered")
	case errors.Is(err, service.ErrCredentialNotFound):
		httpx.WriteError(w, http.StatusNotFound, desksdk.ErrorCodeNotFound, "No account with that email")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, desksdk.ErrorCodeNotFound, "Resource not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, desksdk.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, http.StatusBadRequest, desksdk.ErrorCodeInvalidToken, "Reset token is invalid or expired")
	case errors.Is(err, service.ErrDeliveryFailed):
		httpx.WriteError(w, http.StatusInternalServerError, desksdk.ErrorCodeDeliveryFailed, "Failed to send email")
	default:
		slogx.FromContext(r.Context()).Error(fallback, slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, desksdk.ErrorCodeServerError, fallback)
	}
}

// writeLockedOut reports the remaining lockout in the body (ms) and in
// Retry-After (whole seconds, rounded up).
func writeLockedOut(w http.ResponseWriter, e *service.LockedOutError) {
	secs := int(math.Ceil(e.Remaining.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
	httpx.WriteJSON(w, http.StatusForbidden, desksdk.ErrorResponse{
		Error:         desksdk.ErrorCodeLockedOut,
		Message:       "Account is locked. Try again later.",
		RemainingTime: e.Remaining.Milliseconds(),
	})
}

// detail strips the sentinel prefix from a wrapped validation error.
func detail(err error) string {
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, ": "); ok {
		return rest
	}
	return msg
}
