package desksdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	ErrorCodeValidation         = "validation_failed"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeLockedOut          = "locked_out"
	ErrorCodeDeliveryFailed     = "delivery_failed"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeServerError        = "server_error"
	ErrorCodeRateLimited        = "rate_limit_exceeded"
)

// APIError is a non-2xx response from the console.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	// RemainingTime is how long a locked credential stays locked.
	RemainingTime time.Duration
}

func (e *APIError) Error() string {
	if e.Code == ErrorCodeLockedOut {
		return fmt.Sprintf("%s: %s (retry in %s)", e.Code, e.Message, e.RemainingTime)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// parseErrorResponse turns an error body into *APIError. Bodies that are not
// JSON fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:    resp.StatusCode,
			Code:          errResp.Error,
			Message:       errResp.Message,
			RemainingTime: time.Duration(errResp.RemainingTime) * time.Millisecond,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
