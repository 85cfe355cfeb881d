package backend

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mediakasir/apotekpos/services/backend/wire"
)

// APIError is a non-2xx answer of the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend answered with status %d", e.StatusCode)
}

// GetHTTPErrorCode lets a missing backend resource surface as 404; anything else is a bad gateway.
func (e *APIError) GetHTTPErrorCode() int {
	switch e.StatusCode {
	case http.StatusNotFound:
		return http.StatusNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}

func newAPIError(statusCode int, body []byte) *APIError {
	resp := wire.ErrorResponse{}
	_ = json.Unmarshal(body, &resp)

	msg := ""
	switch detail := resp.Detail.(type) {
	case string:
		msg = detail
	case nil:
	default:
		// validation errors come as a list of objects
		asJSON, err := json.Marshal(detail)
		if err == nil {
			msg = string(asJSON)
		}
	}
	if msg == "" {
		msg = resp.Message
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
	}
}
