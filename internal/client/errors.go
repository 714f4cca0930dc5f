package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/yukikurage/etams/internal/validation"
)

const codeValidationFailed = "VALIDATION_FAILED"

// User-facing messages for failed requests.
const (
	MessageConnectivity = "Cannot connect to the server. Please check your internet connection."
	MessageUnauthorized = "Incorrect username or password."
	MessageNotFound     = "The requested record was not found."
	MessageServerError  = "Something went wrong on our end. Please try again later."
	MessageUnexpected   = "An unexpected error occurred. Please try again."
)

// HTTPError is a failed API call. Status is zero when no response arrived.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	// Fields holds per-field rule failures on a VALIDATION_FAILED response.
	Fields validation.Errors

	cause error
}

func (e *HTTPError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap exposes validation failures and transport errors to errors.As and errors.Is.
func (e *HTTPError) Unwrap() error {
	if len(e.Fields) > 0 {
		return e.Fields
	}
	return e.cause
}

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func decodeError(resp *http.Response) error {
	httpErr := &HTTPError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(data) == 0 {
		return httpErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return httpErr
	}

	httpErr.Code = body.Code
	if body.Message != "" {
		httpErr.Message = body.Message
	}
	if body.Code == codeValidationFailed && len(body.Details) > 0 {
		var fields validation.Errors
		if err := json.Unmarshal(body.Details, &fields); err == nil {
			httpErr.Fields = fields
		}
	}
	return httpErr
}

// UserMessage classifies err by HTTP status into a message fit for the terminal.
func UserMessage(err error) string {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return MessageUnexpected
	}

	switch httpErr.Status {
	case 0:
		return MessageConnectivity
	case http.StatusUnauthorized:
		return MessageUnauthorized
	case http.StatusNotFound:
		return MessageNotFound
	case http.StatusInternalServerError:
		return MessageServerError
	default:
		return MessageUnexpected
	}
}

// ValidationErrors returns the server's field failures carried by err, if any.
func ValidationErrors(err error) (validation.Errors, bool) {
	var fields validation.Errors
	if errors.As(err, &fields) && len(fields) > 0 {
		return fields, true
	}
	return nil, false
}
