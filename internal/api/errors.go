package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoResponse wraps transport failures where the backend never answered.
var ErrNoResponse = errors.New("no response received from server")

// Error is a non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
}

// newError extracts the {"error": "..."} message the backend sends on failure.
func newError(status int, body []byte) *Error {
	e := &Error{Status: status}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = strings.TrimSpace(payload.Error)
	}
	return e
}

// Message returns the text to show a user for err, falling back to def when
// the backend gave no message.
func Message(err error, def string) string {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		return def
	}
	if errors.Is(err, ErrNoResponse) {
		return ErrNoResponse.Error()
	}
	var ve validationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return def
}
