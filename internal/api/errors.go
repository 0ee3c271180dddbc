package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrNotFound marks a recommendation the backend no longer has
	// (ephemeral storage survives restarts badly). Pages render a
	// "search again" affordance for it instead of a retry button.
	ErrNotFound = errors.New("not_found")

	// ErrAlreadyFavorite is the duplicate-favorite conflict. The deferred
	// favorite replay treats it as success.
	ErrAlreadyFavorite = errors.New("already favorited")
)

// StatusError captures non-2xx responses. Message is the backend's `detail`
// field when present, otherwise the raw body, otherwise "HTTP <status>",
// so it is always suitable for direct display.
type StatusError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// RateLimitError is the distinguished anonymous-quota failure on
// recommendation creation. Remaining is always 0 at this point; the UI shows
// a login call-to-action rather than a retry button.
type RateLimitError struct {
	Message   string
	Remaining int
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// IsRateLimited reports whether err (anywhere in its chain) is a quota error.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

type errorBody struct {
	Detail    string `json:"detail"`
	Remaining *int   `json:"remaining"`
}

// statusError drains resp.Body and normalizes it into a *StatusError
// (or *RateLimitError for 429).
func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	message := fmt.Sprintf("HTTP %d", resp.StatusCode)
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		message = body.Detail
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		message = text
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		remaining := 0
		if body.Remaining != nil {
			remaining = *body.Remaining
		}
		return &RateLimitError{Message: message, Remaining: remaining}
	}

	return &StatusError{Operation: op, StatusCode: resp.StatusCode, Message: message}
}
