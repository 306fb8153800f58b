package client

import (
	"errors"
	"fmt"
)

// Sentinel validation errors. They surface before any network call is
// made.
var (
	ErrMissingURL      = errors.New("enter a URL to shorten")
	ErrInvalidURL      = errors.New("enter a valid absolute http(s) URL")
	ErrInvalidValidity = errors.New("validity must be a whole number of minutes greater than zero")

	// ErrUnexpectedResponse means the service answered 2xx but the body
	// carried no recognizable short URL.
	ErrUnexpectedResponse = errors.New("unexpected response from shortening service")
)

// HTTPError is a non-2xx answer from the service. Message holds the
// response body verbatim when the service sent one.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("shortening failed with status %d", e.Status)
}
