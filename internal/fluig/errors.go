package fluig

import (
	"errors"
	"fmt"
)

// ErrEmptyBody reports a 2xx response with a zero-length body. The remote
// does this for documents that exist but have no stored content.
var ErrEmptyBody = errors.New("remote returned an empty body")

// ErrResponseTooLarge reports a document exceeding the configured
// max_response_size.
var ErrResponseTooLarge = errors.New("document exceeds maximum response size")

// StatusError reports a non-2xx response from the remote.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fluig returned %s", e.Status)
}
