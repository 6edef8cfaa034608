package sdk

import (
	"errors"
	"fmt"
)

// ErrUnknownResource is returned for bulk lookups of a name with no export
var ErrUnknownResource = errors.New("unknown resource")

// RemoteCallError describes a failed call to the API or the bulk store.
// StatusCode is zero for transport failures.
type RemoteCallError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteCallError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// Temporary reports whether a retry may succeed: transport failures and 5xx
func (e *RemoteCallError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}
