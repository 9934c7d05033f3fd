package scans

import "errors"

// ErrNotFound reports a scan object missing from the bucket.
var ErrNotFound = errors.New("scan not found")

// TransientError marks a store failure worth retrying manually: network
// trouble, auth rejection, listing failures. The viewer surfaces these
// without touching session state.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError, passing nil through.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Op: op, Err: err}
}
