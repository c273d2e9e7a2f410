package store

import "fmt"

// ReadError marks a failed query against the catalog store. Callers
// keep their previous state and surface a transient message; reads are
// not retried automatically.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("catalog store read (%s): %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError marks a rejected insert/update/delete. Local state is not
// rolled back because it was never optimistically advanced.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("catalog store write (%s): %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func readErr(op string, err error) error  { return &ReadError{Op: op, Err: err} }
func writeErr(op string, err error) error { return &WriteError{Op: op, Err: err} }
