package sqldb

import (
	"errors"
	"fmt"
)

var (
	ErrIncorrectResultSize = errors.New("at most one result expected")
	ErrInvalidOrdinal      = errors.New("parameter ordinal must be >= 1")
	ErrNotBound            = errors.New("parameter not bound")
	ErrTxUnsupported       = errors.New("connection does not support transactions")
	ErrUnsupportedType     = errors.New("unsupported database type")
)

// DataAccessError is the single error kind surfaced by the sql template.
type DataAccessError struct {
	Op    string // acquire, prepare, bind, exec, query, map, close, release, result
	Query string
	Msg   string // optional human-readable cause; Err's text is used when empty
	Err   error
}

func (e *DataAccessError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Query == "" {
		return fmt.Sprintf("data access [%s]: %s", e.Op, msg)
	}
	return fmt.Sprintf("data access [%s] %q: %s", e.Op, e.Query, msg)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// Translate wraps err into a *DataAccessError unless it already is one.
func Translate(op, query string, err error) error {
	if err == nil {
		return nil
	}
	var dae *DataAccessError
	if errors.As(err, &dae) {
		return err
	}
	return &DataAccessError{Op: op, Query: query, Err: err}
}
