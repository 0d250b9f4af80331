package fwfcsv

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// A SpecError describes a layout description that is malformed or
// internally inconsistent. No partial spec is ever returned alongside
// a SpecError.
type SpecError struct {
	Field string // payload field at fault, may be empty
	Msg   string
	Cause error // original error
}

func (e *SpecError) Error() string {
	s := "fwfcsv: invalid spec"
	if e.Field != "" {
		s += " field " + e.Field
	}
	s += ": " + e.Msg
	if e.Cause != nil {
		return s + ": " + e.Cause.Error()
	}
	return s
}

func (e *SpecError) Unwrap() error { return e.Cause }

// A ValueError describes an invalid call-time argument or a value
// produced or consumed during an operation that does not fit the spec.
type ValueError struct {
	Column string // column name, may be empty
	Line   int    // 1-based source line, 0 when not applicable
	Msg    string
}

func (e *ValueError) Error() string {
	s := "fwfcsv: "
	if e.Line > 0 {
		s += "line " + strconv.Itoa(e.Line) + ": "
	}
	if e.Column != "" {
		s += "column " + e.Column + ": "
	}
	return s + e.Msg
}

// An IOError describes a failure opening, reading or writing a file.
type IOError struct {
	Op    string // "open", "read", "write", "create", "close", "rename"
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	s := "fwfcsv: " + e.Op
	if e.Path != "" {
		s += " " + e.Path
	}
	if e.Cause != nil {
		return s + ": " + e.Cause.Error()
	}
	return s
}

func (e *IOError) Unwrap() error { return e.Cause }

func specErrorf(field, format string, args ...interface{}) *SpecError {
	return &SpecError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// ioError labels an I/O failure. Errors that already carry a kind, an
// *IOError or a *ValueError raised by a transcoder, pass through.
func ioError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ioErr    *IOError
		valueErr *ValueError
	)
	if errors.As(err, &ioErr) || errors.As(err, &valueErr) {
		return err
	}
	return &IOError{Op: op, Path: path, Cause: errors.WithStack(err)}
}
