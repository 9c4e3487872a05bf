package gomap

import (
	"fmt"

	"github.com/gistsapi/dynjson/dyn"
)

// ConversionError reports a value that cannot be converted to the Go type
// it is mapped to.
type ConversionError struct {
	FieldPath string // e.g. "files[0].size"
	From      dyn.Type
	To        string
	Message   string
	Err       error
}

func (e *ConversionError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("conversion error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("conversion error: %s", msg)
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{dyn.ErrConversion}
	}
	return []error{dyn.ErrConversion, e.Err}
}

// UnmarshalError reports a destination that cannot receive a value at all.
type UnmarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}
