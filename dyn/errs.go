package dyn

import (
	"errors"
	"fmt"
)

var (
	ErrParse      = errors.New("parse error")
	ErrAccess     = errors.New("access error")
	ErrConversion = errors.New("conversion error")
	ErrEncode     = errors.New("encode error")
	ErrMarshal    = errors.New("marshal error")
	ErrNotFound   = errors.New("not found")
)

// AccessError reports a container operation applied to the wrong kind of
// node: a key on an Array, an index on an Object, or anything on a scalar.
type AccessError struct {
	Op      string
	Type    Type
	Key     string
	Message string
}

func (e *AccessError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("access error: %s %s on %s: %s", e.Op, e.Key, e.Type, e.Message)
	}
	return fmt.Sprintf("access error: %s on %s: %s", e.Op, e.Type, e.Message)
}

func (e *AccessError) Unwrap() error {
	return ErrAccess
}

// MarshalError represents an error while building a Value from a Go value.
type MarshalError struct {
	FieldPath string
	Message   string
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return ErrMarshal
}
