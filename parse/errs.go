package parse

import (
	"errors"
	"fmt"

	"github.com/gistsapi/dynjson/dyn"
)

var errUnexpectedEOF = errors.New("unexpected end of input")

// ParseError reports malformed input. Err carries the tokenizer's
// description of where the error was found, when there is one.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{dyn.ErrParse}
	}
	return []error{dyn.ErrParse, e.Err}
}

func parseErr(msg string, err error) *ParseError {
	return &ParseError{Message: msg, Err: err}
}
