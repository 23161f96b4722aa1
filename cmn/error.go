package cmn

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Error a framework error carrying the code it was created with
type Error struct {
	Code    string
	message string
	cause   error
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ErrFunc returns the formatted Err
type ErrFunc func(params ...interface{}) error

// Err framework error messages pattern
//
// Err("asset.missing", "Asset not found", "File: %s")("app.css") => [asset.missing] Asset not found. { File: app.css }
func Err(code string, textAndDetails ...string) ErrFunc {
	buf := &bytes.Buffer{}
	buf.WriteByte('[')
	buf.WriteString(code)
	buf.WriteString("] ")
	buf.WriteString(textAndDetails[0])
	if !strings.HasSuffix(textAndDetails[0], ".") {
		buf.WriteByte('.')
	}

	size := len(textAndDetails)
	if size > 1 {
		buf.WriteString(" {")
		for i := 1; i < size; i++ {
			if i > 1 {
				buf.WriteString(", ")
			} else {
				buf.WriteByte(' ')
			}
			buf.WriteString(textAndDetails[i])
		}
		buf.WriteString(" }")
	}

	format := buf.String()

	return func(params ...interface{}) error {
		e := &Error{Code: code, message: fmt.Sprintf(format, params...)}
		for _, param := range params {
			if cause, isErr := param.(error); isErr {
				e.cause = cause
				break
			}
		}
		return e
	}
}

// IsCode checks if any error in the chain was created by an Err with the given code
func IsCode(err error, code string) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Code == code {
				return true
			}
			err = e.cause
			continue
		}
		return false
	}
	return false
}
