package res

import (
	"errors"
	"fmt"
)

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("res: signature mismatch")
	// ErrTruncated indicates the stream lacked the bytes required for a read.
	ErrTruncated = errors.New("res: truncated stream")
	// ErrUnterminatedString indicates a string ran to the end of the stream
	// without a terminating zero byte.
	ErrUnterminatedString = errors.New("res: unterminated string")
	// ErrOffsetConflict indicates two incompatible record types were loaded
	// from the same absolute offset within one session.
	ErrOffsetConflict = errors.New("res: conflicting types at offset")
)

// FormatError reports a failed signature check. It carries both the token
// the caller expected and the token actually present in the stream.
type FormatError struct {
	Expected string
	Actual   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("res: signature mismatch: expected %q, got %q", e.Expected, e.Actual)
}

// Is lets errors.Is(err, ErrSignatureMismatch) match a *FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrSignatureMismatch
}
