package ofx

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted is returned when the cookie retry was performed and the
// institution still answered with an empty body.
var ErrRetryExhausted = errors.New("error - empty response after cookie retry")

// HeaderDecodeError reports a malformed NAME:VALUE line in the pre-body
// header block.
type HeaderDecodeError struct {
	Line string
}

func (e *HeaderDecodeError) Error() string {
	return fmt.Sprintf("error - malformed header line %q", e.Line)
}

// ExtractionError reports a required field that is absent or whose value
// could not be transformed.
type ExtractionError struct {
	Field string
	Value string
	Err   error
}

func (e *ExtractionError) Error() string {
	switch {
	case e.Err != nil && e.Value != "":
		return fmt.Sprintf("error - extracting %s from %q: %v", e.Field, e.Value, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("error - extracting %s: %v", e.Field, e.Err)
	case e.Value != "":
		return fmt.Sprintf("error - extracting %s from %q", e.Field, e.Value)
	}
	return fmt.Sprintf("error - missing %s (a required field)", e.Field)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// DecimalFormatError reports text that is not a recognizable decimal in any
// supported locale convention.
type DecimalFormatError struct {
	Text string
}

func (e *DecimalFormatError) Error() string {
	return fmt.Sprintf("error - invalid decimal %q", e.Text)
}

// DateFormatError reports text that is not a recognizable OFX date.
type DateFormatError struct {
	Text string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("error - invalid date %q", e.Text)
}

// TransportError reports a failed HTTP exchange with the institution.
type TransportError struct {
	URL       string
	Status    int
	Timeout   bool
	Cancelled bool
	Err       error
}

func (e *TransportError) Error() string {
	switch {
	case e.Cancelled:
		return fmt.Sprintf("error - request to %s cancelled", e.URL)
	case e.Timeout:
		return fmt.Sprintf("error - request to %s timed out", e.URL)
	case e.Status != 0:
		return fmt.Sprintf("error - request to %s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("error - request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
