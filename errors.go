package chrono

import (
	"fmt"
	"strings"
)

// UnsupportedOptionError reports a unit, precision class, backend or target
// kind outside the registered tables. It is raised before any conversion
// work starts.
type UnsupportedOptionError struct {
	// Explanation is a short description of what was being validated.
	Explanation string
	// Option is the offending value.
	Option string
	// Allowed is the legal set.
	Allowed []string
}

func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("%s %q not supported for this operation, choose one of [%s]",
		e.Explanation, e.Option, strings.Join(e.Allowed, ", "))
}

// MissingFormatError reports an empty or absent format pattern where one is
// required.
type MissingFormatError struct {
	Backend string
}

func (e *MissingFormatError) Error() string {
	if e.Backend == "" {
		return "a datetime format pattern must be provided"
	}
	return fmt.Sprintf("a datetime format pattern must be provided for backend %q", e.Backend)
}

// FormatMismatchError reports text that did not parse against the given
// pattern.
type FormatMismatchError struct {
	Text   string
	Layout string
	Err    error
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("time string %q does not match format %q", e.Text, e.Layout)
}

func (e *FormatMismatchError) Unwrap() error { return e.Err }

// PrecisionUnsupportedError reports a fractional precision beyond what the
// chosen backend can represent.
type PrecisionUnsupportedError struct {
	Precision int
	Backend   string
}

func (e *PrecisionUnsupportedError) Error() string {
	return fmt.Sprintf("backend %q cannot represent fractional precision %d", e.Backend, e.Precision)
}

// ConversionError wraps a failure raised inside a specific source-to-target
// conversion function. Internal error types never cross the conversion
// boundary unwrapped.
type ConversionError struct {
	Target Kind
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("error during conversion to %q: %v", e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }
