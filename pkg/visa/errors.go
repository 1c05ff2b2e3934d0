package visa

import (
	"errors"
	"fmt"
	"strings"
)

// PositionedError is implemented by every parse error that can localize the
// offending text within the original input. The reported span, sliced from
// the reported input, equals the error's found text wherever the error
// carries one.
type PositionedError interface {
	error
	// Position reports the original input and the byte span of the
	// offending text.
	Position() (input string, span Span)
}

// NotPrefixError reports an input that was routed to a family parser but
// does not begin with that family's literal tag. Dispatcher routing is
// case-insensitive while the tags themselves are not, so "usb::..." reaches
// the USB parser and fails here.
type NotPrefixError struct {
	Kind  Kind
	Found string
	Input string
	Span  Span
}

func (e *NotPrefixError) Error() string {
	return fmt.Sprintf("expected %q at address start, found %q", e.Kind.String(), e.Found)
}

func (e *NotPrefixError) Position() (string, Span) { return e.Input, e.Span }

// NumberParseError reports a numeric field that is not a valid literal of
// its required base, or that overflows its field width. Err is the
// underlying strconv failure.
type NumberParseError struct {
	Found string
	Input string
	Span  Span
	Err   error
}

func (e *NumberParseError) Error() string {
	return fmt.Sprintf("found %q instead of a number at %d..%d of %q: %v",
		e.Found, e.Span.Start, e.Span.End, e.Input, e.Err)
}

func (e *NumberParseError) Unwrap() error { return e.Err }

func (e *NumberParseError) Position() (string, Span) { return e.Input, e.Span }

// NotHexError reports a field that must be written as 0x-prefixed
// hexadecimal but lacks the marker. Found covers the field from the point
// of deviation through the next separator or the end of input.
type NotHexError struct {
	Found string
	Input string
	Span  Span
}

func (e *NotHexError) Error() string {
	return fmt.Sprintf("invalid hexadecimal number %q at %d..%d of %q: number must start with \"0x\"",
		e.Found, e.Span.Start, e.Span.End, e.Input)
}

func (e *NotHexError) Position() (string, Span) { return e.Input, e.Span }

// IncompleteAddressError reports an input that ends before all required
// sections are supplied. Missing is a human-readable list of the sections
// still required beyond the point reached.
type IncompleteAddressError struct {
	Input   string
	Missing string
	Span    Span
}

func (e *IncompleteAddressError) Error() string {
	return fmt.Sprintf("%q is an incomplete address missing: %s", e.Input, e.Missing)
}

func (e *IncompleteAddressError) Position() (string, Span) { return e.Input, e.Span }

// NotInstrError reports a trailing section that was structurally expected
// to be the INSTR terminator but does not match it case-insensitively.
type NotInstrError struct {
	Found string
	Input string
	Span  Span
}

func (e *NotInstrError) Error() string {
	return fmt.Sprintf("expected \"INSTR\", found %q at %d..%d of %q",
		e.Found, e.Span.Start, e.Span.End, e.Input)
}

func (e *NotInstrError) Position() (string, Span) { return e.Input, e.Span }

// InvalidSeparatorError reports a field boundary that is not exactly "::".
// Found is the two-byte window actually present at the boundary.
type InvalidSeparatorError struct {
	Found string
	Input string
	Span  Span
}

func (e *InvalidSeparatorError) Error() string {
	return fmt.Sprintf("address sections must be separated by \"::\", found %q at %d..%d of %q",
		e.Found, e.Span.Start, e.Span.End, e.Input)
}

func (e *InvalidSeparatorError) Position() (string, Span) { return e.Input, e.Span }

// InvalidSuffixError reports a terminating section that is none of the
// keywords the family accepts at that position. Want names the accepted
// keywords, already quoted (for example `"INSTR" or "SOCKET"`).
type InvalidSuffixError struct {
	Want  string
	Found string
	Input string
	Span  Span
}

func (e *InvalidSuffixError) Error() string {
	return fmt.Sprintf("expected %s, found %q at %d..%d of %q",
		e.Want, e.Found, e.Span.Start, e.Span.End, e.Input)
}

func (e *InvalidSuffixError) Position() (string, Span) { return e.Input, e.Span }

// SyntaxError reports a malformed address section that does not fit a more
// specific error. Only the grammar-driven TCPIP parser produces it.
type SyntaxError struct {
	Found string
	Input string
	Span  Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed address section %q at %d..%d of %q",
		e.Found, e.Span.Start, e.Span.End, e.Input)
}

func (e *SyntaxError) Position() (string, Span) { return e.Input, e.Span }

// UnknownKindError reports an input whose prefix matches no known address
// family. Only the dispatcher produces it.
type UnknownKindError struct {
	Input string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("%q does not start with a known address kind (USB, TCPIP, GPIB, GPIB-VXI, VXI, PXI, ASRL)",
		e.Input)
}

func (e *UnknownKindError) Position() (string, Span) { return e.Input, Span{} }

// FormatDiagnostic renders err together with the offending input and a
// caret line marking the reported span. Errors that carry no position
// render as err.Error().
func FormatDiagnostic(err error) string {
	var pe PositionedError
	if !errors.As(err, &pe) {
		return err.Error()
	}
	input, span := pe.Position()
	if input == "" {
		return err.Error()
	}
	if span.Start < 0 {
		span.Start = 0
	}
	if span.End > len(input) {
		span.End = len(input)
	}
	if span.Start > span.End {
		span.Start = span.End
	}
	width := span.Len()
	if width < 1 {
		width = 1
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", err.Error())
	fmt.Fprintf(&sb, "  %s\n", input)
	fmt.Fprintf(&sb, "  %s%s", strings.Repeat(" ", span.Start), strings.Repeat("^", width))
	return sb.String()
}
