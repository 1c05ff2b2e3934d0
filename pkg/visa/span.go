package visa

// Span is a half-open [Start, End) byte-offset range into the original
// input string. Spans localize parse errors; they are never stored in a
// successfully parsed address.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Slice returns the substring of input covered by the span, or "" when the
// span does not fit inside input.
func (s Span) Slice(input string) string {
	if s.Start < 0 || s.End > len(input) || s.Start > s.End {
		return ""
	}
	return input[s.Start:s.End]
}

// scanner is a byte cursor over a resource string. It remembers where the
// field currently being consumed began so errors can report exact spans.
// Resource-string structure is pure ASCII; field payloads pass through
// byte-for-byte, so UTF-8 content inside a serial number survives intact.
type scanner struct {
	input string
	pos   int
	mark  int
}

func newScanner(input string) *scanner { return &scanner{input: input} }

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

// peek returns the next byte without consuming it.
func (s *scanner) peek() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	return s.input[s.pos], true
}

// next consumes and returns the next byte.
func (s *scanner) next() (byte, bool) {
	if s.eof() {
		return 0, false
	}
	b := s.input[s.pos]
	s.pos++
	return b, true
}

// startField marks the cursor as the beginning of a new field.
func (s *scanner) startField() { s.mark = s.pos }

// fieldSpan is the span from the current field mark to the cursor.
func (s *scanner) fieldSpan() Span { return Span{Start: s.mark, End: s.pos} }

// here is the empty span at the cursor.
func (s *scanner) here() Span { return Span{Start: s.pos, End: s.pos} }
