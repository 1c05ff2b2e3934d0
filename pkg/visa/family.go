package visa

import (
	"errors"
	"strconv"
)

// segment is one "::"-delimited section of a resource string, with the span
// it occupies in the original input.
type segment struct {
	text string
	span Span
}

// errDanglingColon is an internal sentinel for a lone colon at the end of
// input. Family parsers map it onto their own IncompleteAddressError.
var errDanglingColon = errors.New("visa: dangling colon at end of input")

// segments splits the remainder of the scanner's input into separator-
// delimited sections, applying the same boundary policy as the USB grammar:
// a lone colon followed by another byte is an InvalidSeparatorError whose
// found text is the two-byte window at the boundary, and a lone colon at
// the end of input yields errDanglingColon.
func (s *scanner) segments() ([]segment, error) {
	var segs []segment
	for {
		s.startField()
		for {
			b, ok := s.next()
			if !ok {
				segs = append(segs, segment{text: s.input[s.mark:s.pos], span: s.fieldSpan()})
				return segs, nil
			}
			if b == ':' {
				break
			}
		}
		segs = append(segs, segment{
			text: s.input[s.mark : s.pos-1],
			span: Span{Start: s.mark, End: s.pos - 1},
		})

		b, ok := s.next()
		if !ok {
			return segs, errDanglingColon
		}
		if b != ':' {
			sp := Span{Start: s.pos - 2, End: s.pos}
			return nil, &InvalidSeparatorError{Found: sp.Slice(s.input), Input: s.input, Span: sp}
		}
	}
}

// scanFamily validates the family tag at the start of input and splits the
// rest into segments. The first segment is the board number, which may be
// empty. missing names the sections reported when the input ends inside the
// tag or with a dangling colon.
func scanFamily(kind Kind, input, missing string) ([]segment, error) {
	tag := kind.String()
	s := newScanner(input)
	for i := 0; i < len(tag); i++ {
		b, ok := s.next()
		if !ok {
			return nil, &IncompleteAddressError{Input: input, Missing: missing, Span: s.here()}
		}
		if b != tag[i] {
			n := len(tag)
			if len(input) < n {
				n = len(input)
			}
			return nil, &NotPrefixError{
				Kind:  kind,
				Found: input[:n],
				Input: input,
				Span:  Span{Start: 0, End: n},
			}
		}
	}
	segs, err := s.segments()
	if err != nil {
		if errors.Is(err, errDanglingColon) {
			return nil, &IncompleteAddressError{Input: input, Missing: missing, Span: s.here()}
		}
		return nil, err
	}
	return segs, nil
}

// parseUintField parses text as an unsigned integer of the given base and
// bit width, converting failures into NumberParseError at the given span.
func parseUintField(input, text string, sp Span, base, bits int) (uint64, error) {
	v, err := strconv.ParseUint(text, base, bits)
	if err != nil {
		return 0, &NumberParseError{Found: text, Input: input, Span: sp, Err: err}
	}
	return v, nil
}

// familyBoard interprets the board segment that directly follows a family
// tag. An empty segment means no board.
func familyBoard(input string, seg segment) (uint16, bool, error) {
	if seg.text == "" {
		return 0, false, nil
	}
	v, err := parseUintField(input, seg.text, seg.span, 10, 16)
	if err != nil {
		return 0, false, err
	}
	return uint16(v), true, nil
}
