package visa

import (
	"fmt"
	"strings"
)

// SerialAddress is a parsed ASRL (serial port) resource string:
//
//	ASRL[board][::INSTR]
type SerialAddress struct {
	board    uint16
	hasBoard bool
	instr    bool
}

// Kind reports KindSerial.
func (a *SerialAddress) Kind() Kind { return KindSerial }

// Board reports the serial port number, if present.
func (a *SerialAddress) Board() (uint16, bool) { return a.board, a.hasBoard }

// Instr reports whether the INSTR suffix was present.
func (a *SerialAddress) Instr() bool { return a.instr }

func (a *SerialAddress) sealedAddress() {}

// String renders the canonical form.
func (a *SerialAddress) String() string {
	var sb strings.Builder
	sb.WriteString("ASRL")
	if a.hasBoard {
		fmt.Fprintf(&sb, "%d", a.board)
	}
	if a.instr {
		sb.WriteString("::INSTR")
	}
	return sb.String()
}

// ParseSerial parses an ASRL resource string.
func ParseSerial(input string) (*SerialAddress, error) {
	segs, err := scanFamily(KindSerial, input, `"INSTR"`)
	if err != nil {
		return nil, err
	}
	addr := &SerialAddress{}
	addr.board, addr.hasBoard, err = familyBoard(input, segs[0])
	if err != nil {
		return nil, err
	}

	rest := segs[1:]
	if len(rest) > 0 {
		if !strings.EqualFold(rest[0].text, "INSTR") {
			return nil, &NotInstrError{Found: rest[0].text, Input: input, Span: rest[0].span}
		}
		if len(rest) > 1 {
			return nil, &InvalidSuffixError{
				Want:  `end of address after "INSTR"`,
				Found: rest[1].text,
				Input: input,
				Span:  rest[1].span,
			}
		}
		addr.instr = true
	}
	return addr, nil
}
