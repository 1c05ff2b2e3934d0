package visa

import (
	"fmt"
	"strconv"
	"strings"
)

// GPIBAddress is a parsed GPIB resource string:
//
//	GPIB[board]::primary address[::secondary address][::INSTR]
//	GPIB[board]::SERVANT
type GPIBAddress struct {
	board        uint16
	hasBoard     bool
	primary      uint8
	secondary    uint8
	hasSecondary bool
	instr        bool
	servant      bool
}

// Kind reports KindGPIB.
func (a *GPIBAddress) Kind() Kind { return KindGPIB }

// Board reports the interface board number, if present.
func (a *GPIBAddress) Board() (uint16, bool) { return a.board, a.hasBoard }

// Primary reports the primary bus address (0-30). Meaningless for SERVANT
// resources.
func (a *GPIBAddress) Primary() uint8 { return a.primary }

// Secondary reports the secondary bus address, if present.
func (a *GPIBAddress) Secondary() (uint8, bool) { return a.secondary, a.hasSecondary }

// Instr reports whether the INSTR suffix was present.
func (a *GPIBAddress) Instr() bool { return a.instr }

// Servant reports whether this is a SERVANT resource, in which case no bus
// addresses are carried.
func (a *GPIBAddress) Servant() bool { return a.servant }

func (a *GPIBAddress) sealedAddress() {}

// String renders the canonical form; SERVANT and INSTR render uppercase.
func (a *GPIBAddress) String() string {
	var sb strings.Builder
	sb.WriteString("GPIB")
	if a.hasBoard {
		fmt.Fprintf(&sb, "%d", a.board)
	}
	if a.servant {
		sb.WriteString("::SERVANT")
		return sb.String()
	}
	fmt.Fprintf(&sb, "::%d", a.primary)
	if a.hasSecondary {
		fmt.Fprintf(&sb, "::%d", a.secondary)
	}
	if a.instr {
		sb.WriteString("::INSTR")
	}
	return sb.String()
}

const gpibMissing = "primary address or SERVANT"

// ParseGPIB parses a GPIB resource string.
func ParseGPIB(input string) (*GPIBAddress, error) {
	segs, err := scanFamily(KindGPIB, input, gpibMissing)
	if err != nil {
		return nil, err
	}
	addr := &GPIBAddress{}
	addr.board, addr.hasBoard, err = familyBoard(input, segs[0])
	if err != nil {
		return nil, err
	}

	rest := segs[1:]
	if len(rest) == 0 {
		return nil, &IncompleteAddressError{
			Input:   input,
			Missing: gpibMissing,
			Span:    Span{Start: len(input), End: len(input)},
		}
	}

	// An empty section, as in "GPIB::", has nothing for the number parser
	// to report; name the sections still required instead.
	if rest[0].text == "" {
		return nil, &IncompleteAddressError{Input: input, Missing: gpibMissing, Span: rest[0].span}
	}

	if strings.EqualFold(rest[0].text, "SERVANT") {
		if len(rest) > 1 {
			return nil, &InvalidSuffixError{
				Want:  `end of address after "SERVANT"`,
				Found: rest[1].text,
				Input: input,
				Span:  rest[1].span,
			}
		}
		addr.servant = true
		return addr, nil
	}

	primary, err := gpibBusAddress(input, rest[0])
	if err != nil {
		return nil, err
	}
	addr.primary = primary

	rest = rest[1:]
	if len(rest) > 0 && !strings.EqualFold(rest[0].text, "INSTR") {
		secondary, err := gpibBusAddress(input, rest[0])
		if err != nil {
			return nil, err
		}
		addr.secondary = secondary
		addr.hasSecondary = true
		rest = rest[1:]
	}
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

// gpibBusAddress parses a primary or secondary bus address, which IEEE
// 488.1 limits to 0-30.
func gpibBusAddress(input string, seg segment) (uint8, error) {
	v, err := parseUintField(input, seg.text, seg.span, 10, 8)
	if err != nil {
		return 0, err
	}
	if v > 30 {
		return 0, &NumberParseError{
			Found: seg.text,
			Input: input,
			Span:  seg.span,
			Err:   &strconv.NumError{Func: "ParseUint", Num: seg.text, Err: strconv.ErrRange},
		}
	}
	return uint8(v), nil
}
