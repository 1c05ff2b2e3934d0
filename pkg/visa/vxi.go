package visa

import (
	"fmt"
	"strings"
)

// VXISuffix is the terminating section of a VXI or GPIB-VXI resource.
type VXISuffix uint8

const (
	// VXISuffixNone marks an instrument resource without the optional
	// INSTR terminator.
	VXISuffixNone VXISuffix = iota
	VXISuffixInstr
	VXISuffixServant
	VXISuffixMemACC
	VXISuffixBackplane
)

var vxiSuffixNames = map[VXISuffix]string{
	VXISuffixNone:      "",
	VXISuffixInstr:     "INSTR",
	VXISuffixServant:   "SERVANT",
	VXISuffixMemACC:    "MEMACC",
	VXISuffixBackplane: "BACKPLANE",
}

func (s VXISuffix) String() string { return vxiSuffixNames[s] }

// VXIAddress is a parsed VXI or GPIB-VXI resource string; the two families
// share one grammar and differ only in their tag:
//
//	VXI[board]::logical address[::INSTR]
//	VXI[board]::SERVANT
//	VXI[board]::MEMACC
//	VXI[board]::chassis::BACKPLANE    (chassis optional)
type VXIAddress struct {
	kind       Kind
	board      uint16
	hasBoard   bool
	logical    uint8
	hasLogical bool
	suffix     VXISuffix
}

// Kind reports KindVXI or KindGPIBVXI.
func (a *VXIAddress) Kind() Kind { return a.kind }

// Board reports the interface board number, if present.
func (a *VXIAddress) Board() (uint16, bool) { return a.board, a.hasBoard }

// Logical reports the VXI logical address (0-255), if present. BACKPLANE
// resources carry the chassis number here.
func (a *VXIAddress) Logical() (uint8, bool) { return a.logical, a.hasLogical }

// Suffix reports the terminating section of the resource.
func (a *VXIAddress) Suffix() VXISuffix { return a.suffix }

func (a *VXIAddress) sealedAddress() {}

// String renders the canonical form; suffix keywords render uppercase.
func (a *VXIAddress) String() string {
	var sb strings.Builder
	sb.WriteString(a.kind.String())
	if a.hasBoard {
		fmt.Fprintf(&sb, "%d", a.board)
	}
	if a.hasLogical {
		fmt.Fprintf(&sb, "::%d", a.logical)
	}
	if a.suffix != VXISuffixNone {
		sb.WriteString("::")
		sb.WriteString(a.suffix.String())
	}
	return sb.String()
}

const vxiMissing = "logical address or terminating section (INSTR, SERVANT, MEMACC, or BACKPLANE)"

// ParseVXI parses a VXI resource string.
func ParseVXI(input string) (*VXIAddress, error) {
	return parseVXIFamily(KindVXI, input)
}

// ParseGPIBVXI parses a GPIB-VXI resource string.
func ParseGPIBVXI(input string) (*VXIAddress, error) {
	return parseVXIFamily(KindGPIBVXI, input)
}

func parseVXIFamily(kind Kind, input string) (*VXIAddress, error) {
	segs, err := scanFamily(kind, input, vxiMissing)
	if err != nil {
		return nil, err
	}
	addr := &VXIAddress{kind: kind}
	addr.board, addr.hasBoard, err = familyBoard(input, segs[0])
	if err != nil {
		return nil, err
	}

	rest := segs[1:]
	if len(rest) > 0 && rest[0].text == "" {
		return nil, &IncompleteAddressError{
			Input:   input,
			Missing: vxiMissing,
			Span:    rest[0].span,
		}
	}
	switch len(rest) {
	case 0:
		return nil, &IncompleteAddressError{
			Input:   input,
			Missing: vxiMissing,
			Span:    Span{Start: len(input), End: len(input)},
		}
	case 1:
		switch {
		case strings.EqualFold(rest[0].text, "SERVANT"):
			addr.suffix = VXISuffixServant
		case strings.EqualFold(rest[0].text, "MEMACC"):
			addr.suffix = VXISuffixMemACC
		case strings.EqualFold(rest[0].text, "BACKPLANE"):
			addr.suffix = VXISuffixBackplane
		case strings.EqualFold(rest[0].text, "INSTR"):
			// INSTR without a logical address in front of it.
			return nil, &IncompleteAddressError{
				Input:   input,
				Missing: "logical address",
				Span:    Span{Start: rest[0].span.Start, End: rest[0].span.Start},
			}
		default:
			v, err := parseUintField(input, rest[0].text, rest[0].span, 10, 8)
			if err != nil {
				return nil, err
			}
			addr.logical = uint8(v)
			addr.hasLogical = true
		}
	case 2:
		v, err := parseUintField(input, rest[0].text, rest[0].span, 10, 8)
		if err != nil {
			return nil, err
		}
		addr.logical = uint8(v)
		addr.hasLogical = true
		switch {
		case strings.EqualFold(rest[1].text, "INSTR"):
			addr.suffix = VXISuffixInstr
		case strings.EqualFold(rest[1].text, "BACKPLANE"):
			addr.suffix = VXISuffixBackplane
		default:
			return nil, &InvalidSuffixError{
				Want:  `"INSTR" or "BACKPLANE"`,
				Found: rest[1].text,
				Input: input,
				Span:  rest[1].span,
			}
		}
	default:
		return nil, &InvalidSuffixError{
			Want:  "end of address",
			Found: rest[2].text,
			Input: input,
			Span:  rest[2].span,
		}
	}
	return addr, nil
}
