package visa

import (
	"fmt"
	"strings"
)

// PXIForm distinguishes the shapes a PXI resource string can take.
type PXIForm uint8

const (
	// PXIFormDevice addresses a device as [bus-]device[.function].
	PXIFormDevice PXIForm = iota
	// PXIFormChassis addresses a slot as CHASSISc::SLOTs[INDEXi].
	PXIFormChassis
	// PXIFormMemACC addresses the memory access resource.
	PXIFormMemACC
	// PXIFormBackplane addresses a bus backplane.
	PXIFormBackplane
)

// PXIAddress is a parsed PXI resource string:
//
//	PXI[board]::[bus-]device[.function][::INSTR]
//	PXI[board]::CHASSISc::SLOTs[INDEXi][::INSTR]
//	PXI[board]::MEMACC
//	PXI[board]::bus::BACKPLANE
type PXIAddress struct {
	board       uint16
	hasBoard    bool
	form        PXIForm
	bus         uint16
	hasBus      bool
	device      uint16
	function    uint8
	hasFunction bool
	chassis     uint16
	slot        uint16
	index       uint16
	hasIndex    bool
	instr       bool
}

// Kind reports KindPXI.
func (a *PXIAddress) Kind() Kind { return KindPXI }

// Form reports which shape the resource string took.
func (a *PXIAddress) Form() PXIForm { return a.form }

// Board reports the interface board number, if present.
func (a *PXIAddress) Board() (uint16, bool) { return a.board, a.hasBoard }

// Bus reports the PCI bus number: the bus-device prefix for device
// resources, or the addressed bus for BACKPLANE resources.
func (a *PXIAddress) Bus() (uint16, bool) { return a.bus, a.hasBus }

// Device reports the device number for device-form resources.
func (a *PXIAddress) Device() uint16 { return a.device }

// Function reports the PCI function number, if present.
func (a *PXIAddress) Function() (uint8, bool) { return a.function, a.hasFunction }

// Chassis reports the chassis number for chassis-form resources.
func (a *PXIAddress) Chassis() uint16 { return a.chassis }

// Slot reports the slot number for chassis-form resources.
func (a *PXIAddress) Slot() uint16 { return a.slot }

// Index reports the endpoint index within the slot, if present.
func (a *PXIAddress) Index() (uint16, bool) { return a.index, a.hasIndex }

// Instr reports whether the INSTR suffix was present.
func (a *PXIAddress) Instr() bool { return a.instr }

func (a *PXIAddress) sealedAddress() {}

// String renders the canonical form; keywords render uppercase.
func (a *PXIAddress) String() string {
	var sb strings.Builder
	sb.WriteString("PXI")
	if a.hasBoard {
		fmt.Fprintf(&sb, "%d", a.board)
	}
	switch a.form {
	case PXIFormMemACC:
		sb.WriteString("::MEMACC")
	case PXIFormBackplane:
		fmt.Fprintf(&sb, "::%d::BACKPLANE", a.bus)
	case PXIFormChassis:
		fmt.Fprintf(&sb, "::CHASSIS%d::SLOT%d", a.chassis, a.slot)
		if a.hasIndex {
			fmt.Fprintf(&sb, "INDEX%d", a.index)
		}
		if a.instr {
			sb.WriteString("::INSTR")
		}
	default:
		sb.WriteString("::")
		if a.hasBus {
			fmt.Fprintf(&sb, "%d-", a.bus)
		}
		fmt.Fprintf(&sb, "%d", a.device)
		if a.hasFunction {
			fmt.Fprintf(&sb, ".%d", a.function)
		}
		if a.instr {
			sb.WriteString("::INSTR")
		}
	}
	return sb.String()
}

const pxiMissing = "device number or terminating section (MEMACC or BACKPLANE)"

// ParsePXI parses a PXI resource string.
func ParsePXI(input string) (*PXIAddress, error) {
	segs, err := scanFamily(KindPXI, input, pxiMissing)
	if err != nil {
		return nil, err
	}
	addr := &PXIAddress{}
	addr.board, addr.hasBoard, err = familyBoard(input, segs[0])
	if err != nil {
		return nil, err
	}

	rest := segs[1:]
	if len(rest) == 0 {
		return nil, &IncompleteAddressError{
			Input:   input,
			Missing: pxiMissing,
			Span:    Span{Start: len(input), End: len(input)},
		}
	}

	if rest[0].text == "" {
		return nil, &IncompleteAddressError{Input: input, Missing: pxiMissing, Span: rest[0].span}
	}

	switch {
	case strings.EqualFold(rest[0].text, "MEMACC"):
		if len(rest) > 1 {
			return nil, &InvalidSuffixError{
				Want:  `end of address after "MEMACC"`,
				Found: rest[1].text,
				Input: input,
				Span:  rest[1].span,
			}
		}
		addr.form = PXIFormMemACC
		return addr, nil

	case len(rest[0].text) >= 7 && strings.EqualFold(rest[0].text[:7], "CHASSIS"):
		return parsePXIChassis(input, addr, rest)

	case len(rest) == 2 && strings.EqualFold(rest[1].text, "BACKPLANE"):
		bus, err := parseUintField(input, rest[0].text, rest[0].span, 10, 16)
		if err != nil {
			return nil, err
		}
		addr.form = PXIFormBackplane
		addr.bus = uint16(bus)
		addr.hasBus = true
		return addr, nil

	default:
		return parsePXIDevice(input, addr, rest)
	}
}

// parsePXIDevice interprets the [bus-]device[.function] form plus its
// optional INSTR terminator.
func parsePXIDevice(input string, addr *PXIAddress, rest []segment) (*PXIAddress, error) {
	addr.form = PXIFormDevice

	seg := rest[0]
	text := seg.text
	base := seg.span.Start

	if i := strings.IndexByte(text, '-'); i >= 0 {
		bus, err := parseUintField(input, text[:i], Span{Start: base, End: base + i}, 10, 16)
		if err != nil {
			return nil, err
		}
		addr.bus = uint16(bus)
		addr.hasBus = true
		text = text[i+1:]
		base += i + 1
	}
	if j := strings.IndexByte(text, '.'); j >= 0 {
		fn, err := parseUintField(input, text[j+1:], Span{Start: base + j + 1, End: base + len(text)}, 10, 8)
		if err != nil {
			return nil, err
		}
		addr.function = uint8(fn)
		addr.hasFunction = true
		text = text[:j]
	}
	dev, err := parseUintField(input, text, Span{Start: base, End: base + len(text)}, 10, 16)
	if err != nil {
		return nil, err
	}
	addr.device = uint16(dev)

	if len(rest) > 1 {
		if !strings.EqualFold(rest[1].text, "INSTR") {
			return nil, &NotInstrError{Found: rest[1].text, Input: input, Span: rest[1].span}
		}
		if len(rest) > 2 {
			return nil, &InvalidSuffixError{
				Want:  `end of address after "INSTR"`,
				Found: rest[2].text,
				Input: input,
				Span:  rest[2].span,
			}
		}
		addr.instr = true
	}
	return addr, nil
}

// parsePXIChassis interprets the CHASSISc::SLOTs[INDEXi] form plus its
// optional INSTR terminator. rest[0] is known to begin with CHASSIS.
func parsePXIChassis(input string, addr *PXIAddress, rest []segment) (*PXIAddress, error) {
	addr.form = PXIFormChassis

	seg := rest[0]
	chassis, err := parseUintField(input, seg.text[7:],
		Span{Start: seg.span.Start + 7, End: seg.span.End}, 10, 16)
	if err != nil {
		return nil, err
	}
	addr.chassis = uint16(chassis)

	if len(rest) < 2 {
		return nil, &IncompleteAddressError{
			Input:   input,
			Missing: "SLOT section",
			Span:    Span{Start: len(input), End: len(input)},
		}
	}
	slotSeg := rest[1]
	if len(slotSeg.text) < 4 || !strings.EqualFold(slotSeg.text[:4], "SLOT") {
		return nil, &InvalidSuffixError{
			Want:  `a "SLOT" section`,
			Found: slotSeg.text,
			Input: input,
			Span:  slotSeg.span,
		}
	}
	slotText := slotSeg.text[4:]
	slotBase := slotSeg.span.Start + 4

	digits := 0
	for digits < len(slotText) && slotText[digits] >= '0' && slotText[digits] <= '9' {
		digits++
	}
	slot, err := parseUintField(input, slotText[:digits],
		Span{Start: slotBase, End: slotBase + digits}, 10, 16)
	if err != nil {
		return nil, err
	}
	addr.slot = uint16(slot)

	if tail := slotText[digits:]; tail != "" {
		tailSpan := Span{Start: slotBase + digits, End: slotSeg.span.End}
		if len(tail) < 5 || !strings.EqualFold(tail[:5], "INDEX") {
			return nil, &InvalidSuffixError{
				Want:  `an "INDEX" suffix`,
				Found: tail,
				Input: input,
				Span:  tailSpan,
			}
		}
		index, err := parseUintField(input, tail[5:],
			Span{Start: tailSpan.Start + 5, End: tailSpan.End}, 10, 16)
		if err != nil {
			return nil, err
		}
		addr.index = uint16(index)
		addr.hasIndex = true
	}

	if len(rest) > 2 {
		if !strings.EqualFold(rest[2].text, "INSTR") {
			return nil, &NotInstrError{Found: rest[2].text, Input: input, Span: rest[2].span}
		}
		if len(rest) > 3 {
			return nil, &InvalidSuffixError{
				Want:  `end of address after "INSTR"`,
				Found: rest[3].text,
				Input: input,
				Span:  rest[3].span,
			}
		}
		addr.instr = true
	}
	return addr, nil
}
