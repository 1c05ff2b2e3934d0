package visa

import (
	"fmt"
	"strconv"
	"strings"
)

// USBAddress is a parsed USB INSTR resource string:
//
//	USB[board]::manufacturer ID::model code::serial number[::USB interface number][::INSTR]
//
// A USBAddress only ever exists fully validated; the parser either returns
// a complete value or an error, never a partially-filled one.
type USBAddress struct {
	board          uint
	hasBoard       bool
	manufacturerID uint16
	modelCode      uint16
	serialNumber   string
	interfaceNum   uint16
	hasInterface   bool
	instr          bool
}

// Kind reports KindUSB.
func (a *USBAddress) Kind() Kind { return KindUSB }

// Board reports the secondary-controller board number. ok is false when the
// address names no board, meaning any board may match.
func (a *USBAddress) Board() (uint, bool) { return a.board, a.hasBoard }

// ManufacturerID reports the USB vendor ID.
func (a *USBAddress) ManufacturerID() uint16 { return a.manufacturerID }

// ModelCode reports the USB product ID.
func (a *USBAddress) ModelCode() uint16 { return a.modelCode }

// SerialNumber reports the device serial number. The text is opaque: the
// parser stores it verbatim and never interprets its content.
func (a *USBAddress) SerialNumber() string { return a.serialNumber }

// InterfaceNumber reports the USB interface number. ok is false when the
// address names no interface, meaning the lowest matching interface is used.
func (a *USBAddress) InterfaceNumber() (uint16, bool) { return a.interfaceNum, a.hasInterface }

// Instr reports whether the INSTR suffix was present.
func (a *USBAddress) Instr() bool { return a.instr }

func (a *USBAddress) sealedAddress() {}

// String renders the canonical form. Manufacturer ID and model code always
// render as four uppercase hex digits behind a lowercase "0x"; INSTR always
// renders uppercase. Inputs using other casings or shorter hex fields parse
// fine but normalize here, so they do not round-trip byte-for-byte.
func (a *USBAddress) String() string {
	var sb strings.Builder
	sb.WriteString("USB")
	if a.hasBoard {
		fmt.Fprintf(&sb, "%d", a.board)
	}
	fmt.Fprintf(&sb, "::0x%04X::0x%04X::%s", a.manufacturerID, a.modelCode, a.serialNumber)
	if a.hasInterface {
		fmt.Fprintf(&sb, "::%d", a.interfaceNum)
	}
	if a.instr {
		sb.WriteString("::INSTR")
	}
	return sb.String()
}

// Missing-section lists reported by IncompleteAddressError, keyed by how
// far the parser got before the input ran out.
const (
	usbMissingAll          = "USB flag, Manufacture Code, Model Number, Serial Number"
	usbMissingManufacturer = "Manufacture Code, Model Number, Serial Number"
	usbMissingModel        = "Model Number, Serial Number"
	usbMissingSerial       = "Serial Number"
	usbMissingTail         = "either USB Interface or INSTR"
	usbMissingInstr        = "INSTR"
)

// ParseUSB parses a USB INSTR resource string. The parser is a single-pass
// state machine over the raw bytes: states run USB tag, board,
// manufacturer ID, model code, serial number, interface number, INSTR, in
// that order, with board, interface number, and INSTR optional. It never
// backtracks and needs no lookahead beyond the single byte that picks
// between the interface number and the INSTR literal after the serial
// number's separator.
func ParseUSB(input string) (*USBAddress, error) {
	p := &usbParser{s: newScanner(input)}
	return p.parse()
}

type usbParser struct {
	s *scanner
}

func (p *usbParser) parse() (*USBAddress, error) {
	addr := &USBAddress{}

	if err := p.prefix(); err != nil {
		return nil, err
	}
	if err := p.board(addr); err != nil {
		return nil, err
	}

	id, err := p.hexField(usbMissingManufacturer, usbMissingModel)
	if err != nil {
		return nil, err
	}
	addr.manufacturerID = id

	code, err := p.hexField(usbMissingModel, usbMissingSerial)
	if err != nil {
		return nil, err
	}
	addr.modelCode = code

	return p.serialNumber(addr)
}

// prefix consumes the literal USB tag. The tag is case-sensitive here even
// though dispatcher routing is not, so "usb::..." fails with NotPrefixError.
func (p *usbParser) prefix() error {
	const tag = "USB"
	for i := 0; i < len(tag); i++ {
		b, ok := p.s.next()
		if !ok {
			return p.incomplete(usbMissingAll)
		}
		if b != tag[i] {
			n := len(tag)
			if len(p.s.input) < n {
				n = len(p.s.input)
			}
			return &NotPrefixError{
				Kind:  KindUSB,
				Found: p.s.input[:n],
				Input: p.s.input,
				Span:  Span{Start: 0, End: n},
			}
		}
	}
	return nil
}

// board consumes the optional board number and its trailing separator. An
// empty field before the first colon means no board.
func (p *usbParser) board(addr *USBAddress) error {
	p.s.startField()
	for {
		b, ok := p.s.next()
		if !ok {
			return p.incomplete(usbMissingManufacturer)
		}
		if b == ':' {
			break
		}
	}
	text := p.s.input[p.s.mark : p.s.pos-1]
	if text != "" {
		sp := Span{Start: p.s.mark, End: p.s.pos - 1}
		n, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return &NumberParseError{Found: text, Input: p.s.input, Span: sp, Err: err}
		}
		addr.board = uint(n)
		addr.hasBoard = true
	}
	return p.secondColon(usbMissingManufacturer)
}

// hexField consumes one 0x-prefixed hexadecimal field and its trailing
// separator, returning the 16-bit value. missing and missingNext name the
// sections still required should the input end inside the field or right
// after its first separator colon.
func (p *usbParser) hexField(missing, missingNext string) (uint16, error) {
	p.s.startField()

	lead, ok := p.s.next()
	if !ok {
		return 0, p.incomplete(missing)
	}
	if lead != '0' {
		return 0, p.notHex(p.s.pos - 1)
	}
	marker, ok := p.s.next()
	if !ok {
		return 0, p.incomplete(missing)
	}
	if marker != 'x' && marker != 'X' {
		return 0, p.notHex(p.s.pos - 1)
	}
	for {
		b, ok := p.s.next()
		if !ok {
			return 0, p.incomplete(missing)
		}
		if b == ':' {
			break
		}
	}

	digits := p.s.input[p.s.mark+2 : p.s.pos-1]
	sp := Span{Start: p.s.mark + 2, End: p.s.pos - 1}
	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, &NumberParseError{Found: digits, Input: p.s.input, Span: sp, Err: err}
	}
	if err := p.secondColon(missingNext); err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// serialNumber consumes the serial number and whatever optional tail
// follows it. Reaching the end of input with a non-empty serial is the
// minimal valid address.
func (p *usbParser) serialNumber(addr *USBAddress) (*USBAddress, error) {
	p.s.startField()
	for {
		b, ok := p.s.next()
		if !ok {
			text := p.s.input[p.s.mark:p.s.pos]
			if text == "" {
				return nil, p.incomplete(usbMissingSerial)
			}
			addr.serialNumber = text
			return addr, nil
		}
		if b == ':' {
			break
		}
	}
	text := p.s.input[p.s.mark : p.s.pos-1]
	if text == "" {
		return nil, &IncompleteAddressError{
			Input:   p.s.input,
			Missing: usbMissingSerial,
			Span:    Span{Start: p.s.mark, End: p.s.mark},
		}
	}
	addr.serialNumber = text

	if err := p.secondColon(usbMissingTail); err != nil {
		return nil, err
	}

	// One byte of lookahead decides the optional tail: a leading I routes
	// to the INSTR literal, anything else to the interface number.
	if b, ok := p.s.peek(); ok && (b == 'I' || b == 'i') {
		return p.instr(addr)
	}
	return p.interfaceNumber(addr)
}

// interfaceNumber consumes the optional USB interface number, ending either
// at the end of input or at a separator followed by the INSTR literal.
func (p *usbParser) interfaceNumber(addr *USBAddress) (*USBAddress, error) {
	p.s.startField()
	for {
		b, ok := p.s.next()
		if !ok {
			text := p.s.input[p.s.mark:p.s.pos]
			sp := p.s.fieldSpan()
			v, err := strconv.ParseUint(text, 10, 16)
			if err != nil {
				return nil, &NumberParseError{Found: text, Input: p.s.input, Span: sp, Err: err}
			}
			addr.interfaceNum = uint16(v)
			addr.hasInterface = true
			return addr, nil
		}
		if b == ':' {
			break
		}
	}
	text := p.s.input[p.s.mark : p.s.pos-1]
	sp := Span{Start: p.s.mark, End: p.s.pos - 1}
	v, err := strconv.ParseUint(text, 10, 16)
	if err != nil {
		return nil, &NumberParseError{Found: text, Input: p.s.input, Span: sp, Err: err}
	}
	addr.interfaceNum = uint16(v)
	addr.hasInterface = true

	if err := p.secondColon(usbMissingInstr); err != nil {
		return nil, err
	}
	return p.instr(addr)
}

// instr consumes the trailing INSTR literal. The whole remainder of the
// input is the candidate text and must equal INSTR case-insensitively.
func (p *usbParser) instr(addr *USBAddress) (*USBAddress, error) {
	p.s.startField()
	for {
		if _, ok := p.s.next(); !ok {
			break
		}
	}
	text := p.s.input[p.s.mark:p.s.pos]
	if !strings.EqualFold(text, "INSTR") {
		return nil, &NotInstrError{Found: text, Input: p.s.input, Span: p.s.fieldSpan()}
	}
	addr.instr = true
	return addr, nil
}

// secondColon consumes the second colon of a "::" separator; the first has
// already been consumed by the field scan. A lone colon followed by another
// byte is always an InvalidSeparatorError; a lone colon at the end of input
// reports the sections the address still needed.
func (p *usbParser) secondColon(missing string) error {
	b, ok := p.s.next()
	if !ok {
		return p.incomplete(missing)
	}
	if b != ':' {
		sp := Span{Start: p.s.pos - 2, End: p.s.pos}
		return &InvalidSeparatorError{Found: sp.Slice(p.s.input), Input: p.s.input, Span: sp}
	}
	return nil
}

// notHex reports a hex field without the 0x marker. start is the offset of
// the first deviating byte; the scan forward to the next colon (or end of
// input) exists only to complete the diagnostic text and feeds nothing back
// into parsing.
func (p *usbParser) notHex(start int) error {
	for {
		b, ok := p.s.peek()
		if !ok || b == ':' {
			break
		}
		p.s.next()
	}
	sp := Span{Start: start, End: p.s.pos}
	return &NotHexError{Found: sp.Slice(p.s.input), Input: p.s.input, Span: sp}
}

func (p *usbParser) incomplete(missing string) error {
	return &IncompleteAddressError{Input: p.s.input, Missing: missing, Span: p.s.here()}
}
