package visa

import "strings"

// Kind identifies a VISA transport family. The set is closed: adding a
// family means adding a constant here and a parser for it, nothing else.
type Kind uint8

const (
	KindUSB Kind = iota
	KindTCPIP
	KindGPIB
	KindGPIBVXI
	KindVXI
	KindPXI
	KindSerial
)

var kindNames = map[Kind]string{
	KindUSB:     "USB",
	KindTCPIP:   "TCPIP",
	KindGPIB:    "GPIB",
	KindGPIBVXI: "GPIB-VXI",
	KindVXI:     "VXI",
	KindPXI:     "PXI",
	KindSerial:  "ASRL",
}

// String returns the family tag as it appears at the start of a resource
// string.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// Address is the parsed form of a VISA resource string. Exactly one
// concrete type implements Address per Kind; the set is sealed and values
// are immutable once constructed.
type Address interface {
	// Kind reports the transport family the address belongs to.
	Kind() Kind
	// String renders the canonical textual form of the address.
	String() string

	sealedAddress()
}

// Parse parses a VISA resource string, dispatching on its address-kind
// prefix. Matching is case-insensitive and checks longer prefixes before
// shorter overlapping ones, so a GPIB-VXI resource is never misclassified
// as GPIB. The dispatcher selects a family parser and returns its result
// unchanged; it performs no validation of its own.
func Parse(input string) (Address, error) {
	switch {
	case hasPrefixFold(input, "GPIB-VXI"):
		a, err := ParseGPIBVXI(input)
		if err != nil {
			return nil, err
		}
		return a, nil
	case hasPrefixFold(input, "GPIB"):
		a, err := ParseGPIB(input)
		if err != nil {
			return nil, err
		}
		return a, nil
	case hasPrefixFold(input, "TCPIP"):
		a, err := ParseTCPIP(input)
		if err != nil {
			return nil, err
		}
		return a, nil
	case hasPrefixFold(input, "USB"):
		a, err := ParseUSB(input)
		if err != nil {
			return nil, err
		}
		return a, nil
	case hasPrefixFold(input, "VXI"):
		a, err := ParseVXI(input)
		if err != nil {
			return nil, err
		}
		return a, nil
	case hasPrefixFold(input, "PXI"):
		a, err := ParsePXI(input)
		if err != nil {
			return nil, err
		}
		return a, nil
	case hasPrefixFold(input, "ASRL"):
		a, err := ParseSerial(input)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, &UnknownKindError{Input: input}
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
