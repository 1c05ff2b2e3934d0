// Package visa parses VISA/IVI instrument-resource address strings into
// strongly-typed values and renders them back into canonical text.
//
// A VISA resource string names an instrument by transport family and a set
// of family-specific fields, for example:
//
//	USB::0x1A34::0x5678::A22-5
//	USB34::0x12A4::0xFF1A::A22-5::12314::INSTR
//	TCPIP::1.2.3.4::inst0::INSTR
//	GPIB::1::0::INSTR
//	VXI::MEMACC
//	PXI0::CHASSIS1::SLOT4INDEX1::INSTR
//	ASRL1::INSTR
//
// Parse inspects the address-kind prefix and delegates to the matching
// family parser:
//
//	addr, err := visa.Parse("USB::0x1A34::0x5678::A22-5")
//	if err != nil {
//	    log.Fatal(visa.FormatDiagnostic(err))
//	}
//	fmt.Println(addr.Kind())   // USB
//	fmt.Println(addr.String()) // canonical form
//
// Parsing only validates the string; it never touches hardware and cannot
// tell whether the named resource actually exists. Every parse error carries
// the full original input and the byte span of the offending text, so
// callers can point a diagnostic directly at the bad substring (see
// PositionedError and FormatDiagnostic).
//
// All parsing is pure and synchronous; the package holds no mutable state
// and every function is safe for concurrent use.
package visa
