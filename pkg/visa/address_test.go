package visa

import (
	"errors"
	"testing"
)

// Every canonical form from the VPP-4.3 address table must survive a full
// Parse/String round trip through the dispatcher.
func TestParseRoundTrip(t *testing.T) {
	addrs := []string{
		"TCPIP0::1.2.3.4::5025::SOCKET",
		"TCPIP::devicename.company.com::INSTR",
		"TCPIP::1.2.3.4::inst0::INSTR",
		"TCPIP::[fe80::1]::hislip0::INSTR",
		"TCPIP::@[fe80::1]::hislip0::INSTR",
		"TCPIP::SecureCreds@[fe80::1]::5025::SOCKET",
		"TCPIP::$john:Hoopla%212@1.2.3.4::hislip0::INSTR",
		"USB::0x1A34::0x5678::A22-5",
		"USB34::0x1234::0x5678::A22-5::12314::INSTR",
		"GPIB::1::0::INSTR",
		"GPIB1::SERVANT",
		"GPIB0::5",
		"GPIB-VXI::9::INSTR",
		"GPIB-VXI1::MEMACC",
		"GPIB-VXI2::BACKPLANE",
		"VXI0::1::INSTR",
		"VXI::MEMACC",
		"VXI::1::BACKPLANE",
		"VXI0::SERVANT",
		"PXI0::3-18::INSTR",
		"PXI0::3-18.2::INSTR",
		"PXI0::21::INSTR",
		"PXI0::CHASSIS1::SLOT4::INSTR",
		"PXI0::CHASSIS1::SLOT4INDEX1::INSTR",
		"PXI0::MEMACC",
		"PXI0::1::BACKPLANE",
		"ASRL1::INSTR",
	}
	for _, in := range addrs {
		addr, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", in, err)
		}
		if got := addr.String(); got != in {
			t.Errorf("Parse(%q).String() = %q, want round-trip", in, got)
		}
	}
}

func TestParseRouting(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{"USB::0x1A34::0x5678::A22-5", KindUSB},
		{"TCPIP::1.2.3.4::inst0::INSTR", KindTCPIP},
		{"GPIB::1::0::INSTR", KindGPIB},
		{"GPIB-VXI::9::INSTR", KindGPIBVXI},
		{"VXI::MEMACC", KindVXI},
		{"PXI0::21::INSTR", KindPXI},
		{"ASRL1::INSTR", KindSerial},
	}
	for _, tc := range tests {
		addr, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
		}
		if addr.Kind() != tc.kind {
			t.Errorf("Parse(%q).Kind() = %v, want %v", tc.in, addr.Kind(), tc.kind)
		}
	}
}

// Routing is case-insensitive but the tag itself is not: a lowercase prefix
// reaches the right family parser, which then rejects it. The error kind
// proves which parser got the input.
func TestParseRoutingCaseInsensitive(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{"usb::0x1A34::0x5678::A22-5", KindUSB},
		{"tcpip::1.2.3.4::inst0::INSTR", KindTCPIP},
		{"gpib-vxi::9::INSTR", KindGPIBVXI},
		{"gpib::1::0::INSTR", KindGPIB},
		{"vxi::MEMACC", KindVXI},
		{"pxi0::21::INSTR", KindPXI},
		{"asrl1::INSTR", KindSerial},
	}
	for _, tc := range tests {
		_, err := Parse(tc.in)
		var perr *NotPrefixError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse(%q) = %v, want NotPrefixError", tc.in, err)
		}
		if perr.Kind != tc.kind {
			t.Errorf("Parse(%q) routed to %v, want %v", tc.in, perr.Kind, tc.kind)
		}
	}
}

func TestParseUnknownKind(t *testing.T) {
	for _, in := range []string{"", "FOO::1::INSTR", "US", "XUSB::0x1::0x2::s"} {
		_, err := Parse(in)
		var uerr *UnknownKindError
		if !errors.As(err, &uerr) {
			t.Errorf("Parse(%q) = %v, want UnknownKindError", in, err)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUSB, "USB"},
		{KindTCPIP, "TCPIP"},
		{KindGPIB, "GPIB"},
		{KindGPIBVXI, "GPIB-VXI"},
		{KindVXI, "VXI"},
		{KindPXI, "PXI"},
		{KindSerial, "ASRL"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
