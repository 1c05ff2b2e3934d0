package visa

import (
	"errors"
	"testing"
)

func TestParseSerial(t *testing.T) {
	addr, err := ParseSerial("ASRL1::INSTR")
	if err != nil {
		t.Fatalf("ParseSerial returned error: %v", err)
	}
	if board, ok := addr.Board(); !ok || board != 1 {
		t.Errorf("Board() = %d, %v, want 1, true", board, ok)
	}
	if !addr.Instr() {
		t.Errorf("Instr() = false, want true")
	}
	if got := addr.String(); got != "ASRL1::INSTR" {
		t.Errorf("String() = %q, want round-trip", got)
	}
}

// A bare tag is a valid serial resource naming the default port.
func TestParseSerialBare(t *testing.T) {
	addr, err := ParseSerial("ASRL")
	if err != nil {
		t.Fatalf("ParseSerial returned error: %v", err)
	}
	if _, ok := addr.Board(); ok {
		t.Errorf("Board() present, want absent")
	}
	if addr.Instr() {
		t.Errorf("Instr() = true, want false")
	}

	addr, err = ParseSerial("ASRL7")
	if err != nil {
		t.Fatalf("ParseSerial returned error: %v", err)
	}
	if board, ok := addr.Board(); !ok || board != 7 {
		t.Errorf("Board() = %d, %v, want 7, true", board, ok)
	}
	if got := addr.String(); got != "ASRL7" {
		t.Errorf("String() = %q, want round-trip", got)
	}
}

func TestParseSerialErrors(t *testing.T) {
	_, err := ParseSerial("ASRL::x")
	var terr *NotInstrError
	if !errors.As(err, &terr) {
		t.Fatalf(`ParseSerial("ASRL::x") = %v, want NotInstrError`, err)
	}
	if terr.Found != "x" {
		t.Errorf("NotInstrError found %q, want %q", terr.Found, "x")
	}

	_, err = ParseSerial("ASRL1::INSTR::2")
	var xerr *InvalidSuffixError
	if !errors.As(err, &xerr) {
		t.Errorf("ParseSerial with text after INSTR = %v, want InvalidSuffixError", err)
	}

	_, err = ParseSerial("ASRL1:")
	var ierr *IncompleteAddressError
	if !errors.As(err, &ierr) {
		t.Errorf("ParseSerial with dangling colon = %v, want IncompleteAddressError", err)
	}
}
