package visa

import (
	"errors"
	"strconv"
	"testing"
)

func TestParseGPIBFields(t *testing.T) {
	addr, err := ParseGPIB("GPIB::1::0::INSTR")
	if err != nil {
		t.Fatalf("ParseGPIB returned error: %v", err)
	}
	if _, ok := addr.Board(); ok {
		t.Errorf("Board() present, want absent")
	}
	if got := addr.Primary(); got != 1 {
		t.Errorf("Primary() = %d, want 1", got)
	}
	if sec, ok := addr.Secondary(); !ok || sec != 0 {
		t.Errorf("Secondary() = %d, %v, want 0, true", sec, ok)
	}
	if !addr.Instr() || addr.Servant() {
		t.Errorf("Instr()/Servant() = %v/%v, want true/false", addr.Instr(), addr.Servant())
	}
}

func TestParseGPIBServant(t *testing.T) {
	addr, err := ParseGPIB("GPIB1::SERVANT")
	if err != nil {
		t.Fatalf("ParseGPIB returned error: %v", err)
	}
	if board, ok := addr.Board(); !ok || board != 1 {
		t.Errorf("Board() = %d, %v, want 1, true", board, ok)
	}
	if !addr.Servant() {
		t.Errorf("Servant() = false, want true")
	}
}

func TestParseGPIBPrimaryOnly(t *testing.T) {
	addr, err := ParseGPIB("GPIB0::5")
	if err != nil {
		t.Fatalf("ParseGPIB returned error: %v", err)
	}
	if got := addr.Primary(); got != 5 {
		t.Errorf("Primary() = %d, want 5", got)
	}
	if _, ok := addr.Secondary(); ok {
		t.Errorf("Secondary() present, want absent")
	}
	if addr.Instr() {
		t.Errorf("Instr() = true, want false")
	}
}

func TestParseGPIBErrors(t *testing.T) {
	_, err := ParseGPIB("GPIB")
	var ierr *IncompleteAddressError
	if !errors.As(err, &ierr) {
		t.Errorf(`ParseGPIB("GPIB") = %v, want IncompleteAddressError`, err)
	} else if ierr.Missing != gpibMissing {
		t.Errorf("missing = %q, want %q", ierr.Missing, gpibMissing)
	}

	// An empty primary section is reported as incomplete, not as a failed
	// number parse on empty text.
	_, err = ParseGPIB("GPIB::")
	if !errors.As(err, &ierr) {
		t.Errorf(`ParseGPIB("GPIB::") = %v, want IncompleteAddressError`, err)
	} else if ierr.Missing != gpibMissing {
		t.Errorf("missing = %q, want %q", ierr.Missing, gpibMissing)
	}

	// Bus addresses stop at 30 under IEEE 488.1 even though the digits fit
	// in the integer type.
	_, err = ParseGPIB("GPIB::42::INSTR")
	var nerr *NumberParseError
	if !errors.As(err, &nerr) {
		t.Fatalf("ParseGPIB with oversized primary = %v, want NumberParseError", err)
	}
	if nerr.Found != "42" || !errors.Is(err, strconv.ErrRange) {
		t.Errorf("primary range error = found %q, %v, want 42 wrapping ErrRange", nerr.Found, err)
	}

	_, err = ParseGPIB("GPIB::1::0::5")
	var terr *NotInstrError
	if !errors.As(err, &terr) {
		t.Errorf("ParseGPIB with bad terminator = %v, want NotInstrError", err)
	}

	_, err = ParseGPIB("GPIB1::SERVANT::0")
	var xerr *InvalidSuffixError
	if !errors.As(err, &xerr) {
		t.Errorf("ParseGPIB with text after SERVANT = %v, want InvalidSuffixError", err)
	}

	_, err = ParseGPIB("GPIB::1::0::INSTR::0")
	if !errors.As(err, &xerr) {
		t.Errorf("ParseGPIB with text after INSTR = %v, want InvalidSuffixError", err)
	}

	_, err = ParseGPIB("GPIB:1::INSTR")
	var serr *InvalidSeparatorError
	if !errors.As(err, &serr) {
		t.Fatalf("ParseGPIB with lone colon = %v, want InvalidSeparatorError", err)
	}
	if serr.Found != ":1" {
		t.Errorf("InvalidSeparatorError found %q, want %q", serr.Found, ":1")
	}
}
