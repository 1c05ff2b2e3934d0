package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestParseE2E tests the parse command end-to-end
func TestParseE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name: "usb full",
			args: []string{"parse", "USB34::0x12A4::0xFF1A::A22-5::12314::INSTR"},
			wantContain: []string{
				"Kind:           USB",
				"Board:          34",
				"Manufacturer:   0x12A4",
				"Model Code:     0xFF1A",
				"Serial Number:  A22-5",
				"Interface:      12314",
				"INSTR:          true",
				"Canonical:      USB34::0x12A4::0xFF1A::A22-5::12314::INSTR",
			},
		},
		{
			name: "tcpip socket",
			args: []string{"parse", "TCPIP0::1.2.3.4::5025::SOCKET"},
			wantContain: []string{
				"Kind:           TCPIP",
				"Host:           1.2.3.4",
				"Port:           5025",
				"Mode:           SOCKET",
			},
		},
		{
			name: "gpib servant",
			args: []string{"parse", "GPIB1::SERVANT"},
			wantContain: []string{
				"Kind:           GPIB",
				"Role:           SERVANT",
			},
		},
		{
			name: "pxi chassis",
			args: []string{"parse", "PXI0::CHASSIS1::SLOT4INDEX1::INSTR"},
			wantContain: []string{
				"Kind:           PXI",
				"Chassis:        1",
				"Slot:           4",
				"Index:          1",
			},
		},
		{
			name: "canonical normalizes casing",
			args: []string{"parse", "--canonical", "USB::0X1a34::0x5678::A22-5::instr"},
			wantContain: []string{
				"USB::0x1A34::0x5678::A22-5::INSTR",
			},
		},
		{
			name:    "invalid hex field",
			args:    []string{"parse", "USB34::x1H34::0x5678::A22-5"},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			args:    []string{"parse", "FOO::1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := runCLI(t, tt.args)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v\nOutput: %s", err, output)
				return
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

// TestCheckE2E tests the check command end-to-end
func TestCheckE2E(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.txt")
	if err := os.WriteFile(good, []byte(
		"# instruments\n"+
			"USB::0x1A34::0x5678::A22-5\n"+
			"\n"+
			"TCPIP::1.2.3.4::inst0::INSTR\n"+
			"ASRL1::INSTR\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	mixed := filepath.Join(dir, "mixed.txt")
	if err := os.WriteFile(mixed, []byte(
		"GPIB::1::0::INSTR\n"+
			"USB34::x1H34::0x5678::A22-5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("all valid", func(t *testing.T) {
		output, err := runCLI(t, []string{"check", good})
		if err != nil {
			t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
		}
		if !strings.Contains(output, "3 resource strings validated") {
			t.Errorf("Output missing summary:\n%s", output)
		}
	})

	t.Run("one invalid", func(t *testing.T) {
		output, err := runCLI(t, []string{"check", mixed})
		if err == nil {
			t.Fatal("Expected error but got none")
		}
		if !strings.Contains(err.Error(), "1 of 2 resource strings failed validation") {
			t.Errorf("Error = %v, want failure summary", err)
		}
		if !strings.Contains(output, "x1H34") {
			t.Errorf("Output missing diagnostic:\n%s", output)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCLI(t, []string{"check", filepath.Join(dir, "nope.txt")})
		if err == nil {
			t.Error("Expected error but got none")
		}
	})
}

// TestKindsE2E tests the kinds command end-to-end
func TestKindsE2E(t *testing.T) {
	output, err := runCLI(t, []string{"kinds"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"USB", "TCPIP", "GPIB-VXI", "VXI", "PXI", "ASRL", "SOCKET"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}
}

// runCLI executes the root command with args, capturing stdout.
func runCLI(t *testing.T, args []string) (string, error) {
	t.Helper()

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// Read in background to prevent pipe buffer from blocking on Windows
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests
	verbose = false
	canonicalOnly = false

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	// Restore stdout and wait for reader
	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}
