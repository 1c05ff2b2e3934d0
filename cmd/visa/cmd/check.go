package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceVISA/pkg/visa"
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Validate VISA resource strings from files or stdin",
	Long: `Read resource strings (one per line, # starts a comment) from the given
files, or from stdin when no file is named, and validate each one. Invalid
strings are reported with a caret marking the offending text.

Examples:
  visa check resources.txt
  echo "USB::0x1A34::0x5678::A22-5" | visa check`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	total := 0
	failed := 0

	checkReader := func(name string, r io.Reader) error {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			total++
			addr, err := visa.Parse(line)
			if err != nil {
				failed++
				fmt.Println(visa.FormatDiagnostic(err))
				continue
			}
			if verbose {
				fmt.Printf("ok: %s -> %s (%s)\n", line, addr.String(), addr.Kind())
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		return nil
	}

	if len(args) == 0 {
		if err := checkReader("stdin", os.Stdin); err != nil {
			return err
		}
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		err = checkReader(path, f)
		f.Close()
		if err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d resource strings failed validation", failed, total)
	}
	if verbose || total > 0 {
		fmt.Printf("%d resource strings validated\n", total)
	}
	return nil
}
