package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "visa",
	Short: "VISA resource-string parser and inspector",
	Long: `Parse, validate, and canonicalize VISA/IVI instrument resource strings.

Examples:
  visa parse "USB::0x1A34::0x5678::A22-5"            # Show the parsed fields
  visa parse "TCPIP::1.2.3.4::inst0::INSTR"          # Works for every family
  visa check resources.txt                           # Validate a list of strings
  visa kinds                                         # List supported families`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
