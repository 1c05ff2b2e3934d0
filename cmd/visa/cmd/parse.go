package cmd

import (
	"fmt"

	"github.com/google/gousb"
	"github.com/google/gousb/usbid"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceVISA/pkg/visa"
)

var canonicalOnly bool

var parseCmd = &cobra.Command{
	Use:   "parse <resource-string>",
	Short: "Parse and display a VISA resource string",
	Long: `Parse a VISA resource string and display its structured fields together
with the canonical rendering. USB vendor and product IDs are annotated with
names from the usb.ids database when known.

Examples:
  visa parse "USB34::0x12A4::0xFF1A::A22-5::12314::INSTR"
  visa parse "TCPIP0::1.2.3.4::5025::SOCKET"
  visa parse --canonical "usb::0x1A34::0x5678::A22-5"`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&canonicalOnly, "canonical", "c", false,
		"print only the canonical form")
}

func runParse(cmd *cobra.Command, args []string) error {
	input := args[0]

	addr, err := visa.Parse(input)
	if err != nil {
		return fmt.Errorf("%s", visa.FormatDiagnostic(err))
	}

	if canonicalOnly {
		fmt.Println(addr.String())
		return nil
	}

	if verbose {
		fmt.Printf("Input:          %s\n", input)
	}
	fmt.Printf("Kind:           %s\n", addr.Kind())

	switch a := addr.(type) {
	case *visa.USBAddress:
		printUSB(a)
	case *visa.TCPIPAddress:
		printTCPIP(a)
	case *visa.GPIBAddress:
		printGPIB(a)
	case *visa.VXIAddress:
		printVXI(a)
	case *visa.PXIAddress:
		printPXI(a)
	case *visa.SerialAddress:
		printSerial(a)
	}

	fmt.Printf("Canonical:      %s\n", addr.String())
	return nil
}

func printUSB(a *visa.USBAddress) {
	if board, ok := a.Board(); ok {
		fmt.Printf("Board:          %d\n", board)
	}
	fmt.Printf("Manufacturer:   0x%04X\n", a.ManufacturerID())
	vendor, knownVendor := usbid.Vendors[gousb.ID(a.ManufacturerID())]
	if knownVendor {
		fmt.Printf("Vendor Name:    %s\n", vendor.Name)
	}
	fmt.Printf("Model Code:     0x%04X\n", a.ModelCode())
	if knownVendor {
		if product, ok := vendor.Product[gousb.ID(a.ModelCode())]; ok {
			fmt.Printf("Product Name:   %s\n", product.Name)
		}
	}
	fmt.Printf("Serial Number:  %s\n", a.SerialNumber())
	if iface, ok := a.InterfaceNumber(); ok {
		fmt.Printf("Interface:      %d\n", iface)
	}
	fmt.Printf("INSTR:          %v\n", a.Instr())
}

func printTCPIP(a *visa.TCPIPAddress) {
	if board, ok := a.Board(); ok {
		fmt.Printf("Board:          %d\n", board)
	}
	if user, ok := a.UserInfo(); ok {
		fmt.Printf("User Info:      %q\n", user)
	}
	fmt.Printf("Host:           %s\n", a.Host())
	if a.Socket() {
		port, _ := a.Port()
		fmt.Printf("Port:           %d\n", port)
		fmt.Printf("Mode:           SOCKET\n")
		return
	}
	if a.Device() != "" {
		fmt.Printf("Device:         %s\n", a.Device())
	} else {
		fmt.Printf("Device:         (default, inst0)\n")
	}
	fmt.Printf("INSTR:          %v\n", a.Instr())
}

func printGPIB(a *visa.GPIBAddress) {
	if board, ok := a.Board(); ok {
		fmt.Printf("Board:          %d\n", board)
	}
	if a.Servant() {
		fmt.Printf("Role:           SERVANT\n")
		return
	}
	fmt.Printf("Primary:        %d\n", a.Primary())
	if secondary, ok := a.Secondary(); ok {
		fmt.Printf("Secondary:      %d\n", secondary)
	}
	fmt.Printf("INSTR:          %v\n", a.Instr())
}

func printVXI(a *visa.VXIAddress) {
	if board, ok := a.Board(); ok {
		fmt.Printf("Board:          %d\n", board)
	}
	if logical, ok := a.Logical(); ok {
		fmt.Printf("Logical:        %d\n", logical)
	}
	if a.Suffix() != visa.VXISuffixNone {
		fmt.Printf("Terminator:     %s\n", a.Suffix())
	}
}

func printPXI(a *visa.PXIAddress) {
	if board, ok := a.Board(); ok {
		fmt.Printf("Board:          %d\n", board)
	}
	switch a.Form() {
	case visa.PXIFormMemACC:
		fmt.Printf("Form:           MEMACC\n")
	case visa.PXIFormBackplane:
		bus, _ := a.Bus()
		fmt.Printf("Form:           BACKPLANE\n")
		fmt.Printf("Bus:            %d\n", bus)
	case visa.PXIFormChassis:
		fmt.Printf("Chassis:        %d\n", a.Chassis())
		fmt.Printf("Slot:           %d\n", a.Slot())
		if index, ok := a.Index(); ok {
			fmt.Printf("Index:          %d\n", index)
		}
		fmt.Printf("INSTR:          %v\n", a.Instr())
	default:
		if bus, ok := a.Bus(); ok {
			fmt.Printf("Bus:            %d\n", bus)
		}
		fmt.Printf("Device:         %d\n", a.Device())
		if fn, ok := a.Function(); ok {
			fmt.Printf("Function:       %d\n", fn)
		}
		fmt.Printf("INSTR:          %v\n", a.Instr())
	}
}

func printSerial(a *visa.SerialAddress) {
	if board, ok := a.Board(); ok {
		fmt.Printf("Port:           %d\n", board)
	}
	fmt.Printf("INSTR:          %v\n", a.Instr())
}
