package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List supported address families and their grammars",
	RunE:  runKinds,
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}

func runKinds(cmd *cobra.Command, args []string) error {
	rows := []struct {
		prefix  string
		grammar string
	}{
		{"USB", "USB[board]::manufacturer ID::model code::serial number[::interface][::INSTR]"},
		{"TCPIP", "TCPIP[board]::[userinfo@]host[::device][::INSTR] | TCPIP[board]::host::port::SOCKET"},
		{"GPIB", "GPIB[board]::primary[::secondary][::INSTR] | GPIB[board]::SERVANT"},
		{"GPIB-VXI", "GPIB-VXI[board]::logical[::INSTR] | ::SERVANT | ::MEMACC | ::[chassis::]BACKPLANE"},
		{"VXI", "VXI[board]::logical[::INSTR] | ::SERVANT | ::MEMACC | ::[chassis::]BACKPLANE"},
		{"PXI", "PXI[board]::[bus-]device[.function][::INSTR] | ::CHASSISc::SLOTs[INDEXi][::INSTR] | ::MEMACC | ::bus::BACKPLANE"},
		{"ASRL", "ASRL[board][::INSTR]"},
	}
	for _, row := range rows {
		fmt.Printf("  %-10s %s\n", row.prefix, row.grammar)
	}
	return nil
}
