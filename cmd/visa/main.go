package main

import "github.com/OpenTraceLab/OpenTraceVISA/cmd/visa/cmd"

func main() {
	cmd.Execute()
}
