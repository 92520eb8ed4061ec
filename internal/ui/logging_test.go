package ui

import (
	"github.com/pterm/pterm"
	"os"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "sensor %d reads %dK"
	Printfln(msg, 2, 318)
	// Output:
	// sensor 2 reads 318K
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)

	msg := "fan %d level: %d"
	Debug(msg, 0, 3)
	// Output:
	// DEBUG: fan 0 level: 3
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Setting fan RPM to %d"
	Info(msg, 3000)
	// Output:
	// INFO: Setting fan RPM to 3000
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "thermal %s"
	Warning(msg, "HIGH")
	// Output:
	// WARNING: thermal HIGH
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Unable to read sensor: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: Unable to read sensor: file already closed
}
