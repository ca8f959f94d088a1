// Package main provides the entry point for the solarcell CLI.
//
// solarcell characterizes a photovoltaic cell from its single-diode model
// parameters: it solves the implicit J-V equation over a voltage sweep,
// derives the standard performance metrics (Voc, Jsc, fill factor,
// efficiency), and emits a report and an optional rendered figure.
//
// Usage:
//
//	solarcell sweep
//	solarcell sweep -c cell.yaml --json -o report.json
//
// See --help for all available options.
package main

// main is the entry point for solarcell.
func main() {
	Execute()
}
