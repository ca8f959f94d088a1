// Package main provides the entry point for the solarcell CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for solarcell.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solarcell",
		Short: "Single-diode solar cell J-V analysis",
		Long: `solarcell solves the implicit single-diode equation

    J = Jsc - J0*(exp((V + J*Rs)/(n*Vt)) - 1) - (V + J*Rs)/Rsh

over a voltage sweep and derives the cell's performance metrics:
open-circuit voltage, short-circuit current density, maximum power
point, fill factor, and conversion efficiency.

Without a configuration file it analyzes the built-in reference
GaAs p-i-n cell.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewSweepCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
