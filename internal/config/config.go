// Package config holds the run configuration for the solarcell CLI: the
// cell under analysis, the sweep grid, and output selection. A single flat
// Config value is populated from defaults, an optional YAML file, and CLI
// flags, then passed explicitly through the program. There is no
// process-wide state.
package config

import (
	"fmt"
	"runtime"

	"solarcell/internal/consts"
	"solarcell/pkg/cell"
	"solarcell/pkg/report"
	"solarcell/pkg/sweep"
)

// Default sweep configuration, matching the reference analysis: 500 evenly
// spaced samples from slight reverse bias to just past the measured
// open-circuit voltage.
const (
	DefaultSweepStart  = -0.1
	DefaultSweepStop   = 1.008312 + 0.05
	DefaultSweepPoints = 500

	// DefaultIncidentPower is the AM1.5G illumination the efficiency
	// figure is referenced to.
	DefaultIncidentPower = consts.AM15Power
)

// Config holds all options for one analysis run.
type Config struct {
	// Title labels reports and the rendered figure.
	Title string

	// Cell is the single-diode parameter set under analysis.
	Cell cell.Parameters

	// Sweep grid bounds and sample count.
	SweepStart  float64
	SweepStop   float64
	SweepPoints int

	// IncidentPower is the illumination power density (mW/cm²).
	IncidentPower float64

	// Workers bounds concurrent solves during the sweep.
	Workers int

	// Verbose enables debug-level logging.
	Verbose bool

	// JSONReport and MarkdownReport select the report format; both false
	// means the human-readable text report. Mutually exclusive.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile, when set, receives the report in addition to stdout.
	ReportFile string

	// PlotFile, when set, receives the rendered J-V figure.
	PlotFile string

	// Measured carries externally measured performance values to report
	// alongside the model-derived metrics. Optional.
	Measured *report.Measured
}

// NewConfig returns the reference GaAs analysis: the original data set's
// cell, grid, and measured performance values.
func NewConfig() *Config {
	return &Config{
		Title:         "GaAs p-i-n Solar Cell",
		Cell:          cell.ReferenceGaAs(),
		SweepStart:    DefaultSweepStart,
		SweepStop:     DefaultSweepStop,
		SweepPoints:   DefaultSweepPoints,
		IncidentPower: DefaultIncidentPower,
		Workers:       runtime.GOMAXPROCS(0),
		Measured: &report.Measured{
			Voc:        1.008312,
			Jsc:        30.52638788,
			FF:         0.883105,
			Efficiency: 0.271821,
			VMPP:       0.915723,
			JMPP:       29.68373326,
		},
	}
}

// Grid returns the sweep grid described by the config.
func (c *Config) Grid() sweep.Grid {
	return sweep.Grid{Start: c.SweepStart, Stop: c.SweepStop, Points: c.SweepPoints}
}

// Validate rejects inconsistent configurations before any work starts.
func (c *Config) Validate() error {
	if err := c.Cell.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Grid().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.IncidentPower <= 0 {
		return fmt.Errorf("%w: incident power must be positive, got %g", ErrInvalidConfig, c.IncidentPower)
	}
	if c.JSONReport && c.MarkdownReport {
		return fmt.Errorf("%w: --json and --markdown are mutually exclusive", ErrInvalidConfig)
	}
	return nil
}
