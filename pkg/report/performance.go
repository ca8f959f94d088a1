// Package report renders a cell's performance summary in human-readable
// text, JSON, or Markdown. Writers consume a Performance value produced by
// the sweep layer; nothing here computes, so the solver stays free of
// presentation concerns.
package report

import (
	"solarcell/pkg/cell"
	"solarcell/pkg/sweep"
)

// Measured holds externally measured performance figures, when available.
// They are reported alongside the model-derived metrics for comparison and
// never substituted for them.
type Measured struct {
	Voc        float64 `json:"voc" yaml:"voc"`
	Jsc        float64 `json:"jsc" yaml:"jsc"`
	FF         float64 `json:"ff" yaml:"ff"`
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
	VMPP       float64 `json:"v_mpp" yaml:"v_mpp"`
	JMPP       float64 `json:"j_mpp" yaml:"j_mpp"`
}

// Performance is the full report payload: the cell under analysis, the
// metrics derived from its solved curve, and optional measured reference
// values.
type Performance struct {
	Title         string          `json:"title,omitempty"`
	Cell          cell.Parameters `json:"cell"`
	Model         sweep.Metrics   `json:"model"`
	Measured      *Measured       `json:"measured,omitempty"`
	IncidentPower float64         `json:"incident_power"` // mW/cm²
	Points        int             `json:"points"`         // curve samples
}
