package report

import (
	"fmt"
	"io"
	"strings"

	"solarcell/pkg/util"
)

// SimpleWriter outputs the human-readable console summary, modeled on the
// classic numbered performance-analysis block.
type SimpleWriter struct {
	baseWriter

	// showParameters adds the diode-model parameter section.
	showParameters bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithParameters includes the diode-model parameters in the output.
func WithParameters(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) { w.showParameters = show }
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the report as plain text.
func (w *SimpleWriter) Write(p *Performance) (int, error) {
	var b strings.Builder

	title := p.Title
	if title == "" {
		title = "SOLAR CELL PERFORMANCE ANALYSIS"
	}
	fmt.Fprintf(&b, "=== %s ===\n", title)

	m := p.Model
	fmt.Fprintf(&b, "1. Open-Circuit Voltage (Voc): %s\n", util.FormatVoltage(m.Voc))
	fmt.Fprintf(&b, "2. Short-Circuit Current Density (Jsc): %s\n", util.FormatCurrentDensity(m.Jsc))
	fmt.Fprintf(&b, "3. Fill Factor (FF): %s\n", util.FormatPercent(m.FF))
	fmt.Fprintf(&b, "4. Efficiency: %s\n", util.FormatPercent(m.Efficiency))
	fmt.Fprintf(&b, "5. Maximum Power Point:\n")
	fmt.Fprintf(&b, "   - Voltage (V_MPP): %s (%.1f%% of Voc)\n",
		util.FormatVoltage(m.VMPP), m.VMPP/m.Voc*100)
	fmt.Fprintf(&b, "   - Current (J_MPP): %s (%.1f%% of Jsc)\n",
		util.FormatCurrentDensity(m.JMPP), m.JMPP/m.Jsc*100)
	fmt.Fprintf(&b, "   - Power Density: %s\n", util.FormatPowerDensity(m.PMPP))
	fmt.Fprintf(&b, "6. Theoretical Maximum Power: %s\n",
		util.FormatPowerDensity(m.Voc*m.Jsc*m.FF))
	fmt.Fprintf(&b, "7. Curve: %d samples, incident power %s\n",
		p.Points, util.FormatPowerDensity(p.IncidentPower))

	if w.showParameters {
		c := p.Cell
		fmt.Fprintf(&b, "\nDiode model parameters:\n")
		fmt.Fprintf(&b, "   Jsc = %g mA/cm²   J0 = %g mA/cm²\n", c.Jsc, c.J0)
		fmt.Fprintf(&b, "   n = %g   Vt = %g V\n", c.N, c.Vt)
		fmt.Fprintf(&b, "   Rs = %g Ω·cm²   Rsh = %g Ω·cm²\n", c.Rs, c.Rsh)
	}

	if p.Measured != nil {
		r := p.Measured
		fmt.Fprintf(&b, "\nMeasured reference (model / measured):\n")
		fmt.Fprintf(&b, "   Voc: %s / %s\n", util.FormatVoltage(m.Voc), util.FormatVoltage(r.Voc))
		fmt.Fprintf(&b, "   Jsc: %s / %s\n", util.FormatCurrentDensity(m.Jsc), util.FormatCurrentDensity(r.Jsc))
		fmt.Fprintf(&b, "   FF: %s / %s\n", util.FormatPercent(m.FF), util.FormatPercent(r.FF))
		fmt.Fprintf(&b, "   Efficiency: %s / %s\n", util.FormatPercent(m.Efficiency), util.FormatPercent(r.Efficiency))
		fmt.Fprintf(&b, "   V_MPP: %s / %s\n", util.FormatVoltage(m.VMPP), util.FormatVoltage(r.VMPP))
		fmt.Fprintf(&b, "   J_MPP: %s / %s\n", util.FormatCurrentDensity(m.JMPP), util.FormatCurrentDensity(r.JMPP))
	}

	return io.WriteString(w.output, b.String())
}
