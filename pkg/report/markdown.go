package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"solarcell/pkg/util"
)

// MarkdownWriter outputs reports as GitHub Flavored Markdown, for
// documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the report as Markdown.
func (w *MarkdownWriter) Write(p *Performance) (int, error) {
	md := markdown.NewMarkdown(w.output)

	title := p.Title
	if title == "" {
		title = "Solar Cell Performance"
	}
	md.H1(title)
	md.PlainText("")

	w.writeModel(md, p)
	w.writeParameters(md, p)
	if p.Measured != nil {
		w.writeMeasured(md, p)
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeModel(md *markdown.Markdown, p *Performance) {
	m := p.Model
	md.H2("Model-Derived Metrics")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Open-circuit voltage (Voc)", util.FormatVoltage(m.Voc)},
			{"Short-circuit current density (Jsc)", util.FormatCurrentDensity(m.Jsc)},
			{"Fill factor (FF)", util.FormatPercent(m.FF)},
			{"Efficiency", util.FormatPercent(m.Efficiency)},
			{"MPP voltage (V_MPP)", util.FormatVoltage(m.VMPP)},
			{"MPP current (J_MPP)", util.FormatCurrentDensity(m.JMPP)},
			{"MPP power density", util.FormatPowerDensity(m.PMPP)},
		},
	})
	md.PlainText("")
	md.PlainText(fmt.Sprintf("Derived from %d curve samples at %s incident power.",
		p.Points, util.FormatPowerDensity(p.IncidentPower)))
	md.PlainText("")
}

func (w *MarkdownWriter) writeParameters(md *markdown.Markdown, p *Performance) {
	c := p.Cell
	md.H2("Diode Model Parameters")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Parameter", "Value"},
		Rows: [][]string{
			{"Jsc", util.FormatCurrentDensity(c.Jsc)},
			{"J0", strconv.FormatFloat(c.J0, 'g', -1, 64) + " mA/cm²"},
			{"Ideality factor (n)", strconv.FormatFloat(c.N, 'g', -1, 64)},
			{"Thermal voltage (Vt)", util.FormatVoltage(c.Vt)},
			{"Series resistance (Rs)", strconv.FormatFloat(c.Rs, 'g', -1, 64) + " Ω·cm²"},
			{"Shunt resistance (Rsh)", strconv.FormatFloat(c.Rsh, 'g', -1, 64) + " Ω·cm²"},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeMeasured(md *markdown.Markdown, p *Performance) {
	m, r := p.Model, p.Measured
	md.H2("Model vs. Measured")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Model", "Measured"},
		Rows: [][]string{
			{"Voc", util.FormatVoltage(m.Voc), util.FormatVoltage(r.Voc)},
			{"Jsc", util.FormatCurrentDensity(m.Jsc), util.FormatCurrentDensity(r.Jsc)},
			{"FF", util.FormatPercent(m.FF), util.FormatPercent(r.FF)},
			{"Efficiency", util.FormatPercent(m.Efficiency), util.FormatPercent(r.Efficiency)},
			{"V_MPP", util.FormatVoltage(m.VMPP), util.FormatVoltage(r.VMPP)},
			{"J_MPP", util.FormatCurrentDensity(m.JMPP), util.FormatCurrentDensity(r.JMPP)},
		},
	})
	md.PlainText("")
}
