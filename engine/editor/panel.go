package editor

import (
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
)

// Panel prints the parameter state. Material fields follow params.RequiredFields, so
// the panel shows exactly what the resolver writes.
type Panel struct {
	params *params.Parameters
}

// NewPanel creates a panel over p.
//
// Parameters:
//   - p: the parameter state to display
//
// Returns:
//   - *Panel: the panel
func NewPanel(p *params.Parameters) *Panel {
	return &Panel{params: p}
}

// VisibleFields returns the material fields relevant to p's model and blending mode.
//
// Parameters:
//   - p: the parameter state
//
// Returns:
//   - []params.Field: the visible fields in declaration order
func VisibleFields(p *params.Parameters) []params.Field {
	return p.RequiredFields().Fields()
}

// Rows returns the panel content as name/value pairs.
func (pl *Panel) Rows() [][]string {
	p := pl.params
	rows := [][]string{
		{"model", p.MaterialModel.String()},
		{"blending", p.Blending.String()},
	}
	for _, f := range VisibleFields(p) {
		rows = append(rows, []string{f.String(), fieldValue(p, f)})
	}

	view := p.View()
	rows = append(rows,
		[]string{"castShadows", fmt.Sprintf("%t", p.CastShadows)},
		[]string{"sun", fmt.Sprintf("%t", p.LightEnabled)},
		[]string{"sunIntensity", fmt.Sprintf("%.0f lux", p.LightIntensity)},
		[]string{"iblIntensity", fmt.Sprintf("%.0f", p.IBLIntensity)},
		[]string{"iblRotation", fmt.Sprintf("%.1f°", p.IBLRotation*180/math.Pi)},
		[]string{"antiAliasing", view.AntiAliasing.String()},
		[]string{"toneMapping", view.ToneMapping.String()},
		[]string{"dithering", view.Dithering.String()},
		[]string{"msaa", fmt.Sprintf("%dx", view.SampleCount)},
	)
	return rows
}

func fieldValue(p *params.Parameters, f params.Field) string {
	if f.IsColor() {
		c := p.ColorOf(f)
		return fmt.Sprintf("%.3f, %.3f, %.3f", c[0], c[1], c[2])
	}
	return fmt.Sprintf("%.3f", p.Scalar(f))
}

// Render writes the panel as a table.
//
// Parameters:
//   - w: the destination
func (pl *Panel) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Parameter", "Value"})
	table.AppendBulk(pl.Rows())
	table.Render()
}

// RenderFieldTable writes which material fields each model and blending combination
// exposes, one row per combination.
//
// Parameters:
//   - w: the destination
func RenderFieldTable(w io.Writer) {
	header := []string{"Model", "Blending"}
	for _, f := range params.AllFields {
		header = append(header, f.String())
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	for _, m := range params.MaterialModels {
		for _, b := range params.BlendingModes {
			set := params.RequiredFields(m, b)
			row := []string{m.String(), b.String()}
			for _, f := range params.AllFields {
				mark := ""
				if set.Has(f) {
					mark = "x"
				}
				row = append(row, mark)
			}
			table.Append(row)
		}
	}
	table.Render()
}

// RenderBindings writes the key bindings as a table.
//
// Parameters:
//   - w: the destination
//   - bindings: the bindings to list
func RenderBindings(w io.Writer, bindings []Binding) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Key", "Action"})
	for _, b := range bindings {
		table.Append([]string{b.Label, b.Help})
	}
	table.Render()
}
