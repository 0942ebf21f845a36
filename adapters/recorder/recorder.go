package recorder

import (
	"fmt"
	"strconv"
	"strings"

	"sigmark/ports"

	"gonum.org/v1/gonum/floats"
)

// autoscaleMargin pads the data range on each side when no limits are set
const autoscaleMargin = 0.05

// Line is a recorded Plot call
type Line struct {
	XS    []float64
	YS    []float64
	Style ports.LineStyle
}

// Text is a recorded Text call
type Text struct {
	X, Y  float64
	Body  string
	Style ports.TextStyle
}

// Surface records draw calls in memory instead of rendering them
type Surface struct {
	lines []Line
	texts []Text
	ops   []string // dump lines in call order

	ylim    [2]float64
	ylimSet bool
}

var _ ports.Surface = (*Surface)(nil)

// New creates an empty recording surface with autoscaled y limits
func New() *Surface {
	return &Surface{}
}

// SetYLim pins the y-axis range
func (s *Surface) SetYLim(lo, hi float64) {
	s.ylim = [2]float64{lo, hi}
	s.ylimSet = true
}

// YLim returns the pinned range, or the plotted y data padded by 5% on each side.
// An empty surface reports (0, 1).
func (s *Surface) YLim() (float64, float64) {
	if s.ylimSet {
		return s.ylim[0], s.ylim[1]
	}

	var ys []float64
	for _, l := range s.lines {
		ys = append(ys, l.YS...)
	}
	if len(ys) == 0 {
		return 0, 1
	}

	lo, hi := floats.Min(ys), floats.Max(ys)
	pad := (hi - lo) * autoscaleMargin
	if pad == 0 {
		// A flat line still gets a visible range
		pad = 0.5
	}
	return lo - pad, hi + pad
}

// Plot records a polyline
func (s *Surface) Plot(xs, ys []float64, style ports.LineStyle) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("x and y must have the same length, got %d and %d", len(xs), len(ys))
	}
	l := Line{
		XS:    append([]float64(nil), xs...),
		YS:    append([]float64(nil), ys...),
		Style: style,
	}
	s.lines = append(s.lines, l)
	s.ops = append(s.ops, fmt.Sprintf("line color=%s x=%s y=%s", colorName(style.Color), formatSlice(l.XS), formatSlice(l.YS)))
	return nil
}

// Text records a text annotation
func (s *Surface) Text(x, y float64, body string, style ports.TextStyle) error {
	s.texts = append(s.texts, Text{X: x, Y: y, Body: body, Style: style})
	s.ops = append(s.ops, fmt.Sprintf("text %q at=(%s, %s) coords=%s anchor=%s/%s size=%s",
		body, formatFloat(x), formatFloat(y), coordsName(style.Coords),
		style.HAlign, style.VAlign, formatFloat(style.FontSize)))
	return nil
}

// Lines returns the recorded lines in call order
func (s *Surface) Lines() []Line {
	return s.lines
}

// Texts returns the recorded text elements in call order
func (s *Surface) Texts() []Text {
	return s.texts
}

// Dump renders every recorded call, one per line, in call order
func (s *Surface) Dump() string {
	var b strings.Builder
	for _, op := range s.ops {
		b.WriteString(op)
		b.WriteByte('\n')
	}
	return b.String()
}

func colorName(c string) string {
	if c == "" {
		return "black"
	}
	return c
}

func coordsName(c ports.Coords) string {
	if c == ports.AxesCoords {
		return "axes"
	}
	return "data"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSlice(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
