package gochart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"sigmark/internal"
	"sigmark/internal/errors"
	"sigmark/ports"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

var logger = internal.DefaultLogger.With("ChartSurface")

const (
	defaultFontSize  = 10.0
	bracketLineWidth = 1.5
)

// loadDefaultFont is replaced in tests
var loadDefaultFont = chart.GetDefaultFont

var namedColors = map[string]drawing.Color{
	"black": chart.ColorBlack,
	"red":   chart.ColorRed,
	"blue":  chart.ColorBlue,
	"gray":  {R: 128, G: 128, B: 128, A: 255},
	"grey":  {R: 128, G: 128, B: 128, A: 255},
}

// Surface draws annotations onto a go-chart chart.
// Axis ranges are pinned when the surface is created so annotation coordinates
// and the rendered axes agree.
type Surface struct {
	chart *chart.Chart

	xlo, xhi float64
	ylo, yhi float64

	annotations int
}

var _ ports.Surface = (*Surface)(nil)

// NewSurface wraps c. Explicit axis ranges are kept; missing ones are computed
// from the chart's series and written back onto the chart.
func NewSurface(c *chart.Chart) (*Surface, error) {
	xs, ys := seriesValues(c.Series)

	xlo, xhi, err := pinRange(c.XAxis.Range, xs)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("x axis: %v", err))
	}
	ylo, yhi, err := pinRange(c.YAxis.Range, ys)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("y axis: %v", err))
	}

	c.XAxis.Range = &chart.ContinuousRange{Min: xlo, Max: xhi}
	c.YAxis.Range = &chart.ContinuousRange{Min: ylo, Max: yhi}

	return &Surface{chart: c, xlo: xlo, xhi: xhi, ylo: ylo, yhi: yhi}, nil
}

// YLim returns the pinned y range
func (s *Surface) YLim() (float64, float64) {
	return s.ylo, s.yhi
}

// XLim returns the pinned x range
func (s *Surface) XLim() (float64, float64) {
	return s.xlo, s.xhi
}

// Plot appends a stroked polyline in data coordinates
func (s *Surface) Plot(xs, ys []float64, style ports.LineStyle) error {
	if len(xs) != len(ys) {
		return errors.SurfaceError("plot", fmt.Errorf("x and y lengths differ: %d vs %d", len(xs), len(ys)))
	}
	if len(xs) == 0 {
		return nil
	}
	col, err := parseColor(style.Color)
	if err != nil {
		return errors.SurfaceError("plot", err)
	}

	xs = append([]float64(nil), xs...)
	ys = append([]float64(nil), ys...)

	s.chart.Elements = append(s.chart.Elements, func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		r.SetStrokeColor(col)
		r.SetStrokeWidth(bracketLineWidth)
		px, py := s.toPixel(canvas, xs[0], ys[0], ports.DataCoords)
		r.MoveTo(px, py)
		for i := 1; i < len(xs); i++ {
			px, py = s.toPixel(canvas, xs[i], ys[i], ports.DataCoords)
			r.LineTo(px, py)
		}
		r.Stroke()
	})
	s.annotations++
	return nil
}

// Text appends a text element anchored at (x, y). The chart's font is used when
// set, otherwise go-chart's default font; failing to load either is a SURFACE_ERROR.
func (s *Surface) Text(x, y float64, body string, style ports.TextStyle) error {
	size := style.FontSize
	if size == 0 {
		size = defaultFontSize
	}

	font := s.chart.Font
	if font == nil {
		f, err := loadDefaultFont()
		if err != nil {
			return errors.SurfaceError("text", fmt.Errorf("no font available for %q: %w", body, err))
		}
		font = f
	}

	s.chart.Elements = append(s.chart.Elements, func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		r.SetFont(font)
		r.SetFontSize(size)
		r.SetFontColor(chart.ColorBlack)

		box := r.MeasureText(body)
		px, py := s.toPixel(canvas, x, y, style.Coords)
		px, py = anchor(px, py, box.Width(), box.Height(), style.HAlign, style.VAlign)
		r.Text(body, px, py)
	})
	s.annotations++
	return nil
}

// Resize sets the output image size; non-positive values keep the chart's own size
func (s *Surface) Resize(width, height int) {
	if width > 0 {
		s.chart.Width = width
	}
	if height > 0 {
		s.chart.Height = height
	}
}

// Render writes the chart with its annotations as "png" or "svg"
func (s *Surface) Render(w io.Writer, format string) error {
	var provider chart.RendererProvider
	switch strings.ToLower(format) {
	case "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return errors.InvalidInput(fmt.Sprintf("unsupported render format: %s", format))
	}

	if err := s.chart.Render(provider, w); err != nil {
		return errors.RenderError(format, err)
	}
	logger.Info("Rendered %s with %d annotation elements", format, s.annotations)
	return nil
}

// toPixel maps a point onto the canvas box. Axes coordinates run 0..1 across the box.
func (s *Surface) toPixel(canvas chart.Box, x, y float64, coords ports.Coords) (int, int) {
	fx, fy := x, y
	if coords == ports.DataCoords {
		fx = (x - s.xlo) / (s.xhi - s.xlo)
		fy = (y - s.ylo) / (s.yhi - s.ylo)
	}
	px := canvas.Left + int(math.Round(fx*float64(canvas.Width())))
	py := canvas.Bottom - int(math.Round(fy*float64(canvas.Height())))
	return px, py
}

// anchor shifts a pixel position so the text box sits on it per the alignment.
// go-chart draws text with y on the baseline.
func anchor(px, py, width, height int, h ports.HAlign, v ports.VAlign) (int, int) {
	switch h {
	case ports.HAlignCenter:
		px -= width / 2
	case ports.HAlignRight:
		px -= width
	}
	switch v {
	case ports.VAlignTop:
		py += height
	case ports.VAlignCenter:
		py += height / 2
	}
	return px, py
}

func parseColor(name string) (drawing.Color, error) {
	if name == "" {
		return chart.ColorBlack, nil
	}
	if col, ok := namedColors[strings.ToLower(name)]; ok {
		return col, nil
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 4) {
		return drawing.ColorFromHex(strings.TrimPrefix(name, "#")), nil
	}
	return drawing.Color{}, fmt.Errorf("unknown color %q", name)
}

func seriesValues(series []chart.Series) (xs, ys []float64) {
	for _, s := range series {
		vp, ok := s.(chart.ValuesProvider)
		if !ok {
			continue
		}
		for i := 0; i < vp.Len(); i++ {
			x, y := vp.GetValues(i)
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	return xs, ys
}

// pinRange keeps an explicit range or derives one from values
func pinRange(r chart.Range, values []float64) (float64, float64, error) {
	if r != nil && !r.IsZero() {
		return r.GetMin(), r.GetMax(), nil
	}
	if len(values) == 0 {
		return 0, 0, fmt.Errorf("no range set and no series values to derive one")
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi, nil
}
