package gochart

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"sigmark/domain/bracket"
	"sigmark/domain/panel"
	"sigmark/internal/errors"
	"sigmark/ports"

	"github.com/stretchr/testify/assert"
	"github.com/golang/freetype/truetype"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
)

func barChart() *chart.Chart {
	return &chart.Chart{
		Width:  400,
		Height: 300,
		YAxis:  chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: 3}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "means",
				XValues: []float64{0, 1, 2},
				YValues: []float64{1, 2, 1.5},
				Style:   chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorBlue},
			},
		},
	}
}

func TestNewSurface_PinsRanges(t *testing.T) {
	c := barChart()
	s, err := NewSurface(c)
	require.NoError(t, err)

	lo, hi := s.YLim()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 3.0, hi)

	// X was derived from the series and written back onto the chart
	xlo, xhi := s.XLim()
	assert.Equal(t, 0.0, xlo)
	assert.Equal(t, 2.0, xhi)
	assert.Equal(t, 2.0, c.XAxis.Range.GetMax())
}

func TestNewSurface_NoData(t *testing.T) {
	_, err := NewSurface(&chart.Chart{})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestSurface_RenderAnnotatedPNG(t *testing.T) {
	c := barChart()
	s, err := NewSurface(c)
	require.NoError(t, err)

	bars := bracket.FromBars([]float64{0, 1, 2}, []float64{1, 2, 1.5}, []float64{0.1, 0.2, 0.1})
	require.NoError(t, bracket.Annotate(s, 0, 2, 0.003, bars, bracket.DefaultOptions()))
	require.NoError(t, panel.Label(s, "A", 0))
	assert.Len(t, c.Elements, 3)

	s.Resize(640, 0)
	assert.Equal(t, 640, c.Width)
	assert.Equal(t, 300, c.Height)

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf, "png"))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
}

func TestSurface_RenderSVG(t *testing.T) {
	s, err := NewSurface(barChart())
	require.NoError(t, err)

	bars := bracket.FromBars([]float64{0, 1}, []float64{1, 2}, nil)
	require.NoError(t, bracket.Annotate(s, 0, 1, 0.4, bars, bracket.DefaultOptions()))

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf, "SVG"))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "n.s.")
}

func TestSurface_RenderUnknownFormat(t *testing.T) {
	s, err := NewSurface(barChart())
	require.NoError(t, err)

	err = s.Render(&bytes.Buffer{}, "gif")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestSurface_PlotErrors(t *testing.T) {
	s, err := NewSurface(barChart())
	require.NoError(t, err)

	err = s.Plot([]float64{0, 1}, []float64{1}, ports.LineStyle{})
	assert.Equal(t, errors.CodeSurfaceError, errors.GetCode(err))

	err = s.Plot([]float64{0, 1}, []float64{1, 1}, ports.LineStyle{Color: "chartreuse-ish"})
	assert.Equal(t, errors.CodeSurfaceError, errors.GetCode(err))

	require.NoError(t, s.Plot([]float64{0, 1}, []float64{1, 1}, ports.LineStyle{Color: "#336699"}))
}

func TestSurface_TextWithoutFont(t *testing.T) {
	orig := loadDefaultFont
	loadDefaultFont = func() (*truetype.Font, error) { return nil, fmt.Errorf("font missing") }
	defer func() { loadDefaultFont = orig }()

	c := barChart()
	s, err := NewSurface(c)
	require.NoError(t, err)

	err = s.Text(0.5, 2, "*", ports.TextStyle{HAlign: ports.HAlignCenter})
	require.Error(t, err)
	assert.Equal(t, errors.CodeSurfaceError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "font missing")
	assert.Empty(t, c.Elements)

	// Annotating surfaces the failure instead of rendering without the marker
	bars := bracket.FromBars([]float64{0, 1}, []float64{1, 2}, nil)
	err = bracket.Annotate(s, 0, 1, 0.01, bars, bracket.DefaultOptions())
	assert.Equal(t, errors.CodeSurfaceError, errors.GetCode(err))
}

func TestSurface_ToPixel(t *testing.T) {
	s := &Surface{xlo: 0, xhi: 2, ylo: 0, yhi: 4}
	canvas := chart.Box{Top: 0, Left: 10, Right: 110, Bottom: 100}

	px, py := s.toPixel(canvas, 1, 2, ports.DataCoords)
	assert.Equal(t, 60, px)
	assert.Equal(t, 50, py)

	// Panel label anchor sits just above the canvas top
	px, py = s.toPixel(canvas, 0, 1.05, ports.AxesCoords)
	assert.Equal(t, 10, px)
	assert.Equal(t, -5, py)
}

func TestAnchor(t *testing.T) {
	px, py := anchor(100, 50, 20, 10, ports.HAlignCenter, ports.VAlignBottom)
	assert.Equal(t, 90, px)
	assert.Equal(t, 50, py)

	px, py = anchor(100, 50, 20, 10, ports.HAlignRight, ports.VAlignTop)
	assert.Equal(t, 80, px)
	assert.Equal(t, 60, py)

	px, _ = anchor(100, 50, 20, 10, ports.HAlignLeft, ports.VAlignBottom)
	assert.Equal(t, 100, px)
}

func TestParseColor(t *testing.T) {
	col, err := parseColor("")
	require.NoError(t, err)
	assert.Equal(t, chart.ColorBlack, col)

	col, err = parseColor("GRAY")
	require.NoError(t, err)
	assert.Equal(t, uint8(128), col.R)

	_, err = parseColor("#12")
	assert.Error(t, err)
}
