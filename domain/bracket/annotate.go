package bracket

import (
	"fmt"
	"math"

	"sigmark/domain/significance"
	"sigmark/ports"

	"github.com/montanaflynn/stats"
)

// endTickHeight scales Options.BarH; end ticks are disabled so brackets are flat lines
const endTickHeight = 0.0

// Annotate draws a significance bracket between bars num1 and num2 on the surface.
// Bar indices are not validated: an index outside bars panics like any slice access.
func Annotate(s ports.Surface, num1, num2 int, p float64, bars []Bar, opts Options) error {
	lo, hi := s.YLim()

	geom, err := Compute(lo, hi, num1, num2, p, bars, opts)
	if err != nil {
		return err
	}

	if err := s.Plot(geom.PathX, geom.PathY, ports.LineStyle{Color: lineColor(opts)}); err != nil {
		return fmt.Errorf("failed to draw bracket between bars %d and %d: %w", num1, num2, err)
	}

	style := ports.TextStyle{
		HAlign:   ports.HAlignCenter,
		VAlign:   ports.VAlignBottom,
		FontSize: opts.FontSize,
		Coords:   ports.DataCoords,
	}
	if err := s.Text(geom.TextX, geom.TextY, geom.Marker.String(), style); err != nil {
		return fmt.Errorf("failed to draw marker %q: %w", geom.Marker, err)
	}

	return nil
}

// Compute lays out a bracket for a y-axis range [lo, hi] without drawing it
func Compute(lo, hi float64, num1, num2 int, p float64, bars []Bar, opts Options) (Geometry, error) {
	marker := significance.Classify(p)

	lx, ly, err := barTop(bars[num1])
	if err != nil {
		return Geometry{}, fmt.Errorf("bar %d: %w", num1, err)
	}
	rx, ry, err := barTop(bars[num2])
	if err != nil {
		return Geometry{}, fmt.Errorf("bar %d: %w", num2, err)
	}

	span := hi - lo
	dh := opts.DH * span
	barh := opts.BarH * endTickHeight

	y := math.Max(ly, ry) + dh

	return Geometry{
		Marker:   marker,
		PathX:    []float64{lx, lx, rx, rx},
		PathY:    []float64{y, y + barh, y + barh, y},
		TextX:    (lx + rx) / 2,
		TextY:    y + barh,
		LeftTop:  ly,
		RightTop: ry,
	}, nil
}

// barTop returns the bar center and its height plus error extent.
// The error extent is taken from the last sample's error top.
func barTop(bar Bar) (center, top float64, err error) {
	xs := make([]float64, len(bar.Samples))
	ys := make([]float64, len(bar.Samples))
	for i, smp := range bar.Samples {
		xs[i] = smp.X
		ys[i] = smp.Y
	}

	center, err = stats.Mean(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("bar center: %w", err)
	}
	height, err := stats.Mean(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("bar height: %w", err)
	}

	yerr := bar.Samples[len(bar.Samples)-1].YErrTop - height
	return center, height + yerr, nil
}

func lineColor(opts Options) string {
	if opts.LineColor == "" {
		return "black"
	}
	return opts.LineColor
}
