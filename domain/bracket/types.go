package bracket

import "sigmark/domain/significance"

// Sample is one sampled point on a bar
type Sample struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	YErrTop float64 `json:"yerr_top"` // y-coordinate of the error bar top at this sample
}

// Bar holds the sampled points drawn for one bar of a bar chart
type Bar struct {
	Samples []Sample `json:"samples"`
}

// Options tunes bracket layout. Fractions are relative to the y-axis span.
type Options struct {
	DH           float64 // gap between the taller bar top and the bracket
	BarH         float64 // accepted for callers; end ticks are currently drawn with zero height
	FontSize     float64 // 0 leaves the surface default
	MaxAsterisks int     // accepted, not applied to the marker
	LineColor    string  // empty means black
}

// DefaultOptions returns the layout used when a caller has no preference
func DefaultOptions() Options {
	return Options{
		DH:   0.05,
		BarH: 0.05,
	}
}

// Geometry is the computed layout of one bracket annotation
type Geometry struct {
	Marker significance.Marker

	// Path is the stroked bracket: up from the left bar, across, down to the right bar
	PathX []float64
	PathY []float64

	// TextX, TextY anchor the marker (bottom-center)
	TextX float64
	TextY float64

	LeftTop  float64 // left bar height plus error extent
	RightTop float64 // right bar height plus error extent
}

// FromBars builds one-sample bars from bar-chart style center/height/yerr vectors.
// A nil yerr means the bars have no error bars.
func FromBars(center, height, yerr []float64) []Bar {
	bars := make([]Bar, len(center))
	for i := range center {
		top := height[i]
		if yerr != nil {
			top += yerr[i]
		}
		bars[i] = Bar{Samples: []Sample{{X: center[i], Y: height[i], YErrTop: top}}}
	}
	return bars
}
