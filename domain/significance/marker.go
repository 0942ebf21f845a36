package significance

import "sort"

// Marker is the display string drawn above a compared pair of bars
type Marker string

// Markers drawn for each significance level, most significant first
const (
	MarkerThreeStars     Marker = "***"
	MarkerTwoStars       Marker = "**"
	MarkerOneStar        Marker = "*"
	MarkerDagger         Marker = "†"
	MarkerNotSignificant Marker = "n.s."
)

// Thresholds are the ascending upper bin edges used by Classify.
// A p-value equal to an edge falls into the more significant bin.
var Thresholds = []float64{0.001, 0.01, 0.05, 0.10}

// Markers is ordered from most to least significant; Markers[i] is the
// marker for bin i of Thresholds, the last entry covers p > 0.10.
var Markers = []Marker{
	MarkerThreeStars,
	MarkerTwoStars,
	MarkerOneStar,
	MarkerDagger,
	MarkerNotSignificant,
}

// Classify maps a single p-value to its significance marker
func Classify(p float64) Marker {
	// SearchFloat64s returns the first edge that p does not exceed,
	// or len(Thresholds) when p is above every edge (or NaN).
	return Markers[sort.SearchFloat64s(Thresholds, p)]
}

// String returns the display text
func (m Marker) String() string {
	return string(m)
}

// Significant reports whether the marker is one of the asterisk levels (p <= 0.05)
func (m Marker) Significant() bool {
	switch m {
	case MarkerThreeStars, MarkerTwoStars, MarkerOneStar:
		return true
	}
	return false
}
