package ports

// Surface is a drawing area with a known y-axis range that annotations are appended to.
// Implementations own their coordinate transforms; callers never rely on a "current" figure.
type Surface interface {
	// YLim reports the current y-axis range in data units
	YLim() (lo, hi float64)

	// Plot appends a polyline through the given points (data coordinates)
	Plot(xs, ys []float64, style LineStyle) error

	// Text appends a text annotation anchored at (x, y)
	Text(x, y float64, body string, style TextStyle) error
}

// Coords selects the coordinate system of a text anchor
type Coords int

const (
	// DataCoords positions in axis data units
	DataCoords Coords = iota
	// AxesCoords positions relative to the panel: (0,0) bottom-left, (1,1) top-right
	AxesCoords
)

// HAlign is the horizontal anchor of a text element
type HAlign string

const (
	HAlignLeft   HAlign = "left"
	HAlignCenter HAlign = "center"
	HAlignRight  HAlign = "right"
)

// VAlign is the vertical anchor of a text element
type VAlign string

const (
	VAlignBottom VAlign = "bottom"
	VAlignCenter VAlign = "center"
	VAlignTop    VAlign = "top"
)

// TextStyle controls placement and size of a text element
type TextStyle struct {
	HAlign   HAlign
	VAlign   VAlign
	FontSize float64 // 0 means the surface default
	Coords   Coords
}

// LineStyle controls how a polyline is stroked
type LineStyle struct {
	Color string // named color ("black", "gray", ...) or "#rrggbb"; empty means black
}
