package panel

import (
	"fmt"

	"sigmark/ports"
)

// DefaultFontSize is used when Label is called with a zero font size
const DefaultFontSize = 16.0

// Label anchor in panel-relative coordinates: left edge, just above the top
const (
	anchorX = 0.0
	anchorY = 1.05
)

// Label draws a short panel tag ("A", "B", ...) above the top-left corner of the panel
func Label(s ports.Surface, lbl string, fontSize float64) error {
	if fontSize == 0 {
		fontSize = DefaultFontSize
	}

	style := ports.TextStyle{
		HAlign:   ports.HAlignLeft,
		VAlign:   ports.VAlignBottom,
		FontSize: fontSize,
		Coords:   ports.AxesCoords,
	}
	if err := s.Text(anchorX, anchorY, lbl, style); err != nil {
		return fmt.Errorf("failed to draw panel label %q: %w", lbl, err)
	}
	return nil
}

// Letter returns the label for the i-th panel (0-based): A..Z, then AA, AB, ...
func Letter(i int) string {
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}
