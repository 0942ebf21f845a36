package panel

import (
	"errors"
	"testing"

	"sigmark/ports"
)

type textCall struct {
	x, y  float64
	body  string
	style ports.TextStyle
}

// stubSurface captures text calls and optionally fails them
type stubSurface struct {
	texts []textCall
	err   error
}

func (s *stubSurface) YLim() (float64, float64) { return 0, 1 }

func (s *stubSurface) Plot(xs, ys []float64, style ports.LineStyle) error { return nil }

func (s *stubSurface) Text(x, y float64, body string, style ports.TextStyle) error {
	if s.err != nil {
		return s.err
	}
	s.texts = append(s.texts, textCall{x: x, y: y, body: body, style: style})
	return nil
}

func TestLabel_FixedPanelPosition(t *testing.T) {
	for _, size := range []float64{0, 9, 16, 30} {
		s := &stubSurface{}
		if err := Label(s, "A", size); err != nil {
			t.Fatalf("Label returned error: %v", err)
		}
		if len(s.texts) != 1 {
			t.Fatalf("expected 1 text element, got %d", len(s.texts))
		}

		got := s.texts[0]
		if got.x != 0 || got.y != 1.05 {
			t.Errorf("size %v: position = (%v, %v), want (0, 1.05)", size, got.x, got.y)
		}
		if got.body != "A" {
			t.Errorf("body = %q", got.body)
		}
		if got.style.Coords != ports.AxesCoords {
			t.Error("label should use panel-relative coordinates")
		}
		if got.style.HAlign != ports.HAlignLeft || got.style.VAlign != ports.VAlignBottom {
			t.Errorf("anchor = %s/%s, want left/bottom", got.style.HAlign, got.style.VAlign)
		}
	}
}

func TestLabel_DefaultFontSize(t *testing.T) {
	s := &stubSurface{}
	_ = Label(s, "B", 0)
	if s.texts[0].style.FontSize != DefaultFontSize {
		t.Errorf("font size = %v, want %v", s.texts[0].style.FontSize, DefaultFontSize)
	}

	s = &stubSurface{}
	_ = Label(s, "B", 11)
	if s.texts[0].style.FontSize != 11 {
		t.Errorf("font size = %v, want 11", s.texts[0].style.FontSize)
	}
}

func TestLabel_SurfaceError(t *testing.T) {
	s := &stubSurface{err: errors.New("closed")}
	err := Label(s, "C", 0)
	if err == nil || !errors.Is(err, s.err) {
		t.Fatalf("expected wrapped surface error, got %v", err)
	}
}

func TestLetter(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for i, want := range cases {
		if got := Letter(i); got != want {
			t.Errorf("Letter(%d) = %q, want %q", i, got, want)
		}
	}
}
