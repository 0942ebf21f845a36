package app

import (
	"io"

	"sigmark/adapters/gochart"
	"sigmark/domain/bracket"
	"sigmark/domain/panel"
	"sigmark/internal"
	"sigmark/internal/config"
	"sigmark/internal/errors"
	"sigmark/ports"
)

var logger = internal.DefaultLogger.With("Annotator")

// Annotator draws brackets and panel labels using configured defaults
type Annotator struct {
	cfg *config.Config
}

// NewAnnotator creates an annotator; a nil config uses config.Default()
func NewAnnotator(cfg *config.Config) *Annotator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Annotator{cfg: cfg}
}

// BracketOptions returns the bracket layout derived from configuration
func (a *Annotator) BracketOptions() bracket.Options {
	return bracket.Options{
		DH:           a.cfg.Bracket.DH,
		BarH:         a.cfg.Bracket.BarH,
		FontSize:     a.cfg.Bracket.FontSize,
		MaxAsterisks: a.cfg.Bracket.MaxAsterisks,
		LineColor:    a.cfg.Bracket.LineColor,
	}
}

// Bracket annotates the comparison of bars num1 and num2 with the marker for p
func (a *Annotator) Bracket(s ports.Surface, num1, num2 int, p float64, bars []bracket.Bar) error {
	if err := bracket.Annotate(s, num1, num2, p, bars, a.BracketOptions()); err != nil {
		return errors.Wrapf(err, "bracket %d-%d", num1, num2)
	}
	return nil
}

// Panel draws lbl above the panel with the configured font size
func (a *Annotator) Panel(s ports.Surface, lbl string) error {
	if err := panel.Label(s, lbl, a.cfg.Panel.FontSize); err != nil {
		return errors.Wrapf(err, "panel %q", lbl)
	}
	return nil
}

// LabelPanels tags each surface in order with A, B, C, ...
func (a *Annotator) LabelPanels(surfaces []ports.Surface) error {
	for i, s := range surfaces {
		if err := a.Panel(s, panel.Letter(i)); err != nil {
			return err
		}
	}
	logger.Info("Labelled %d panels", len(surfaces))
	return nil
}

// Render writes a chart-backed surface using the configured size and format
func (a *Annotator) Render(s *gochart.Surface, w io.Writer) error {
	s.Resize(a.cfg.Render.Width, a.cfg.Render.Height)
	return s.Render(w, a.cfg.Render.Format)
}
