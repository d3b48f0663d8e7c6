package plotting

import (
	"strconv"
)

// PlotState is the immutable view the UI holds between redraws. Every
// transform returns a new value.
type PlotState struct {
	Expression string  `json:"expression"`
	Start      float64 `json:"start"`
	Stop       float64 `json:"stop"`
	Resolution int     `json:"resolution"`
	Polar      bool    `json:"polar"`
}

// Span returns stop - start
func (s PlotState) Span() float64 { return s.Stop - s.Start }

// ZoomIn narrows the interval by a third of the span on each side
func (s PlotState) ZoomIn() PlotState {
	span := s.Span()
	s.Start += span / 3
	s.Stop -= span / 3
	return s
}

// ZoomOut widens the interval by a full span on each side
func (s PlotState) ZoomOut() PlotState {
	span := s.Span()
	s.Start -= span
	s.Stop += span
	return s
}

// PanLeft shifts the interval left by a quarter span
func (s PlotState) PanLeft() PlotState {
	span := s.Span()
	s.Start -= span / 4
	s.Stop -= span / 4
	return s
}

// PanRight shifts the interval right by a quarter span
func (s PlotState) PanRight() PlotState {
	span := s.Span()
	s.Start += span / 4
	s.Stop += span / 4
	return s
}

// WithExpression replaces the expression text wholesale
func (s PlotState) WithExpression(text string) PlotState {
	s.Expression = text
	return s
}

// Apply runs a named view transform
func (s PlotState) Apply(action string) (PlotState, bool) {
	switch action {
	case "zoom_in":
		return s.ZoomIn(), true
	case "zoom_out":
		return s.ZoomOut(), true
	case "pan_left":
		return s.PanLeft(), true
	case "pan_right":
		return s.PanRight(), true
	default:
		return s, false
	}
}

// Request converts the state into a sampling request. Bounds are printed
// with full round-trip precision.
func (s PlotState) Request() Request {
	return Request{
		Expression: s.Expression,
		Start:      strconv.FormatFloat(s.Start, 'g', -1, 64),
		Stop:       strconv.FormatFloat(s.Stop, 'g', -1, 64),
		Resolution: s.Resolution,
		Polar:      s.Polar,
	}
}
