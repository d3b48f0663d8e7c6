package plotting

import (
	"errors"
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/floats"

	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
)

// ErrInterval is returned when a bound cannot be evaluated
var ErrInterval = errors.New("plotting: interval not correct")

// Limits bounds the accepted resolution
type Limits struct {
	MinResolution int
	MaxResolution int
}

// DefaultLimits returns the documented 100..10000 range
func DefaultLimits() Limits {
	return Limits{MinResolution: 100, MaxResolution: 10000}
}

// Request is raw input from the UI: expression text, bounds as
// mini-expressions ("-pi*20") and the requested sample count
type Request struct {
	Expression string `json:"expression"`
	Start      string `json:"start"`
	Stop       string `json:"stop"`
	Resolution int    `json:"resolution"`
	Polar      bool   `json:"polar"`
}

// Dataset is the sampled result of one evaluation. Constant channels are
// already broadcast to the domain shape.
type Dataset struct {
	Expression string
	Mode       Mode
	Start      float64
	Stop       float64
	Resolution int
	Domain     Domain
	Channels   []expression.Value
	Labels     []string
}

// Extent is the finite value range of a channel
type Extent struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid bool    `json:"valid"`
}

// Bounds evaluates both interval mini-expressions. Each must yield a
// finite number.
func Bounds(start, stop string) (float64, float64, error) {
	a, err := bound("start", start)
	if err != nil {
		return 0, 0, err
	}
	b, err := bound("stop", stop)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func bound(name, text string) (float64, error) {
	v, err := expression.EvalConstant(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInterval, name, text, err)
	}
	if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not finite", ErrInterval, name, text)
	}
	return v, nil
}

// Sample runs the full pipeline: bounds, resolution check, compile,
// classify, build domain, evaluate. On any error nothing is returned, so a
// caller keeps its previous dataset.
func Sample(req Request, lim Limits) (*Dataset, error) {
	start, stop, err := Bounds(req.Start, req.Stop)
	if err != nil {
		return nil, err
	}
	if err := ValidateResolution(req.Resolution, lim.MinResolution, lim.MaxResolution); err != nil {
		return nil, err
	}

	prog, err := expression.Compile(req.Expression)
	if err != nil {
		return nil, err
	}
	mode, err := Classify(prog, Overrides{Polar: req.Polar})
	if err != nil {
		return nil, err
	}

	domain := BuildDomain(start, stop, req.Resolution, mode)
	channels, err := Evaluate(prog, domain)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Expression: req.Expression,
		Mode:       mode,
		Start:      start,
		Stop:       stop,
		Resolution: req.Resolution,
		Domain:     domain,
		Channels:   channels,
		Labels:     labels(prog, mode),
	}, nil
}

// Evaluate evaluates prog over domain and broadcasts constant channels to
// the domain shape
func Evaluate(prog *expression.Program, domain Domain) ([]expression.Value, error) {
	env := domain.Env()
	out, err := prog.Eval(env)
	if err != nil {
		return nil, err
	}

	like := expression.Sequence(domain.Axis)
	if domain.Mode.IsSurface() && domain.X != nil {
		like = expression.Grid(domain.X)
	}
	for i, v := range out {
		out[i] = v.BroadcastTo(like)
	}
	return out, nil
}

func labels(prog *expression.Program, mode Mode) []string {
	switch mode {
	case ModeSingle:
		return []string{"x", "f(x)"}
	case ModePolar:
		return []string{"x", "r(x)"}
	case ModeSurface:
		return []string{"x", "y", prog.Source()}
	default:
		out := make([]string, prog.Channels())
		for i := range out {
			out[i] = prog.ChannelText(i)
		}
		return out
	}
}

// Title renders the plot heading the way the renderer shows it
func (d *Dataset) Title() string {
	switch d.Mode {
	case ModeSingle:
		return "f(x)=" + d.Expression
	case ModePolar:
		return "r(x)=" + d.Expression
	case ModeParametric2D:
		return d.Labels[1] + " vs " + d.Labels[0]
	default:
		return d.Expression
	}
}

// Extents returns the finite min/max of every channel, ignoring NaN and Inf
func (d *Dataset) Extents() []Extent {
	out := make([]Extent, len(d.Channels))
	for i, ch := range d.Channels {
		out[i] = extent(ch.Floats())
	}
	return out
}

func extent(values []float64) Extent {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !gomath.IsNaN(v) && !gomath.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return Extent{}
	}
	return Extent{Min: floats.Min(finite), Max: floats.Max(finite), Valid: true}
}
