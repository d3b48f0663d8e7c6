package plotting

import (
	"errors"
	"fmt"

	"github.com/GriffinCanCode/plotter/internal/providers/math/expression"
)

// Mode is the geometric plot kind
type Mode string

const (
	ModeSingle       Mode = "single"
	ModePolar        Mode = "polar"
	ModeParametric2D Mode = "parametric2d"
	ModeParametric3D Mode = "parametric3d"
	ModeSurface      Mode = "surface"
)

// ErrUnsupportedChannels is returned for four or more comma separated outputs
var ErrUnsupportedChannels = errors.New("plotting: at most 3 comma separated expressions are supported")

// Overrides are user toggles that the expression text cannot express
type Overrides struct {
	Polar bool `json:"polar"`
}

// IsSurface reports whether the mode samples a 2D grid
func (m Mode) IsSurface() bool { return m == ModeSurface }

// Channels returns the number of outputs the mode consumes
func (m Mode) Channels() int {
	switch m {
	case ModeParametric2D:
		return 2
	case ModeParametric3D:
		return 3
	default:
		return 1
	}
}

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	switch m {
	case ModeSingle, ModePolar, ModeParametric2D, ModeParametric3D, ModeSurface:
		return true
	}
	return false
}

// Classify derives the plot mode of a compiled expression.
//
// A reference to y forces surface mode regardless of the channel count.
// Otherwise one channel is a single curve (polar when overridden), two are
// a 2D parametric curve and three a 3D line.
func Classify(prog *expression.Program, o Overrides) (Mode, error) {
	if prog.Uses("y") {
		return ModeSurface, nil
	}

	switch prog.Channels() {
	case 1:
		if o.Polar {
			return ModePolar, nil
		}
		return ModeSingle, nil
	case 2:
		return ModeParametric2D, nil
	case 3:
		return ModeParametric3D, nil
	default:
		return "", fmt.Errorf("%w (got %d)", ErrUnsupportedChannels, prog.Channels())
	}
}

// ClassifyText compiles text and classifies it
func ClassifyText(text string, o Overrides) (Mode, error) {
	prog, err := expression.Compile(text)
	if err != nil {
		return "", err
	}
	return Classify(prog, o)
}
