package expression

import (
	gomath "math"
	"sort"
)

// function is a vetted element-wise builtin
type function struct {
	name  string
	arity int
	fn1   func(float64) float64
	fn2   func(float64, float64) float64
}

var constants = map[string]float64{
	"pi": gomath.Pi,
	"e":  gomath.E,
}

var functions = map[string]*function{
	"sin":     unary("sin", gomath.Sin),
	"cos":     unary("cos", gomath.Cos),
	"tan":     unary("tan", gomath.Tan),
	"arcsin":  unary("arcsin", gomath.Asin),
	"arccos":  unary("arccos", gomath.Acos),
	"arctan":  unary("arctan", gomath.Atan),
	"sinh":    unary("sinh", gomath.Sinh),
	"cosh":    unary("cosh", gomath.Cosh),
	"tanh":    unary("tanh", gomath.Tanh),
	"arcsinh": unary("arcsinh", gomath.Asinh),
	"arccosh": unary("arccosh", gomath.Acosh),
	"arctanh": unary("arctanh", gomath.Atanh),
	"exp":     unary("exp", gomath.Exp),
	"log":     unary("log", gomath.Log),
	"log10":   unary("log10", gomath.Log10),
	"log2":    unary("log2", gomath.Log2),
	"sqrt":    unary("sqrt", gomath.Sqrt),
	"abs":     unary("abs", gomath.Abs),
	"floor":   unary("floor", gomath.Floor),
	"ceil":    unary("ceil", gomath.Ceil),
	"sign":    unary("sign", sign),
	"sinc":    unary("sinc", sinc),
	"arctan2": binary("arctan2", gomath.Atan2),
	"hypot":   binary("hypot", gomath.Hypot),
}

func unary(name string, fn func(float64) float64) *function {
	return &function{name: name, arity: 1, fn1: fn}
}

func binary(name string, fn func(float64, float64) float64) *function {
	return &function{name: name, arity: 2, fn2: fn}
}

// Vocabulary lists the callable function names
func Vocabulary() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Constants lists the named constants
func Constants() map[string]float64 {
	out := make(map[string]float64, len(constants))
	for k, v := range constants {
		out[k] = v
	}
	return out
}

// sign follows numpy: 0 for 0, NaN for NaN
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

// sinc is the normalized sinc, sin(pi x)/(pi x)
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := gomath.Pi * x
	return gomath.Sin(px) / px
}

// mod is floored modulo; the result takes the sign of the divisor
func mod(a, b float64) float64 {
	if b == 0 {
		return gomath.NaN()
	}
	r := gomath.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func floorDiv(a, b float64) float64 {
	return gomath.Floor(a / b)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
