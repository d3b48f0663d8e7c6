// Package expression compiles and evaluates plotter formulas.
//
// A formula is free-form text in the variable x (and y for surfaces) using a
// closed vocabulary:
//   - Literals: 3, .3, 1.5e-3, 1E3
//   - Constants: pi, e
//   - Unary functions: sin, cos, tan, arcsin, arccos, arctan, sinh, cosh,
//     tanh, arcsinh, arccosh, arctanh, exp, log, log10, log2, sqrt, abs,
//     sign, sinc, floor, ceil
//   - Binary functions: arctan2, hypot
//   - Operators: ** (power), unary +/-, * / // %, + -, and comparisons
//     < <= > >= == != which yield 1 or 0
//
// Several comma separated formulas form a tuple of output channels, used
// for parametric plots ("sin(3*x),cos(5*x)").
//
// Text is tokenized and parsed into an AST once by Compile; the resulting
// Program is evaluated by a tree-walking interpreter over Values, a tagged
// union of Scalar, Sequence and Grid operands with numpy-style broadcasting.
// Nothing in the grammar can reach the host environment.
//
// Errors are reported as *Error values whose class is one of ErrSyntax,
// ErrName or ErrType:
//
//	prog, err := expression.Compile("exp(-x**2)*sin(pi*x*4)")
//	if errors.Is(err, expression.ErrSyntax) {
//	    ...
//	}
//	out, err := prog.Eval(expression.XEnv(expression.Sequence(xs)))
package expression
