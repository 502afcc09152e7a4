package scalar

import "gonum.org/v1/gonum/num/dual"

// Dual is the derivative-carrying realization of Number, backed by gonum's
// dual numbers. Arithmetic and the transcendental functions propagate one
// partial derivative through the computation, which is what bundle
// adjustment needs to evaluate projection residual Jacobians.
//
// Ordering and Real read only the real part, so a kernel branching on a
// Dual takes the same branch it would take on the equivalent Float.
type Dual struct {
	dual.Number
}

// Const returns a Dual with value v and zero derivative.
func Const(v float64) Dual {
	return Dual{dual.Number{Real: v}}
}

// Var returns a Dual with value v seeded as the differentiation variable.
func Var(v float64) Dual {
	return Dual{dual.Number{Real: v, Emag: 1}}
}

// Deriv returns the derivative carried by d.
func (d Dual) Deriv() float64 { return d.Emag }

// Add returns d + e.
func (d Dual) Add(e Dual) Dual { return Dual{dual.Add(d.Number, e.Number)} }

// Sub returns d - e.
func (d Dual) Sub(e Dual) Dual { return Dual{dual.Sub(d.Number, e.Number)} }

// Mul returns d * e.
func (d Dual) Mul(e Dual) Dual { return Dual{dual.Mul(d.Number, e.Number)} }

// Div returns d / e.
func (d Dual) Div(e Dual) Dual { return Dual{dual.Mul(d.Number, dual.Inv(e.Number))} }

// Abs returns |d|.
func (d Dual) Abs() Dual { return Dual{dual.Abs(d.Number)} }

// Sqrt returns the square root of d.
func (d Dual) Sqrt() Dual { return Dual{dual.Sqrt(d.Number)} }

// Atan returns the arctangent of d.
func (d Dual) Atan() Dual { return Dual{dual.Atan(d.Number)} }

// Tan returns the tangent of d.
func (d Dual) Tan() Dual { return Dual{dual.Tan(d.Number)} }

// Sin returns the sine of d.
func (d Dual) Sin() Dual { return Dual{dual.Sin(d.Number)} }

// Cos returns the cosine of d.
func (d Dual) Cos() Dual { return Dual{dual.Cos(d.Number)} }

// Less reports whether the real part of d is less than that of e.
func (d Dual) Less(e Dual) bool { return d.Number.Real < e.Number.Real }

// Real returns the real part of d.
func (d Dual) Real() float64 { return d.Number.Real }

// FromFloat returns v as a constant Dual.
func (Dual) FromFloat(v float64) Dual { return Const(v) }
