// Package scalar defines the numeric contract the camera projection kernels
// are written against. A kernel written once over Number can be evaluated
// with plain float64 values (Float) or with derivative-carrying dual numbers
// (Dual), so the same code serves both verification and gradient-based
// optimization.
package scalar

import "math"

// Number is the constraint every projection kernel is generic over. It covers
// field arithmetic, the transcendental functions the camera models need, and
// ordering. Real returns the plain-number view of the value; kernels use it
// only inside branch predicates so that plain and derivative-carrying
// evaluation always take the same branch.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T

	Abs() T
	Sqrt() T
	Atan() T
	Tan() T
	Sin() T
	Cos() T

	Less(T) bool
	Real() float64
	// FromFloat constructs a constant of the same concrete type. It may be
	// called on any value, including the zero value.
	FromFloat(float64) T
}

// Float is the plain float64 realization of Number.
type Float float64

// Add returns f + g.
func (f Float) Add(g Float) Float { return f + g }

// Sub returns f - g.
func (f Float) Sub(g Float) Float { return f - g }

// Mul returns f * g.
func (f Float) Mul(g Float) Float { return f * g }

// Div returns f / g.
func (f Float) Div(g Float) Float { return f / g }

// Abs returns |f|.
func (f Float) Abs() Float { return Float(math.Abs(float64(f))) }

// Sqrt returns the square root of f.
func (f Float) Sqrt() Float { return Float(math.Sqrt(float64(f))) }

// Atan returns the arctangent of f.
func (f Float) Atan() Float { return Float(math.Atan(float64(f))) }

// Tan returns the tangent of f.
func (f Float) Tan() Float { return Float(math.Tan(float64(f))) }

// Sin returns the sine of f.
func (f Float) Sin() Float { return Float(math.Sin(float64(f))) }

// Cos returns the cosine of f.
func (f Float) Cos() Float { return Float(math.Cos(float64(f))) }

// Less reports whether f < g.
func (f Float) Less(g Float) bool { return f < g }

// Real returns f as a float64.
func (f Float) Real() float64 { return float64(f) }

// FromFloat returns v as a Float.
func (Float) FromFloat(v float64) Float { return Float(v) }
