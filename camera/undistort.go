package camera

import (
	"math"

	"github.com/sfmkit/camgeom/scalar"
)

// Newton iteration parameters. 100 iterations with numerical central
// differences are enough even for camera models with higher order terms.
const (
	undistortMaxIterations = 100
	undistortMaxStepNorm   = 1e-10
	undistortRelStepSize   = 1e-6
)

// iterativeUndistortion inverts a distortion function without a closed-form
// inverse. Given a distorted point (u0, v0) it finds (u, v) such that
// (u, v) + distortion(extraParams, u, v) == (u0, v0) by Newton iteration,
// estimating the 2x2 Jacobian with central finite differences.
//
// The iteration starts at the distorted point, stops once the squared update
// norm falls below undistortMaxStepNorm, and otherwise returns the final
// iterate after undistortMaxIterations unconditionally; non-convergence is
// not signaled, matching the behavior optimizers rely on when evaluating
// residuals near the edge of a model's operating range.
func iterativeUndistortion[T scalar.Number[T]](
	distortion func(extraParams []T, u, v T) (T, T),
	extraParams []T,
	u0, v0 T,
) (T, T) {
	u, v := u0, v0

	for i := 0; i < undistortMaxIterations; i++ {
		stepU := u.FromFloat(math.Max(machineEpsilon, math.Abs(undistortRelStepSize*u.Real())))
		stepV := v.FromFloat(math.Max(machineEpsilon, math.Abs(undistortRelStepSize*v.Real())))
		two := u.FromFloat(2)

		du, dv := distortion(extraParams, u, v)
		duUb, dvUb := distortion(extraParams, u.Sub(stepU), v)
		duUf, dvUf := distortion(extraParams, u.Add(stepU), v)
		duVb, dvVb := distortion(extraParams, u, v.Sub(stepV))
		duVf, dvVf := distortion(extraParams, u, v.Add(stepV))

		one := u.FromFloat(1)
		j00 := one.Add(duUf.Sub(duUb).Div(two.Mul(stepU)))
		j01 := duVf.Sub(duVb).Div(two.Mul(stepV))
		j10 := dvUf.Sub(dvUb).Div(two.Mul(stepU))
		j11 := one.Add(dvVf.Sub(dvVb).Div(two.Mul(stepV)))

		fu := u.Add(du).Sub(u0)
		fv := v.Add(dv).Sub(v0)

		det := j00.Mul(j11).Sub(j01.Mul(j10))
		if det.Real() == 0 {
			break
		}
		stepX := j11.Mul(fu).Sub(j01.Mul(fv)).Div(det)
		stepY := j00.Mul(fv).Sub(j10.Mul(fu)).Div(det)

		u = u.Sub(stepX)
		v = v.Sub(stepY)
		if stepX.Mul(stepX).Add(stepY.Mul(stepY)).Real() < undistortMaxStepNorm {
			break
		}
	}

	return u, v
}
