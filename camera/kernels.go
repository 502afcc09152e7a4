package camera

import "github.com/sfmkit/camgeom/scalar"

// machineEpsilon is the spacing between 1.0 and the next larger float64.
// Radius guards compare against it so the equidistant fisheye mapping
// degrades to the identity instead of dividing by zero at the image center.
const machineEpsilon = 0x1p-52

// Simple pinhole: f, cx, cy. No distortion.

func simplePinholeProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	return f.Mul(u).Add(c1), f.Mul(v).Add(c2)
}

func simplePinholeUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	return x.Sub(c1).Div(f), y.Sub(c2).Div(f)
}

// Pinhole: fx, fy, cx, cy. No distortion.

func pinholeProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	return f1.Mul(u).Add(c1), f2.Mul(v).Add(c2)
}

func pinholeUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	return x.Sub(c1).Div(f1), y.Sub(c2).Div(f2)
}

// Simple radial: f, cx, cy, k.

func simpleRadialDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	k := ep[0]
	r2 := u.Mul(u).Add(v.Mul(v))
	radial := k.Mul(r2)
	return u.Mul(radial), v.Mul(radial)
}

func simpleRadialProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	du, dv := simpleRadialDistortion(p[3:], u, v)
	return f.Mul(u.Add(du)).Add(c1), f.Mul(v.Add(dv)).Add(c2)
}

func simpleRadialUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	u := x.Sub(c1).Div(f)
	v := y.Sub(c2).Div(f)
	return iterativeUndistortion(simpleRadialDistortion[T], p[3:], u, v)
}

// Radial: f, cx, cy, k1, k2.

func radialDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	k1, k2 := ep[0], ep[1]
	r2 := u.Mul(u).Add(v.Mul(v))
	radial := k1.Mul(r2).Add(k2.Mul(r2).Mul(r2))
	return u.Mul(radial), v.Mul(radial)
}

func radialProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	du, dv := radialDistortion(p[3:], u, v)
	return f.Mul(u.Add(du)).Add(c1), f.Mul(v.Add(dv)).Add(c2)
}

func radialUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	u := x.Sub(c1).Div(f)
	v := y.Sub(c2).Div(f)
	return iterativeUndistortion(radialDistortion[T], p[3:], u, v)
}

// OpenCV: fx, fy, cx, cy, k1, k2, p1, p2.

func opencvDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	k1, k2, p1, p2 := ep[0], ep[1], ep[2], ep[3]
	two := u.FromFloat(2)

	u2 := u.Mul(u)
	uv := u.Mul(v)
	v2 := v.Mul(v)
	r2 := u2.Add(v2)
	radial := k1.Mul(r2).Add(k2.Mul(r2).Mul(r2))
	du := u.Mul(radial).Add(two.Mul(p1).Mul(uv)).Add(p2.Mul(r2.Add(two.Mul(u2))))
	dv := v.Mul(radial).Add(two.Mul(p2).Mul(uv)).Add(p1.Mul(r2.Add(two.Mul(v2))))
	return du, dv
}

func opencvProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	du, dv := opencvDistortion(p[4:], u, v)
	return f1.Mul(u.Add(du)).Add(c1), f2.Mul(v.Add(dv)).Add(c2)
}

func opencvUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	u := x.Sub(c1).Div(f1)
	v := y.Sub(c2).Div(f2)
	return iterativeUndistortion(opencvDistortion[T], p[4:], u, v)
}

// OpenCV fisheye: fx, fy, cx, cy, k1, k2, k3, k4. The distortion is the
// equidistant theta polynomial folded into a delta, identity at r ~ 0.

func opencvFisheyeDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	k1, k2, k3, k4 := ep[0], ep[1], ep[2], ep[3]
	one := u.FromFloat(1)

	r := u.Mul(u).Add(v.Mul(v)).Sqrt()
	if r.Real() <= machineEpsilon {
		return u.FromFloat(0), u.FromFloat(0)
	}
	theta := r.Atan()
	theta2 := theta.Mul(theta)
	theta4 := theta2.Mul(theta2)
	theta6 := theta4.Mul(theta2)
	theta8 := theta4.Mul(theta4)
	thetad := theta.Mul(one.Add(k1.Mul(theta2)).Add(k2.Mul(theta4)).Add(k3.Mul(theta6)).Add(k4.Mul(theta8)))
	return u.Mul(thetad).Div(r).Sub(u), v.Mul(thetad).Div(r).Sub(v)
}

func opencvFisheyeProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	du, dv := opencvFisheyeDistortion(p[4:], u, v)
	return f1.Mul(u.Add(du)).Add(c1), f2.Mul(v.Add(dv)).Add(c2)
}

func opencvFisheyeUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	u := x.Sub(c1).Div(f1)
	v := y.Sub(c2).Div(f2)
	return iterativeUndistortion(opencvFisheyeDistortion[T], p[4:], u, v)
}

// Full OpenCV: fx, fy, cx, cy, k1, k2, p1, p2, k3, k4, k5, k6. Rational
// radial term plus tangential distortion, expressed as an additive delta.

func fullOpencvDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	k1, k2, p1, p2 := ep[0], ep[1], ep[2], ep[3]
	k3, k4, k5, k6 := ep[4], ep[5], ep[6], ep[7]
	one := u.FromFloat(1)
	two := u.FromFloat(2)

	u2 := u.Mul(u)
	uv := u.Mul(v)
	v2 := v.Mul(v)
	r2 := u2.Add(v2)
	r4 := r2.Mul(r2)
	r6 := r4.Mul(r2)
	radial := one.Add(k1.Mul(r2)).Add(k2.Mul(r4)).Add(k3.Mul(r6)).
		Div(one.Add(k4.Mul(r2)).Add(k5.Mul(r4)).Add(k6.Mul(r6)))
	du := u.Mul(radial).Add(two.Mul(p1).Mul(uv)).Add(p2.Mul(r2.Add(two.Mul(u2)))).Sub(u)
	dv := v.Mul(radial).Add(two.Mul(p2).Mul(uv)).Add(p1.Mul(r2.Add(two.Mul(v2)))).Sub(v)
	return du, dv
}

func fullOpencvProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	du, dv := fullOpencvDistortion(p[4:], u, v)
	return f1.Mul(u.Add(du)).Add(c1), f2.Mul(v.Add(dv)).Add(c2)
}

func fullOpencvUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	u := x.Sub(c1).Div(f1)
	v := y.Sub(c2).Div(f2)
	return iterativeUndistortion(fullOpencvDistortion[T], p[4:], u, v)
}

// FOV: fx, fy, cx, cy, omega. The distortion has a closed-form inverse, so
// no iterative solving is needed. Both directions case-split on omega and on
// the radius with second-order Taylor expansions to avoid 0/0.

// fovBranchEpsilon bounds the omega^2 and radius^2 neighborhoods in which
// the FOV factor switches to its Taylor expansion.
const fovBranchEpsilon = 1e-4

func fovDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	omega := ep[0]
	one := u.FromFloat(1)
	two := u.FromFloat(2)
	three := u.FromFloat(3)

	radius2 := u.Mul(u).Add(v.Mul(v))
	omega2 := omega.Mul(omega)

	var factor T
	switch {
	case omega2.Real() < fovBranchEpsilon:
		// Second-order Taylor of atan(2 r tan(omega/2)) / (r omega) in omega.
		factor = omega2.Mul(radius2).Div(three).Sub(omega2.Div(u.FromFloat(12))).Add(one)
	case radius2.Real() < fovBranchEpsilon:
		// Second-order Taylor of the same factor in the radius.
		tanHalfOmega := omega.Div(two).Tan()
		factor = u.FromFloat(-2).Mul(tanHalfOmega).
			Mul(u.FromFloat(4).Mul(radius2).Mul(tanHalfOmega).Mul(tanHalfOmega).Sub(three)).
			Div(three.Mul(omega))
	default:
		radius := radius2.Sqrt()
		numerator := radius.Mul(two).Mul(omega.Div(two).Tan()).Atan()
		factor = numerator.Div(radius.Mul(omega))
	}
	return u.Mul(factor), v.Mul(factor)
}

func fovUndistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	omega := ep[0]
	one := u.FromFloat(1)
	two := u.FromFloat(2)
	three := u.FromFloat(3)

	radius2 := u.Mul(u).Add(v.Mul(v))
	omega2 := omega.Mul(omega)

	var factor T
	switch {
	case omega2.Real() < fovBranchEpsilon:
		// Second-order Taylor of tan(r omega) / (2 r tan(omega/2)) in omega.
		factor = omega2.Mul(radius2).Div(three).Sub(omega2.Div(u.FromFloat(12))).Add(one)
	case radius2.Real() < fovBranchEpsilon:
		// Second-order Taylor of the same factor in the radius.
		factor = omega.Mul(omega2.Mul(radius2).Add(three)).
			Div(u.FromFloat(6).Mul(omega.Div(two).Tan()))
	default:
		radius := radius2.Sqrt()
		numerator := radius.Mul(omega).Tan()
		factor = numerator.Div(radius.Mul(two).Mul(omega.Div(two).Tan()))
	}
	return u.Mul(factor), v.Mul(factor)
}

func fovProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	x, y := fovDistortion(p[4:], u, v)
	return f1.Mul(x).Add(c1), f2.Mul(y).Add(c2)
}

func fovUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	u := x.Sub(c1).Div(f1)
	v := y.Sub(c2).Div(f2)
	return fovUndistortion(p[4:], u, v)
}

// Simple radial fisheye: f, cx, cy, k.

func simpleRadialFisheyeDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	k := ep[0]
	one := u.FromFloat(1)

	r := u.Mul(u).Add(v.Mul(v)).Sqrt()
	if r.Real() <= machineEpsilon {
		return u.FromFloat(0), u.FromFloat(0)
	}
	theta := r.Atan()
	thetad := theta.Mul(one.Add(k.Mul(theta).Mul(theta)))
	return u.Mul(thetad).Div(r).Sub(u), v.Mul(thetad).Div(r).Sub(v)
}

func simpleRadialFisheyeProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	du, dv := simpleRadialFisheyeDistortion(p[3:], u, v)
	return f.Mul(u.Add(du)).Add(c1), f.Mul(v.Add(dv)).Add(c2)
}

func simpleRadialFisheyeUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	u := x.Sub(c1).Div(f)
	v := y.Sub(c2).Div(f)
	return iterativeUndistortion(simpleRadialFisheyeDistortion[T], p[3:], u, v)
}

// Radial fisheye: f, cx, cy, k1, k2.

func radialFisheyeDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	k1, k2 := ep[0], ep[1]
	one := u.FromFloat(1)

	r := u.Mul(u).Add(v.Mul(v)).Sqrt()
	if r.Real() <= machineEpsilon {
		return u.FromFloat(0), u.FromFloat(0)
	}
	theta := r.Atan()
	theta2 := theta.Mul(theta)
	theta4 := theta2.Mul(theta2)
	thetad := theta.Mul(one.Add(k1.Mul(theta2)).Add(k2.Mul(theta4)))
	return u.Mul(thetad).Div(r).Sub(u), v.Mul(thetad).Div(r).Sub(v)
}

func radialFisheyeProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	du, dv := radialFisheyeDistortion(p[3:], u, v)
	return f.Mul(u.Add(du)).Add(c1), f.Mul(v.Add(dv)).Add(c2)
}

func radialFisheyeUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f, c1, c2 := p[0], p[1], p[2]
	u := x.Sub(c1).Div(f)
	v := y.Sub(c2).Div(f)
	return iterativeUndistortion(radialFisheyeDistortion[T], p[3:], u, v)
}

// Thin-prism fisheye: fx, fy, cx, cy, k1, k2, p1, p2, k3, k4, sx1, sy1. The
// ray is first pushed through the equidistant mapping, then through a
// radial + tangential + thin-prism distortion.

func thinPrismFisheyeDistortion[T scalar.Number[T]](ep []T, u, v T) (T, T) {
	k1, k2, p1, p2 := ep[0], ep[1], ep[2], ep[3]
	k3, k4, sx1, sy1 := ep[4], ep[5], ep[6], ep[7]
	two := u.FromFloat(2)

	u2 := u.Mul(u)
	uv := u.Mul(v)
	v2 := v.Mul(v)
	r2 := u2.Add(v2)
	r4 := r2.Mul(r2)
	r6 := r4.Mul(r2)
	r8 := r6.Mul(r2)
	radial := k1.Mul(r2).Add(k2.Mul(r4)).Add(k3.Mul(r6)).Add(k4.Mul(r8))
	du := u.Mul(radial).Add(two.Mul(p1).Mul(uv)).Add(p2.Mul(r2.Add(two.Mul(u2)))).Add(sx1.Mul(r2))
	dv := v.Mul(radial).Add(two.Mul(p2).Mul(uv)).Add(p1.Mul(r2.Add(two.Mul(v2)))).Add(sy1.Mul(r2))
	return du, dv
}

func thinPrismFisheyeProject[T scalar.Number[T]](p []T, u, v T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]

	r := u.Mul(u).Add(v.Mul(v)).Sqrt()
	uu, vv := u, v
	if r.Real() > machineEpsilon {
		theta := r.Atan()
		uu = theta.Mul(u).Div(r)
		vv = theta.Mul(v).Div(r)
	}

	du, dv := thinPrismFisheyeDistortion(p[4:], uu, vv)
	return f1.Mul(uu.Add(du)).Add(c1), f2.Mul(vv.Add(dv)).Add(c2)
}

func thinPrismFisheyeUnproject[T scalar.Number[T]](p []T, x, y T) (T, T) {
	f1, f2, c1, c2 := p[0], p[1], p[2], p[3]
	u := x.Sub(c1).Div(f1)
	v := y.Sub(c2).Div(f2)
	u, v = iterativeUndistortion(thinPrismFisheyeDistortion[T], p[4:], u, v)

	// Invert the equidistant mapping: scale by sin(theta) / (theta cos(theta)).
	theta := u.Mul(u).Add(v.Mul(v)).Sqrt()
	thetaCosTheta := theta.Mul(theta.Cos())
	if thetaCosTheta.Real() > machineEpsilon {
		scale := theta.Sin().Div(thetaCosTheta)
		u = u.Mul(scale)
		v = v.Mul(scale)
	}
	return u, v
}
