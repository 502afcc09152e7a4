package camera

import (
	"testing"

	"go.viam.com/test"

	"github.com/sfmkit/camgeom/scalar"
)

// Representative in-range calibrations for an 800x600 image, one per model.
var kernelTestCases = []struct {
	model  ModelID
	params []float64
}{
	{SimplePinhole, []float64{655.5, 400, 300}},
	{Pinhole, []float64{651.1, 655.5, 400, 300}},
	{SimpleRadial, []float64{655.5, 400, 300, -0.045}},
	{Radial, []float64{655.5, 400, 300, -0.045, 0.012}},
	{OpenCV, []float64{651.1, 655.5, 400, 300, -0.047, 0.011, -0.001, 0.001}},
	{OpenCVFisheye, []float64{651.1, 655.5, 400, 300, -0.047, 0.011, 0.001, 0.0005}},
	{FullOpenCV, []float64{651.1, 655.5, 400, 300, -0.047, 0.011, -0.001, 0.001, 0.001, 0.0005, -0.0003, 0.0001}},
	{FOV, []float64{651.1, 655.5, 400, 300, 0.9}},
	{SimpleRadialFisheye, []float64{655.5, 400, 300, -0.045}},
	{RadialFisheye, []float64{655.5, 400, 300, -0.045, 0.012}},
	{ThinPrismFisheye, []float64{651.1, 655.5, 400, 300, -0.047, 0.011, 0.0005, -0.0005, 0.001, 0.0005, -0.0007, 0.0003}},
}

const (
	testImageWidth  = 800
	testImageHeight = 600
)

func TestProjectUnprojectRoundTrip(t *testing.T) {
	for _, tc := range kernelTestCases {
		name, err := ModelIDToName(tc.model)
		test.That(t, err, test.ShouldBeNil)
		t.Run(name, func(t *testing.T) {
			params := floatParams(tc.params)
			for px := 0.5; px < testImageWidth; px += 50 {
				for py := 0.5; py < testImageHeight; py += 50 {
					u, v, err := Unproject(tc.model, params, scalar.Float(px), scalar.Float(py))
					test.That(t, err, test.ShouldBeNil)
					x, y, err := Project(tc.model, params, u, v)
					test.That(t, err, test.ShouldBeNil)
					test.That(t, float64(x), test.ShouldAlmostEqual, px, 1e-6)
					test.That(t, float64(y), test.ShouldAlmostEqual, py, 1e-6)
				}
			}
		})
	}
}

func TestPinholeIsAffineOnly(t *testing.T) {
	// The distortion-free models must reduce to the plain affine transform.
	params := []scalar.Float{655.5, 400, 300}
	for u := -0.6; u <= 0.6; u += 0.2 {
		for v := -0.4; v <= 0.4; v += 0.2 {
			x, y, err := Project(SimplePinhole, params, scalar.Float(u), scalar.Float(v))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, float64(x), test.ShouldEqual, 655.5*u+400)
			test.That(t, float64(y), test.ShouldEqual, 655.5*v+300)
		}
	}

	params = []scalar.Float{651.1, 655.5, 400, 300}
	x, y, err := Project(Pinhole, params, 0.25, -0.125)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, float64(x), test.ShouldEqual, 651.1*0.25+400)
	test.That(t, float64(y), test.ShouldEqual, 655.5*-0.125+300)
}

func TestFisheyeCenterIsIdentity(t *testing.T) {
	// At r ~ 0 the equidistant mapping must degrade to the identity so the
	// principal ray projects exactly to the principal point.
	for _, id := range []ModelID{OpenCVFisheye, SimpleRadialFisheye, RadialFisheye, ThinPrismFisheye} {
		name, err := ModelIDToName(id)
		test.That(t, err, test.ShouldBeNil)
		t.Run(name, func(t *testing.T) {
			params, err := InitializeParams(id, 650, testImageWidth, testImageHeight)
			test.That(t, err, test.ShouldBeNil)
			x, y, err := Project(id, floatParams(params), scalar.Float(0), scalar.Float(0))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, float64(x), test.ShouldEqual, 400.0)
			test.That(t, float64(y), test.ShouldEqual, 300.0)
		})
	}
}

func TestFOVClosedFormInverse(t *testing.T) {
	// Undistortion composed with distortion must be the identity in every
	// branch: the generic path, the small-omega expansion, and the
	// small-radius expansion.
	cases := []struct {
		name  string
		omega float64
		u, v  float64
	}{
		{"generic", 0.9, 0.35, -0.2},
		{"small_omega", 0.005, 0.35, -0.2},
		{"small_radius", 0.9, 0.004, -0.003},
		{"small_omega_and_radius", 0.005, 0.004, -0.003},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ep := []scalar.Float{scalar.Float(tc.omega)}
			du, dv := fovDistortion(ep, scalar.Float(tc.u), scalar.Float(tc.v))
			uu, vv := fovUndistortion(ep, du, dv)
			test.That(t, float64(uu), test.ShouldAlmostEqual, tc.u, 1e-6)
			test.That(t, float64(vv), test.ShouldAlmostEqual, tc.v, 1e-6)
		})
	}
}

func TestProjectDualGradient(t *testing.T) {
	// Projecting with a seeded dual number must carry d(pixel)/d(ray)
	// matching central finite differences of the plain evaluation.
	const h = 1e-7
	for _, tc := range kernelTestCases {
		name, err := ModelIDToName(tc.model)
		test.That(t, err, test.ShouldBeNil)
		t.Run(name, func(t *testing.T) {
			u, v := 0.31, -0.17
			dualParams := make([]scalar.Dual, len(tc.params))
			for i, p := range tc.params {
				dualParams[i] = scalar.Const(p)
			}

			x, y, err := Project(tc.model, dualParams, scalar.Var(u), scalar.Const(v))
			test.That(t, err, test.ShouldBeNil)

			params := floatParams(tc.params)
			xf, yf, err := Project(tc.model, params, scalar.Float(u+h), scalar.Float(v))
			test.That(t, err, test.ShouldBeNil)
			xb, yb, err := Project(tc.model, params, scalar.Float(u-h), scalar.Float(v))
			test.That(t, err, test.ShouldBeNil)

			test.That(t, x.Deriv(), test.ShouldAlmostEqual, float64(xf-xb)/(2*h), 1e-3)
			test.That(t, y.Deriv(), test.ShouldAlmostEqual, float64(yf-yb)/(2*h), 1e-3)

			// The dual's value part must match the plain evaluation exactly.
			x0, y0, err := Project(tc.model, params, scalar.Float(u), scalar.Float(v))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, x.Real(), test.ShouldAlmostEqual, float64(x0), 1e-9)
			test.That(t, y.Real(), test.ShouldAlmostEqual, float64(y0), 1e-9)
		})
	}
}

func TestUnprojectWithDuals(t *testing.T) {
	// The iterative solver runs under dual numbers too; the value part must
	// agree with the plain unprojection.
	for _, tc := range kernelTestCases {
		name, err := ModelIDToName(tc.model)
		test.That(t, err, test.ShouldBeNil)
		t.Run(name, func(t *testing.T) {
			dualParams := make([]scalar.Dual, len(tc.params))
			for i, p := range tc.params {
				dualParams[i] = scalar.Const(p)
			}
			ud, vd, err := Unproject(tc.model, dualParams, scalar.Var(512.5), scalar.Const(384.5))
			test.That(t, err, test.ShouldBeNil)

			uf, vf, err := Unproject(tc.model, floatParams(tc.params), scalar.Float(512.5), scalar.Float(384.5))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ud.Real(), test.ShouldAlmostEqual, float64(uf), 1e-9)
			test.That(t, vd.Real(), test.ShouldAlmostEqual, float64(vf), 1e-9)
		})
	}
}
