package camera

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestVerifyParams(t *testing.T) {
	for _, id := range allModelIDs {
		name, err := ModelIDToName(id)
		test.That(t, err, test.ShouldBeNil)
		t.Run(name, func(t *testing.T) {
			numParams, err := NumParams(id)
			test.That(t, err, test.ShouldBeNil)

			test.That(t, VerifyParams(id, make([]float64, numParams)), test.ShouldBeNil)
			for _, n := range []int{0, numParams - 1, numParams + 1, numParams + 5} {
				if n == numParams {
					continue
				}
				err := VerifyParams(id, make([]float64, n))
				test.That(t, errors.Is(err, ErrInvalidParams), test.ShouldBeTrue)
			}
		})
	}

	err := VerifyParams(ModelID(42), nil)
	test.That(t, errors.Is(err, ErrModelNotFound), test.ShouldBeTrue)
}

func TestHasBogusPrincipalPoint(t *testing.T) {
	params := []float64{500, 500, 500}

	bogus, err := HasBogusPrincipalPoint(SimplePinhole, params, 1000, 1000)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeFalse)

	// Boundaries are inclusive.
	for _, pp := range [][2]float64{{0, 0}, {1000, 1000}, {0, 1000}} {
		bogus, err = HasBogusPrincipalPoint(SimplePinhole, []float64{500, pp[0], pp[1]}, 1000, 1000)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, bogus, test.ShouldBeFalse)
	}

	for _, pp := range [][2]float64{{-1, 500}, {500, -1}, {1001, 500}, {500, 1001}} {
		bogus, err = HasBogusPrincipalPoint(SimplePinhole, []float64{500, pp[0], pp[1]}, 1000, 1000)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, bogus, test.ShouldBeTrue)
	}
}

func TestHasBogusFocalLength(t *testing.T) {
	const (
		minRatio = 0.1
		maxRatio = 2.5
	)

	bogus, err := HasBogusFocalLength(Pinhole, []float64{500, 500, 500, 500}, 1000, 1000, minRatio, maxRatio)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeFalse)

	// Ratio 0.05 is below the minimum.
	bogus, err = HasBogusFocalLength(Pinhole, []float64{50, 500, 500, 500}, 1000, 1000, minRatio, maxRatio)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeTrue)

	// Either focal axis alone can be bogus.
	bogus, err = HasBogusFocalLength(Pinhole, []float64{500, 5000, 500, 500}, 1000, 1000, minRatio, maxRatio)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeTrue)

	// The larger image dimension is the reference.
	bogus, err = HasBogusFocalLength(SimplePinhole, []float64{150, 250, 500}, 500, 1500, minRatio, maxRatio)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeFalse)
}

func TestHasBogusExtraParams(t *testing.T) {
	bogus, err := HasBogusExtraParams(SimpleRadial, []float64{500, 500, 500, 0.5}, 1.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeFalse)

	bogus, err = HasBogusExtraParams(SimpleRadial, []float64{500, 500, 500, -1.5}, 1.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeTrue)

	// Pinhole models have no distortion coefficients to flag.
	bogus, err = HasBogusExtraParams(SimplePinhole, []float64{500, 500, 500}, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeFalse)
}

func TestHasBogusParams(t *testing.T) {
	const (
		minRatio = 0.1
		maxRatio = 2.5
		maxExtra = 1.0
	)

	bogus, err := HasBogusParams(SimpleRadial, []float64{500, 500, 500, 0.1}, 1000, 1000, minRatio, maxRatio, maxExtra)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bogus, test.ShouldBeFalse)

	for _, params := range [][]float64{
		{500, -1, 500, 0.1},  // principal point outside
		{50, 500, 500, 0.1},  // focal ratio too small
		{500, 500, 500, 1.5}, // distortion out of range
	} {
		bogus, err = HasBogusParams(SimpleRadial, params, 1000, 1000, minRatio, maxRatio, maxExtra)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, bogus, test.ShouldBeTrue)
	}
}

func TestImageToWorldThreshold(t *testing.T) {
	threshold, err := ImageToWorldThreshold(SimplePinhole, []float64{1000, 500, 500}, 2.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, threshold, test.ShouldAlmostEqual, 0.002, 1e-12)

	// Mean of the two focal axes.
	threshold, err = ImageToWorldThreshold(Pinhole, []float64{900, 1100, 500, 500}, 2.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, threshold, test.ShouldAlmostEqual, 0.002, 1e-12)
}
