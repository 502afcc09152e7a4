// Package camera implements the catalogue of parametric camera projection
// models used by the reconstruction pipeline: forward projection of
// normalized rays to pixels, inverse unprojection with lens-distortion
// correction, parameter validation, and pixel to ray threshold conversion.
//
// The model set is closed and addressed by ModelID; every projection kernel
// is generic over scalar.Number so the identical code evaluates with plain
// floats or with derivative-carrying dual numbers. All operations are pure
// functions over caller-supplied data and the immutable model registry, so
// any number of goroutines may call them concurrently without
// synchronization.
//
// Pixel coordinates follow the convention that the upper left image corner
// is (0, 0) and the upper left pixel center is (0.5, 0.5). A normalized ray
// (u, v) stands for the camera-space direction (u, v, 1).
package camera

import (
	"github.com/pkg/errors"

	"github.com/sfmkit/camgeom/scalar"
)

// ErrModelNotFound is returned when a model id or name does not address a
// supported camera model.
var ErrModelNotFound = errors.New("camera model does not exist")

// ErrInvalidParams is returned when a parameter vector does not match the
// model's expected layout.
var ErrInvalidParams = errors.New("invalid camera parameters")

// Project transforms the normalized ray (u, v) to pixel coordinates using
// the given model and parameter vector. The parameter vector is assumed to
// have the model's exact length; validate externally supplied parameters
// with VerifyParams first.
func Project[T scalar.Number[T]](id ModelID, params []T, u, v T) (x, y T, err error) {
	switch id {
	case SimplePinhole:
		x, y = simplePinholeProject(params, u, v)
	case Pinhole:
		x, y = pinholeProject(params, u, v)
	case SimpleRadial:
		x, y = simpleRadialProject(params, u, v)
	case Radial:
		x, y = radialProject(params, u, v)
	case OpenCV:
		x, y = opencvProject(params, u, v)
	case OpenCVFisheye:
		x, y = opencvFisheyeProject(params, u, v)
	case FullOpenCV:
		x, y = fullOpencvProject(params, u, v)
	case FOV:
		x, y = fovProject(params, u, v)
	case SimpleRadialFisheye:
		x, y = simpleRadialFisheyeProject(params, u, v)
	case RadialFisheye:
		x, y = radialFisheyeProject(params, u, v)
	case ThinPrismFisheye:
		x, y = thinPrismFisheyeProject(params, u, v)
	default:
		err = errors.Wrapf(ErrModelNotFound, "model id %d", id)
	}
	return x, y, err
}

// Unproject transforms pixel coordinates (x, y) back to a normalized ray
// using the given model and parameter vector. Models without a closed-form
// inverse distortion run the iterative undistortion solver; see
// iterativeUndistortion for its termination behavior.
func Unproject[T scalar.Number[T]](id ModelID, params []T, x, y T) (u, v T, err error) {
	switch id {
	case SimplePinhole:
		u, v = simplePinholeUnproject(params, x, y)
	case Pinhole:
		u, v = pinholeUnproject(params, x, y)
	case SimpleRadial:
		u, v = simpleRadialUnproject(params, x, y)
	case Radial:
		u, v = radialUnproject(params, x, y)
	case OpenCV:
		u, v = opencvUnproject(params, x, y)
	case OpenCVFisheye:
		u, v = opencvFisheyeUnproject(params, x, y)
	case FullOpenCV:
		u, v = fullOpencvUnproject(params, x, y)
	case FOV:
		u, v = fovUnproject(params, x, y)
	case SimpleRadialFisheye:
		u, v = simpleRadialFisheyeUnproject(params, x, y)
	case RadialFisheye:
		u, v = radialFisheyeUnproject(params, x, y)
	case ThinPrismFisheye:
		u, v = thinPrismFisheyeUnproject(params, x, y)
	default:
		err = errors.Wrapf(ErrModelNotFound, "model id %d", id)
	}
	return u, v, err
}

// ImageToWorldThreshold converts a pixel-space error threshold to normalized
// ray units by dividing by the mean focal length of the model. Downstream
// reprojection-error checks use this to stay focal-length independent.
func ImageToWorldThreshold(id ModelID, params []float64, threshold float64) (float64, error) {
	spec, err := specFor(id)
	if err != nil {
		return 0, err
	}
	var meanFocalLength float64
	for _, idx := range spec.FocalLengthIdxs {
		meanFocalLength += params[idx]
	}
	meanFocalLength /= float64(len(spec.FocalLengthIdxs))
	return threshold / meanFocalLength, nil
}
