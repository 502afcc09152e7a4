package camera

import (
	"math"

	"github.com/pkg/errors"
)

// VerifyParams checks that params has exactly the number of entries the
// model expects. Externally supplied parameter vectors must pass here before
// being handed to Project or Unproject, which assume a correct length.
func VerifyParams(id ModelID, params []float64) error {
	spec, err := specFor(id)
	if err != nil {
		return err
	}
	if len(params) != spec.NumParams {
		return errors.Wrapf(ErrInvalidParams, "model %s expects %d parameters, got %d",
			spec.Name, spec.NumParams, len(params))
	}
	return nil
}

// HasBogusPrincipalPoint reports whether the principal point lies outside
// the image, i.e. cx outside [0, width] or cy outside [0, height].
func HasBogusPrincipalPoint(id ModelID, params []float64, width, height int) (bool, error) {
	spec, err := specFor(id)
	if err != nil {
		return false, err
	}
	cx := params[spec.PrincipalPointIdxs[0]]
	cy := params[spec.PrincipalPointIdxs[1]]
	return cx < 0 || cx > float64(width) || cy < 0 || cy > float64(height), nil
}

// HasBogusFocalLength reports whether any focal length parameter, divided by
// the larger image dimension, falls outside [minFocalLengthRatio,
// maxFocalLengthRatio].
func HasBogusFocalLength(
	id ModelID, params []float64, width, height int,
	minFocalLengthRatio, maxFocalLengthRatio float64,
) (bool, error) {
	spec, err := specFor(id)
	if err != nil {
		return false, err
	}
	maxSize := float64(width)
	if height > width {
		maxSize = float64(height)
	}
	for _, idx := range spec.FocalLengthIdxs {
		ratio := params[idx] / maxSize
		if ratio < minFocalLengthRatio || ratio > maxFocalLengthRatio {
			return true, nil
		}
	}
	return false, nil
}

// HasBogusExtraParams reports whether any distortion coefficient exceeds
// maxExtraParam in absolute value.
func HasBogusExtraParams(id ModelID, params []float64, maxExtraParam float64) (bool, error) {
	spec, err := specFor(id)
	if err != nil {
		return false, err
	}
	for _, idx := range spec.ExtraParamsIdxs {
		if math.Abs(params[idx]) > maxExtraParam {
			return true, nil
		}
	}
	return false, nil
}

// HasBogusParams reports whether any of the principal point, focal length,
// or distortion coefficient checks flags the parameters as implausible. The
// predicates are advisory; callers decide whether to reject the camera.
func HasBogusParams(
	id ModelID, params []float64, width, height int,
	minFocalLengthRatio, maxFocalLengthRatio, maxExtraParam float64,
) (bool, error) {
	if bogus, err := HasBogusPrincipalPoint(id, params, width, height); err != nil || bogus {
		return bogus, err
	}
	if bogus, err := HasBogusFocalLength(id, params, width, height,
		minFocalLengthRatio, maxFocalLengthRatio); err != nil || bogus {
		return bogus, err
	}
	return HasBogusExtraParams(id, params, maxExtraParam)
}
