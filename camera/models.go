package camera

import (
	"strings"

	"github.com/pkg/errors"
)

// ModelID identifies one of the supported camera models. The set of models
// is closed: ids are stable, densely numbered from 0, and persisted camera
// records reference them by value, so they must never be renumbered.
type ModelID int

// InvalidModelID marks an unset or unrecognized camera model.
const InvalidModelID ModelID = -1

// The supported camera models.
const (
	// SimplePinhole models focal length and principal point only: f, cx, cy.
	SimplePinhole ModelID = 0
	// Pinhole adds a second focal length: fx, fy, cx, cy.
	Pinhole ModelID = 1
	// SimpleRadial adds one polynomial radial distortion coefficient:
	// f, cx, cy, k.
	SimpleRadial ModelID = 2
	// Radial carries two radial coefficients: f, cx, cy, k1, k2.
	Radial ModelID = 3
	// OpenCV models radial and tangential distortion up to second degree:
	// fx, fy, cx, cy, k1, k2, p1, p2.
	OpenCV ModelID = 4
	// OpenCVFisheye models equidistant fisheye distortion:
	// fx, fy, cx, cy, k1, k2, k3, k4.
	OpenCVFisheye ModelID = 5
	// FullOpenCV models rational radial plus tangential distortion:
	// fx, fy, cx, cy, k1, k2, p1, p2, k3, k4, k5, k6.
	FullOpenCV ModelID = 6
	// FOV models field-of-view distortion with a single omega coefficient
	// and has a closed-form inverse: fx, fy, cx, cy, omega.
	FOV ModelID = 7
	// SimpleRadialFisheye is the one-coefficient equidistant fisheye:
	// f, cx, cy, k.
	SimpleRadialFisheye ModelID = 8
	// RadialFisheye is the two-coefficient equidistant fisheye:
	// f, cx, cy, k1, k2.
	RadialFisheye ModelID = 9
	// ThinPrismFisheye adds thin-prism terms to a fisheye model:
	// fx, fy, cx, cy, k1, k2, p1, p2, k3, k4, sx1, sy1.
	ThinPrismFisheye ModelID = 10
)

// ModelSpec is the static metadata of one camera model. Entries are created
// once at package init and never mutated; the three index slices partition
// the parameter vector into focal length, principal point, and distortion
// groups so callers can refine them independently.
type ModelSpec struct {
	ID                 ModelID
	Name               string
	NumParams          int
	ParamNames         []string
	FocalLengthIdxs    []int
	PrincipalPointIdxs []int
	ExtraParamsIdxs    []int
}

var modelSpecs = [...]ModelSpec{
	SimplePinhole: {
		ID:                 SimplePinhole,
		Name:               "SIMPLE_PINHOLE",
		NumParams:          3,
		ParamNames:         []string{"f", "cx", "cy"},
		FocalLengthIdxs:    []int{0},
		PrincipalPointIdxs: []int{1, 2},
		ExtraParamsIdxs:    []int{},
	},
	Pinhole: {
		ID:                 Pinhole,
		Name:               "PINHOLE",
		NumParams:          4,
		ParamNames:         []string{"fx", "fy", "cx", "cy"},
		FocalLengthIdxs:    []int{0, 1},
		PrincipalPointIdxs: []int{2, 3},
		ExtraParamsIdxs:    []int{},
	},
	SimpleRadial: {
		ID:                 SimpleRadial,
		Name:               "SIMPLE_RADIAL",
		NumParams:          4,
		ParamNames:         []string{"f", "cx", "cy", "k"},
		FocalLengthIdxs:    []int{0},
		PrincipalPointIdxs: []int{1, 2},
		ExtraParamsIdxs:    []int{3},
	},
	Radial: {
		ID:                 Radial,
		Name:               "RADIAL",
		NumParams:          5,
		ParamNames:         []string{"f", "cx", "cy", "k1", "k2"},
		FocalLengthIdxs:    []int{0},
		PrincipalPointIdxs: []int{1, 2},
		ExtraParamsIdxs:    []int{3, 4},
	},
	OpenCV: {
		ID:                 OpenCV,
		Name:               "OPENCV",
		NumParams:          8,
		ParamNames:         []string{"fx", "fy", "cx", "cy", "k1", "k2", "p1", "p2"},
		FocalLengthIdxs:    []int{0, 1},
		PrincipalPointIdxs: []int{2, 3},
		ExtraParamsIdxs:    []int{4, 5, 6, 7},
	},
	OpenCVFisheye: {
		ID:                 OpenCVFisheye,
		Name:               "OPENCV_FISHEYE",
		NumParams:          8,
		ParamNames:         []string{"fx", "fy", "cx", "cy", "k1", "k2", "k3", "k4"},
		FocalLengthIdxs:    []int{0, 1},
		PrincipalPointIdxs: []int{2, 3},
		ExtraParamsIdxs:    []int{4, 5, 6, 7},
	},
	FullOpenCV: {
		ID:                 FullOpenCV,
		Name:               "FULL_OPENCV",
		NumParams:          12,
		ParamNames:         []string{"fx", "fy", "cx", "cy", "k1", "k2", "p1", "p2", "k3", "k4", "k5", "k6"},
		FocalLengthIdxs:    []int{0, 1},
		PrincipalPointIdxs: []int{2, 3},
		ExtraParamsIdxs:    []int{4, 5, 6, 7, 8, 9, 10, 11},
	},
	FOV: {
		ID:                 FOV,
		Name:               "FOV",
		NumParams:          5,
		ParamNames:         []string{"fx", "fy", "cx", "cy", "omega"},
		FocalLengthIdxs:    []int{0, 1},
		PrincipalPointIdxs: []int{2, 3},
		ExtraParamsIdxs:    []int{4},
	},
	SimpleRadialFisheye: {
		ID:                 SimpleRadialFisheye,
		Name:               "SIMPLE_RADIAL_FISHEYE",
		NumParams:          4,
		ParamNames:         []string{"f", "cx", "cy", "k"},
		FocalLengthIdxs:    []int{0},
		PrincipalPointIdxs: []int{1, 2},
		ExtraParamsIdxs:    []int{3},
	},
	RadialFisheye: {
		ID:                 RadialFisheye,
		Name:               "RADIAL_FISHEYE",
		NumParams:          5,
		ParamNames:         []string{"f", "cx", "cy", "k1", "k2"},
		FocalLengthIdxs:    []int{0},
		PrincipalPointIdxs: []int{1, 2},
		ExtraParamsIdxs:    []int{3, 4},
	},
	ThinPrismFisheye: {
		ID:                 ThinPrismFisheye,
		Name:               "THIN_PRISM_FISHEYE",
		NumParams:          12,
		ParamNames:         []string{"fx", "fy", "cx", "cy", "k1", "k2", "p1", "p2", "k3", "k4", "sx1", "sy1"},
		FocalLengthIdxs:    []int{0, 1},
		PrincipalPointIdxs: []int{2, 3},
		ExtraParamsIdxs:    []int{4, 5, 6, 7, 8, 9, 10, 11},
	},
}

var modelIDByName = make(map[string]ModelID, len(modelSpecs))

func init() {
	for _, spec := range modelSpecs {
		modelIDByName[spec.Name] = spec.ID
	}
}

func specFor(id ModelID) (*ModelSpec, error) {
	if id < 0 || int(id) >= len(modelSpecs) {
		return nil, errors.Wrapf(ErrModelNotFound, "model id %d", id)
	}
	return &modelSpecs[id], nil
}

// ExistsModelID reports whether id names a supported camera model.
func ExistsModelID(id ModelID) bool {
	return id >= 0 && int(id) < len(modelSpecs)
}

// ExistsModelName reports whether name names a supported camera model.
func ExistsModelName(name string) bool {
	_, ok := modelIDByName[name]
	return ok
}

// ModelNameToID returns the id of the model called name.
func ModelNameToID(name string) (ModelID, error) {
	id, ok := modelIDByName[name]
	if !ok {
		return InvalidModelID, errors.Wrapf(ErrModelNotFound, "model name %q", name)
	}
	return id, nil
}

// ModelIDToName returns the name of the model with the given id.
func ModelIDToName(id ModelID) (string, error) {
	spec, err := specFor(id)
	if err != nil {
		return "", err
	}
	return spec.Name, nil
}

// NumParams returns the length of the model's parameter vector.
func NumParams(id ModelID) (int, error) {
	spec, err := specFor(id)
	if err != nil {
		return 0, err
	}
	return spec.NumParams, nil
}

// ParamNames returns the ordered labels of the model's parameters. The
// returned slice is a copy and may be modified by the caller.
func ParamNames(id ModelID) ([]string, error) {
	spec, err := specFor(id)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), spec.ParamNames...), nil
}

// ParamsInfo returns the model's parameter labels as a single
// comma-separated string, e.g. "f, cx, cy, k".
func ParamsInfo(id ModelID) (string, error) {
	spec, err := specFor(id)
	if err != nil {
		return "", err
	}
	return strings.Join(spec.ParamNames, ", "), nil
}

// FocalLengthIdxs returns the indices of the focal length parameters.
func FocalLengthIdxs(id ModelID) ([]int, error) {
	spec, err := specFor(id)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), spec.FocalLengthIdxs...), nil
}

// PrincipalPointIdxs returns the indices of the principal point parameters.
// Every model has exactly two.
func PrincipalPointIdxs(id ModelID) ([]int, error) {
	spec, err := specFor(id)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), spec.PrincipalPointIdxs...), nil
}

// ExtraParamsIdxs returns the indices of the distortion parameters. The
// result is empty for the pure pinhole models.
func ExtraParamsIdxs(id ModelID) ([]int, error) {
	spec, err := specFor(id)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), spec.ExtraParamsIdxs...), nil
}

// InitializeParams returns the default parameter vector for the model: every
// focal length parameter set to focalLength, the principal point at the
// image center, and all distortion coefficients zero. The FOV model's omega
// defaults to 1e-2 rather than zero since its distortion factor degenerates
// at omega = 0.
func InitializeParams(id ModelID, focalLength float64, width, height int) ([]float64, error) {
	spec, err := specFor(id)
	if err != nil {
		return nil, err
	}
	params := make([]float64, spec.NumParams)
	for _, idx := range spec.FocalLengthIdxs {
		params[idx] = focalLength
	}
	params[spec.PrincipalPointIdxs[0]] = float64(width) / 2
	params[spec.PrincipalPointIdxs[1]] = float64(height) / 2
	if id == FOV {
		params[spec.ExtraParamsIdxs[0]] = 1e-2
	}
	return params, nil
}
