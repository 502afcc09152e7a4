package camera

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/sfmkit/camgeom/scalar"
)

// Camera holds the calibration of a single physical camera: a model id, the
// image dimensions, and the model's parameter vector. The caller owns the
// record; optimization steps may mutate Params between calls, and no
// operation here retains a reference to it.
type Camera struct {
	Model  ModelID   `json:"model_id"`
	Width  int       `json:"width_px"`
	Height int       `json:"height_px"`
	Params []float64 `json:"params"`
}

// NewCamera returns a Camera with the model's default parameters: the given
// focal length, the principal point at the image center, and zero
// distortion.
func NewCamera(id ModelID, focalLength float64, width, height int) (*Camera, error) {
	params, err := InitializeParams(id, focalLength, width, height)
	if err != nil {
		return nil, err
	}
	return &Camera{Model: id, Width: width, Height: height, Params: params}, nil
}

// NewCameraWithName is NewCamera keyed by model name instead of id.
func NewCameraWithName(name string, focalLength float64, width, height int) (*Camera, error) {
	id, err := ModelNameToID(name)
	if err != nil {
		return nil, err
	}
	return NewCamera(id, focalLength, width, height)
}

// CheckValid checks that the camera references a known model and that the
// parameter vector has the model's expected length.
func (c *Camera) CheckValid() error {
	if c == nil {
		return errors.New("camera is nil")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("invalid image size (%d, %d)", c.Width, c.Height)
	}
	return VerifyParams(c.Model, c.Params)
}

// ModelName returns the name of the camera's model.
func (c *Camera) ModelName() (string, error) {
	return ModelIDToName(c.Model)
}

// MeanFocalLength returns the arithmetic mean of the focal length
// parameters.
func (c *Camera) MeanFocalLength() (float64, error) {
	spec, err := specFor(c.Model)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, idx := range spec.FocalLengthIdxs {
		sum += c.Params[idx]
	}
	return sum / float64(len(spec.FocalLengthIdxs)), nil
}

// PrincipalPoint returns the principal point (cx, cy) in pixels.
func (c *Camera) PrincipalPoint() (float64, float64, error) {
	spec, err := specFor(c.Model)
	if err != nil {
		return 0, 0, err
	}
	return c.Params[spec.PrincipalPointIdxs[0]], c.Params[spec.PrincipalPointIdxs[1]], nil
}

// HasBogusParams runs the three plausibility checks against the camera's
// own image size.
func (c *Camera) HasBogusParams(minFocalLengthRatio, maxFocalLengthRatio, maxExtraParam float64) (bool, error) {
	return HasBogusParams(c.Model, c.Params, c.Width, c.Height,
		minFocalLengthRatio, maxFocalLengthRatio, maxExtraParam)
}

// ImageToWorldThreshold converts a pixel-space threshold to normalized ray
// units for this camera.
func (c *Camera) ImageToWorldThreshold(threshold float64) (float64, error) {
	return ImageToWorldThreshold(c.Model, c.Params, threshold)
}

// ProjectPoint projects the normalized ray pt to pixel coordinates.
func (c *Camera) ProjectPoint(pt r2.Point) (r2.Point, error) {
	x, y, err := Project(c.Model, floatParams(c.Params), scalar.Float(pt.X), scalar.Float(pt.Y))
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: float64(x), Y: float64(y)}, nil
}

// UnprojectPoint transforms the pixel pt back to a normalized ray.
func (c *Camera) UnprojectPoint(pt r2.Point) (r2.Point, error) {
	u, v, err := Unproject(c.Model, floatParams(c.Params), scalar.Float(pt.X), scalar.Float(pt.Y))
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: float64(u), Y: float64(v)}, nil
}

// ParamsString renders the parameter vector as a comma-separated decimal
// list ordered as the model's ParamNames. SetParamsFromString parses the
// same format back.
func (c *Camera) ParamsString() string {
	fields := make([]string, len(c.Params))
	for i, p := range c.Params {
		fields[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return strings.Join(fields, ", ")
}

// SetParamsFromString replaces the parameter vector with the values parsed
// from a comma-separated decimal list. The list length is verified against
// the model before anything is overwritten.
func (c *Camera) SetParamsFromString(s string) error {
	var params []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return errors.Wrapf(ErrInvalidParams, "cannot parse %q as a parameter", field)
		}
		params = append(params, value)
	}
	if err := VerifyParams(c.Model, params); err != nil {
		return err
	}
	c.Params = params
	return nil
}

func floatParams(params []float64) []scalar.Float {
	out := make([]scalar.Float, len(params))
	for i, p := range params {
		out[i] = scalar.Float(p)
	}
	return out
}
