package slider

import (
	"errors"
	"fmt"

	"github.com/henderiw/rangedial/pkg/geometry"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

const (
	DefaultMinimumHandleDistance = 10.0
	DefaultRangeWidth            = 5.0
)

// Config holds the value scale and the movement constraints of a slider.
type Config struct {
	MinimumValue float64 `json:"minimumValue" yaml:"minimumValue"`
	MaximumValue float64 `json:"maximumValue" yaml:"maximumValue"`
	// MaximumAngle is the arc in degrees covering the full value span, 360
	// for a full circle.
	MaximumAngle float64 `json:"maximumAngle" yaml:"maximumAngle"`
	// MinimumHandleDistance is the minimum gap in degrees between the two
	// handles of a range and between neighbouring ranges.
	MinimumHandleDistance float64 `json:"minimumHandleDistance" yaml:"minimumHandleDistance"`
	// DefaultWidth is the value width of ranges added at a touched value.
	DefaultWidth float64 `json:"defaultWidth" yaml:"defaultWidth"`
}

func DefaultConfig() Config {
	return Config{
		MinimumValue:          0,
		MaximumValue:          100,
		MaximumAngle:          geometry.FullCircle,
		MinimumHandleDistance: DefaultMinimumHandleDistance,
		DefaultWidth:          DefaultRangeWidth,
	}
}

func (r Config) Scale() geometry.ValueScale {
	return geometry.ValueScale{
		Minimum:      r.MinimumValue,
		Maximum:      r.MaximumValue,
		MaximumAngle: r.MaximumAngle,
	}
}

func (r Config) Validate() error {
	fldPath := field.NewPath("slider")
	allErrs := r.Scale().Validate(fldPath)

	if !(r.MinimumHandleDistance > 0 && r.MinimumHandleDistance < r.MaximumAngle/2) {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("minimumHandleDistance"), r.MinimumHandleDistance,
			fmt.Sprintf("must be in the range (0, %g)", r.MaximumAngle/2)))
	}
	if r.DefaultWidth < 0 || r.DefaultWidth > r.MaximumValue-r.MinimumValue {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("defaultWidth"), r.DefaultWidth,
			"must fit in the value span"))
	}
	if len(allErrs) != 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, allErrs.ToAggregate())
	}
	return nil
}
