package geometry

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

var ErrValueOutOfDomain = errors.New("value out of domain")

// boundary tolerance, absorbs rounding of angle -> value -> angle trips
const (
	absTol = 1e-9
	relTol = 1e-9
)

// ValueScale maps the value domain [Minimum, Maximum] linearly onto the arc
// [0, MaximumAngle] degrees.
type ValueScale struct {
	Minimum      float64 `json:"minimumValue" yaml:"minimumValue"`
	Maximum      float64 `json:"maximumValue" yaml:"maximumValue"`
	MaximumAngle float64 `json:"maximumAngle" yaml:"maximumAngle"`
}

func NewValueScale(min, max, maximumAngle float64) (ValueScale, error) {
	s := ValueScale{Minimum: min, Maximum: max, MaximumAngle: maximumAngle}
	if errs := s.Validate(field.NewPath("scale")); len(errs) != 0 {
		return ValueScale{}, errs.ToAggregate()
	}
	return s, nil
}

func (r ValueScale) Validate(fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if !(r.Minimum < r.Maximum) {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("minimumValue"), r.Minimum,
			fmt.Sprintf("must be smaller than maximumValue %g", r.Maximum)))
	}
	if !(r.MaximumAngle > 0 && r.MaximumAngle <= FullCircle) {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("maximumAngle"), r.MaximumAngle,
			"must be in the range (0, 360]"))
	}
	return allErrs
}

func (r ValueScale) IsFullCircle() bool { return r.MaximumAngle == FullCircle }

func (r ValueScale) span() float64 { return r.Maximum - r.Minimum }

// Contains reports whether v lies in [Minimum, Maximum].
func (r ValueScale) Contains(v float64) bool {
	_, ok := snap(v, r.Minimum, r.Maximum)
	return ok
}

func (r ValueScale) ValueToAngle(v float64) (float64, error) {
	v, ok := snap(v, r.Minimum, r.Maximum)
	if !ok {
		return 0, fmt.Errorf("value %g outside [%g, %g]: %w", v, r.Minimum, r.Maximum, ErrValueOutOfDomain)
	}
	return (v - r.Minimum) * r.MaximumAngle / r.span(), nil
}

func (r ValueScale) AngleToValue(a float64) (float64, error) {
	a, ok := snap(a, 0, r.MaximumAngle)
	if !ok {
		return 0, fmt.Errorf("angle %g outside arc [0, %g]: %w", a, r.MaximumAngle, ErrValueOutOfDomain)
	}
	return r.Minimum + a*r.span()/r.MaximumAngle, nil
}

// snap pulls x onto lo or hi when it is within tolerance of the bound and
// reports whether the result lies in [lo, hi].
func snap(x, lo, hi float64) (float64, bool) {
	switch {
	case scalar.EqualWithinAbsOrRel(x, lo, absTol, relTol):
		return lo, true
	case scalar.EqualWithinAbsOrRel(x, hi, absTol, relTol):
		return hi, true
	}
	return x, x >= lo && x <= hi
}
