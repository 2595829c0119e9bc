package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/henderiw/rangedial/pkg/geometry"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

type Action string

const (
	ActionDown   Action = "down"
	ActionMove   Action = "move"
	ActionUp     Action = "up"
	ActionCancel Action = "cancel"
	ActionAdd    Action = "add"
	ActionAddAt  Action = "addAt"
	ActionRemove Action = "remove"
)

// Step is one entry of a gesture script. Pointer steps take either a point or
// an angle on the track circle; range steps take values.
type Step struct {
	Action   Action            `json:"action" yaml:"action"`
	Point    *geometry.Point   `json:"point,omitempty" yaml:"point,omitempty"`
	Angle    *float64          `json:"angle,omitempty" yaml:"angle,omitempty"`
	Lower    float64           `json:"lower,omitempty" yaml:"lower,omitempty"`
	Upper    float64           `json:"upper,omitempty" yaml:"upper,omitempty"`
	Value    float64           `json:"value,omitempty" yaml:"value,omitempty"`
	Labels   map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Selector string            `json:"selector,omitempty" yaml:"selector,omitempty"`
}

type Script struct {
	Steps []Step `json:"steps" yaml:"steps"`
}

func LoadScript(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read script %s: %w", path, err)
	}
	s, err := ParseScript(b)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

func ParseScript(b []byte) (*Script, error) {
	s := &Script{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("cannot decode script: %w", err)
	}
	if err := s.Validate().ToAggregate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Script) Validate() field.ErrorList {
	allErrs := field.ErrorList{}
	for i, step := range r.Steps {
		allErrs = append(allErrs, step.validate(field.NewPath("steps").Index(i))...)
	}
	return allErrs
}

func (r Step) validate(fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}
	switch r.Action {
	case ActionDown, ActionMove:
		if (r.Point == nil) == (r.Angle == nil) {
			allErrs = append(allErrs, field.Required(fldPath, "exactly one of point or angle"))
		}
	case ActionAdd:
		if r.Lower > r.Upper {
			allErrs = append(allErrs, field.Invalid(fldPath.Child("lower"), r.Lower, "must not be above upper"))
		}
	case ActionRemove:
		if r.Selector == "" {
			allErrs = append(allErrs, field.Required(fldPath.Child("selector"), ""))
		}
	case ActionUp, ActionCancel, ActionAddAt:
	default:
		allErrs = append(allErrs, field.NotSupported(fldPath.Child("action"), r.Action, []Action{
			ActionDown, ActionMove, ActionUp, ActionCancel, ActionAdd, ActionAddAt, ActionRemove,
		}))
	}
	return allErrs
}

// Target returns the pointer location of a down or move step.
func (r Step) Target(center geometry.Point, radius float64) geometry.Point {
	if r.Point != nil {
		return *r.Point
	}
	return geometry.PointOnCircle(center, radius, *r.Angle)
}
