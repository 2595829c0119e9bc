package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/henderiw/rangedial/pkg/geometry"
	"github.com/henderiw/rangedial/pkg/rangeset"
	"github.com/henderiw/rangedial/pkg/slider"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

const (
	DefaultLineWidth      = 5.0
	DefaultHandleDiameter = 5.0
)

// Bounds is the size of the view the slider is drawn in. When set and no
// radius is configured the radius is fitted to it.
type Bounds struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// InitialRange is a range, in values, added when the manager is built.
type InitialRange struct {
	Lower  float64           `json:"lower" yaml:"lower"`
	Upper  float64           `json:"upper" yaml:"upper"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`
}

type File struct {
	slider.Config       `yaml:",inline"`
	slider.StaticLayout `yaml:",inline"`
	Bounds              *Bounds        `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Ranges              []InitialRange `json:"ranges,omitempty" yaml:"ranges,omitempty"`
}

func Default() *File {
	return &File{
		Config: slider.DefaultConfig(),
		StaticLayout: slider.StaticLayout{
			Line:   DefaultLineWidth,
			Handle: DefaultHandleDiameter,
		},
	}
}

func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a yaml document on top of the defaults, derives the layout
// from the bounds when needed and validates the result.
func Parse(b []byte) (*File, error) {
	f := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	f.fit()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (r *File) fit() {
	if r.Bounds == nil {
		return
	}
	if r.CircleRadius == 0 {
		r.CircleRadius = geometry.FitRadius(r.Bounds.Width, r.Bounds.Height, r.Line, r.Handle)
	}
	if r.CenterPoint == (geometry.Point{}) {
		r.CenterPoint = geometry.Point{X: r.Bounds.Width / 2, Y: r.Bounds.Height / 2}
	}
}

func (r *File) Validate() error {
	var errs []error
	if err := r.Config.Validate(); err != nil {
		errs = append(errs, err)
	}

	allErrs := field.ErrorList{}
	fldPath := field.NewPath("layout")
	if r.CircleRadius <= 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("radius"), r.CircleRadius, "must be positive"))
	}
	if r.Line < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("lineWidth"), r.Line, "must not be negative"))
	}
	if r.Handle < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("handleDiameter"), r.Handle, "must not be negative"))
	}
	for i, rg := range r.Ranges {
		idxPath := field.NewPath("ranges").Index(i)
		if rg.Lower > rg.Upper {
			allErrs = append(allErrs, field.Invalid(idxPath.Child("lower"), rg.Lower, "must not be above upper"))
		}
		if _, err := labels.ValidatedSelectorFromSet(rg.Labels); err != nil {
			allErrs = append(allErrs, field.Invalid(idxPath.Child("labels"), rg.Labels, err.Error()))
		}
	}
	if len(allErrs) != 0 {
		errs = append(errs, fmt.Errorf("%w: %w", slider.ErrInvalidConfiguration, allErrs.ToAggregate()))
	}
	return errors.Join(errs...)
}

// NewManager builds a manager from the file and adds the initial ranges in
// order. A range that collides with an earlier one fails the build.
func (r *File) NewManager(opts ...slider.Option) (slider.Manager, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	m, err := slider.New(r.Config, r.StaticLayout, opts...)
	if err != nil {
		return nil, err
	}
	for i, rg := range r.Ranges {
		_, ok, err := m.AddRange(rg.Lower, rg.Upper, labels.Set(rg.Labels))
		if err != nil {
			return nil, fmt.Errorf("range %d: %w", i, err)
		}
		if !ok {
			return nil, fmt.Errorf("range %d [%g, %g]: %w", i, rg.Lower, rg.Upper, rangeset.ErrCollision)
		}
	}
	return m, nil
}
