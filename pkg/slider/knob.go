package slider

import (
	"fmt"

	"github.com/henderiw/rangedial/pkg/geometry"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Knob is a circular slider with a single handle running from north
// clockwise over the arc.
type Knob struct {
	scale   geometry.ValueScale
	angle   float64
	markers int
	snap    bool
}

// NewKnob returns a knob at the minimum value. With snap set, every move
// lands on the closest of markers evenly spaced markers.
func NewKnob(scale geometry.ValueScale, markers int, snap bool) (*Knob, error) {
	if errs := scale.Validate(field.NewPath("knob")); len(errs) != 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, errs.ToAggregate())
	}
	if markers < 0 {
		return nil, fmt.Errorf("%w: negative marker count %d", ErrInvalidConfiguration, markers)
	}
	return &Knob{scale: scale, markers: markers, snap: snap}, nil
}

func (r *Knob) Angle() float64 { return r.angle }

func (r *Knob) Value() float64 {
	// angle always lies on the arc
	v, _ := r.scale.AngleToValue(r.angle)
	return v
}

func (r *Knob) SetValue(v float64) error {
	a, err := r.scale.ValueToAngle(v)
	if err != nil {
		return err
	}
	r.angle = a
	return nil
}

// Markers returns the marker angles of the knob.
func (r *Knob) Markers() []float64 {
	return geometry.MarkerAngles(r.markers, r.scale.MaximumAngle)
}

// Move moves the handle to angle and returns the committed value. An angle in
// the gap past the end of the arc sends the handle to the closer end: north
// when it sits in the first half of the arc, the end of the arc when it sits
// in the second half. Exactly in the middle it does not move.
func (r *Knob) Move(angle float64) float64 {
	half := r.scale.MaximumAngle / 2
	switch {
	case angle > r.scale.MaximumAngle:
		if r.angle < half {
			r.angle = 0
		} else if r.angle > half {
			r.angle = r.scale.MaximumAngle
		}
	case angle < 0:
		r.angle = 0
	default:
		r.angle = angle
		if r.snap && r.markers > 0 {
			r.angle = geometry.SnapToMarker(angle, r.markers, r.scale.MaximumAngle)
		}
	}
	return r.Value()
}

// Track moves the handle to the pointer at p around center.
func (r *Knob) Track(center, p geometry.Point) float64 {
	return r.Move(geometry.Quantize(geometry.AngleFromNorth(center, p)))
}
