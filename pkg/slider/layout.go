package slider

import "github.com/henderiw/rangedial/pkg/geometry"

// MinimumTouchTarget is the smallest square, in points, a handle responds to
// regardless of its drawn size.
const MinimumTouchTarget = 44.0

// Layout is supplied by the rendering layer. It is queried on every hit test
// and move since the geometry changes with the view layout.
type Layout interface {
	Center() geometry.Point
	Radius() float64
	LineWidth() float64
	HandleDiameter() float64
}

// StaticLayout is a Layout with fixed geometry.
type StaticLayout struct {
	CenterPoint  geometry.Point `json:"center" yaml:"center"`
	CircleRadius float64        `json:"radius" yaml:"radius"`
	Line         float64        `json:"lineWidth" yaml:"lineWidth"`
	Handle       float64        `json:"handleDiameter" yaml:"handleDiameter"`
}

func (r StaticLayout) Center() geometry.Point  { return r.CenterPoint }
func (r StaticLayout) Radius() float64         { return r.CircleRadius }
func (r StaticLayout) LineWidth() float64      { return r.Line }
func (r StaticLayout) HandleDiameter() float64 { return r.Handle }

func handleHalfWidth(l Layout) float64 {
	d := l.HandleDiameter()
	if d < MinimumTouchTarget {
		d = MinimumTouchTarget
	}
	return d / 2
}
