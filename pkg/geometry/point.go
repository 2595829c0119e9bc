package geometry

import (
	"fmt"
	"math"
)

// Point is a position in screen coordinates, y grows downwards.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (r Point) Add(o Point) Point { return Point{X: r.X + o.X, Y: r.Y + o.Y} }
func (r Point) Sub(o Point) Point { return Point{X: r.X - o.X, Y: r.Y - o.Y} }

func (r Point) Distance(o Point) float64 {
	return math.Hypot(o.X-r.X, o.Y-r.Y)
}

// InBox returns whether r lies inside the square of the given half width
// centered on c. The edges are part of the box.
func (r Point) InBox(c Point, halfWidth float64) bool {
	return r.X >= c.X-halfWidth && r.X <= c.X+halfWidth &&
		r.Y >= c.Y-halfWidth && r.Y <= c.Y+halfWidth
}

func (r Point) String() string {
	return fmt.Sprintf("(%g,%g)", r.X, r.Y)
}
