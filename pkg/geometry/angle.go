package geometry

import "math"

const FullCircle = 360.0

func toRad(deg float64) float64 { return math.Pi * deg / 180 }
func toDeg(rad float64) float64 { return 180 * rad / math.Pi }

// compassToCartesian moves the reference axis from north to the x axis.
func compassToCartesian(rad float64) float64 { return rad - math.Pi/2 }

// cartesianToCompass moves the reference axis from the x axis to north.
func cartesianToCompass(rad float64) float64 { return rad + math.Pi/2 }

// PointOnRadius returns the offset from the circle center of the point at
// radius and angleFromNorth (degrees, clockwise from north).
func PointOnRadius(radius, angleFromNorth float64) Point {
	rad := compassToCartesian(toRad(angleFromNorth))
	return Point{
		X: radius * math.Cos(rad),
		Y: radius * math.Sin(rad),
	}
}

// PointOnCircle returns the absolute position of angleFromNorth on the circle.
func PointOnCircle(center Point, radius, angleFromNorth float64) Point {
	return center.Add(PointOnRadius(radius, angleFromNorth))
}

// AngleFromNorth returns the compass angle of point seen from center, in the
// range [0, 360). A point on the center has no direction and returns 0.
func AngleFromNorth(center, point Point) float64 {
	d := point.Sub(center)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	deg := toDeg(cartesianToCompass(math.Atan2(d.Y, d.X)))
	if math.IsNaN(deg) {
		return 0
	}
	return Normalize(deg)
}

// Normalize converts an angle of any magnitude into the range [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, FullCircle)
	if d < 0 {
		d += FullCircle
	}
	// -tiny + 360 rounds to 360
	if d >= FullCircle {
		d = 0
	}
	return d
}

// Quantize truncates a pointer angle to whole degrees.
func Quantize(deg float64) float64 {
	return math.Floor(deg)
}

// ArcRotation returns the rotation in radians to apply to a slider drawn over
// maximumAngle degrees so its gap sits centered at north. Full circles are not
// rotated.
func ArcRotation(maximumAngle float64) float64 {
	if maximumAngle == FullCircle {
		return 0
	}
	return toRad(-(maximumAngle / 2))
}

// FitRadius returns the largest radius for which the circle line and its
// handles fit into a width x height box.
func FitRadius(width, height, lineWidth, handleWidth float64) float64 {
	halfLine := math.Ceil(lineWidth / 2)
	halfHandle := math.Ceil(handleWidth / 2)
	return math.Min(width, height)*0.5 - math.Max(halfLine, halfHandle)
}
