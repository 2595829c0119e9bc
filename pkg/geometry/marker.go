package geometry

import "math"

// PercentageAlongCircle returns the fraction of the arc at which marker index
// of count sits. On a full circle the first marker is one step clockwise from
// north and the last one lands on north; on a partial arc the first marker is
// at north and the last one at the end of the arc.
func PercentageAlongCircle(index, count int, isFullCircle bool) float64 {
	if isFullCircle {
		if count <= 0 {
			return 0
		}
		return ((100.0 / float64(count)) * float64(index+1)) / 100.0
	}
	if count <= 1 {
		return 0
	}
	return ((100.0 / float64(count-1)) * float64(index)) / 100.0
}

// MarkerAngles returns the angles of count evenly spaced markers. On a full
// circle the last marker is reported at 0.
func MarkerAngles(count int, maximumAngle float64) []float64 {
	full := maximumAngle == FullCircle
	angles := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		a := PercentageAlongCircle(i, count, full) * maximumAngle
		if full {
			a = Normalize(a)
		}
		angles = append(angles, a)
	}
	return angles
}

// SnapToMarker returns the marker angle closest to angle. Without markers the
// angle is returned unchanged.
func SnapToMarker(angle float64, count int, maximumAngle float64) float64 {
	markers := MarkerAngles(count, maximumAngle)
	if len(markers) == 0 {
		return angle
	}
	best, bestDist := angle, math.Inf(1)
	for _, m := range markers {
		d := math.Abs(m - angle)
		if maximumAngle == FullCircle {
			d = math.Min(d, FullCircle-d)
		}
		if d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}
