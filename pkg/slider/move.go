package slider

import (
	"math"

	"github.com/henderiw/rangedial/pkg/rangeset"
)

// lowerTarget returns the angle the lower handle of rg commits to when
// dragged to angle. The first rule that applies wins:
//  1. past the end of the arc the handle wraps back to north (0), it is not
//     clamped to maximumAngle
//  2. it stays at least minDistance below its own upper handle, never below 0
//  3. it stays at least minDistance above the upper handle of the closest
//     range counter-clockwise of it
//  4. otherwise it follows the pointer, never below 0
//
// A range narrower than minDistance cannot honour rules 2 and 3 at once; when
// the result would pass its own upper handle or touch the neighbour the
// handle stays where it is.
func lowerTarget(rg rangeset.Range, ranges []rangeset.Range, angle, maximumAngle, minDistance float64) float64 {
	if angle > maximumAngle {
		return 0
	}
	bound, hasBound := counterClockwiseBound(rg, ranges)

	var target float64
	switch {
	case angle > rg.Upper-minDistance:
		target = math.Max(0, rg.Upper-minDistance)
	case hasBound && angle < bound+minDistance:
		target = bound + minDistance
	case angle < 0:
		return 0
	default:
		return angle
	}
	if target > rg.Upper || (hasBound && target <= bound) {
		return rg.Lower
	}
	return target
}

// upperTarget mirrors lowerTarget for the upper handle:
//  1. past the end of the arc the handle is clamped to maximumAngle
//  2. it stays at least minDistance above its own lower handle, never past
//     maximumAngle
//  3. it stays at least minDistance below the lower handle of the closest
//     range clockwise of it
//  4. otherwise it follows the pointer
func upperTarget(rg rangeset.Range, ranges []rangeset.Range, angle, maximumAngle, minDistance float64) float64 {
	if angle > maximumAngle {
		return maximumAngle
	}
	bound, hasBound := clockwiseBound(rg, ranges, maximumAngle)

	var target float64
	switch {
	case angle < rg.Lower+minDistance:
		target = math.Min(maximumAngle, rg.Lower+minDistance)
	case hasBound && angle > bound-minDistance:
		target = bound - minDistance
	default:
		return angle
	}
	if target < rg.Lower || (hasBound && target >= bound) {
		return rg.Upper
	}
	return target
}

// counterClockwiseBound returns the upper handle of the closest range lying
// entirely counter-clockwise of rg.
func counterClockwiseBound(rg rangeset.Range, ranges []rangeset.Range) (float64, bool) {
	bound, found := 0.0, false
	for _, o := range ranges {
		if o.ID == rg.ID {
			continue
		}
		if o.Upper < rg.Lower && o.Upper >= 0 && (!found || o.Upper > bound) {
			bound, found = o.Upper, true
		}
	}
	return bound, found
}

// clockwiseBound returns the lower handle of the closest range lying entirely
// clockwise of rg.
func clockwiseBound(rg rangeset.Range, ranges []rangeset.Range, maximumAngle float64) (float64, bool) {
	bound, found := 0.0, false
	for _, o := range ranges {
		if o.ID == rg.ID {
			continue
		}
		if o.Lower > rg.Upper && o.Lower <= maximumAngle && (!found || o.Lower < bound) {
			bound, found = o.Lower, true
		}
	}
	return bound, found
}
