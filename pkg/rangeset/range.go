package rangeset

import (
	"fmt"

	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/labels"
)

// Range is a closed interval [Lower, Upper] of compass angles on the slider
// arc. The ID is the opaque reference handed out to callers.
type Range struct {
	ID     uuid.UUID
	Lower  float64
	Upper  float64
	Labels labels.Set
}

func New(lower, upper float64, lbls labels.Set) Range {
	return Range{
		ID:     uuid.New(),
		Lower:  lower,
		Upper:  upper,
		Labels: lbls,
	}
}

func (r Range) IsValid() bool { return r.Lower <= r.Upper }

func (r Range) Width() float64 { return r.Upper - r.Lower }

func (r Range) String() string {
	return fmt.Sprintf("%s [%g-%g]", r.ID, r.Lower, r.Upper)
}

// Contains returns whether angle lies in r, edges included.
func (r Range) Contains(angle float64) bool {
	return r.Lower <= angle && angle <= r.Upper
}

// EntirelyBefore returns whether r lies counter-clockwise of other without
// touching it.
func (r Range) EntirelyBefore(other Range) bool {
	return r.Upper < other.Lower
}

// EntirelyAfter returns whether r lies clockwise of other without touching
// it.
func (r Range) EntirelyAfter(other Range) bool {
	return r.Lower > other.Upper
}

// CoveredBy returns whether r is entirely contained within other.
func (r Range) CoveredBy(other Range) bool {
	return other.Lower <= r.Lower && r.Upper <= other.Upper
}

// Collides returns whether a candidate range hits r: either endpoint of the
// candidate falls inside r, or the candidate swallows r. Touching endpoints
// collide.
func (r Range) Collides(candidate Range) bool {
	return r.Contains(candidate.Upper) ||
		r.Contains(candidate.Lower) ||
		r.CoveredBy(candidate)
}

func (r Range) Equal(other Range) bool {
	return r.ID == other.ID &&
		r.Lower == other.Lower &&
		r.Upper == other.Upper &&
		labels.Equals(r.Labels, other.Labels)
}
