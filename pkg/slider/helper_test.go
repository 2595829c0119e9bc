package slider

import (
	"testing"

	"github.com/google/uuid"
	"github.com/henderiw/rangedial/pkg/geometry"
	"github.com/stretchr/testify/require"
)

var testLayout = StaticLayout{
	CenterPoint:  geometry.Point{X: 0, Y: 0},
	CircleRadius: 50,
	Line:         5,
	Handle:       10,
}

// degreeConfig maps values one to one onto degrees.
func degreeConfig() Config {
	cfg := DefaultConfig()
	cfg.MaximumValue = 360
	return cfg
}

type changed struct {
	id           uuid.UUID
	lower, upper float64
}

type recorder struct {
	changed  []changed
	touched  []float64
	rejected [][2]float64
}

func (r *recorder) RangeChanged(id uuid.UUID, lower, upper float64) {
	r.changed = append(r.changed, changed{id: id, lower: lower, upper: upper})
}

func (r *recorder) TouchedValue(v float64) { r.touched = append(r.touched, v) }

func (r *recorder) InsertionRejected(lower, upper float64) {
	r.rejected = append(r.rejected, [2]float64{lower, upper})
}

func newTestManager(t *testing.T, cfg Config, ranges ...[2]float64) (Manager, *recorder, []uuid.UUID) {
	t.Helper()
	rec := &recorder{}
	m, err := New(cfg, testLayout, WithEventHandler(rec))
	require.NoError(t, err)

	ids := make([]uuid.UUID, 0, len(ranges))
	for _, v := range ranges {
		rg, ok, err := m.AddRange(v[0], v[1], nil)
		require.NoError(t, err)
		require.True(t, ok, "range %v rejected", v)
		ids = append(ids, rg.ID)
	}
	return m, rec, ids
}

func pointAt(angle float64) geometry.Point {
	return geometry.PointOnCircle(testLayout.CenterPoint, testLayout.CircleRadius, angle)
}
