package slider

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/henderiw/rangedial/pkg/rangeset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowerTarget(t *testing.T) {
	a := rangeset.New(20, 60, nil)
	b := rangeset.New(100, 140, nil)
	c := rangeset.New(200, 250, nil)
	far := rangeset.New(10, 15, nil)
	narrowLow := rangeset.New(65, 68, nil)

	cases := map[string]struct {
		rg     rangeset.Range
		ranges []rangeset.Range
		angle  float64
		want   float64
	}{
		"WrapsToNorth":       {rg: rangeset.New(40, 60, nil), angle: 370, want: 0},
		"WrapsPastNeighbour": {rg: b, ranges: []rangeset.Range{a, b}, angle: 361, want: 0},
		"OwnUpper":           {rg: rangeset.New(40, 60, nil), angle: 55, want: 50},
		"OwnUpperExact":      {rg: rangeset.New(40, 60, nil), angle: 50, want: 50},
		"Neighbour":          {rg: b, ranges: []rangeset.Range{a, b}, angle: 65, want: 70},
		"NeighbourExact":     {rg: b, ranges: []rangeset.Range{a, b}, angle: 70, want: 70},
		"NearestNeighbour":   {rg: c, ranges: []rangeset.Range{far, b, c}, angle: 20, want: 150},
		"Follows":            {rg: b, ranges: []rangeset.Range{a, b, c}, angle: 80, want: 80},
		"ClockwiseIgnored":   {rg: a, ranges: []rangeset.Range{a, b}, angle: 5, want: 5},
		"NegativeFloor":      {rg: a, ranges: []rangeset.Range{a, b}, angle: -5, want: 0},
		"NarrowAtStart":      {rg: rangeset.New(0, 1, nil), angle: 1, want: 0},
		"NarrowNearStart":    {rg: rangeset.New(3, 8, nil), angle: 6, want: 0},
		"NarrowByNeighbour":  {rg: narrowLow, ranges: []rangeset.Range{a, narrowLow}, angle: 61, want: 65},
		"NarrowPastOwnUpper": {rg: narrowLow, ranges: []rangeset.Range{a, narrowLow}, angle: 50, want: 65},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := lowerTarget(tc.rg, tc.ranges, tc.angle, 360, 10)
			if got != tc.want {
				t.Errorf("%s: -want %g, +got: %g\n", name, tc.want, got)
			}
		})
	}
}

func TestUpperTarget(t *testing.T) {
	a := rangeset.New(20, 60, nil)
	b := rangeset.New(100, 140, nil)
	c := rangeset.New(200, 250, nil)
	narrowUp := rangeset.New(20, 23, nil)
	narrowNext := rangeset.New(28, 60, nil)

	cases := map[string]struct {
		rg           rangeset.Range
		ranges       []rangeset.Range
		angle        float64
		maximumAngle float64
		want         float64
	}{
		"ClampsToEnd":        {rg: a, angle: 370, maximumAngle: 360, want: 360},
		"ClampsToPartialEnd": {rg: a, angle: 300, maximumAngle: 270, want: 270},
		"OwnLower":           {rg: rangeset.New(40, 60, nil), angle: 45, maximumAngle: 360, want: 50},
		"Neighbour":          {rg: a, ranges: []rangeset.Range{a, b}, angle: 95, maximumAngle: 360, want: 90},
		"NeighbourExact":     {rg: a, ranges: []rangeset.Range{a, b}, angle: 90, maximumAngle: 360, want: 90},
		"NearestNeighbour":   {rg: a, ranges: []rangeset.Range{c, a, b}, angle: 260, maximumAngle: 360, want: 90},
		"Follows":            {rg: a, ranges: []rangeset.Range{a, b}, angle: 80, maximumAngle: 360, want: 80},
		"CounterClockwise":   {rg: b, ranges: []rangeset.Range{a, b}, angle: 355, maximumAngle: 360, want: 355},
		"NarrowAtEnd":        {rg: rangeset.New(355, 358, nil), angle: 356, maximumAngle: 360, want: 360},
		"NarrowAtPartialEnd": {rg: rangeset.New(265, 270, nil), angle: 266, maximumAngle: 270, want: 270},
		"NarrowByNeighbour":  {rg: narrowUp, ranges: []rangeset.Range{narrowUp, narrowNext}, angle: 22, maximumAngle: 360, want: 23},
		"NarrowPastOwnLower": {rg: narrowUp, ranges: []rangeset.Range{narrowUp, narrowNext}, angle: 30, maximumAngle: 360, want: 23},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := upperTarget(tc.rg, tc.ranges, tc.angle, tc.maximumAngle, 10)
			if got != tc.want {
				t.Errorf("%s: -want %g, +got: %g\n", name, tc.want, got)
			}
		})
	}
}

func TestMoveOtherRangeClamp(t *testing.T) {
	m, rec, ids := newTestManager(t, degreeConfig(), [2]float64{20, 60}, [2]float64{100, 140})

	rg, err := m.MoveUpper(ids[0], 95)
	require.NoError(t, err)
	assert.Equal(t, 90.0, rg.Upper)
	require.Len(t, rec.changed, 1)
	assert.Equal(t, changed{id: ids[0], lower: 20, upper: 90}, rec.changed[0])

	rg, err = m.MoveLower(ids[1], 65)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rg.Lower, "lower of B may not come closer than 10 to the upper of A")
}

func TestMoveWrapPolicy(t *testing.T) {
	m, _, ids := newTestManager(t, degreeConfig(), [2]float64{40, 60})

	rg, err := m.MoveLower(ids[0], 370)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rg.Lower)

	rg, err = m.MoveUpper(ids[0], 370)
	require.NoError(t, err)
	assert.Equal(t, 360.0, rg.Upper)
}

func TestMoveNarrowRangeStaysOnArc(t *testing.T) {
	m, rec, ids := newTestManager(t, DefaultConfig(), [2]float64{0, 1}, [2]float64{99, 100})

	rg, err := m.MoveLower(ids[0], 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rg.Lower)
	assert.InDelta(t, 3.6, rg.Upper, 1e-9)

	rg, err = m.MoveUpper(ids[1], 357)
	require.NoError(t, err)
	assert.InDelta(t, 356.4, rg.Lower, 1e-9)
	assert.Equal(t, 360.0, rg.Upper)

	require.Len(t, rec.changed, 2)
	assert.InDelta(t, 0, rec.changed[0].lower, 1e-9)
	assert.InDelta(t, 1, rec.changed[0].upper, 1e-9)
	assert.InDelta(t, 99, rec.changed[1].lower, 1e-9)
	assert.InDelta(t, 100, rec.changed[1].upper, 1e-9)

	for _, id := range ids {
		lower, upper, err := m.Values(id)
		require.NoError(t, err)
		assert.True(t, lower <= upper)
	}
}

func TestMoveFailureKeepsState(t *testing.T) {
	rec := &recorder{}
	var inner error
	var m Manager
	m, err := New(degreeConfig(), testLayout, WithEventHandler(EventHandlerFuncs{
		RangeChangedFunc: func(id uuid.UUID, lower, upper float64) {
			rec.RangeChanged(id, lower, upper)
			_, inner = m.MoveUpper(id, 200)
		},
	}))
	require.NoError(t, err)
	rg, ok, err := m.AddRange(40, 60, nil)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = m.MoveLower(rg.ID, 45)
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrReentrantCall)

	got, err := m.Get(rg.ID)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{45, 60}, [2]float64{got.Lower, got.Upper})
	require.Len(t, rec.changed, 1)
	assert.Equal(t, changed{id: rg.ID, lower: 45, upper: 60}, rec.changed[0])
}

func TestMoveUnknownRange(t *testing.T) {
	m, rec, _ := newTestManager(t, degreeConfig(), [2]float64{40, 60})

	_, err := m.MoveLower(rangeset.New(0, 0, nil).ID, 10)
	assert.ErrorIs(t, err, ErrRangeNotFound)
	_, err = m.MoveUpper(rangeset.New(0, 0, nil).ID, 10)
	assert.ErrorIs(t, err, ErrRangeNotFound)
	assert.Empty(t, rec.changed)
}

// Starting from ranges that honour the separation rules, no sequence of moves
// on the arc can make ranges overlap or bring handles too close.
func TestMoveInvariants(t *testing.T) {
	cfg := degreeConfig()
	m, _, ids := newTestManager(t, cfg,
		[2]float64{0, 20},
		[2]float64{40, 70},
		[2]float64{100, 130},
		[2]float64{200, 230},
		[2]float64{300, 340},
	)

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 5000; i++ {
		id := ids[rnd.Intn(len(ids))]
		angle := rnd.Float64() * cfg.MaximumAngle
		var err error
		if rnd.Intn(2) == 0 {
			_, err = m.MoveLower(id, angle)
		} else {
			_, err = m.MoveUpper(id, angle)
		}
		require.NoError(t, err)

		ranges := m.Ranges()
		for x, a := range ranges {
			if a.Upper-a.Lower < cfg.MinimumHandleDistance-1e-9 {
				t.Fatalf("move %d: range %s handles closer than %g", i, a, cfg.MinimumHandleDistance)
			}
			if a.Lower < 0 || a.Upper > cfg.MaximumAngle {
				t.Fatalf("move %d: range %s left the arc", i, a)
			}
			for _, b := range ranges[x+1:] {
				if !(a.Upper < b.Lower || b.Upper < a.Lower) {
					t.Fatalf("move %d: ranges %s and %s overlap", i, a, b)
				}
			}
		}
	}
}
