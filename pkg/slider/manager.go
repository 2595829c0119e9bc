package slider

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/henderiw/rangedial/pkg/geometry"
	"github.com/henderiw/rangedial/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

var (
	ErrRangeNotFound = errors.New("range not found")
	ErrInvalidRange  = errors.New("lower value above upper value")
	// ErrGestureActive is returned when a pointer goes down while another
	// gesture is still dragging a handle.
	ErrGestureActive = errors.New("a gesture is already active")
	// ErrReentrantCall is returned when an event handler calls back into the
	// manager that is notifying it.
	ErrReentrantCall = errors.New("reentrant call from event handler")
)

// Manager owns the ranges of a multi range circular slider and drives them
// from pointer gestures.
type Manager interface {
	// Gestures
	HitTest(p geometry.Point) HitResult
	PointerDown(p geometry.Point) (HitResult, error)
	PointerMove(p geometry.Point) error
	PointerUp()
	Cancel()
	State() State
	Drag() DragState

	// Constrained moves
	MoveLower(id uuid.UUID, angle float64) (rangeset.Range, error)
	MoveUpper(id uuid.UUID, angle float64) (rangeset.Range, error)

	// Ranges
	AddRange(lowerValue, upperValue float64, lbls labels.Set) (rangeset.Range, bool, error)
	AddRangeAt(value float64, lbls labels.Set) (rangeset.Range, bool, error)
	RemoveRange(id uuid.UUID) error
	RemoveByLabel(selector labels.Selector) (int, error)
	WouldCollide(candidate rangeset.Range) bool

	Get(id uuid.UUID) (rangeset.Range, error)
	Values(id uuid.UUID) (float64, float64, error)
	RangeAtValue(value float64) (rangeset.Range, bool)
	Ranges() []rangeset.Range
	GetByLabel(selector labels.Selector) []rangeset.Range

	Config() Config
}

type Option func(*manager)

func WithLogger(l logr.Logger) Option {
	return func(r *manager) { r.log = l }
}

func WithEventHandler(h EventHandler) Option {
	return func(r *manager) { r.handler = h }
}

func New(cfg Config, layout Layout, opts ...Option) (Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, fmt.Errorf("%w: layout is required", ErrInvalidConfiguration)
	}
	ranges, err := rangeset.NewRangeSet()
	if err != nil {
		return nil, err
	}
	r := &manager{
		cfg:     cfg,
		scale:   cfg.Scale(),
		layout:  layout,
		ranges:  ranges,
		handler: EventHandlerFuncs{},
		log:     logr.Discard(),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

type manager struct {
	cfg     Config
	scale   geometry.ValueScale
	layout  Layout
	ranges  rangeset.RangeSet
	drag    DragState
	handler EventHandler
	log     logr.Logger
	busy    atomic.Bool
}

func (r *manager) enter() error {
	if !r.busy.CompareAndSwap(false, true) {
		return ErrReentrantCall
	}
	return nil
}

func (r *manager) exit() { r.busy.Store(false) }

func (r *manager) Config() Config { return r.cfg }

func (r *manager) State() State { return r.drag.State() }

func (r *manager) Drag() DragState { return r.drag }

// HitTest resolves what p lands on. Handles are tested as squares of at least
// MinimumTouchTarget around their center, ranges in insertion order and the
// lower handle before the upper one; the first match wins. Otherwise a point
// within half a line width of the circle is reported as a track touch.
func (r *manager) HitTest(p geometry.Point) HitResult {
	center := r.layout.Center()
	radius := r.layout.Radius()
	half := handleHalfWidth(r.layout)

	iter := r.ranges.Iterate()
	for iter.Next() {
		rg := iter.Value()
		if p.InBox(geometry.PointOnCircle(center, radius, rg.Lower), half) {
			return HitResult{Kind: HitHandle, Range: rg, Handle: HandleLower, Angle: rg.Lower}
		}
		if p.InBox(geometry.PointOnCircle(center, radius, rg.Upper), half) {
			return HitResult{Kind: HitHandle, Range: rg, Handle: HandleUpper, Angle: rg.Upper}
		}
	}

	band := r.layout.LineWidth() / 2
	if d := center.Distance(p); d < radius-band || d > radius+band {
		return HitResult{Kind: HitNone}
	}
	angle := geometry.Quantize(geometry.AngleFromNorth(center, p))
	value, err := r.scale.AngleToValue(angle)
	if err != nil {
		// in the gap of a partial arc
		return HitResult{Kind: HitNone, Angle: angle}
	}
	return HitResult{Kind: HitTrack, Angle: angle, Value: value}
}

func (r *manager) PointerDown(p geometry.Point) (HitResult, error) {
	if err := r.enter(); err != nil {
		return HitResult{}, err
	}
	defer r.exit()

	if r.drag.Handle != HandleNone {
		return HitResult{}, fmt.Errorf("pointer down at %s while dragging %s handle of %s: %w",
			p, r.drag.Handle, r.drag.RangeID, ErrGestureActive)
	}

	hit := r.HitTest(p)
	switch hit.Kind {
	case HitHandle:
		r.drag = DragState{RangeID: hit.Range.ID, Handle: hit.Handle}
		r.log.V(1).Info("drag started", "range", hit.Range.ID, "handle", hit.Handle.String())
	case HitTrack:
		r.log.V(1).Info("track touched", "angle", hit.Angle, "value", hit.Value)
		r.handler.TouchedValue(hit.Value)
	case HitNone:
		r.log.V(2).Info("pointer down missed", "point", p.String())
	}
	return hit, nil
}

// PointerMove moves the dragged handle towards p. Without an active drag it
// does nothing.
func (r *manager) PointerMove(p geometry.Point) error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.exit()

	if r.drag.Handle == HandleNone {
		return nil
	}
	angle := geometry.Quantize(geometry.AngleFromNorth(r.layout.Center(), p))
	_, err := r.move(r.drag.RangeID, r.drag.Handle, angle)
	return err
}

// PointerUp ends the gesture. Moves committed during the gesture stay.
func (r *manager) PointerUp() {
	if r.drag.Handle != HandleNone {
		r.log.V(1).Info("drag ended", "range", r.drag.RangeID, "handle", r.drag.Handle.String())
	}
	r.drag = DragState{}
}

// Cancel ends the gesture the same way PointerUp does.
func (r *manager) Cancel() {
	if r.drag.Handle != HandleNone {
		r.log.V(1).Info("drag cancelled", "range", r.drag.RangeID, "handle", r.drag.Handle.String())
	}
	r.drag = DragState{}
}

func (r *manager) MoveLower(id uuid.UUID, angle float64) (rangeset.Range, error) {
	if err := r.enter(); err != nil {
		return rangeset.Range{}, err
	}
	defer r.exit()

	return r.move(id, HandleLower, angle)
}

func (r *manager) MoveUpper(id uuid.UUID, angle float64) (rangeset.Range, error) {
	if err := r.enter(); err != nil {
		return rangeset.Range{}, err
	}
	defer r.exit()

	return r.move(id, HandleUpper, angle)
}

func (r *manager) move(id uuid.UUID, h Handle, angle float64) (rangeset.Range, error) {
	rg, err := r.get(id)
	if err != nil {
		return rangeset.Range{}, err
	}
	others := r.ranges.GetAll()

	requested := angle
	switch h {
	case HandleLower:
		rg.Lower = lowerTarget(rg, others, angle, r.cfg.MaximumAngle, r.cfg.MinimumHandleDistance)
		angle = rg.Lower
	case HandleUpper:
		rg.Upper = upperTarget(rg, others, angle, r.cfg.MaximumAngle, r.cfg.MinimumHandleDistance)
		angle = rg.Upper
	default:
		return rangeset.Range{}, fmt.Errorf("cannot move handle %s", h)
	}
	lower, upper, err := r.values(rg)
	if err != nil {
		return rangeset.Range{}, err
	}
	if err := r.ranges.Update(rg); err != nil {
		return rangeset.Range{}, err
	}
	r.log.V(1).Info("handle moved", "range", rg.ID, "handle", h.String(), "requested", requested, "committed", angle)
	r.handler.RangeChanged(rg.ID, lower, upper)
	return rg, nil
}

// AddRange adds a range between two values. A range overlapping an existing
// one is rejected: the result is false, nothing changes and
// InsertionRejected is emitted.
func (r *manager) AddRange(lowerValue, upperValue float64, lbls labels.Set) (rangeset.Range, bool, error) {
	if err := r.enter(); err != nil {
		return rangeset.Range{}, false, err
	}
	defer r.exit()

	return r.addRange(lowerValue, upperValue, lbls)
}

// AddRangeAt adds a range of the configured default width starting at value.
// A range that would run past the maximum value is rejected.
func (r *manager) AddRangeAt(value float64, lbls labels.Set) (rangeset.Range, bool, error) {
	if err := r.enter(); err != nil {
		return rangeset.Range{}, false, err
	}
	defer r.exit()

	if !r.scale.Contains(value) {
		return rangeset.Range{}, false, fmt.Errorf("value %g outside [%g, %g]: %w",
			value, r.scale.Minimum, r.scale.Maximum, geometry.ErrValueOutOfDomain)
	}
	upper := value + r.cfg.DefaultWidth
	if !r.scale.Contains(upper) {
		r.reject(value, upper, "range runs past the maximum value")
		return rangeset.Range{}, false, nil
	}
	return r.addRange(value, upper, lbls)
}

func (r *manager) addRange(lowerValue, upperValue float64, lbls labels.Set) (rangeset.Range, bool, error) {
	lower, err := r.scale.ValueToAngle(lowerValue)
	if err != nil {
		return rangeset.Range{}, false, err
	}
	upper, err := r.scale.ValueToAngle(upperValue)
	if err != nil {
		return rangeset.Range{}, false, err
	}
	if lower > upper {
		return rangeset.Range{}, false, fmt.Errorf("range %g-%g: %w", lowerValue, upperValue, ErrInvalidRange)
	}

	rg, err := r.ranges.Add(rangeset.New(lower, upper, lbls))
	if err != nil {
		if errors.Is(err, rangeset.ErrCollision) {
			r.reject(lowerValue, upperValue, err.Error())
			return rangeset.Range{}, false, nil
		}
		return rangeset.Range{}, false, err
	}
	r.log.Info("range added", "range", rg.ID, "lower", lowerValue, "upper", upperValue)
	return rg, true, nil
}

func (r *manager) reject(lowerValue, upperValue float64, reason string) {
	r.log.Info("range rejected", "lower", lowerValue, "upper", upperValue, "reason", reason)
	r.handler.InsertionRejected(lowerValue, upperValue)
}

// RemoveRange removes a range. Removing the range that is being dragged ends
// the gesture.
func (r *manager) RemoveRange(id uuid.UUID) error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.exit()

	if err := r.ranges.Remove(id); err != nil {
		return fmt.Errorf("remove %s: %w", id, ErrRangeNotFound)
	}
	r.forget(id)
	r.log.Info("range removed", "range", id)
	return nil
}

// RemoveByLabel removes every range matching selector and returns how many
// were removed.
func (r *manager) RemoveByLabel(selector labels.Selector) (int, error) {
	if err := r.enter(); err != nil {
		return 0, err
	}
	defer r.exit()

	removed := r.ranges.RemoveByLabel(selector)
	for _, rg := range removed {
		r.forget(rg.ID)
		r.log.Info("range removed", "range", rg.ID, "selector", selector.String())
	}
	return len(removed), nil
}

func (r *manager) forget(id uuid.UUID) {
	if r.drag.Handle != HandleNone && r.drag.RangeID == id {
		r.drag = DragState{}
	}
}

func (r *manager) WouldCollide(candidate rangeset.Range) bool {
	return r.ranges.WouldCollide(candidate)
}

func (r *manager) Get(id uuid.UUID) (rangeset.Range, error) {
	return r.get(id)
}

func (r *manager) get(id uuid.UUID) (rangeset.Range, error) {
	rg, err := r.ranges.Get(id)
	if err != nil {
		return rangeset.Range{}, fmt.Errorf("%s: %w", id, ErrRangeNotFound)
	}
	return rg, nil
}

// Values returns the lower and upper value of a range.
func (r *manager) Values(id uuid.UUID) (float64, float64, error) {
	rg, err := r.get(id)
	if err != nil {
		return 0, 0, err
	}
	return r.values(rg)
}

func (r *manager) values(rg rangeset.Range) (float64, float64, error) {
	lower, err := r.scale.AngleToValue(rg.Lower)
	if err != nil {
		return 0, 0, err
	}
	upper, err := r.scale.AngleToValue(rg.Upper)
	if err != nil {
		return 0, 0, err
	}
	return lower, upper, nil
}

// RangeAtValue returns the range covering value, used to remove a range by
// touching it.
func (r *manager) RangeAtValue(value float64) (rangeset.Range, bool) {
	angle, err := r.scale.ValueToAngle(value)
	if err != nil || math.IsNaN(angle) {
		return rangeset.Range{}, false
	}
	return r.ranges.Find(angle)
}

func (r *manager) Ranges() []rangeset.Range {
	return r.ranges.GetAll()
}

func (r *manager) GetByLabel(selector labels.Selector) []rangeset.Range {
	return r.ranges.GetByLabel(selector)
}
