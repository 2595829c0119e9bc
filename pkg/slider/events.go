package slider

import "github.com/google/uuid"

// EventHandler receives the outcome of gestures and range operations. The
// handler must not call back into the Manager that is notifying it.
type EventHandler interface {
	// RangeChanged is called for every committed handle move, including moves
	// that were clamped to the requested position.
	RangeChanged(id uuid.UUID, lowerValue, upperValue float64)
	// TouchedValue is called when a pointer lands on the track but misses
	// every handle.
	TouchedValue(value float64)
	// InsertionRejected is called when a new range would overlap an existing
	// one.
	InsertionRejected(lowerValue, upperValue float64)
}

// EventHandlerFuncs adapts plain functions to an EventHandler. Nil functions
// are skipped.
type EventHandlerFuncs struct {
	RangeChangedFunc      func(id uuid.UUID, lowerValue, upperValue float64)
	TouchedValueFunc      func(value float64)
	InsertionRejectedFunc func(lowerValue, upperValue float64)
}

func (r EventHandlerFuncs) RangeChanged(id uuid.UUID, lowerValue, upperValue float64) {
	if r.RangeChangedFunc != nil {
		r.RangeChangedFunc(id, lowerValue, upperValue)
	}
}

func (r EventHandlerFuncs) TouchedValue(value float64) {
	if r.TouchedValueFunc != nil {
		r.TouchedValueFunc(value)
	}
}

func (r EventHandlerFuncs) InsertionRejected(lowerValue, upperValue float64) {
	if r.InsertionRejectedFunc != nil {
		r.InsertionRejectedFunc(lowerValue, upperValue)
	}
}
