package slider

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/henderiw/rangedial/pkg/rangeset"
)

type Handle int

const (
	HandleNone Handle = iota
	HandleLower
	HandleUpper
)

func (r Handle) String() string {
	switch r {
	case HandleLower:
		return "lower"
	case HandleUpper:
		return "upper"
	}
	return "none"
}

type State int

const (
	Idle State = iota
	DraggingLower
	DraggingUpper
)

func (r State) String() string {
	switch r {
	case DraggingLower:
		return "DraggingLower"
	case DraggingUpper:
		return "DraggingUpper"
	}
	return "Idle"
}

// DragState is the target of the active pointer gesture.
type DragState struct {
	RangeID uuid.UUID
	Handle  Handle
}

func (r DragState) State() State {
	switch r.Handle {
	case HandleLower:
		return DraggingLower
	case HandleUpper:
		return DraggingUpper
	}
	return Idle
}

type HitKind int

const (
	// HitNone: the point is off the handles and off the track.
	HitNone HitKind = iota
	HitHandle
	HitTrack
)

// HitResult describes what a point lands on. Range and Handle are set for
// HitHandle, Angle and Value for HitTrack.
type HitResult struct {
	Kind   HitKind
	Range  rangeset.Range
	Handle Handle
	Angle  float64
	Value  float64
}

func (r HitResult) String() string {
	switch r.Kind {
	case HitHandle:
		return fmt.Sprintf("handle %s of %s", r.Handle, r.Range.ID)
	case HitTrack:
		return fmt.Sprintf("track at %g (value %g)", r.Angle, r.Value)
	}
	return "none"
}
