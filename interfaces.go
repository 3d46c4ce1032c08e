package main

import "image"

// InputActions is what the input handler drives. *Player implements it.
type InputActions interface {
	TogglePause()
	StepForward()
	StepBackward()
	Exit()
}

// RenderState provides read-only access to playback state for the renderer
type RenderState interface {
	Frame() *Frame
	Count() int
	State() PlaybackState
}

// RenderStateSnapshot captures what was on screen at the last repaint.
// Draw skips repainting while the snapshot is unchanged.
type RenderStateSnapshot struct {
	Frame    *Frame
	Paused   bool
	Viewport image.Point
}

// NewRenderStateSnapshot takes a snapshot of state for the given viewport
func NewRenderStateSnapshot(state RenderState, viewport image.Point) *RenderStateSnapshot {
	return &RenderStateSnapshot{
		Frame:    state.Frame(),
		Paused:   state.State().Paused,
		Viewport: viewport,
	}
}

// Equals checks if two snapshots are equal
func (s *RenderStateSnapshot) Equals(other *RenderStateSnapshot) bool {
	if other == nil {
		return false
	}
	return s.Frame == other.Frame &&
		s.Paused == other.Paused &&
		s.Viewport == other.Viewport
}
