// Package input turns player intents into the per-tick frame the aim
// controller reads.
package input

import (
	"github.com/Faultbox/polygon-tps/internal/aim"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventAimDown
	EventAimUp
	EventFire
	EventMove  // X is strafe, Y is forward, both in [-1, 1]
	EventLook  // X and Y are look deltas
	EventFocus // X and Y are the screen focal point
	EventFocusReset
)

// Event represents a processed input event.
type Event struct {
	Type EventType
	X    float32
	Y    float32
}

// State accumulates events into the current frame. The aim controller
// reads and clears fire-intent through Frame.
type State struct {
	events []Event
	frame  aim.FrameInput
	focal  math.Vec2
	move   math.Vec2
	look   math.Vec2
}

// New creates an empty input state.
func New() *State {
	return &State{
		events: make([]Event, 0, 16),
	}
}

// Push queues an event for the next Update.
func (s *State) Push(e Event) {
	s.events = append(s.events, e)
}

// Update applies queued events. Aim and move are held until changed; look
// deltas accumulate until taken; fire stays set until the controller
// consumes it.
func (s *State) Update() {
	for _, e := range s.events {
		switch e.Type {
		case EventAimDown:
			s.frame.Aim = true
		case EventAimUp:
			s.frame.Aim = false
		case EventFire:
			s.frame.Fire = true
		case EventMove:
			s.move = math.Vec2{X: e.X, Y: e.Y}
		case EventLook:
			s.look = s.look.Add(math.Vec2{X: e.X, Y: e.Y})
		case EventFocus:
			s.focal = math.Vec2{X: e.X, Y: e.Y}
			s.frame.FocalPoint = &s.focal
		case EventFocusReset:
			s.frame.FocalPoint = nil
		}
	}
	s.events = s.events[:0]
}

// Frame returns the live frame input.
func (s *State) Frame() *aim.FrameInput {
	return &s.frame
}

// Movement returns the held move stick.
func (s *State) Movement() math.Vec2 {
	return s.move
}

// TakeLook returns and clears the accumulated look delta.
func (s *State) TakeLook() math.Vec2 {
	l := s.look
	s.look = math.Vec2{}
	return l
}
