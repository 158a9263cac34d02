package input

import (
	"testing"

	"github.com/Faultbox/polygon-tps/internal/aim"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

var _ aim.InputSource = (*State)(nil)

func TestStateApplyEvents(t *testing.T) {
	s := New()
	s.Push(Event{Type: EventAimDown})
	s.Push(Event{Type: EventFire})
	s.Push(Event{Type: EventMove, X: 0.5, Y: 1})
	s.Push(Event{Type: EventLook, X: 3, Y: 1})
	s.Push(Event{Type: EventLook, X: 2})
	s.Update()

	f := s.Frame()
	if !f.Aim || !f.Fire {
		t.Errorf("Frame() = %+v, want aim and fire", *f)
	}
	if f.FocalPoint != nil {
		t.Errorf("FocalPoint = %v, want nil", *f.FocalPoint)
	}
	if s.Movement() != (math.Vec2{X: 0.5, Y: 1}) {
		t.Errorf("Movement() = %v", s.Movement())
	}
	if got := s.TakeLook(); got != (math.Vec2{X: 5, Y: 1}) {
		t.Errorf("TakeLook() = %v, want {5 1}", got)
	}
	if got := s.TakeLook(); got != (math.Vec2{}) {
		t.Errorf("second TakeLook() = %v, want zero", got)
	}
}

func TestStateHoldsUntilChanged(t *testing.T) {
	s := New()
	s.Push(Event{Type: EventAimDown})
	s.Update()

	s.Frame().Fire = false
	s.Update()
	if !s.Frame().Aim {
		t.Error("aim released without an event")
	}

	s.Push(Event{Type: EventAimUp})
	s.Update()
	if s.Frame().Aim {
		t.Error("aim still held after EventAimUp")
	}
}

func TestStateFocus(t *testing.T) {
	s := New()
	s.Push(Event{Type: EventFocus, X: 10, Y: 20})
	s.Update()
	if fp := s.Frame().FocalPoint; fp == nil || *fp != (math.Vec2{X: 10, Y: 20}) {
		t.Fatalf("FocalPoint = %v", fp)
	}

	s.Push(Event{Type: EventFocusReset})
	s.Update()
	if s.Frame().FocalPoint != nil {
		t.Error("FocalPoint not reset")
	}
}
