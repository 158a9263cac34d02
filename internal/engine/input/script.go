package input

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Script drives input from a tengo program run once per tick. The program
// sees tick and dt and sets any of aim, fire, move_x, move_z, look_x,
// look_y, focus_x and focus_y. aim and move are held between ticks; fire
// and look reset before every run. A state map persists across runs.
type Script struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	aiming   bool
}

var scriptGlobals = map[string]any{
	"tick":    0,
	"dt":      0.0,
	"aim":     false,
	"fire":    false,
	"move_x":  0.0,
	"move_z":  0.0,
	"look_x":  0.0,
	"look_y":  0.0,
	"focus_x": -1.0,
	"focus_y": -1.0,
}

// LoadScript compiles the script at path.
func LoadScript(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input script: %w", err)
	}
	s, err := CompileScript(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// CompileScript compiles a script from source.
func CompileScript(src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	for name, v := range scriptGlobals {
		if err := script.Add(name, v); err != nil {
			return nil, err
		}
	}
	if err := script.Add("state", map[string]any{}); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap("math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile input script: %w", err)
	}
	return &Script{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Path returns the file the script was loaded from, if any.
func (s *Script) Path() string {
	return s.path
}

// Poll runs the script for one tick and returns the resulting events.
func (s *Script) Poll(tick int, dt float32) ([]Event, error) {
	c := s.compiled
	for name, v := range map[string]any{
		"tick":   tick,
		"dt":     float64(dt),
		"fire":   false,
		"look_x": 0.0,
		"look_y": 0.0,
		"state":  s.state,
	} {
		if err := c.Set(name, v); err != nil {
			return nil, err
		}
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("input script tick %d: %w", tick, err)
	}

	var events []Event
	if aiming := c.Get("aim").Bool(); aiming != s.aiming {
		s.aiming = aiming
		if aiming {
			events = append(events, Event{Type: EventAimDown})
		} else {
			events = append(events, Event{Type: EventAimUp})
		}
	}
	if c.Get("fire").Bool() {
		events = append(events, Event{Type: EventFire})
	}
	events = append(events, Event{
		Type: EventMove,
		X:    float32(c.Get("move_x").Float()),
		Y:    float32(c.Get("move_z").Float()),
	})
	if lx, ly := c.Get("look_x").Float(), c.Get("look_y").Float(); lx != 0 || ly != 0 {
		events = append(events, Event{Type: EventLook, X: float32(lx), Y: float32(ly)})
	}
	if fx, fy := c.Get("focus_x").Float(), c.Get("focus_y").Float(); fx >= 0 && fy >= 0 {
		events = append(events, Event{Type: EventFocus, X: float32(fx), Y: float32(fy)})
	} else {
		events = append(events, Event{Type: EventFocusReset})
	}
	return events, nil
}
