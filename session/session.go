// Package session is the page-shell side of the engine: it owns the pointer source and
// pointer state, mounts one field at a time and switches between configured fields.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lixenwraith/particlefield/engine"
	"github.com/lixenwraith/particlefield/input"
	"github.com/lixenwraith/particlefield/particle"
)

// ErrUnknownField is returned when switching to a name that was not configured
var ErrUnknownField = errors.New("unknown field")

// Session keeps one mounted engine and the input it reads
type Session struct {
	mu       sync.Mutex
	configs  map[string]engine.Config
	order    []string
	opts     []engine.Option
	hooks    []func(*particle.Batch)
	source   *input.Broadcaster
	pointer  *input.Pointer
	viewport engine.Viewport

	current *engine.Engine
}

// New creates a session over the given field configs; order fixes cycling order
// Extra engine options are applied to every engine the session creates
func New(configs map[string]engine.Config, order []string, opts ...engine.Option) *Session {
	return &Session{
		configs: configs,
		order:   order,
		opts:    opts,
		source:  input.NewBroadcaster(),
		pointer: input.NewPointer(),
	}
}

// OnRegenerate registers a hook attached to every engine created afterwards
func (s *Session) OnRegenerate(fn func(*particle.Batch)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Source returns the pointer source hosts feed with pointer-move signals
func (s *Session) Source() *input.Broadcaster {
	return s.source
}

// Names returns field names in cycling order
func (s *Session) Names() []string {
	return append([]string(nil), s.order...)
}

// Switch unmounts the current field and mounts the named one at the last known viewport
func (s *Session) Switch(name string, v engine.Viewport) (*engine.Engine, error) {
	cfg, ok := s.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Unmount()
	}

	opts := append([]engine.Option{
		engine.WithPointer(s.pointer),
		engine.WithPointerSource(s.source),
	}, s.opts...)

	e := engine.New(cfg, opts...)
	for _, fn := range s.hooks {
		e.OnRegenerate(fn)
	}

	s.viewport = v
	e.Mount(v)
	s.current = e
	return e, nil
}

// Next switches to the field after the current one in cycling order
func (s *Session) Next() (*engine.Engine, error) {
	s.mu.Lock()
	name := ""
	if s.current != nil {
		name = s.current.Config().Name
	}
	v := s.viewport
	s.mu.Unlock()

	if len(s.order) == 0 {
		return nil, fmt.Errorf("%w: no fields configured", ErrUnknownField)
	}

	next := s.order[0]
	for i, n := range s.order {
		if n == name {
			next = s.order[(i+1)%len(s.order)]
			break
		}
	}
	return s.Switch(next, v)
}

// Current returns the mounted engine, nil before the first Switch or after Close
func (s *Session) Current() *engine.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Resize forwards new container dimensions to the mounted engine
func (s *Session) Resize(v engine.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
	if s.current != nil {
		s.current.Resize(v.Width, v.Height)
	}
}

// Close unmounts the current field; safe to call more than once
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Unmount()
		s.current = nil
	}
}
