package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particlefield/audio"
	"github.com/lixenwraith/particlefield/core"
	"github.com/lixenwraith/particlefield/engine"
	"github.com/lixenwraith/particlefield/render"
	"github.com/lixenwraith/particlefield/session"
)

// App hosts one session on a tcell screen
type App struct {
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	sess     *session.Session
	metrics  render.CellMetrics
	interval time.Duration
	chime    *audio.Chime // nil when disabled

	loop *engine.Loop
}

// NewApp wires a renderer to the screen; the session is not mounted until Mount
func NewApp(screen tcell.Screen, sess *session.Session, fps int, chime *audio.Chime) *App {
	if fps <= 0 {
		fps = engine.DefaultFrameRate
	}
	a := &App{
		screen:   screen,
		sess:     sess,
		metrics:  render.DefaultCellMetrics,
		interval: time.Second / time.Duration(fps),
		chime:    chime,
	}
	a.renderer = render.NewTerminalRenderer(screen, a.metrics, engine.NebulaConfig().Background)
	a.renderer.SetStatus(a.status)
	return a
}

// Mount replaces the running field with the named one
func (a *App) Mount(name string) error {
	a.stopLoop()

	e, err := a.sess.Switch(name, a.renderer.Viewport())
	if err != nil {
		return err
	}
	a.startLoop(e)
	return nil
}

// Next cycles to the following field
func (a *App) Next() error {
	a.stopLoop()

	e, err := a.sess.Next()
	if err != nil {
		return err
	}
	a.startLoop(e)
	return nil
}

func (a *App) startLoop(e *engine.Engine) {
	a.renderer.SetBackground(e.Config().Background)
	a.loop = engine.NewLoop(e, a.renderer, a.interval)
	a.loop.Start()
}

func (a *App) stopLoop() {
	if a.loop != nil {
		a.loop.Stop()
		a.loop = nil
	}
}

// Close stops rendering and unmounts the field
func (a *App) Close() {
	a.stopLoop()
	a.sess.Close()
}

// status renders the HUD line from the current engine
func (a *App) status() string {
	e := a.sess.Current()
	if e == nil {
		return ""
	}
	st := e.Stats()
	line := fmt.Sprintf(" %s  %d particles  gen %d", st.Name, st.Particles, st.Generations)
	if st.Paused {
		line += "  [paused]"
	}
	return line + "  | n next  p pause  r regen  m mute  q quit"
}

// HandleEvent applies one terminal event; returns false when the app should exit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := a.metrics.PointerPixels(col, row)
		a.sess.Source().Emit(x, y)

	case *tcell.EventResize:
		a.screen.Sync()
		v := a.renderer.Resize()
		a.sess.Resize(v)
		log.Printf("app: resized to %.0fx%.0f", v.Width, v.Height)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if ev.Key() != tcell.KeyRune {
		return true
	}

	e := a.sess.Current()
	switch ev.Rune() {
	case 'q':
		return false
	case 'p', ' ':
		if e != nil {
			e.TogglePause()
		}
	case 'r':
		if e != nil {
			e.Regenerate()
		}
	case 'n':
		if err := a.Next(); err != nil {
			log.Printf("app: switch failed: %v", err)
		}
	case 'm':
		if a.chime != nil {
			log.Printf("app: chime muted=%v", a.chime.ToggleMute())
		}
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		names := a.sess.Names()
		if i := int(ev.Rune() - '1'); i < len(names) {
			if err := a.Mount(names[i]); err != nil {
				log.Printf("app: switch failed: %v", err)
			}
		}
	}
	return true
}

// Run polls terminal events until quit
func (a *App) Run() {
	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	})

	for ev := range eventChan {
		if !a.HandleEvent(ev) {
			return
		}
	}
}
