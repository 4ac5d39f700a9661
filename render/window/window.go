// Package window hosts a particle field in a desktop window using ebiten.
package window

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/particlefield/engine"
	"github.com/lixenwraith/particlefield/render"
	"github.com/lixenwraith/particlefield/session"
)

// Options configures the window host
type Options struct {
	Title     string
	Width     int
	Height    int
	FrameRate int
	ShowHUD   bool
	Field     string // Initial field name
}

// Game drives the session from ebiten's update loop and draws the latest frame
type Game struct {
	sess    *session.Session
	opts    Options
	frame   engine.Frame
	lastX   int
	lastY   int
	width   int
	height  int
	bgImage *ebiten.Image
	bgFor   string
}

// Run opens the window and blocks until it is closed
func Run(sess *session.Session, opts Options) error {
	if opts.FrameRate <= 0 {
		opts.FrameRate = engine.DefaultFrameRate
	}

	g := &Game{sess: sess, opts: opts, lastX: -1, lastY: -1}
	if _, err := sess.Switch(opts.Field, engine.Viewport{Width: float64(opts.Width), Height: float64(opts.Height)}); err != nil {
		return fmt.Errorf("mount field: %w", err)
	}
	defer sess.Close()

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FrameRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Update forwards pointer motion and key commands, then ticks the field
func (g *Game) Update() error {
	if x, y := ebiten.CursorPosition(); x != g.lastX || y != g.lastY {
		g.lastX, g.lastY = x, y
		g.sess.Source().Emit(float64(x), float64(y))
	}

	e := g.sess.Current()
	if e == nil {
		return ebiten.Termination
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		e.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		e.Regenerate()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		next, err := g.sess.Next()
		if err != nil {
			return err
		}
		e = next
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.opts.ShowHUD = !g.opts.ShowHUD
	}

	g.frame = e.Tick()
	return nil
}

// Draw paints the background gradient, the particles and the HUD
func (g *Game) Draw(screen *ebiten.Image) {
	e := g.sess.Current()
	if e == nil {
		return
	}
	cfg := e.Config()

	g.ensureBackground(cfg)
	screen.DrawImage(g.bgImage, nil)

	for _, rec := range g.frame.Records {
		r := float32(rec.Size / 2)
		if r < 0.5 {
			r = 0.5
		}
		vector.DrawFilledCircle(screen, float32(rec.X), float32(rec.Y), r, render.NRGBA(rec.Color, rec.Opacity), true)
	}

	if g.opts.ShowHUD {
		st := e.Stats()
		line := fmt.Sprintf("%s  %d particles  gen %d  %.0f fps", st.Name, st.Particles, st.Generations, ebiten.ActualFPS())
		if st.Paused {
			line += "  [paused]"
		}
		text.Draw(screen, line, basicfont.Face7x13, 8, 16, color.White)
		text.Draw(screen, "tab field  p pause  r regen  h hud  q quit", basicfont.Face7x13, 8, 32, color.Gray{Y: 160})
	}
}

// Layout keeps a 1:1 pixel mapping and reports size changes to the field
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sess.Resize(engine.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// ensureBackground rebuilds the gradient image after a resize or field switch
func (g *Game) ensureBackground(cfg engine.Config) {
	key := fmt.Sprintf("%s:%dx%d", cfg.Name, g.width, g.height)
	if g.bgImage != nil && g.bgFor == key {
		return
	}
	if g.bgImage != nil {
		g.bgImage.Deallocate()
	}

	w, h := max(g.width, 1), max(g.height, 1)
	g.bgImage = ebiten.NewImage(w, h)
	g.bgImage.WritePixels(render.GradientPixels(w, h,
		render.FromColor(cfg.Background[0]), render.FromColor(cfg.Background[1])))
	g.bgFor = key
}
