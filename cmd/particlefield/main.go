package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particlefield/audio"
	"github.com/lixenwraith/particlefield/config"
	"github.com/lixenwraith/particlefield/core"
	"github.com/lixenwraith/particlefield/engine"
	"github.com/lixenwraith/particlefield/session"
)

var (
	presetFlag = flag.String("preset", "", "Field to show first (nebula, reactive, starfield or a configured field)")
	configFlag = flag.String("config", "", "Config file path (default: search $PARTICLEFIELD_CONFIG, ./particlefield.yaml, ~/.config/particlefield/config.yaml)")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/particlefield.log")
	chimeFlag  = flag.Bool("chime", false, "Play a chime on every regeneration")
	springFlag = flag.Bool("spring", false, "Ease scale changes with a spring")
	fpsFlag    = flag.Int("fps", 0, "Frame rate (default from config, 60)")
)

// springDefault is applied to every field by -spring when the config leaves it unset
var springDefault = engine.Spring{Frequency: 6, Damping: 0.6}

func main() {
	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	cfg, path, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if path != "" {
		log.Printf("config: loaded %s", path)
	}
	applyFlags(cfg)

	configs, order, err := cfg.EngineConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	if *springFlag {
		for name, c := range configs {
			if !c.Motion.Spring.Enabled() {
				c.Motion.Spring = springDefault
				configs[name] = c
			}
		}
	}

	sess := session.New(configs, order, engine.WithFrameRate(cfg.FrameRate))

	var chime *audio.Chime
	if cfg.Chime.Enabled {
		chime = audio.NewChime(cfg.Chime.Volume)
		if err := chime.Initialize(); err != nil {
			// Non-fatal, the field runs silently
			log.Printf("audio: initialization failed: %v", err)
		} else {
			defer chime.Close()
			sess.OnRegenerate(chime.OnRegenerate)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashScreen(screen)
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	app := NewApp(screen, sess, cfg.FrameRate, chime)
	defer app.Close()

	if err := app.Mount(cfg.Preset); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to mount %q: %v\n", cfg.Preset, err)
		os.Exit(1)
	}
	app.Run()
}

// loadConfig reads an explicit path or searches the default locations
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// applyFlags lets command-line flags override the config file
func applyFlags(cfg *config.Config) {
	if *presetFlag != "" {
		cfg.Preset = *presetFlag
	}
	if *fpsFlag > 0 {
		cfg.FrameRate = *fpsFlag
	}
	if *chimeFlag {
		cfg.Chime.Enabled = true
	}
}
