package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/particlefield/audio"
	"github.com/lixenwraith/particlefield/config"
	"github.com/lixenwraith/particlefield/core"
	"github.com/lixenwraith/particlefield/engine"
	"github.com/lixenwraith/particlefield/render/window"
	"github.com/lixenwraith/particlefield/session"
)

var (
	presetFlag = flag.String("preset", "", "Field to show first")
	configFlag = flag.String("config", "", "Config file path")
	widthFlag  = flag.Int("width", 1280, "Window width in pixels")
	heightFlag = flag.Int("height", 720, "Window height in pixels")
	chimeFlag  = flag.Bool("chime", false, "Play a chime on every regeneration")
	hudFlag    = flag.Bool("hud", true, "Show the status overlay")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if *configFlag != "" {
		cfg, path, err = config.LoadFromPath(*configFlag)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if path != "" {
		log.Printf("config: loaded %s", path)
	}
	if *presetFlag != "" {
		cfg.Preset = *presetFlag
	}

	configs, order, err := cfg.EngineConfigs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	sess := session.New(configs, order, engine.WithFrameRate(cfg.FrameRate))

	if cfg.Chime.Enabled || *chimeFlag {
		chime := audio.NewChime(cfg.Chime.Volume)
		if err := chime.Initialize(); err != nil {
			log.Printf("audio: initialization failed: %v", err)
		} else {
			defer chime.Close()
			sess.OnRegenerate(chime.OnRegenerate)
		}
	}

	err = window.Run(sess, window.Options{
		Title:     "particlefield",
		Width:     *widthFlag,
		Height:    *heightFlag,
		FrameRate: cfg.FrameRate,
		ShowHUD:   *hudFlag,
		Field:     cfg.Preset,
	})
	if err != nil {
		log.Printf("window: %v", err)
		os.Exit(1)
	}
}
