package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/liveheart/audio"
	"github.com/lixenwraith/liveheart/config"
	"github.com/lixenwraith/liveheart/core"
	"github.com/lixenwraith/liveheart/engine"
	"github.com/lixenwraith/liveheart/gateway"
	"github.com/lixenwraith/liveheart/status"
	"github.com/lixenwraith/liveheart/telemetry"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "liveheart: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, "liveheart", cfg.OTelEndpoint)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
	}
	defer func() {
		flushCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		_ = shutdown(flushCtx)
	}()

	gw, closeGateway := gateway.Open(cfg.SaveURL, cfg.StorePath)
	defer closeGateway()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()

	reg := status.NewRegistry()
	sound := audio.NewSoundManager(reg)
	if cfg.Audio {
		if err := sound.Initialize(); err != nil {
			log.Printf("audio initialization failed, continuing without sound: %v", err)
		} else {
			defer sound.Cleanup()
		}
	}

	seed := cfg.SeedOr(uint64(time.Now().UnixNano()))
	log.Printf("liveheart: seed %d", seed)
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	opts := []engine.Option{engine.WithRegistry(reg)}
	if gw != nil {
		opts = append(opts, engine.WithGateway(gw))
	}
	session := engine.NewSession(cfg.Engine(), clock, rand.New(rand.NewPCG(seed, seed>>1|1)), opts...)
	defer session.Close()

	a := newApp(ctx, screen, session, clock, sound, reg)
	if cfg.Share != "" {
		if err := a.ctl.Replay(gw, cfg.Share); err != nil {
			log.Printf("replay %s: %v", cfg.Share, err)
		}
	}
	if cfg.Showcase > 0 {
		a.ctl.EnableShowcase(cfg.Showcase)
	}
	run(a, cfg.FrameInterval)
}

// run multiplexes terminal events and the frame ticker until the user quits
func run(a *app, interval time.Duration) {
	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.frame()
		}
	}
}
