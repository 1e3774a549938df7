// Command liveheart-window runs the particle heart in a desktop window
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/liveheart/audio"
	"github.com/lixenwraith/liveheart/config"
	"github.com/lixenwraith/liveheart/core"
	"github.com/lixenwraith/liveheart/engine"
	"github.com/lixenwraith/liveheart/gateway"
	"github.com/lixenwraith/liveheart/host"
	"github.com/lixenwraith/liveheart/render"
	"github.com/lixenwraith/liveheart/status"
	"github.com/lixenwraith/liveheart/telemetry"
)

const (
	windowWidth  = 960
	windowHeight = 720
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "liveheart-window: %v\n", err)
		os.Exit(2)
	}
	log.SetPrefix("[LIVEHEART] ")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, "liveheart-window", cfg.OTelEndpoint)
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
	session.Resize(windowWidth, windowHeight)

	renderer := render.NewRenderer(1)
	ctl := host.New(ctx, session, clock, sound, reg, renderer)
	if cfg.Share != "" {
		if err := ctl.Replay(gw, cfg.Share); err != nil {
			log.Printf("replay %s: %v", cfg.Share, err)
		}
	}
	if cfg.Showcase > 0 {
		ctl.EnableShowcase(cfg.Showcase)
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("LiveHeart")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(max(1, int(time.Second/cfg.FrameInterval)))
	if err := ebiten.RunGame(newGame(session, ctl, renderer)); err != nil {
		log.Printf("liveheart-window: %v", err)
	}
}
