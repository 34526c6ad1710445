//go:build ebiten

package main

import (
	"errors"
	"flag"
	"strings"

	"spinlab/internal/app"
	"spinlab/internal/core"
	"spinlab/internal/logger"
	_ "spinlab/internal/sims/ising"
	_ "spinlab/internal/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	log := logger.New("ca")
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %s)", cfg.Sim, strings.Join(core.SimNames(), ", "))
	}

	sim := factory(cfg.SimConfig())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.HUDWidth, cfg.Seed)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("spinlab - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	log.Infof("running %s %dx%d seed=%d", sim.Name(), sim.Size().W, sim.Size().H, cfg.Seed)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("%v", err)
	}
}
