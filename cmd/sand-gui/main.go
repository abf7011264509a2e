//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"falling-sand/internal/app"
	"falling-sand/internal/ctxlog"
	"falling-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := app.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)

	g, setup, _, err := app.Prepare(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if setup != nil {
		if err := setup(ctx, g); err != nil {
			log.Fatal(err)
		}
	}

	game := app.New(g, cfg.Scale, cfg.Seed)

	ebiten.SetWindowTitle(ui.WindowTitle(g.Name()))
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
