package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug drawing and logging")
	levelName := flag.String("level", "intro.yaml", "level file in levels/")
	watch := flag.Bool("watch", true, "hot reload prefabs/ and levels/ from disk")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	game, err := NewGame(*levelName, *debug, logger)
	if err != nil {
		logger.Error("start", "err", err)
		os.Exit(1)
	}

	if *watch {
		if err := game.Watch(); err != nil {
			logger.Warn("hot reload disabled", "err", err)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("platformer")

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		logger.Error("run", "err", err)
		os.Exit(1)
	}
}
