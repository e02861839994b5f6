package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/render"
)

type Game struct {
	levelName string
	logger    *slog.Logger

	input    Input
	player   *obj.Player
	recorder *obj.Recorder
	world    *obj.World
	camera   *common.Camera
	renderer *render.Renderer
	watcher  *prefabs.Watcher
}

func NewGame(levelName string, debug bool, logger *slog.Logger) (*Game, error) {
	cfg, err := prefabs.LoadPlayerConfig()
	if err != nil {
		return nil, err
	}
	player, err := obj.NewPlayer(cfg)
	if err != nil {
		return nil, err
	}

	theme, err := prefabs.LoadThemeSpec()
	if err != nil {
		return nil, err
	}
	renderer := render.NewRenderer(render.PaletteFromTheme(theme))
	renderer.Debug = debug

	g := &Game{
		levelName: levelName,
		logger:    logger,
		player:    player,
		recorder:  &obj.Recorder{},
		camera:    common.NewCamera(common.BaseWidth, common.BaseHeight),
		renderer:  renderer,
	}
	if err := g.loadCamera(); err != nil {
		return nil, err
	}
	if err := g.loadLevel(context.Background()); err != nil {
		return nil, err
	}
	return g, nil
}

// Watch starts hot reloading tuning and level files from disk. Missing
// directories are skipped so an installed binary runs on embedded data.
func (g *Game) Watch() error {
	w, err := prefabs.NewWatcher()
	if err != nil {
		return err
	}
	dirs := []struct {
		path string
		kind prefabs.ChangeKind
	}{
		{"prefabs", prefabs.ChangeTuning},
		{"levels", prefabs.ChangeLevel},
		{"levels/scripts", prefabs.ChangeLevel},
		{"levels/images", prefabs.ChangeLevel},
	}
	for _, d := range dirs {
		if err := w.Watch(d.path, d.kind); err != nil {
			g.logger.Debug("not watching", "dir", d.path, "err", err)
		}
	}
	g.watcher = w
	return nil
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) loadLevel(ctx context.Context) error {
	stage, err := levels.Load(ctx, levels.Source(), g.levelName)
	if err != nil {
		return err
	}
	world, err := stage.World(g.player, obj.WithLogger(g.logger), obj.WithRecorder(g.recorder))
	if err != nil {
		return fmt.Errorf("levels: place player in %s: %w", g.levelName, err)
	}

	g.world = world
	g.renderer.Forget()
	g.camera.SetWorldBounds(stage.Bounds())
	g.snapCamera()
	g.logger.Info("level loaded", "level", stage.Name, "obstacles", len(stage.Obstacles))
	return nil
}

func (g *Game) loadCamera() error {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return err
	}
	g.camera.SetSmooth(spec.Smoothness)
	g.camera.SetLookAhead(spec.LookAhead)
	g.camera.SetThirds(spec.Thirds)
	return nil
}

func (g *Game) snapCamera() {
	r := g.player.Rect()
	g.camera.SnapTo(r.X+r.Width/2, r.Y+r.Height/2)
}

// reload applies file changes picked up by the watcher. A broken file is
// logged and the running state kept.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	changes, errs := g.watcher.Poll()
	for _, err := range errs {
		g.logger.Warn("watch", "err", err)
	}

	for _, c := range changes {
		var err error
		switch {
		case c.Kind == prefabs.ChangeLevel:
			err = g.loadLevel(context.Background())
		case prefabs.Is(c.Path, prefabs.PlayerFile):
			err = g.retune()
		case prefabs.Is(c.Path, "camera.yaml"):
			err = g.loadCamera()
		case prefabs.Is(c.Path, "theme.yaml"):
			var theme *prefabs.ThemeSpec
			if theme, err = prefabs.LoadThemeSpec(); err == nil {
				g.renderer.Palette = render.PaletteFromTheme(theme)
			}
		default:
			continue
		}
		if err != nil {
			g.logger.Error("reload failed", "path", c.Path, "kind", c.Kind, "err", err)
			continue
		}
		g.logger.Info("reloaded", "path", c.Path, "kind", c.Kind)
	}
}

// retune swaps in the tuning file while keeping the stage's spawn point.
func (g *Game) retune() error {
	cfg, err := prefabs.LoadPlayerConfig()
	if err != nil {
		return err
	}
	old := g.player.Config()
	cfg.SpawnX, cfg.SpawnY = old.SpawnX, old.SpawnY
	return g.player.Retune(cfg)
}

func (g *Game) Update() error {
	g.reload()

	g.input.Update()
	g.handleHotkeys()
	g.input.Apply(g.player)

	if contact := g.world.Tick(1.0 / float64(ebiten.TPS())); contact.Has(obj.ContactDead) {
		g.snapCamera()
	}
	g.camera.Follow(g.player.Rect(), g.player.VX)
	return nil
}

func (g *Game) handleHotkeys() {
	if g.input.ResetPressed {
		g.world.Reset()
		g.snapCamera()
	}
	if g.input.DebugPressed {
		g.renderer.Debug = !g.renderer.Debug
	}
	if g.input.RecordPressed {
		if g.recorder.Toggle() {
			g.logger.Info("recording started")
		} else {
			g.logger.Info("recording stopped", "samples", g.recorder.Len())
		}
	}
	if g.input.SpanPressed {
		if minY, maxY, height, ok := g.recorder.VerticalSpan(); ok {
			g.logger.Info("recorded span", "min_y", minY, "max_y", maxY, "height", height)
		} else {
			g.logger.Info("nothing recorded")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	camX, camY := g.camera.ViewTopLeft()
	g.renderer.Draw(screen, g.world, camX, camY)
	g.renderer.DrawHUD(screen, g.world, g.levelName)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
