package levels

import (
	"context"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"math"
	"os"
	"path"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/obj"
	"golang.org/x/sync/errgroup"
)

//go:embed *.yaml scripts/*.tengo images/*.png
var LevelsFS embed.FS

const diskDir = "levels"

// Source returns the levels directory on disk when it exists, so edits are
// picked up without rebuilding, and the embedded copy otherwise.
func Source() fs.FS {
	if info, err := os.Stat(diskDir); err == nil && info.IsDir() {
		return os.DirFS(diskDir)
	}
	return LevelsFS
}

// Stage is a level with every shape constructed and validated.
type Stage struct {
	Name      string
	Spawn     cp.Vector
	Obstacles []*obj.Obstacle
	KillZones []*obj.KillZone
	Portals   []*obj.Portal
}

// Load reads and builds the named level from fsys. Images and scripts are
// resolved relative to the root of fsys.
func Load(ctx context.Context, fsys fs.FS, name string) (*Stage, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parse %s: %w", name, err)
	}
	stage, err := Build(ctx, fsys, lvl)
	if err != nil {
		return nil, fmt.Errorf("levels: build %s: %w", name, err)
	}
	if stage.Name == "" {
		stage.Name = name
	}
	return stage, nil
}

// Build constructs the shapes of lvl.
func Build(ctx context.Context, fsys fs.FS, lvl *Level) (*Stage, error) {
	masks, err := decodeMasks(ctx, fsys, lvl.Images())
	if err != nil {
		return nil, err
	}

	stage := &Stage{
		Name:  lvl.Name,
		Spawn: cp.Vector{X: lvl.Spawn.X, Y: lvl.Spawn.Y},
	}

	for i, def := range lvl.Obstacles {
		o, err := buildObstacle(fsys, def, masks)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		stage.Obstacles = append(stage.Obstacles, o)
	}

	for i, def := range lvl.KillZones {
		bounds := common.Rect{X: def.X, Y: def.Y, Width: def.W, Height: def.H}
		p, err := buildPath(fsys, def.Path, def.Script, bounds)
		if err != nil {
			return nil, fmt.Errorf("kill zone %d: %w", i, err)
		}
		k, err := obj.NewKillZone(def.X, def.Y, def.W, def.H, p)
		if err != nil {
			return nil, fmt.Errorf("kill zone %d: %w", i, err)
		}
		stage.KillZones = append(stage.KillZones, k)
	}

	for i, def := range lvl.Portals {
		p, err := obj.NewPortal(def.A.rect(), def.B.rect())
		if err != nil {
			return nil, fmt.Errorf("portal %d: %w", i, err)
		}
		stage.Portals = append(stage.Portals, p)
	}

	return stage, nil
}

// Bounds is the union of every obstacle and kill zone at load time. It is
// empty for a stage without shapes.
func (s *Stage) Bounds() common.Rect {
	var b common.Rect
	grow := func(r common.Rect) {
		if b.Empty() {
			b = r
			return
		}
		x0, y0 := math.Min(b.X, r.X), math.Min(b.Y, r.Y)
		x1, y1 := math.Max(b.Right(), r.Right()), math.Max(b.Bottom(), r.Bottom())
		b = common.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	}
	for _, o := range s.Obstacles {
		grow(o.Bounds())
	}
	for _, k := range s.KillZones {
		grow(k.Rect())
	}
	return b
}

// World places player on the stage's spawn point and registers every shape
// with a new world.
func (s *Stage) World(player *obj.Player, opts ...obj.Option) (*obj.World, error) {
	cfg := player.Config()
	cfg.SpawnX, cfg.SpawnY = s.Spawn.X, s.Spawn.Y
	if err := player.Retune(cfg); err != nil {
		return nil, err
	}
	player.Reset()

	w := obj.NewWorld(player, opts...)
	for _, o := range s.Obstacles {
		w.AddObstacle(o)
	}
	for _, k := range s.KillZones {
		w.AddKillZone(k)
	}
	for _, p := range s.Portals {
		w.AddPortal(p)
	}
	return w, nil
}

func (r RectDef) rect() common.Rect {
	return common.Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

func buildObstacle(fsys fs.FS, def ObstacleDef, masks map[string]*obj.Mask) (*obj.Obstacle, error) {
	var bounds common.Rect
	switch def.Shape {
	case ShapeCircle:
		bounds = common.Rect{X: def.X - def.Radius, Y: def.Y - def.Radius, Width: 2 * def.Radius, Height: 2 * def.Radius}
	case ShapeImage:
		w, h := masks[def.Image].Size()
		bounds = common.Rect{X: def.X, Y: def.Y, Width: float64(w), Height: float64(h)}
	default:
		bounds = common.Rect{X: def.X, Y: def.Y, Width: def.W, Height: def.H}
	}

	p, err := buildPath(fsys, def.Path, def.Script, bounds)
	if err != nil {
		return nil, err
	}

	switch def.Shape {
	case ShapeCircle:
		return obj.NewCircleObstacle(def.X, def.Y, def.Radius, p)
	case ShapeImage:
		return obj.NewMaskObstacle(def.X, def.Y, masks[def.Image], p)
	default:
		return obj.NewRectObstacle(def.X, def.Y, def.W, def.H, p)
	}
}

func buildPath(fsys fs.FS, steps []StepDef, script string, bounds common.Rect) (*obj.VelocityPath, error) {
	var out []obj.PathStep
	switch {
	case script != "":
		src, err := fs.ReadFile(fsys, script)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", script, err)
		}
		out, err = RunPathScript(src, bounds)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", script, err)
		}
	case len(steps) > 0:
		out = make([]obj.PathStep, 0, len(steps))
		for _, s := range steps {
			out = append(out, obj.PathStep{Velocity: cp.Vector{X: s.VX, Y: s.VY}, Duration: s.Duration})
		}
	default:
		return nil, nil
	}
	return obj.NewVelocityPath(out)
}

// decodeMasks decodes every image concurrently and turns it into a mask.
func decodeMasks(ctx context.Context, fsys fs.FS, names []string) (map[string]*obj.Mask, error) {
	results := make([]*obj.Mask, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := decodeMask(fsys, name)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	masks := make(map[string]*obj.Mask, len(names))
	for i, name := range names {
		masks[name] = results[i]
	}
	return masks, nil
}

func decodeMask(fsys fs.FS, name string) (*obj.Mask, error) {
	f, err := fsys.Open(path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("image %s: decode: %w", name, err)
	}
	m, err := obj.MaskFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", name, err)
	}
	return m, nil
}
