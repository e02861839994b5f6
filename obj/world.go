package obj

import (
	"context"
	"log/slog"
)

// World owns the obstacles, kill zones and portals of a level together with
// the single player moving through them.
type World struct {
	player    *Player
	obstacles []*Obstacle
	killZones []*KillZone
	portals   []*Portal

	handles  handleStore
	recorder *Recorder
	logger   *slog.Logger

	frame      uint64
	lastEvents []Event
}

type Option func(*World)

// WithLogger sets the logger player events are written to.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithRecorder attaches a trajectory recorder fed after every tick.
func WithRecorder(r *Recorder) Option {
	return func(w *World) { w.recorder = r }
}

func NewWorld(player *Player, opts ...Option) *World {
	w := &World{
		player: player,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Player() *Player        { return w.player }
func (w *World) Recorder() *Recorder    { return w.recorder }
func (w *World) Frame() uint64          { return w.frame }
func (w *World) Obstacles() []*Obstacle { return w.obstacles }
func (w *World) KillZones() []*KillZone { return w.killZones }
func (w *World) Portals() []*Portal     { return w.portals }

// AddObstacle registers o and returns its handle.
func (w *World) AddObstacle(o *Obstacle) Handle {
	h := w.handles.create()
	o.handle = h
	w.obstacles = append(w.obstacles, o)
	return h
}

// RemoveObstacle drops the obstacle behind h. Stale handles return false.
func (w *World) RemoveObstacle(h Handle) bool {
	if !w.handles.destroy(h) {
		return false
	}
	for i, o := range w.obstacles {
		if o.handle == h {
			o.handle = 0
			w.obstacles = append(w.obstacles[:i], w.obstacles[i+1:]...)
			break
		}
	}
	return true
}

// Obstacle resolves a handle. It fails for removed obstacles even when the
// slot has been reused.
func (w *World) Obstacle(h Handle) (*Obstacle, bool) {
	if !w.handles.isAlive(h) {
		return nil, false
	}
	o := findObstacle(w.obstacles, h)
	return o, o != nil
}

func (w *World) AddKillZone(k *KillZone) { w.killZones = append(w.killZones, k) }

func (w *World) AddPortal(p *Portal) { w.portals = append(w.portals, p) }

// Tick advances every obstacle, then every kill zone, then the player.
func (w *World) Tick(dt float64) Contact {
	w.frame++
	for _, o := range w.obstacles {
		o.Tick(dt)
	}
	for _, k := range w.killZones {
		k.Tick(dt)
	}

	contact := w.player.Tick(w.obstacles, w.killZones, w.portals, dt)
	w.recorder.Record(w.player.X, w.player.Y)

	w.lastEvents = w.player.events.Drain()
	for _, e := range w.lastEvents {
		w.logEvent(e)
	}
	return contact
}

// LastEvents returns the player events produced by the most recent Tick.
func (w *World) LastEvents() []Event { return w.lastEvents }

// Reset moves the player back to spawn and discards pending events.
func (w *World) Reset() {
	w.player.Reset()
	w.player.events.flush()
	w.lastEvents = nil
}

func (w *World) logEvent(e Event) {
	level := slog.LevelDebug
	switch e.Kind {
	case EventDied, EventTeleported:
		level = slog.LevelInfo
	}
	w.logger.Log(context.Background(), level, "player event",
		slog.String("kind", string(e.Kind)),
		slog.Float64("x", e.X),
		slog.Float64("y", e.Y),
		slog.Uint64("frame", w.frame),
	)
}
