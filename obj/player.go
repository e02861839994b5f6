package obj

import (
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/platformer/common"
)

// idleTimer is what every ability timer starts at: long enough ago that no
// coyote window or dash cooldown is still running.
const idleTimer = 10.0

// Contact classifies what the player ran into during a tick.
type Contact uint8

const (
	ContactFloor Contact = 1 << iota
	ContactCeiling
	ContactWall
	ContactTeleport
	ContactDead
)

func (c Contact) Has(flag Contact) bool { return c&flag != 0 }

func (c Contact) String() string {
	if c == 0 {
		return "none"
	}
	names := []struct {
		flag Contact
		name string
	}{
		{ContactFloor, "floor"},
		{ContactCeiling, "ceiling"},
		{ContactWall, "wall"},
		{ContactTeleport, "teleport"},
		{ContactDead, "dead"},
	}
	var parts []string
	for _, n := range names {
		if c.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Player is the single actor driven by the kinematics core. The input layer
// writes Left, Right and Jumping once per frame before Tick, and calls Dash
// and Jump on key-press edges.
type Player struct {
	X, Y   float64
	VX, VY float64

	Left, Right, Jumping bool

	cfg PlayerConfig

	timeSinceDash         float64
	timeSinceJump         float64
	timeSinceTouchedFloor float64
	timeSinceTouchedWall  float64

	speedCap    float64
	wallJumpDir int
	wallJumping bool
	inPortal    bool
	onGround    bool
	lastTouched *Obstacle

	events EventQueue
}

// NewPlayer creates a player at the configured spawn point.
func NewPlayer(cfg PlayerConfig) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Player{cfg: cfg}
	p.Reset()
	return p, nil
}

// Reset puts the player back on the spawn point.
func (p *Player) Reset() {
	p.ResetTo(p.cfg.SpawnX, p.cfg.SpawnY)
}

// ResetTo reinitialises velocity, input, timers and flags and places the
// player at (x, y).
func (p *Player) ResetTo(x, y float64) {
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Left, p.Right, p.Jumping = false, false, false

	p.timeSinceDash = idleTimer
	p.timeSinceJump = idleTimer
	p.timeSinceTouchedFloor = idleTimer
	p.timeSinceTouchedWall = idleTimer

	p.speedCap = p.cfg.TerminalXVel
	p.wallJumpDir = 0
	p.wallJumping = false
	p.inPortal = false
	p.onGround = false
	p.lastTouched = nil
}

// Retune swaps the movement config, keeping position and velocity.
func (p *Player) Retune(cfg PlayerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.cfg = cfg
	return nil
}

func (p *Player) Config() PlayerConfig { return p.cfg }

func (p *Player) Rect() common.Rect {
	return common.Rect{X: p.X, Y: p.Y, Width: p.cfg.Width, Height: p.cfg.Height}
}

func (p *Player) ScreenRect(camX, camY float64) common.Rect {
	return p.Rect().ScreenRect(camX, camY)
}

// CanJump reports whether the floor was touched within coyote time.
func (p *Player) CanJump() bool { return p.timeSinceTouchedFloor < p.cfg.CoyoteTime }

// CanWallJump reports whether a wall was touched within coyote time.
func (p *Player) CanWallJump() bool { return p.timeSinceTouchedWall < p.cfg.CoyoteTime }

func (p *Player) Dashing() bool { return p.timeSinceDash < p.cfg.DashLength }

// DashReady reports whether Dash would fire, ignoring direction.
func (p *Player) DashReady() bool { return p.timeSinceDash > p.cfg.DashCooldown }

// DashCharge is the cooldown progress in [0, 1].
func (p *Player) DashCharge() float64 {
	if p.cfg.DashCooldown <= 0 {
		return 1
	}
	return common.Clamp(p.timeSinceDash/p.cfg.DashCooldown, 0, 1)
}

func (p *Player) TimeSinceDash() float64         { return p.timeSinceDash }
func (p *Player) TimeSinceJump() float64         { return p.timeSinceJump }
func (p *Player) TimeSinceTouchedFloor() float64 { return p.timeSinceTouchedFloor }
func (p *Player) TimeSinceTouchedWall() float64  { return p.timeSinceTouchedWall }

// WallJumpDir is the horizontal direction a wall jump pushes toward: away
// from the last wall hit, or 0.
func (p *Player) WallJumpDir() int  { return p.wallJumpDir }
func (p *Player) WallJumping() bool { return p.wallJumping }
func (p *Player) InPortal() bool    { return p.inPortal }

// OnGround reports whether the last tick ended with a landing.
func (p *Player) OnGround() bool { return p.onGround }

// LastTouched is the handle of the obstacle stood on during the last tick,
// or the zero handle when there is none or it was never added to a world.
func (p *Player) LastTouched() Handle {
	if p.lastTouched == nil {
		return 0
	}
	return p.lastTouched.handle
}

// SpeedCap is the horizontal speed limit in force for the current tick.
func (p *Player) SpeedCap() float64 { return p.speedCap }

func (p *Player) Events() *EventQueue { return &p.events }

// States lists the active movement flags, e.g. "airborne|dashing".
func (p *Player) States() []string {
	var out []string
	if p.CanJump() {
		out = append(out, "grounded")
	} else {
		out = append(out, "airborne")
		if p.CanWallJump() && p.VY >= 0 {
			out = append(out, "wall_sliding")
		}
	}
	if p.Dashing() {
		out = append(out, "dashing")
	}
	if p.wallJumping {
		out = append(out, "wall_jumping")
	}
	if p.inPortal {
		out = append(out, "in_portal")
	}
	return out
}

func (p *Player) String() string {
	return fmt.Sprintf("player(%.1f,%.1f v=%.1f,%.1f %s)", p.X, p.Y, p.VX, p.VY, strings.Join(p.States(), "|"))
}

// Jump fires a jump impulse if one is allowed: a normal jump within coyote
// time of the floor, otherwise (when wallJump is set) a wall jump within
// coyote time of a wall. It reports whether an impulse fired.
func (p *Player) Jump(wallJump bool) bool {
	var kind EventKind
	switch {
	case p.CanJump():
		p.VY = -p.cfg.JumpStrength
		p.timeSinceTouchedFloor += p.cfg.CoyoteTime
		p.wallJumping = false
		kind = EventJumped
	case wallJump && p.CanWallJump() && p.wallJumpDir != 0:
		p.VY = -p.cfg.WallJumpFactor * p.cfg.JumpStrength
		p.VX = float64(p.wallJumpDir) * p.cfg.WallJumpPush
		p.timeSinceTouchedWall += p.cfg.CoyoteTime
		p.wallJumping = true
		kind = EventWallJumped
	default:
		return false
	}
	p.timeSinceJump = 0
	p.onGround = false
	p.speedCap = math.Max(p.speedCap, math.Abs(p.VX))
	p.events.Push(Event{Kind: kind, X: p.X, Y: p.Y})
	return true
}

// Dash launches the player horizontally once the cooldown has passed. The
// direction is the held one, or the current direction of travel when both
// or neither are held. Without a direction nothing happens.
func (p *Player) Dash() bool {
	if p.timeSinceDash <= p.cfg.DashCooldown {
		return false
	}
	var sign float64
	switch {
	case p.Left && !p.Right:
		sign = -1
	case p.Right && !p.Left:
		sign = 1
	case p.VX != 0:
		sign = common.Sign(p.VX)
	default:
		return false
	}
	p.VX = p.cfg.DashStrength * sign
	p.timeSinceDash = 0
	p.speedCap = p.cfg.DashStrength
	p.events.Push(Event{Kind: EventDashed, X: p.X, Y: p.Y})
	return true
}

// Tick advances the player by dt seconds against the given obstacles, kill
// zones and portals. Obstacles must already have been ticked for this
// frame. A ContactDead result means the player was reset to spawn.
func (p *Player) Tick(obstacles []*Obstacle, zones []*KillZone, portals []*Portal, dt float64) Contact {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}

	p.carryAlong(obstacles)
	if !p.unstick(obstacles, zones) {
		return p.die()
	}

	p.speedCap = p.computeSpeedCap()
	p.applyHorizontalInput(dt)

	p.timeSinceDash += dt
	p.timeSinceJump += dt
	p.timeSinceTouchedFloor += dt
	p.timeSinceTouchedWall += dt

	p.applyGravity(dt)
	p.handleJumpInput()

	if p.Dashing() {
		p.VY = math.Min(p.VY, 0)
	}

	contact := p.resolve(obstacles, zones, portals, dt)
	if contact.Has(ContactDead) {
		return contact | p.die()
	}
	return contact
}

func (p *Player) computeSpeedCap() float64 {
	switch {
	case p.Dashing():
		return p.cfg.DashStrength
	case !p.CanJump() && p.timeSinceDash < p.cfg.DashLength+p.cfg.PostDashWindow:
		return p.cfg.DashStrength * p.cfg.PostDashFactor
	}
	k := p.cfg.AirCarry
	if p.CanJump() {
		k = p.cfg.GroundCarry
	}
	return math.Max(p.cfg.TerminalXVel, math.Abs(p.VX)*k)
}

// applyHorizontalInput accelerates toward the held direction, braking twice
// as hard when reversing, and coasts to a stop without input. Velocity is
// left alone while dashing.
func (p *Player) applyHorizontalInput(dt float64) {
	if p.Dashing() {
		return
	}
	accel := p.cfg.XAccel
	if !p.CanJump() {
		accel *= p.cfg.AirControl
	}
	limit := p.speedCap

	switch {
	case p.Left == p.Right:
		p.VX = common.Approach(p.VX, 0, accel*dt)
	case p.Right:
		if p.VX < 0 {
			accel *= 2
		}
		p.VX = math.Min(p.VX+accel*dt, limit)
	case p.Left:
		if p.VX > 0 {
			accel *= 2
		}
		p.VX = math.Max(p.VX-accel*dt, -limit)
	}
	p.VX = common.Clamp(p.VX, -limit, limit)
}

func (p *Player) applyGravity(dt float64) {
	g := p.cfg.Gravity
	if p.VY >= 0 && !p.wallJumping {
		g *= 2
	}
	p.VY = math.Min(p.VY+g*dt, p.cfg.TerminalYVel)
}

// handleJumpInput repeats jumps while the button is held, throttled unless
// standing on the floor, and cuts the jump short once it is released.
func (p *Player) handleJumpInput() {
	if p.Jumping {
		if p.onGround || p.timeSinceJump >= p.cfg.JumpRepeatDelay {
			p.Jump(true)
		}
		return
	}
	if p.VY < 0 && !p.wallJumping {
		p.VY = 0
	}
}

// carryAlong moves the player with the obstacle it stood on last tick. The
// obstacle is remembered in lastTouched so landing on it again this tick
// does not carry twice.
func (p *Player) carryAlong(obstacles []*Obstacle) {
	o := p.lastTouched
	p.lastTouched = nil
	if o == nil || !p.onGround || !containsObstacle(obstacles, o) {
		return
	}
	p.lastTouched = o
	p.carry(o, obstacles)
}

// carry applies an obstacle's displacement one axis at a time, skipping an
// axis that would push the player into something solid.
func (p *Player) carry(o *Obstacle, obstacles []*Obstacle) {
	if !o.Moving() {
		return
	}
	d := o.Delta()
	if d.Y != 0 {
		y0 := p.Y
		p.Y += d.Y
		if blocked(obstacles, p.Rect()) != nil {
			p.Y = y0
		}
	}
	if d.X != 0 {
		x0 := p.X
		p.X += d.X
		if blocked(obstacles, p.Rect()) != nil {
			p.X = x0
		}
	}
}

// unstick nudges the player out of an obstacle it starts the tick inside,
// trying upward first and then downward. It reports false when the player
// is inside a kill zone or cannot be freed.
func (p *Player) unstick(obstacles []*Obstacle, zones []*KillZone) bool {
	state, _ := p.position(obstacles, zones)
	switch state {
	case posValid:
		return true
	case posDead:
		return false
	}

	y0 := p.Y
	for _, dir := range []float64{-1, 1} {
		for i := 1; i <= p.cfg.UnstickDistance; i++ {
			p.Y = y0 + dir*float64(i)
			if st, _ := p.position(obstacles, zones); st == posValid {
				p.events.Push(Event{Kind: EventUnstuck, X: p.X, Y: p.Y})
				return true
			}
		}
	}
	p.Y = y0
	return false
}

func (p *Player) die() Contact {
	p.events.Push(Event{Kind: EventDied, X: p.X, Y: p.Y})
	p.Reset()
	return ContactDead
}

func containsObstacle(obstacles []*Obstacle, o *Obstacle) bool {
	for _, other := range obstacles {
		if other == o {
			return true
		}
	}
	return false
}

func findObstacle(obstacles []*Obstacle, h Handle) *Obstacle {
	for _, o := range obstacles {
		if o != nil && o.handle == h {
			return o
		}
	}
	return nil
}
