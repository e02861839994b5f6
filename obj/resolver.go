package obj

import (
	"math"

	"github.com/milk9111/platformer/common"
)

type posState int

const (
	posValid posState = iota
	posBlocked
	posDead
)

// blocked returns the first obstacle overlapping r, or nil.
func blocked(obstacles []*Obstacle, r common.Rect) *Obstacle {
	for _, o := range obstacles {
		if o != nil && o.CollidesWith(r, nil) {
			return o
		}
	}
	return nil
}

// position classifies the player's current rectangle. Kill zones win over
// obstacles.
func (p *Player) position(obstacles []*Obstacle, zones []*KillZone) (posState, *Obstacle) {
	r := p.Rect()
	if AnyKillZone(zones, r) {
		return posDead, nil
	}
	if o := blocked(obstacles, r); o != nil {
		return posBlocked, o
	}
	return posValid, nil
}

// resolve integrates velocity over SubSteps equal slices. Each slice first
// applies any pending portal transit, then moves along X and then Y. An
// axis that collides stops moving for the rest of the tick.
func (p *Player) resolve(obstacles []*Obstacle, zones []*KillZone, portals []*Portal, dt float64) Contact {
	var contact Contact
	n := p.cfg.SubSteps
	wasOnGround := p.onGround
	p.onGround = false

	moveX, moveY := true, true
	for i := 0; i < n; i++ {
		if p.transit(portals, obstacles, zones) {
			contact |= ContactTeleport
		}

		if moveX {
			x0 := p.X
			dx := p.VX * dt / float64(n)
			p.X = x0 + dx
			switch state, _ := p.position(obstacles, zones); state {
			case posDead:
				return contact | ContactDead
			case posBlocked:
				if !p.climb(obstacles, zones) {
					p.X = x0
					p.hitWall(dx)
					contact |= ContactWall
					moveX = false
				}
			}
		}

		if moveY {
			y0 := p.Y
			dy := p.VY * dt / float64(n)
			p.Y = y0 + dy
			state, hit := p.position(obstacles, zones)
			switch state {
			case posDead:
				return contact | ContactDead
			case posBlocked:
				p.Y = y0
				if dy > 0 {
					p.land(hit, obstacles, wasOnGround)
					contact |= ContactFloor
				} else {
					contact |= ContactCeiling
				}
				p.VY = 0
				moveY = false
			}
		}

		if !moveX && !moveY {
			break
		}
	}
	return contact
}

// climb tries lifting the player over a small step after a horizontal
// collision. It only applies when the player is not moving vertically or
// is running at full speed.
func (p *Player) climb(obstacles []*Obstacle, zones []*KillZone) bool {
	if math.Abs(p.VY) > p.cfg.StationaryVY && math.Abs(p.VX) < p.cfg.TerminalXVel {
		return false
	}
	y0 := p.Y
	for i := 1; i <= p.cfg.SlopeProbe; i++ {
		p.Y = y0 - float64(i)
		if st, _ := p.position(obstacles, zones); st == posValid {
			return true
		}
	}
	p.Y = y0
	return false
}

func (p *Player) hitWall(dx float64) {
	p.VX = 0
	p.wallJumpDir = -int(common.Sign(dx))
	p.timeSinceTouchedWall = 0
	if p.Dashing() {
		p.timeSinceDash = p.cfg.DashLength
	}
	p.VY = math.Min(p.VY, p.cfg.WallSlideVel)
	p.wallJumping = false
	p.events.Push(Event{Kind: EventWallHit, X: p.X, Y: p.Y})
}

// land records floor contact with hit and carries the player along with it
// unless that obstacle already carried the player this tick.
func (p *Player) land(hit *Obstacle, obstacles []*Obstacle, wasOnGround bool) {
	p.timeSinceTouchedFloor = 0
	p.onGround = true
	p.wallJumping = false
	if !wasOnGround {
		p.events.Push(Event{Kind: EventLanded, X: p.X, Y: p.Y})
	}
	if hit == nil || hit == p.lastTouched {
		return
	}
	p.lastTouched = hit
	p.carry(hit, obstacles)
}

// transit teleports the player on first contact with a portal endpoint.
// A destination inside something solid or deadly is refused.
func (p *Player) transit(portals []*Portal, obstacles []*Obstacle, zones []*KillZone) bool {
	if len(portals) == 0 {
		p.inPortal = false
		return false
	}
	effect, fired, touching := checkPortals(portals, p.Rect(), p.inPortal)
	p.inPortal = touching
	if !fired {
		return false
	}

	x0, y0 := p.X, p.Y
	p.X, p.Y = effect.To.X, effect.To.Y
	if st, _ := p.position(obstacles, zones); st != posValid {
		p.X, p.Y = x0, y0
		return false
	}
	p.events.Push(Event{Kind: EventTeleported, X: p.X, Y: p.Y})
	return true
}
