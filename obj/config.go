package obj

import (
	"fmt"
	"math"
)

// PlayerConfig holds every tunable of the player's movement. Speeds are in
// pixels per second, times in seconds, distances in pixels.
type PlayerConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	SpawnX float64 `yaml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y"`

	XAccel       float64 `yaml:"x_accel"`
	AirControl   float64 `yaml:"air_control"` // accel multiplier while airborne
	TerminalXVel float64 `yaml:"terminal_x_vel"`
	TerminalYVel float64 `yaml:"terminal_y_vel"`
	Gravity      float64 `yaml:"gravity"`
	GroundCarry  float64 `yaml:"ground_carry"` // speed cap factor on |vx| while grounded
	AirCarry     float64 `yaml:"air_carry"`

	JumpStrength    float64 `yaml:"jump_strength"`
	CoyoteTime      float64 `yaml:"coyote_time"`
	JumpRepeatDelay float64 `yaml:"jump_repeat_delay"`
	WallJumpFactor  float64 `yaml:"wall_jump_factor"`
	WallJumpPush    float64 `yaml:"wall_jump_push"`
	WallSlideVel    float64 `yaml:"wall_slide_vel"`

	DashStrength   float64 `yaml:"dash_strength"`
	DashLength     float64 `yaml:"dash_length"`
	DashCooldown   float64 `yaml:"dash_cooldown"`
	PostDashWindow float64 `yaml:"post_dash_window"`
	PostDashFactor float64 `yaml:"post_dash_factor"`

	SubSteps        int     `yaml:"sub_steps"`
	SlopeProbe      int     `yaml:"slope_probe"`
	UnstickDistance int     `yaml:"unstick_distance"`
	StationaryVY    float64 `yaml:"stationary_vy"`
}

// DefaultPlayerConfig returns the stock tuning.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Width:  40,
		Height: 40,
		SpawnX: 100,
		SpawnY: 100,

		XAccel:       1500,
		AirControl:   1.5,
		TerminalXVel: 480,
		TerminalYVel: 900,
		Gravity:      1800,
		GroundCarry:  1.0,
		AirCarry:     0.9,

		JumpStrength:    800,
		CoyoteTime:      0.1,
		JumpRepeatDelay: 0.2,
		WallJumpFactor:  0.7,
		WallJumpPush:    500,
		WallSlideVel:    150,

		DashStrength:   2400,
		DashLength:     0.08,
		DashCooldown:   0.8,
		PostDashWindow: 0.2,
		PostDashFactor: 1.0 / 3.0,

		SubSteps:        16,
		SlopeProbe:      6,
		UnstickDistance: 6,
		StationaryVY:    1,
	}
}

// Validate checks that the config can drive a player.
func (c PlayerConfig) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"x_accel", c.XAccel},
		{"terminal_x_vel", c.TerminalXVel},
		{"terminal_y_vel", c.TerminalYVel},
		{"coyote_time", c.CoyoteTime},
		{"dash_length", c.DashLength},
		{"air_control", c.AirControl},
		{"ground_carry", c.GroundCarry},
		{"air_carry", c.AirCarry},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"gravity", c.Gravity},
		{"jump_strength", c.JumpStrength},
		{"jump_repeat_delay", c.JumpRepeatDelay},
		{"wall_jump_factor", c.WallJumpFactor},
		{"wall_jump_push", c.WallJumpPush},
		{"wall_slide_vel", c.WallSlideVel},
		{"dash_strength", c.DashStrength},
		{"dash_cooldown", c.DashCooldown},
		{"post_dash_window", c.PostDashWindow},
		{"post_dash_factor", c.PostDashFactor},
		{"stationary_vy", c.StationaryVY},
	}
	for _, p := range nonNegative {
		if p.v < 0 || math.IsNaN(p.v) {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, p.name, p.v)
		}
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("%w: sub_steps must be at least 1, got %d", ErrInvalidConfig, c.SubSteps)
	}
	if c.SlopeProbe < 0 || c.UnstickDistance < 0 {
		return fmt.Errorf("%w: slope_probe and unstick_distance must not be negative", ErrInvalidConfig)
	}
	return nil
}
