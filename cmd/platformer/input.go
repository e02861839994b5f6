package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/obj"
)

const stickDeadZone = 0.3

// Input holds the controls sampled once per update.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX int
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// JumpHeld is true while the jump key is held down.
	JumpHeld bool
	// DashPressed is true on the frame the dash key/button was pressed.
	DashPressed bool

	ResetPressed  bool
	RecordPressed bool
	SpanPressed   bool
	DebugPressed  bool
}

// Update polls the keyboard and the first gamepad.
func (i *Input) Update() {
	moveX := 0
	// Keyboard D/A or arrows
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		moveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		moveX++
	}

	var gpJumpJustPressed, gpJumpHeld, gpDashJustPressed, gpResetJustPressed bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -stickDeadZone {
			moveX = -1
		} else if leftX > stickDeadZone {
			moveX = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			moveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			moveX = 1
		}

		// A / cross
		gpJumpJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpJumpHeld = ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		// X / square
		gpDashJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		gpResetJustPressed = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
	}

	i.MoveX = moveX
	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyW) || gpJumpJustPressed
	i.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyW) || gpJumpHeld
	i.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || gpDashJustPressed
	i.ResetPressed = inpututil.IsKeyJustPressed(ebiten.KeyR) || gpResetJustPressed
	i.RecordPressed = inpututil.IsKeyJustPressed(ebiten.KeyF1)
	i.SpanPressed = inpututil.IsKeyJustPressed(ebiten.KeyF2)
	i.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF3)
}

// Apply hands the sampled controls to p. Held jump is left to the player's
// own repeat logic; a fresh press may also wall jump.
func (i *Input) Apply(p *obj.Player) {
	p.Left = i.MoveX < 0
	p.Right = i.MoveX > 0
	p.Jumping = i.JumpHeld
	if i.JumpPressed {
		p.Jump(true)
	}
	if i.DashPressed {
		p.Dash()
	}
}
