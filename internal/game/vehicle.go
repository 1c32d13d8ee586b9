package game

import (
	"fmt"
	"time"
)

const (
	vehicleSize = TileSize - 4 // box edge; leaves a 4px gap against a tile

	playerSpeed   = 2.0 // px per step
	opponentSpeed = 1.0

	playerCooldown   = 300 * time.Millisecond
	opponentCooldown = 1500 * time.Millisecond

	spawnInset = 2 // px from the spawn tile's corner
)

// Side tags who controls a vehicle or fired a projectile.
type Side uint8

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "opponent"
}

// Vehicle is a tank, either the player's or an opponent.
type Vehicle struct {
	ID       int
	Label    string // "P" for the player, "O<n>" for opponents
	X, Y     float64
	W, H     float64
	Facing   Direction
	Side     Side
	Speed    float64
	Cooldown time.Duration

	readyAt time.Duration // round clock time of the next allowed shot
}

// Bounds returns the vehicle's collision box.
func (v *Vehicle) Bounds() Box {
	return Box{X: v.X, Y: v.Y, W: v.W, H: v.H}
}

// Center returns the middle of the vehicle's box.
func (v *Vehicle) Center() (x, y float64) {
	return v.X + v.W/2, v.Y + v.H/2
}

// CanFire reports whether the cooldown has elapsed at round time now.
func (v *Vehicle) CanFire(now time.Duration) bool {
	return now >= v.readyAt
}

// NewPlayer creates the player's tank at (x, y) facing up.
func NewPlayer(x, y float64) *Vehicle {
	return &Vehicle{
		Label:    "P",
		X:        x,
		Y:        y,
		W:        vehicleSize,
		H:        vehicleSize,
		Facing:   Up,
		Side:     SidePlayer,
		Speed:    playerSpeed,
		Cooldown: playerCooldown,
	}
}

// NewOpponent creates an opponent tank at (x, y) facing down.
func NewOpponent(id int, x, y float64) *Vehicle {
	return &Vehicle{
		ID:       id,
		Label:    fmt.Sprintf("O%d", id),
		X:        x,
		Y:        y,
		W:        vehicleSize,
		H:        vehicleSize,
		Facing:   Down,
		Side:     SideOpponent,
		Speed:    opponentSpeed,
		Cooldown: opponentCooldown,
	}
}
