// Package config provides YAML/TOML configuration loading and difficulty
// presets for the brick breaker.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/brick-breaker/internal/core"
)

// BreakerConfig contains all configuration for the brick breaker.
// All lengths are in logical canvas units, speeds in units per tick.
type BreakerConfig struct {
	Canvas      CanvasConfig      `yaml:"canvas" toml:"canvas"`
	Paddle      PaddleConfig      `yaml:"paddle" toml:"paddle"`
	Ball        BallConfig        `yaml:"ball" toml:"ball"`
	Bricks      BricksConfig      `yaml:"bricks" toml:"bricks"`
	Particles   ParticlesConfig   `yaml:"particles" toml:"particles"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard" toml:"leaderboard"`
}

// CanvasConfig defines the fixed logical resolution of the play field.
type CanvasConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PaddleConfig defines the paddle size and keyboard step.
type PaddleConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	MarginBottom float64 `yaml:"margin_bottom" toml:"margin_bottom"`
	Step         float64 `yaml:"step" toml:"step"`
}

// BallConfig defines the ball size and velocities.
type BallConfig struct {
	Radius float64 `yaml:"radius" toml:"radius"`

	// Speed is the canonical |dy| set by a paddle bounce.
	Speed float64 `yaml:"speed" toml:"speed"`

	// InitialDX is the dx of the very first game; resets pick a random dx
	// in [-MaxLaunchDX, MaxLaunchDX).
	InitialDX   float64 `yaml:"initial_dx" toml:"initial_dx"`
	MaxLaunchDX float64 `yaml:"max_launch_dx" toml:"max_launch_dx"`
}

// BricksConfig defines the fixed brick grid.
type BricksConfig struct {
	Rows       int     `yaml:"rows" toml:"rows"`
	Columns    int     `yaml:"columns" toml:"columns"`
	Width      float64 `yaml:"width" toml:"width"`
	Height     float64 `yaml:"height" toml:"height"`
	Padding    float64 `yaml:"padding" toml:"padding"`
	OffsetTop  float64 `yaml:"offset_top" toml:"offset_top"`
	OffsetLeft float64 `yaml:"offset_left" toml:"offset_left"`
}

// ParticlesConfig defines the brick destruction burst.
// Decay is the alpha lost per tick; velocity components fall in
// (-MaxSpeed, MaxSpeed).
type ParticlesConfig struct {
	Burst     int        `yaml:"burst" toml:"burst"`
	Decay     float64    `yaml:"decay" toml:"decay"`
	MinRadius float64    `yaml:"min_radius" toml:"min_radius"`
	MaxRadius float64    `yaml:"max_radius" toml:"max_radius"`
	MaxSpeed  float64    `yaml:"max_speed" toml:"max_speed"`
	Color     core.Color `yaml:"color" toml:"color"`
}

// LeaderboardConfig defines the top-N list and the name prompt.
type LeaderboardConfig struct {
	MaxSize     int           `yaml:"max_size" toml:"max_size"`
	Key         string        `yaml:"key" toml:"key"`
	PromptDelay time.Duration `yaml:"prompt_delay" toml:"prompt_delay"`
}

// BrickCount returns the number of bricks in a full grid.
func (c BreakerConfig) BrickCount() int {
	return c.Bricks.Rows * c.Bricks.Columns
}

// PaddleY returns the fixed top edge of the paddle.
func (c BreakerConfig) PaddleY() float64 {
	return c.Canvas.Height - c.Paddle.MarginBottom - c.Paddle.Height
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI value to a preset. Empty input means no preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), true
	default:
		return "", false
	}
}

// ApplyPreset modifies the config based on a difficulty preset. The result
// is validated again; on error cfg is left unchanged.
func ApplyPreset(cfg *BreakerConfig, preset DifficultyPreset) error {
	next := *cfg
	switch preset {
	case DifficultyEasy:
		next.Paddle.Width = 140
		next.Ball.Speed = 3
	case DifficultyHard:
		next.Paddle.Width = 70
		next.Ball.Speed = 6
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("config: %s preset does not fit: %w", preset, err)
	}
	*cfg = next
	return nil
}
