package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/brick-breaker/internal/core"
)

//go:embed defaults/breaker.yaml
var defaultBreakerYAML []byte

// DefaultBreakerConfig returns the default brick breaker configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       20,
			MarginBottom: 50,
			Step:         8,
		},
		Ball: BallConfig{
			Radius:      8,
			Speed:       4,
			InitialDX:   4,
			MaxLaunchDX: 4,
		},
		Bricks: BricksConfig{
			Rows:       5,
			Columns:    9,
			Width:      75,
			Height:     20,
			Padding:    10,
			OffsetTop:  30,
			OffsetLeft: 30,
		},
		Particles: ParticlesConfig{
			Burst:     8,
			Decay:     0.02, // ~50 tick lifetime
			MinRadius: 1,
			MaxRadius: 4,
			MaxSpeed:  2,
			Color:     core.ColorYellow,
		},
		Leaderboard: LeaderboardConfig{
			MaxSize:     5,
			Key:         "brickBreakerLeaderboard",
			PromptDelay: 500 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakerYAML
}
