package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// configFile is the name looked up in the user and local config directories.
const configFile = "breaker.yaml"

// Load loads the brick breaker configuration.
// Search order: customPath -> ~/.breaker/configs/breaker.yaml -> ./configs/breaker.yaml -> embedded default
//
// A custom path that cannot be read, parsed or validated is an error; the
// implicit locations are skipped silently when unusable.
func Load(customPath string) (BreakerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BreakerConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(customPath, data)
		if err != nil {
			return BreakerConfig{}, err
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(path, data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(configFile, defaultBreakerYAML)
	if err != nil {
		return DefaultBreakerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a config document and validates it. The format is chosen by
// the file extension: .toml is TOML, anything else is YAML. Fields missing
// from the document keep their default values.
func Parse(name string, data []byte) (BreakerConfig, error) {
	cfg := DefaultBreakerConfig()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return BreakerConfig{}, fmt.Errorf("config: failed to parse %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return BreakerConfig{}, fmt.Errorf("config: failed to parse %s: %w", name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return BreakerConfig{}, fmt.Errorf("config: invalid %s: %w", name, err)
	}
	return cfg, nil
}

// Validate reports every setting that would make the game unplayable.
func (c BreakerConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("canvas.width", c.Canvas.Width)
	positive("canvas.height", c.Canvas.Height)
	positive("paddle.width", c.Paddle.Width)
	positive("paddle.height", c.Paddle.Height)
	positive("paddle.step", c.Paddle.Step)
	positive("ball.radius", c.Ball.Radius)
	positive("ball.speed", c.Ball.Speed)
	positive("bricks.width", c.Bricks.Width)
	positive("bricks.height", c.Bricks.Height)
	positive("particles.decay", c.Particles.Decay)

	if c.Paddle.Width > c.Canvas.Width {
		errs = append(errs, errors.New("paddle is wider than the canvas"))
	}
	if c.PaddleY() < 0 {
		errs = append(errs, errors.New("paddle does not fit the canvas height"))
	}
	if c.Bricks.Rows < 1 || c.Bricks.Columns < 1 {
		errs = append(errs, fmt.Errorf("brick grid must be at least 1x1, got %dx%d", c.Bricks.Columns, c.Bricks.Rows))
	}
	gridW := c.Bricks.OffsetLeft + float64(c.Bricks.Columns)*(c.Bricks.Width+c.Bricks.Padding) - c.Bricks.Padding
	gridH := c.Bricks.OffsetTop + float64(c.Bricks.Rows)*(c.Bricks.Height+c.Bricks.Padding) - c.Bricks.Padding
	if gridW > c.Canvas.Width || gridH > c.PaddleY() {
		errs = append(errs, fmt.Errorf("brick grid %vx%v does not fit above the paddle", gridW, gridH))
	}
	if c.Particles.Burst < 0 {
		errs = append(errs, errors.New("particles.burst must not be negative"))
	}
	if c.Particles.MinRadius <= 0 || c.Particles.MaxRadius < c.Particles.MinRadius {
		errs = append(errs, fmt.Errorf("particle radius range [%v, %v) is invalid", c.Particles.MinRadius, c.Particles.MaxRadius))
	}
	if c.Leaderboard.MaxSize < 1 {
		errs = append(errs, errors.New("leaderboard.max_size must be at least 1"))
	}
	if c.Leaderboard.Key == "" {
		errs = append(errs, errors.New("leaderboard.key must not be empty"))
	}
	if c.Leaderboard.PromptDelay < 0 {
		errs = append(errs, errors.New("leaderboard.prompt_delay must not be negative"))
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breaker", "configs", filename)
}
