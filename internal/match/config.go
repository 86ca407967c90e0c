package match

import (
	"errors"
	"fmt"
	"math"
)

// Skill match modes supported by the scorer.
const (
	SkillMatchNormalized = "normalized"
	SkillMatchExact      = "exact"
)

// weightSumTolerance is the allowed deviation of the weight sum from 1.0.
const weightSumTolerance = 0.001

var (
	// ErrInvalidInput is returned when a candidate or listing misses a
	// required field, e.g. the candidate has no skills at all.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig is returned when the scoring configuration is
	// unusable: negative weights or weights not summing to 1.0.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the scoring policy. The defaults are a starting point, not a
// law: every weight and the skill match mode are meant to be overridden
// through configuration.
type Config struct {
	SkillWeight      float64 `json:"skill_weight" mapstructure:"skill-weight"`
	ExperienceWeight float64 `json:"experience_weight" mapstructure:"experience-weight"`
	LocationWeight   float64 `json:"location_weight" mapstructure:"location-weight"`
	SkillMatchMode   string  `json:"skill_match_mode" mapstructure:"skill-match-mode"`
}

// DefaultConfig returns the default scoring policy.
func DefaultConfig() *Config {
	return &Config{
		SkillWeight:      0.60,
		ExperienceWeight: 0.25,
		LocationWeight:   0.15,
		SkillMatchMode:   SkillMatchNormalized,
	}
}

// Validate reports whether the config describes a usable scoring policy.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is required", ErrInvalidConfig)
	}

	for _, weight := range []struct {
		name  string
		value float64
	}{
		{"skill-weight", c.SkillWeight},
		{"experience-weight", c.ExperienceWeight},
		{"location-weight", c.LocationWeight},
	} {
		if weight.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, weight.name, weight.value)
		}
	}

	sum := c.SkillWeight + c.ExperienceWeight + c.LocationWeight
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights must sum to 1.0, got %v", ErrInvalidConfig, sum)
	}

	switch c.SkillMatchMode {
	case "", SkillMatchNormalized, SkillMatchExact:
	default:
		return fmt.Errorf("%w: unknown skill match mode %q", ErrInvalidConfig, c.SkillMatchMode)
	}

	return nil
}
