package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ArowuTest/bridgetunes-bingo/internal/models"
	"github.com/spf13/viper"
)

// Config holds all configuration for the simulator
type Config struct {
	Simulation SimulationConfig
	Output     OutputConfig
	LogLevel   string
	Trace      bool
}

// SimulationConfig holds the game roster and draw settings
type SimulationConfig struct {
	RandomCards int
	CardIDBase  uint
	JackpotBall uint
	Seed        uint64
	CardsFile   string
	TargetCards []TargetCardConfig
	Balls       []int
}

// TargetCardConfig describes a hand-specified card added after the random ones
type TargetCardConfig struct {
	ID      uint
	Numbers []int
}

// OutputConfig holds result rendering settings
type OutputConfig struct {
	Format    string
	ShowCards bool
}

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Deck bounds shared with the game driver
const (
	LowestBall  = 1
	HighestBall = 90
)

// LoadConfig loads configuration from config.yaml in path (and ./config)
// and from BINGO_* environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetEnvPrefix("BINGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the simulator cannot run with
func (c *Config) Validate() error {
	if c.Simulation.RandomCards < 0 {
		return fmt.Errorf("Simulation.RandomCards must not be negative, got %d", c.Simulation.RandomCards)
	}
	if c.Simulation.JackpotBall < LowestBall || c.Simulation.JackpotBall > HighestBall {
		return fmt.Errorf("Simulation.JackpotBall must be within %d..%d, got %d", LowestBall, HighestBall, c.Simulation.JackpotBall)
	}
	seen := make(map[uint]bool, len(c.Simulation.TargetCards))
	for _, target := range c.Simulation.TargetCards {
		if len(target.Numbers) != models.CardSize {
			return fmt.Errorf("target card %d must hold %d numbers, got %d", target.ID, models.CardSize, len(target.Numbers))
		}
		if seen[target.ID] {
			return fmt.Errorf("target card id %d is repeated", target.ID)
		}
		seen[target.ID] = true
		if c.randomIDInUse(target.ID) {
			return fmt.Errorf("target card id %d collides with Simulation.CardIDBase range %d..%d",
				target.ID, c.Simulation.CardIDBase, c.Simulation.CardIDBase+uint(c.Simulation.RandomCards)-1)
		}
	}
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown Output.Format %q", c.Output.Format)
	}
	return nil
}

// randomIDInUse reports whether one of the random cards will be given id.
func (c *Config) randomIDInUse(id uint) bool {
	base := c.Simulation.CardIDBase
	return c.Simulation.RandomCards > 0 && id >= base && id-base < uint(c.Simulation.RandomCards)
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Simulation.RandomCards", 10)
	v.SetDefault("Simulation.CardIDBase", 100)
	v.SetDefault("Simulation.JackpotBall", 45)
	v.SetDefault("Simulation.Seed", 0)
	v.SetDefault("Simulation.CardsFile", "")
	v.SetDefault("Simulation.TargetCards", DefaultTargetCards())
	v.SetDefault("Simulation.Balls", []int{})
	v.SetDefault("Output.Format", FormatText)
	v.SetDefault("Output.ShowCards", false)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("Trace", false)
}

// DefaultTargetCards returns the three consecutive-number cards 333, 666 and 999.
func DefaultTargetCards() []TargetCardConfig {
	targets := make([]TargetCardConfig, 0, 3)
	for i, id := range []uint{333, 666, 999} {
		numbers := make([]int, models.CardSize)
		for j := range numbers {
			numbers[j] = i*models.CardSize + j + 1
		}
		targets = append(targets, TargetCardConfig{ID: id, Numbers: numbers})
	}
	return targets
}
