package evo

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/evonet-go/evo/nn"
)

// ClonesPerSurvivor is the number of mutated duplicates each survivor
// contributes to the next generation.
const ClonesPerSurvivor = 2

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config stores the configuration parameters for the evolution driver.
type Config struct {
	Network   NetworkConfig   `yaml:"network"`
	Evolution EvolutionConfig `yaml:"evolution"`
	Mutation  MutationConfig  `yaml:"mutation"`
	Report    ReportConfig    `yaml:"report"`
}

// NetworkConfig describes the topology shared by every network.
type NetworkConfig struct {
	Shape      []int  `ini:"shape" delim:" " yaml:"shape"` // input width first, output width last
	Activation string `ini:"activation" yaml:"activation"`
}

// EvolutionConfig holds the generational loop parameters.
type EvolutionConfig struct {
	PopSize              int     `ini:"pop_size" yaml:"pop_size"`
	SurvivorFraction     float64 `ini:"survivor_fraction" yaml:"survivor_fraction"`
	ConvergenceThreshold float64 `ini:"convergence_threshold" yaml:"convergence_threshold"` // stop once mean fitness is below this
	MaxGenerations       int     `ini:"max_generations" yaml:"max_generations"`
	Workers              int     `ini:"workers" yaml:"workers"` // fitness evaluation goroutines, <= 1 is sequential
	Seed                 int64   `ini:"seed" yaml:"seed"`       // 0 seeds from the clock
}

// MutationConfig holds the per-weight mutation parameters.
type MutationConfig struct {
	// Chance is compared against a uniform draw; the weight mutates when the
	// draw exceeds it.
	Chance   float64 `ini:"chance" yaml:"chance"`
	RangeMin float64 `ini:"range_min" yaml:"range_min"`
	RangeMax float64 `ini:"range_max" yaml:"range_max"`
}

// Range returns the perturbation interval as an nn.Range.
func (m MutationConfig) Range() nn.Range {
	return nn.Range{Min: m.RangeMin, Max: m.RangeMax}
}

// ReportConfig controls the per-generation CSV report.
type ReportConfig struct {
	CSVPath string `ini:"csv_path" yaml:"csv_path"` // empty disables the report
}

// DefaultConfig returns a configuration with the defaults used by the driver.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			Shape:      []int{2, 4, 1},
			Activation: "sigmoid",
		},
		Evolution: EvolutionConfig{
			PopSize:              99,
			SurvivorFraction:     1.0 / 3.0,
			ConvergenceThreshold: 0.01,
			MaxGenerations:       100,
			Workers:              1,
		},
		Mutation: MutationConfig{
			Chance:   0.5,
			RangeMin: -0.5,
			RangeMax: 0.5,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file, or from YAML
// when the file extension is .yaml or .yml. Keys missing from the file keep
// their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	var (
		config *Config
		err    error
	)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		config, err = loadYAML(filePath)
	default:
		config, err = loadINI(filePath)
	}
	if err != nil {
		return nil, err
	}

	config.Network.Activation = strings.TrimSpace(config.Network.Activation)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadINI(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()
	if err := cfg.Section("Network").MapTo(&config.Network); err != nil {
		return nil, fmt.Errorf("failed to map [Network] section: %w", err)
	}
	if err := cfg.Section("Evolution").MapTo(&config.Evolution); err != nil {
		return nil, fmt.Errorf("failed to map [Evolution] section: %w", err)
	}
	if err := cfg.Section("Mutation").MapTo(&config.Mutation); err != nil {
		return nil, fmt.Errorf("failed to map [Mutation] section: %w", err)
	}
	if err := cfg.Section("Report").MapTo(&config.Report); err != nil {
		return nil, fmt.Errorf("failed to map [Report] section: %w", err)
	}
	return config, nil
}

func loadYAML(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return config, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// SurvivorCount returns the number of networks kept by each selection step.
func (c *Config) SurvivorCount() int {
	return int(math.Round(c.Evolution.SurvivorFraction * float64(c.Evolution.PopSize)))
}

// Validate checks that the configuration describes a runnable evolution.
func (c *Config) Validate() error {
	if err := nn.ValidateShape(c.Network.Shape); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := nn.GetActivation(c.Network.Activation); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	ev := c.Evolution
	if ev.PopSize <= 0 {
		return fmt.Errorf("%w: pop_size must be positive", ErrInvalidConfig)
	}
	if ev.SurvivorFraction <= 0 || ev.SurvivorFraction > 1 {
		return fmt.Errorf("%w: survivor_fraction must be in (0, 1]", ErrInvalidConfig)
	}
	exact := ev.SurvivorFraction * float64(ev.PopSize)
	survivors := c.SurvivorCount()
	if math.Abs(exact-float64(survivors)) > 0.01 {
		return fmt.Errorf("%w: survivor_fraction %.4f of pop_size %d is not a whole number of survivors", ErrInvalidConfig, ev.SurvivorFraction, ev.PopSize)
	}
	if survivors*(1+ClonesPerSurvivor) != ev.PopSize {
		return fmt.Errorf("%w: %d survivors with %d clones each cannot replenish pop_size %d", ErrInvalidConfig, survivors, ClonesPerSurvivor, ev.PopSize)
	}
	if ev.MaxGenerations <= 0 {
		return fmt.Errorf("%w: max_generations must be positive", ErrInvalidConfig)
	}
	if ev.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative", ErrInvalidConfig)
	}

	m := c.Mutation
	if m.Chance < 0 || m.Chance > 1 {
		return fmt.Errorf("%w: mutation chance must be between 0 and 1", ErrInvalidConfig)
	}
	if m.RangeMax < m.RangeMin {
		return fmt.Errorf("%w: range_max cannot be less than range_min", ErrInvalidConfig)
	}
	return nil
}
