package flock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Config describes a simulation run: grid dimensions, the neighborhood
// window and the initial steering weights. The frame interval belongs to
// the front-end driving the ticks; the core never looks at a clock.
type Config struct {
	Rows       int `json:"rows" yaml:"rows"`
	Cols       int `json:"cols" yaml:"cols"`
	WindowSize int `json:"windowSize" yaml:"windowSize"`

	// IntervalMs is the frame cadence hint consumed by the front-ends.
	IntervalMs int `json:"intervalMs" yaml:"intervalMs"`

	// Seed for the initial random grid. Zero means "derive from the clock",
	// resolved by the caller that owns the random source.
	Seed uint64 `json:"seed" yaml:"seed"`

	Weights Weights `json:"weights" yaml:"weights"`
}

// DefaultConfig mirrors the reference run: a 50x100 grid with a 3x3
// neighborhood, stepped every 15 ms.
func DefaultConfig() *Config {
	return &Config{
		Rows:       50,
		Cols:       100,
		WindowSize: 3,
		IntervalMs: 15,
		Weights:    DefaultWeights(),
	}
}

// Validate rejects malformed configuration before any grid is built or
// tick executes.
func (c *Config) Validate() error {
	if c.Rows <= 0 {
		return &ConfigError{Field: "rows", Reason: "must be positive"}
	}
	if c.Cols <= 0 {
		return &ConfigError{Field: "cols", Reason: "must be positive"}
	}
	if err := validateWindow(c.WindowSize, c.Rows, c.Cols); err != nil {
		return err
	}
	if c.IntervalMs < 0 {
		return &ConfigError{Field: "intervalMs", Reason: "must not be negative"}
	}
	return c.Weights.Validate()
}

// LoadConfig loads configuration from a JSON or YAML file and validates it
// against the JSON schema before the struct-level checks run.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// YAML documents are normalized to JSON so the schema validator sees
	// the value types it expects.
	if isYAMLPath(configFile) {
		var y interface{}
		if err := yaml.Unmarshal(b, &y); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
		if b, err = json.Marshal(y); err != nil {
			return nil, fmt.Errorf("failed to normalize yaml config: %w", err)
		}
	}

	// Decode into a generic tree first so the schema validates the raw
	// document, then unmarshal into the struct.
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
