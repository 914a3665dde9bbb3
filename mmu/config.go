package mmu

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config holds simulator configuration
type Config struct {
	// Simulation Configuration
	Policy   string `json:"policy"`    // Replacement policy (clock, lru, rand)
	Frames   int    `json:"frames"`    // Number of physical frames
	Seed     int64  `json:"seed"`      // RNG seed for rand policy (0 = wall clock)
	Debug    bool   `json:"debug"`     // Emit per-access trace lines
	PageSize uint32 `json:"page_size"` // Page size in bytes (default: 4096)

	// Trace Configuration
	TraceFile string `json:"trace_file"` // Memory reference trace path
	UseMmap   bool   `json:"use_mmap"`   // Memory-map uncompressed traces

	// Reporting Configuration
	EnableMetrics bool   `json:"enable_metrics"` // Log structured statistics after the run
	LogLevel      string `json:"log_level"`      // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Policy:        "clock", // Second chance by default
		Frames:        16,
		Seed:          0, // Wall-clock seeding
		Debug:         false,
		PageSize:      DefaultPageSize,
		TraceFile:     "",
		UseMmap:       false,
		EnableMetrics: true,
		LogLevel:      "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	config := DefaultConfig()

	// Simulation
	if val := os.Getenv("MEMSIM_POLICY"); val != "" {
		config.Policy = val
	}

	if val := os.Getenv("MEMSIM_FRAMES"); val != "" {
		if frames, err := strconv.Atoi(val); err == nil {
			config.Frames = frames
		}
	}

	if val := os.Getenv("MEMSIM_SEED"); val != "" {
		if seed, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.Seed = seed
		}
	}

	if val := os.Getenv("MEMSIM_DEBUG"); val != "" {
		config.Debug = val == "true" || val == "1"
	}

	if val := os.Getenv("MEMSIM_PAGE_SIZE"); val != "" {
		if size, err := strconv.ParseUint(val, 10, 32); err == nil {
			config.PageSize = uint32(size)
		}
	}

	// Trace
	if val := os.Getenv("MEMSIM_TRACE_FILE"); val != "" {
		config.TraceFile = val
	}

	if val := os.Getenv("MEMSIM_USE_MMAP"); val != "" {
		config.UseMmap = val == "true" || val == "1"
	}

	// Reporting
	if val := os.Getenv("MEMSIM_ENABLE_METRICS"); val != "" {
		config.EnableMetrics = val == "true" || val == "1"
	}

	if val := os.Getenv("MEMSIM_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validPolicies := map[string]bool{
		"clock": true,
		"lru":   true,
		"rand":  true,
	}

	if !validPolicies[c.Policy] {
		return fmt.Errorf("invalid policy: %s (must be clock, lru, or rand)", c.Policy)
	}

	if c.Frames <= 0 {
		return fmt.Errorf("frame count must be greater than 0")
	}

	if c.PageSize == 0 {
		return fmt.Errorf("page size must be greater than 0")
	}

	if c.PageSize&(c.PageSize-1) != 0 {
		return fmt.Errorf("page size must be a power of two")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
