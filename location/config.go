package location

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ResetPolicy selects what Smoother.Reset discards.
type ResetPolicy string

const (
	// ResetAll discards the trackers, the altitude window and the fix history.
	// A reset smoother behaves exactly like a fresh one.
	ResetAll ResetPolicy = "all"
	// ResetTrackers discards the trackers only.
	ResetTrackers ResetPolicy = "trackers"
)

const (
	// DefaultTimeStep is the nominal interval between fixes in seconds
	DefaultTimeStep = 1.0
	// DefaultCoordinateNoise is the horizontal process noise in meters
	DefaultCoordinateNoise = 4.0
	// DefaultAltitudeNoise is the vertical process noise in meters
	DefaultAltitudeNoise = 2.0
	// DefaultMetersPerDegree converts degrees of latitude to meters
	DefaultMetersPerDegree = 111225.0
	// DefaultAltitudeWindow is the number of altitude estimates averaged
	DefaultAltitudeWindow = 4
)

// Config configures Smoother
type Config struct {
	// TimeStep is the fixed interval between fixes in seconds
	TimeStep float64 `json:"time_step"`
	// CoordinateNoise is the latitude and longitude process noise standard deviation in meters
	CoordinateNoise float64 `json:"coordinate_noise"`
	// AltitudeNoise is the altitude process noise standard deviation in meters
	AltitudeNoise float64 `json:"altitude_noise"`
	// MetersPerDegree is the length of one degree of latitude in meters
	MetersPerDegree float64 `json:"meters_per_degree"`
	// AltitudeWindow is the capacity of the altitude moving average
	AltitudeWindow int `json:"altitude_window"`
	// ResetPolicy selects what Reset discards
	ResetPolicy ResetPolicy `json:"reset_policy"`
	// SmoothedLongitudeNoise derives longitude noise from the last smoothed
	// latitude instead of the latitude of the fix being filtered
	SmoothedLongitudeNoise bool `json:"smoothed_longitude_noise"`
}

// DefaultConfig returns default Smoother configuration
func DefaultConfig() Config {
	return Config{
		TimeStep:        DefaultTimeStep,
		CoordinateNoise: DefaultCoordinateNoise,
		AltitudeNoise:   DefaultAltitudeNoise,
		MetersPerDegree: DefaultMetersPerDegree,
		AltitudeWindow:  DefaultAltitudeWindow,
		ResetPolicy:     ResetAll,
	}
}

// Validate checks that the configuration values are valid.
func (c Config) Validate() error {
	if !(c.TimeStep > 0) || math.IsInf(c.TimeStep, 0) {
		return fmt.Errorf("time_step must be positive, got %v", c.TimeStep)
	}

	if !(c.CoordinateNoise > 0) || math.IsInf(c.CoordinateNoise, 0) {
		return fmt.Errorf("coordinate_noise must be positive, got %v", c.CoordinateNoise)
	}

	if !(c.AltitudeNoise > 0) || math.IsInf(c.AltitudeNoise, 0) {
		return fmt.Errorf("altitude_noise must be positive, got %v", c.AltitudeNoise)
	}

	if !(c.MetersPerDegree > 0) || math.IsInf(c.MetersPerDegree, 0) {
		return fmt.Errorf("meters_per_degree must be positive, got %v", c.MetersPerDegree)
	}

	if c.AltitudeWindow < 1 {
		return fmt.Errorf("altitude_window must be at least 1, got %d", c.AltitudeWindow)
	}

	switch c.ResetPolicy {
	case ResetAll, ResetTrackers:
	default:
		return fmt.Errorf("unknown reset_policy %q", c.ResetPolicy)
	}

	return nil
}

// fileConfig overlays the fields present in a config file on top of defaults
type fileConfig struct {
	TimeStep               *float64     `json:"time_step,omitempty"`
	CoordinateNoise        *float64     `json:"coordinate_noise,omitempty"`
	AltitudeNoise          *float64     `json:"altitude_noise,omitempty"`
	MetersPerDegree        *float64     `json:"meters_per_degree,omitempty"`
	AltitudeWindow         *int         `json:"altitude_window,omitempty"`
	ResetPolicy            *ResetPolicy `json:"reset_policy,omitempty"`
	SmoothedLongitudeNoise *bool        `json:"smoothed_longitude_noise,omitempty"`
}

func (f *fileConfig) apply(c *Config) {
	if f.TimeStep != nil {
		c.TimeStep = *f.TimeStep
	}
	if f.CoordinateNoise != nil {
		c.CoordinateNoise = *f.CoordinateNoise
	}
	if f.AltitudeNoise != nil {
		c.AltitudeNoise = *f.AltitudeNoise
	}
	if f.MetersPerDegree != nil {
		c.MetersPerDegree = *f.MetersPerDegree
	}
	if f.AltitudeWindow != nil {
		c.AltitudeWindow = *f.AltitudeWindow
	}
	if f.ResetPolicy != nil {
		c.ResetPolicy = *f.ResetPolicy
	}
	if f.SmoothedLongitudeNoise != nil {
		c.SmoothedLongitudeNoise = *f.SmoothedLongitudeNoise
	}
}

// LoadConfig loads Config from a JSON file.
// The file must have a .json extension and be under 1MB.
// Fields omitted from the file retain their default values.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	fc := &fileConfig{}
	if err := json.Unmarshal(data, fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := DefaultConfig()
	fc.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
