package sim

import (
	"github.com/cwbudde/algo-speaker/speaker/env"
	"github.com/cwbudde/algo-speaker/speaker/network"
	"github.com/cwbudde/algo-speaker/speaker/observe"
)

// Config collects the simulation settings.
type Config struct {
	Environment env.Environment
	Voltage     float64 // rms drive voltage, V
	Distance    float64 // observation distance, m
	Space       network.Space
	Step        bool // compute the step response
	StepMinSize int  // smallest step-response FFT
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns room-temperature air, 2.83 V at 1 m in half space
// with the step response enabled.
func DefaultConfig() Config {
	drive := network.DefaultConfig()
	return Config{
		Environment: env.Default(),
		Voltage:     drive.Voltage,
		Distance:    drive.Distance,
		Space:       drive.Space,
		Step:        true,
		StepMinSize: observe.DefaultMinStepSize,
	}
}

// WithEnvironment overrides the air properties.
func WithEnvironment(e env.Environment) Option {
	return func(cfg *Config) {
		cfg.Environment = e
	}
}

// WithVoltage sets the rms drive voltage. Non-positive values are rejected
// by Simulate.
func WithVoltage(v float64) Option {
	return func(cfg *Config) {
		cfg.Voltage = v
	}
}

// WithDistance sets the far-field observation distance.
func WithDistance(r float64) Option {
	return func(cfg *Config) {
		cfg.Distance = r
	}
}

// WithSpace selects half- or full-space radiation.
func WithSpace(s network.Space) Option {
	return func(cfg *Config) {
		cfg.Space = s
	}
}

// WithStepResponse enables or disables the step response.
func WithStepResponse(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Step = enabled
	}
}

// WithStepMinSize sets the smallest FFT size of the step response.
func WithStepMinSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.StepMinSize = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c Config) drive() network.Config {
	return network.Config{Voltage: c.Voltage, Distance: c.Distance, Space: c.Space}
}
