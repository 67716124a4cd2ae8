// Package config loads the daemon's configuration: a YAML file for the
// parts a deployment rarely changes, overridden by command-line flags for
// the parts an operator changes every run. Grounded on the pack's
// yaml.v3-plus-pflag combination.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds everything cmd/ofdmsyncd needs to wire a synchronizer to a
// sample source and, optionally, a debug broadcaster.
type Config struct {
	// SampleRate is the source sample rate in Hz. The synchronizer itself
	// is rate-agnostic; this only governs what the WAV/mic sources open.
	SampleRate int `yaml:"sample_rate"`

	// WAVPath, if non-empty, reads samples from this file instead of a
	// live microphone.
	WAVPath string `yaml:"wav_path"`

	// FramesPerBuffer is the microphone source's internal read size.
	FramesPerBuffer int `yaml:"frames_per_buffer"`

	// DebugListenAddr, if non-empty, starts an HTTP server exposing a
	// WebSocket debug feed at this address.
	DebugListenAddr string `yaml:"debug_listen_addr"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file and no flags
// override anything.
func Default() Config {
	return Config{
		SampleRate:      48000,
		FramesPerBuffer: 256,
		LogLevel:        "info",
	}
}

// Load reads path as YAML into Default(), tolerating a missing file (the
// defaults then stand alone).
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags registers every Config field as a pflag flag bound to cfg, in the
// same style as the pack's direct pflag.StringVarP calls. Call Load first,
// then Flags, then fs.Parse so flags override the file.
func Flags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.SampleRate, "sample-rate", "r", cfg.SampleRate, "Sample rate in Hz")
	fs.StringVarP(&cfg.WAVPath, "wav", "w", cfg.WAVPath, "Read samples from this WAV file instead of the microphone")
	fs.IntVar(&cfg.FramesPerBuffer, "frames-per-buffer", cfg.FramesPerBuffer, "Microphone read size in frames")
	fs.StringVarP(&cfg.DebugListenAddr, "debug-addr", "d", cfg.DebugListenAddr, "Address to serve the debug WebSocket feed on, empty to disable")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "Log level: debug, info, warn, error")
}
