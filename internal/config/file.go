package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/d100/internal/errors"
)

// FileConfig is the YAML representation of the settings a config file may
// provide. Absent keys leave the setting untouched.
type FileConfig struct {
	TickInterval *time.Duration `yaml:"tick_interval"`
	Ticks        *int           `yaml:"ticks"`
	Settle       *time.Duration `yaml:"settle"`
	Seed         *uint64        `yaml:"seed"`
	Placeholder  *bool          `yaml:"placeholder"`
	Rolls        *int           `yaml:"rolls"`
	NoColor      *bool          `yaml:"no_color"`
	Fullscreen   *bool          `yaml:"fullscreen"`
	History      *bool          `yaml:"history"`
	LogFile      *string        `yaml:"log_file"`
	Verbose      *bool          `yaml:"verbose"`
	MetricsAddr  *string        `yaml:"metrics_addr"`
	TraceFile    *string        `yaml:"trace_file"`
}

// LoadFile reads and decodes a YAML config file. Unknown keys are rejected.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("read config file %s: %v", path, err)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, apperrors.NewConfigError("parse config file %s: %v", path, err)
	}
	return fc, nil
}

// apply copies the file's values into cfg for every setting whose flag was
// not given on the command line.
func (fc FileConfig) apply(cfg *AppConfig, fs *flag.FlagSet) {
	setDuration(fs, "tick-interval", fc.TickInterval, &cfg.TickInterval)
	setInt(fs, "ticks", fc.Ticks, &cfg.Ticks)
	setDuration(fs, "settle", fc.Settle, &cfg.Settle)
	if fc.Seed != nil && !isFlagSet(fs, "seed") {
		cfg.Seed = *fc.Seed
	}
	setBool(fs, []string{"placeholder"}, fc.Placeholder, &cfg.Placeholder)
	setInt(fs, "rolls", fc.Rolls, &cfg.Rolls)
	setBool(fs, []string{"no-color"}, fc.NoColor, &cfg.NoColor)
	setBool(fs, []string{"fullscreen"}, fc.Fullscreen, &cfg.Fullscreen)
	setBool(fs, []string{"history"}, fc.History, &cfg.History)
	setString(fs, "log-file", fc.LogFile, &cfg.LogFile)
	setBool(fs, []string{"v", "verbose"}, fc.Verbose, &cfg.Verbose)
	setString(fs, "metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)
	setString(fs, "trace-file", fc.TraceFile, &cfg.TraceFile)
}

func setDuration(fs *flag.FlagSet, name string, src *time.Duration, dst *time.Duration) {
	if src != nil && !isFlagSet(fs, name) {
		*dst = *src
	}
}

func setInt(fs *flag.FlagSet, name string, src *int, dst *int) {
	if src != nil && !isFlagSet(fs, name) {
		*dst = *src
	}
}

func setString(fs *flag.FlagSet, name string, src *string, dst *string) {
	if src != nil && !isFlagSet(fs, name) {
		*dst = *src
	}
}

func setBool(fs *flag.FlagSet, names []string, src *bool, dst *bool) {
	if src != nil && !isFlagSetAny(fs, names...) {
		*dst = *src
	}
}
