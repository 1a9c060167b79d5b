package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of EnvPrefix+key, or defaultVal if unset.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the named flags was set, for aliased flags.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps one environment variable (without the D100_ prefix) to
// the flag(s) it shadows and the function that applies it.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the table of supported environment variables.
var envOverrides = []envOverride{
	{"TICK_INTERVAL", []string{"tick-interval"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.TickInterval = parsed
		}
	}},
	{"TICKS", []string{"ticks"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Ticks = parsed
		}
	}},
	{"SETTLE", []string{"settle"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Settle = parsed
		}
	}},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},
	{"ROLLS", []string{"rolls"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rolls = parsed
		}
	}},

	{"LOG_FILE", []string{"log-file"}, func(c *AppConfig, v string) { c.LogFile = v }},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) { c.MetricsAddr = v }},
	{"TRACE_FILE", []string{"trace-file"}, func(c *AppConfig, v string) { c.TraceFile = v }},

	{"PLACEHOLDER", []string{"placeholder"}, func(c *AppConfig, v string) {
		c.Placeholder = parseBoolEnv(v, c.Placeholder)
	}},
	{"PLAIN", []string{"plain"}, func(c *AppConfig, v string) {
		c.Plain = parseBoolEnv(v, c.Plain)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
	{"FULLSCREEN", []string{"fullscreen"}, func(c *AppConfig, v string) {
		c.Fullscreen = parseBoolEnv(v, c.Fullscreen)
	}},
	{"HISTORY", []string{"history"}, func(c *AppConfig, v string) {
		c.History = parseBoolEnv(v, c.History)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive) and returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies D100_* variables to every setting whose flag was
// not given on the command line. Unparsable values are ignored.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
