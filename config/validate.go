// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"strings"
)

var (
	validLaws    = []string{"equal-power", "constant-gain"}
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validFormats = []string{"text", "json"}
)

// Validate validates the configuration
func (c *Config) Validate() error {
	checks := []struct {
		ok      bool
		field   string
		message string
	}{
		{inRange(c.Audio.SampleRate, 8000, 192000), "audio.sample_rate", "must be between 8000 and 192000"},
		{inRange(c.Audio.BlockSize, 16, 8192), "audio.block_size", "must be between 16 and 8192"},
		{inRange(c.Audio.Channels, 1, 2), "audio.channels", "must be 1 or 2"},
		{c.Audio.Buffer > 0, "audio.buffer", "must be positive"},
		{inRange(c.Spectrum.FFTOrder, 6, 15), "spectrum.fft_order", "must be between 6 and 15"},
		{inRange(c.Spectrum.Bars, 8, 64), "spectrum.bars", "must be between 8 and 64"},
		{c.Spectrum.Decay >= 0.1 && c.Spectrum.Decay <= 30, "spectrum.decay", "must be between 0.1 and 30"},
		{inRange(c.Spectrum.RateHz, 1, 240), "spectrum.rate_hz", "must be between 1 and 240"},
		{c.Mixer.Crossfade >= 0 && c.Mixer.Crossfade <= 1, "mixer.crossfade", "must be between 0 and 1"},
		{oneOf(c.Mixer.Law, validLaws), "mixer.law", "must be one of " + strings.Join(validLaws, ", ")},
		{oneOf(c.Logging.Level, validLevels), "logging.level", "must be one of " + strings.Join(validLevels, ", ")},
		{oneOf(c.Logging.Format, validFormats), "logging.format", "must be one of " + strings.Join(validFormats, ", ")},
	}

	for _, check := range checks {
		if !check.ok {
			return &ConfigError{Field: check.field, Message: check.message}
		}
	}
	return nil
}

func inRange(v, lo, hi int) bool { return v >= lo && v <= hi }

func oneOf(v string, valid []string) bool {
	for _, s := range valid {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
