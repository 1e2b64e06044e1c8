// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. OTODECKS_AUDIO_SAMPLE_RATE.
const EnvPrefix = "OTODECKS"

// Config holds all configuration for the application
type Config struct {
	Audio    AudioConfig    `mapstructure:"audio"`
	Samples  SamplesConfig  `mapstructure:"samples"`
	Spectrum SpectrumConfig `mapstructure:"spectrum"`
	Mixer    MixerConfig    `mapstructure:"mixer"`
	Effects  EffectsConfig  `mapstructure:"effects"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AudioConfig holds the engine format and device latency
type AudioConfig struct {
	SampleRate int           `mapstructure:"sample_rate"`
	BlockSize  int           `mapstructure:"block_size"`
	Channels   int           `mapstructure:"channels"`
	Buffer     time.Duration `mapstructure:"buffer"`
}

// SamplesConfig locates the one-shot samples. An empty Dir is searched for.
type SamplesConfig struct {
	Dir     string `mapstructure:"dir"`
	Preload bool   `mapstructure:"preload"`
}

type SpectrumConfig struct {
	FFTOrder int     `mapstructure:"fft_order"`
	Bars     int     `mapstructure:"bars"`
	Decay    float64 `mapstructure:"decay"`
	RateHz   int     `mapstructure:"rate_hz"`
}

type MixerConfig struct {
	Crossfade float64 `mapstructure:"crossfade"`
	Law       string  `mapstructure:"law"` // equal-power or constant-gain
}

type EffectsConfig struct {
	BypassAtZero bool `mapstructure:"bypass_at_zero"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.block_size", 512)
	v.SetDefault("audio.channels", 2)
	v.SetDefault("audio.buffer", "50ms")
	v.SetDefault("samples.dir", "")
	v.SetDefault("samples.preload", true)
	v.SetDefault("spectrum.fft_order", 10)
	v.SetDefault("spectrum.bars", 16)
	v.SetDefault("spectrum.decay", 3.0)
	v.SetDefault("spectrum.rate_hz", 60)
	v.SetDefault("mixer.crossfade", 0.5)
	v.SetDefault("mixer.law", "equal-power")
	v.SetDefault("effects.bypass_at_zero", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load reads configuration into v from file (or config.yaml in the usual
// places when file is empty) and OTODECKS_* environment variables, on top of
// the defaults. A missing config.yaml is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.otodecks")
		v.AddConfigPath("/etc/otodecks")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		slog.Debug("No config file found, using defaults and environment variables")
	} else {
		slog.Info("Using config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfig loads configuration through the global viper instance, which
// carries the bound command line flags.
func LoadConfig(file string) (*Config, error) {
	return Load(viper.GetViper(), file)
}
