// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/ik5/otodecks"
	"github.com/ik5/otodecks/config"
	"github.com/ik5/otodecks/logger"
	"github.com/ik5/otodecks/mixer"
	"github.com/ik5/otodecks/output"
	"github.com/ik5/otodecks/sampler"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "otodecks",
	Short: "A dual-deck audio mixing engine",
	Long: `otodecks mixes two playback decks through a crossfader, each with its own
chorus, delay, reverb and compressor, and overlays one-shot samples.

Run "otodecks play" to open the audio device and control the decks from the
console.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	flags.Int("sample-rate", 44100, "engine sample rate in Hz")
	flags.Int("block-size", 512, "frames per processing block")
	flags.Duration("buffer", output.DefaultBufferSize, "audio device buffer")
	flags.String("samples-dir", "", "one-shot samples directory (default: search for Assets/Samples)")
	flags.String("law", "equal-power", "crossfade law (equal-power, constant-gain)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	bind := map[string]string{
		"audio.sample_rate": "sample-rate",
		"audio.block_size":  "block-size",
		"audio.buffer":      "buffer",
		"samples.dir":       "samples-dir",
		"mixer.law":         "law",
		"logging.level":     "log-level",
		"logging.format":    "log-format",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// initConfig applies flags that override config keys wholesale
func initConfig() {
	if verbose {
		viper.Set("logging.level", "debug")
	}
}

// loadConfig loads, validates and applies the logging configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	logger.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// samplesDir is the configured samples directory, or the one found next to
// the executable or working directory. Empty when there is none.
func samplesDir(cfg *config.Config) string {
	if cfg.Samples.Dir != "" {
		return cfg.Samples.Dir
	}
	dir, err := sampler.FindSamplesDir()
	if err != nil {
		logger.WithComponent("cli").Debug("no samples directory", "error", err)
		return ""
	}
	return dir
}

func engineOptions(cfg *config.Config, dir string) (otodecks.Options, error) {
	law, err := mixer.ParseLaw(cfg.Mixer.Law)
	if err != nil {
		return otodecks.Options{}, err
	}
	return otodecks.Options{
		SampleRate:   cfg.Audio.SampleRate,
		BlockSize:    cfg.Audio.BlockSize,
		Channels:     cfg.Audio.Channels,
		SamplesDir:   dir,
		Law:          law,
		Crossfade:    &cfg.Mixer.Crossfade,
		FFTOrder:     cfg.Spectrum.FFTOrder,
		Bars:         cfg.Spectrum.Bars,
		Decay:        cfg.Spectrum.Decay,
		SpectrumHz:   cfg.Spectrum.RateHz,
		BypassAtZero: cfg.Effects.BypassAtZero,
	}, nil
}
