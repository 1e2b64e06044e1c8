// SPDX-License-Identifier: EPL-2.0

// Package config loads otodecks settings with viper.
//
// Values resolve in this order: command line flags bound to the global viper
// instance, OTODECKS_* environment variables (dots become underscores, so
// audio.sample_rate is OTODECKS_AUDIO_SAMPLE_RATE), config.yaml from ., then
// $HOME/.otodecks, then /etc/otodecks, and finally the defaults:
//
//	audio:
//	  sample_rate: 44100
//	  block_size: 512
//	  channels: 2
//	  buffer: 50ms
//	samples:
//	  dir: ""          # searched for Assets/Samples when empty
//	  preload: true
//	spectrum:
//	  fft_order: 10
//	  bars: 16
//	  decay: 3
//	  rate_hz: 60
//	mixer:
//	  crossfade: 0.5
//	  law: equal-power # or constant-gain
//	effects:
//	  bypass_at_zero: false
//	logging:
//	  level: info
//	  format: text
//
// Validate reports the first out of range value as a *ConfigError.
package config
