// SPDX-License-Identifier: EPL-2.0

package otodecks

import (
	"context"
	"log/slog"

	"github.com/ik5/otodecks/audio"
	"github.com/ik5/otodecks/deck"
	"github.com/ik5/otodecks/effects"
	"github.com/ik5/otodecks/formats"
	"github.com/ik5/otodecks/logger"
	"github.com/ik5/otodecks/mixer"
	"github.com/ik5/otodecks/sampler"
	"github.com/ik5/otodecks/spectrum"
)

const (
	DefaultSampleRate = 44100
	DefaultBlockSize  = 512
	DefaultChannels   = 2
)

// Options configures an Engine. Zero fields take their defaults.
type Options struct {
	SampleRate int
	BlockSize  int // frames per callback block
	Channels   int

	// Registry decodes tracks and samples; formats.NewRegistry when nil.
	Registry *audio.Registry

	// SamplesDir holds the one-shot samples. Empty disables the sampler's
	// file lookups.
	SamplesDir string

	Law       mixer.Law
	Crossfade *float64 // initial fader position, 0.5 when nil

	FFTOrder   int
	Bars       int
	Decay      float64 // bar fall rate per second
	SpectrumHz int

	// BypassAtZero skips the chorus on decks whose chorus amount is 0.
	BypassAtZero bool
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.BlockSize <= 0 {
		o.BlockSize = DefaultBlockSize
	}
	if o.Channels <= 0 {
		o.Channels = DefaultChannels
	}
	if o.Registry == nil {
		o.Registry = formats.NewRegistry()
	}
	if o.Crossfade == nil {
		center := 0.5
		o.Crossfade = &center
	}
	if o.FFTOrder <= 0 {
		o.FFTOrder = spectrum.DefaultFFTOrder
	}
	if o.Bars <= 0 {
		o.Bars = spectrum.DefaultBars
	}
	if o.Decay <= 0 {
		o.Decay = spectrum.DefaultDecay
	}
	if o.SpectrumHz <= 0 {
		o.SpectrumHz = spectrum.DefaultRateHz
	}
	return o
}

// Engine is the whole mixing graph: two decks and the sampler summed by the
// master mixer under the crossfader, with the result fed to the analyzer.
type Engine struct {
	opts Options
	log  *slog.Logger

	decks    [2]*deck.Deck
	sampler  *sampler.Sampler
	xfade    *mixer.Crossfader
	mixer    *mixer.Mixer
	analyzer *spectrum.Analyzer
}

// New builds and wires every component. Nothing is decoded yet.
func New(opts Options) *Engine {
	opts = opts.withDefaults()

	var fxOpts []effects.Option
	if opts.BypassAtZero {
		fxOpts = append(fxOpts, effects.BypassAtZero())
	}

	e := &Engine{
		opts:     opts,
		log:      logger.WithComponent("engine"),
		sampler:  sampler.New(opts.SampleRate, opts.Registry, opts.SamplesDir),
		xfade:    mixer.NewCrossfader(opts.Law),
		mixer:    mixer.New(opts.BlockSize, opts.Channels),
		analyzer: spectrum.NewAnalyzer(opts.FFTOrder, opts.Bars),
	}
	for i, name := range []string{"A", "B"} {
		e.decks[i] = deck.New(name, opts.SampleRate, opts.BlockSize, opts.Channels, opts.Registry, fxOpts...)
	}

	e.xfade.Set(*opts.Crossfade)
	e.analyzer.SetDecay(opts.Decay)

	e.mixer.Add(e.decks[0], e.xfade.GainA)
	e.mixer.Add(e.decks[1], e.xfade.GainB)
	channels := opts.Channels
	e.mixer.Add(mixer.InputFunc(func(dst []float32) int {
		return e.sampler.Mix(dst, channels)
	}), nil)

	e.log.Debug("engine ready",
		"sample_rate", opts.SampleRate,
		"block_size", opts.BlockSize,
		"channels", opts.Channels,
		"samples_dir", opts.SamplesDir)

	return e
}

func (e *Engine) SampleRate() int { return e.opts.SampleRate }
func (e *Engine) BlockSize() int  { return e.opts.BlockSize }
func (e *Engine) Channels() int   { return e.opts.Channels }

// Deck returns deck i (0 for A, 1 for B), or nil for any other index.
func (e *Engine) Deck(i int) *deck.Deck {
	if i < 0 || i >= len(e.decks) {
		return nil
	}
	return e.decks[i]
}

func (e *Engine) DeckA() *deck.Deck             { return e.decks[0] }
func (e *Engine) DeckB() *deck.Deck             { return e.decks[1] }
func (e *Engine) Sampler() *sampler.Sampler     { return e.sampler }
func (e *Engine) Crossfader() *mixer.Crossfader { return e.xfade }
func (e *Engine) Spectrum() *spectrum.Analyzer  { return e.analyzer }

// Process is the audio callback. It fills dst with interleaved frames in
// blocks of at most BlockSize frames and feeds each mixed block to the
// analyzer. Trailing samples that do not form a whole frame are zeroed.
func (e *Engine) Process(dst []float32) {
	ch := e.opts.Channels
	whole := len(dst) - len(dst)%ch
	clear(dst[whole:])

	blockLen := e.opts.BlockSize * ch
	for off := 0; off < whole; off += blockLen {
		block := dst[off:min(off+blockLen, whole)]
		e.mixer.Mix(block)
		e.analyzer.PushAudioBlock(block, ch, 0, len(block)/ch)
	}
}

// Preload decodes every sample in the samples directory.
func (e *Engine) Preload(ctx context.Context) error {
	return e.sampler.PreloadAll(ctx)
}

// Start runs the analyzer timer until ctx is done.
func (e *Engine) Start(ctx context.Context) {
	go e.analyzer.Run(ctx, e.opts.SpectrumHz)
}

// Close stops both decks, clears effect tails and drops every cached sample.
func (e *Engine) Close() {
	for _, d := range e.decks {
		d.Reset()
	}
	e.sampler.ReleaseResources()
	e.analyzer.Reset()
	e.log.Debug("engine closed")
}
