// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package output

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/ik5/otodecks/logger"
)

// Output plays a Source on the default audio device through oto.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
	reader *Reader
	log    *slog.Logger

	mu      sync.Mutex // setup and control only
	started bool
}

// New opens the audio device at the source's rate and channel count. Only
// one Output may exist per process.
func New(src Source, opts Options) (*Output, error) {
	opts = opts.withDefaults()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: src.Channels(),
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   opts.BufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	<-ready

	o := &Output{
		ctx:    ctx,
		reader: NewReader(src, opts.BlockFrames),
		log:    logger.WithComponent("output"),
	}
	o.player = ctx.NewPlayer(o.reader)

	o.log.Info("audio device open",
		"sample_rate", src.SampleRate(),
		"channels", src.Channels(),
		"buffer", opts.BufferSize)

	return o, nil
}

// Start begins pulling audio from the source.
func (o *Output) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.started && o.player != nil {
		o.player.Play()
		o.started = true
	}
}

// Stop pauses the device; Start resumes it.
func (o *Output) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started && o.player != nil {
		o.player.Pause()
		o.started = false
	}
}

func (o *Output) IsStarted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.started
}

// Close stops playback and releases the player. The source is no longer
// called once Close returns.
func (o *Output) Close() error {
	o.Stop()

	o.mu.Lock()
	defer o.mu.Unlock()

	o.reader.Detach()
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	if err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	o.log.Info("audio device closed")
	return nil
}
