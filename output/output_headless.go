// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/otodecks/logger"
)

// Output drives a Source in real time without an audio device, discarding
// the rendered PCM.
type Output struct {
	reader   *Reader
	interval time.Duration
	sink     []byte
	log      *slog.Logger

	mu      sync.Mutex
	started bool
	stop    chan struct{}
	done    chan struct{}
}

func New(src Source, opts Options) (*Output, error) {
	opts = opts.withDefaults()

	frames := int(opts.BufferSize.Seconds() * float64(src.SampleRate()))
	o := &Output{
		reader:   NewReader(src, opts.BlockFrames),
		interval: opts.BufferSize,
		sink:     make([]byte, max(frames, 1)*max(src.Channels(), 1)*bytesPerSample),
		log:      logger.WithComponent("output"),
	}
	o.log.Info("headless output", "sample_rate", src.SampleRate(), "buffer", opts.BufferSize)
	return o, nil
}

func (o *Output) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started {
		return
	}
	o.started = true
	o.stop = make(chan struct{})
	o.done = make(chan struct{})
	go o.run(o.stop, o.done)
}

func (o *Output) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_, _ = o.reader.Read(o.sink)
		}
	}
}

func (o *Output) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.started {
		return
	}
	close(o.stop)
	<-o.done
	o.started = false
}

func (o *Output) IsStarted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.started
}

func (o *Output) Close() error {
	o.Stop()
	o.reader.Detach()
	return nil
}
