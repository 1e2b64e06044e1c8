// SPDX-License-Identifier: EPL-2.0

package deck

import (
	"fmt"
	"log/slog"

	"github.com/ik5/otodecks/audio"
	"github.com/ik5/otodecks/effects"
	"github.com/ik5/otodecks/logger"
	"github.com/ik5/otodecks/transport"
)

// Deck is one playback channel: a transport feeding its own effects chain.
type Deck struct {
	name      string
	transport *transport.Transport
	fx        *effects.Chain
	log       *slog.Logger
}

// New builds a deck rendering interleaved blocks of at most blockSize frames
// at sampleRate. The effects chain is prepared before New returns.
func New(name string, sampleRate, blockSize, channels int, reg *audio.Registry, opts ...effects.Option) *Deck {
	fx := effects.NewChain(opts...)
	fx.Prepare(sampleRate, blockSize, channels)

	return &Deck{
		name:      name,
		transport: transport.New(sampleRate, channels, reg),
		fx:        fx,
		log:       logger.WithComponent("deck").With("deck", name),
	}
}

func (d *Deck) Name() string                    { return d.name }
func (d *Deck) Transport() *transport.Transport { return d.transport }
func (d *Deck) Effects() *effects.Chain         { return d.fx }

// Load replaces the deck's track and clears effect tails on the next block.
func (d *Deck) Load(path string) error {
	if err := d.transport.LoadSource(path); err != nil {
		return fmt.Errorf("deck %s: %w", d.name, err)
	}
	d.fx.RequestReset()
	d.log.Info("track loaded", "path", path, "length", d.transport.Length())
	return nil
}

// Render fills dst with the next block of the deck. Effects run even while
// the transport is stopped so reverb and delay tails ring out. Returns
// len(dst).
func (d *Deck) Render(dst []float32) int {
	n := d.transport.Read(dst)
	d.fx.Process(dst[:n])
	return n
}

// Reset stops playback and clears every effect tail.
func (d *Deck) Reset() {
	d.transport.Stop()
	d.fx.RequestReset()
}
