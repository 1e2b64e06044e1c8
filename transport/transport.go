// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/otodecks/audio"
	"github.com/ik5/otodecks/logger"
	"github.com/ik5/otodecks/utils"
	uatomic "go.uber.org/atomic"
)

const (
	noSeek = -1

	// DeclickFrames is how long a stop issued mid-play takes to fade out.
	DeclickFrames = 64
)

type track struct {
	buf  *audio.Buffer
	path string
}

// Transport plays one decoded track with varispeed, gain and seeking.
//
// Control methods may be called from any goroutine. Read belongs to the
// audio goroutine and never blocks or allocates.
type Transport struct {
	sampleRate int
	channels   int
	reg        *audio.Registry
	log        *slog.Logger

	track   atomic.Pointer[track]
	cursor  uatomic.Float64 // frames, published after every block
	seek    uatomic.Float64 // pending seek in frames, noSeek when none
	state   uatomic.Uint64  // start generation << 1 | playing bit
	gain    uatomic.Float64
	speed   uatomic.Float64

	// audio goroutine only
	cur        *track
	pos        float64
	lastGain   float32
	wasPlaying bool

	mu        sync.RWMutex
	listeners map[*Listener]struct{}
}

// New builds an empty transport rendering at sampleRate with channels
// interleaved output channels. Tracks are decoded through reg.
func New(sampleRate, channels int, reg *audio.Registry) *Transport {
	t := &Transport{
		sampleRate: sampleRate,
		channels:   max(channels, 1),
		reg:        reg,
		log:        logger.WithComponent("transport"),
		listeners:  make(map[*Listener]struct{}),
		lastGain:   1,
	}
	t.seek.Store(noSeek)
	t.gain.Store(1)
	t.speed.Store(1)
	return t
}

// LoadSource decodes path fully and makes it the current track. On failure
// the previous track, position and play state are kept and the error is a
// *audio.DecodeError.
func (t *Transport) LoadSource(path string) error {
	buf, err := audio.Load(t.reg, path, t.sampleRate)
	if err != nil {
		t.log.Warn("load failed", "path", path, "error", err)
		return err
	}

	stopped := t.clearPlaying()
	t.seek.Store(0)
	t.cursor.Store(0)
	t.track.Store(&track{buf: buf, path: path})

	t.log.Info("track loaded", "path", path, "duration", buf.Duration(), "channels", buf.Channels())
	if stopped {
		t.notify(EventStopped)
	}
	t.notify(EventLoaded)
	return nil
}

// SetGain accepts g in [0, 1]; anything else is ignored.
func (t *Transport) SetGain(g float64) {
	if !(g >= 0 && g <= 1) {
		return
	}
	t.gain.Store(g)
}

func (t *Transport) Gain() float64 { return t.gain.Load() }

// SetSpeed sets the playback ratio (1 is normal speed). Non-positive or
// non-finite ratios are ignored.
func (t *Transport) SetSpeed(ratio float64) {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return
	}
	t.speed.Store(ratio)
}

func (t *Transport) Speed() float64 { return t.speed.Load() }

// SetPosition moves the play head to seconds, clamped to the track length.
func (t *Transport) SetPosition(seconds float64) {
	tr := t.track.Load()
	if tr == nil || math.IsNaN(seconds) {
		return
	}
	frames := utils.Clamp(seconds*float64(t.sampleRate), 0, float64(tr.buf.Frames()))
	t.seek.Store(frames)
}

// SetPositionRelative moves the play head to p of the track length. p outside
// [0, 1] is a no-op.
func (t *Transport) SetPositionRelative(p float64) {
	if !(p >= 0 && p <= 1) {
		return
	}
	tr := t.track.Load()
	if tr == nil {
		return
	}
	t.seek.Store(p * float64(tr.buf.Frames()))
}

// Start begins playback. It is ignored when nothing is loaded and rewinds
// first when the play head sits at the end.
func (t *Transport) Start() {
	tr := t.track.Load()
	if tr == nil {
		return
	}
	if t.Cursor() >= float64(tr.buf.Frames()) {
		t.seek.Store(0)
	}
	for {
		st := t.state.Load()
		if st&1 == 1 {
			return
		}
		// every start opens a new generation
		if t.state.CompareAndSwap(st, st+3) {
			t.notify(EventStarted)
			return
		}
	}
}

// Stop halts playback at once; a playing block fades out over
// DeclickFrames frames.
func (t *Transport) Stop() {
	if t.clearPlaying() {
		t.notify(EventStopped)
	}
}

// clearPlaying drops the playing bit and reports whether it was set.
func (t *Transport) clearPlaying() bool {
	for {
		st := t.state.Load()
		if st&1 == 0 {
			return false
		}
		if t.state.CompareAndSwap(st, st&^1) {
			return true
		}
	}
}

// endOfTrack stops playback only if it is still the run observed as st, so
// a Stop and Start racing the audio goroutine keep the new run playing.
func (t *Transport) endOfTrack(st uint64) {
	if st&1 == 1 {
		t.state.CompareAndSwap(st, st&^1)
	}
}

func (t *Transport) IsPlaying() bool { return t.state.Load()&1 == 1 }

// Cursor is the play head in frames, including a seek not yet picked up by
// the audio goroutine.
func (t *Transport) Cursor() float64 {
	if s := t.seek.Load(); s >= 0 {
		return s
	}
	return t.cursor.Load()
}

// PositionRelative is the play head as a fraction of the track, 0 when
// nothing is loaded.
func (t *Transport) PositionRelative() float64 {
	tr := t.track.Load()
	if tr == nil || tr.buf.Frames() == 0 {
		return 0
	}
	return t.Cursor() / float64(tr.buf.Frames())
}

func (t *Transport) Position() time.Duration {
	return time.Duration(t.Cursor() / float64(t.sampleRate) * float64(time.Second))
}

func (t *Transport) Length() time.Duration {
	tr := t.track.Load()
	if tr == nil {
		return 0
	}
	return tr.buf.Duration()
}

// CurrentSource is the path of the loaded track, empty when none.
func (t *Transport) CurrentSource() string {
	tr := t.track.Load()
	if tr == nil {
		return ""
	}
	return tr.path
}

// Peaks returns a min/max overview of the loaded track in n columns.
func (t *Transport) Peaks(n int) []audio.Peak {
	tr := t.track.Load()
	if tr == nil {
		return nil
	}
	return tr.buf.Peaks(n)
}

func (t *Transport) SampleRate() int { return t.sampleRate }
func (t *Transport) Channels() int   { return t.channels }

// Read renders len(dst)/channels frames into dst and returns len(dst).
// Silence is written while stopped, past the end of the track, or when no
// track is loaded. Reaching the end stops playback.
func (t *Transport) Read(dst []float32) int {
	frames := len(dst) / t.channels
	out := dst[:frames*t.channels]

	tr := t.track.Load()
	if tr != t.cur {
		t.cur = tr
		t.wasPlaying = false
	}
	if s := t.seek.Swap(noSeek); s >= 0 {
		t.pos = s
	}

	st := t.state.Load()
	playing := st&1 == 1
	gain := float32(t.gain.Load())

	if tr == nil || (!playing && !t.wasPlaying) {
		clear(dst)
		t.lastGain = gain
		t.wasPlaying = false
		t.cursor.Store(t.pos)
		return len(dst)
	}

	startGain, endGain := t.lastGain, gain
	if !t.wasPlaying {
		startGain = gain
	}
	render := frames
	if !playing {
		// stop requested mid-play: short fade, then silence
		endGain = 0
		render = min(frames, DeclickFrames)
	}

	buf := tr.buf
	length := float64(buf.Frames())
	speed := t.speed.Load()
	step := (endGain - startGain) / float32(max(render, 1))
	ended := false

	f := 0
	for ; f < render; f++ {
		if t.pos >= length {
			ended = true
			break
		}

		idx := int(t.pos)
		frac := float32(t.pos - float64(idx))
		g := startGain + step*float32(f)

		frame := out[f*t.channels : (f+1)*t.channels]
		for ch := range frame {
			var s float32
			if frac == 0 {
				s = buf.At(idx, ch)
			} else {
				s = utils.CubicInterpolate(buf.At(idx-1, ch), buf.At(idx, ch), buf.At(idx+1, ch), buf.At(idx+2, ch), frac)
			}
			frame[ch] = s * g
		}

		t.pos += speed
	}
	clear(out[f*t.channels:])
	clear(dst[len(out):])

	if ended {
		t.pos = length
		t.endOfTrack(st)
		playing = false
	}

	t.wasPlaying = playing
	t.lastGain = gain
	t.cursor.Store(t.pos)
	return len(dst)
}
