// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/ik5/otodecks/audio"
	"github.com/ik5/otodecks/logger"
	"golang.org/x/sync/errgroup"
)

// MaxVoices caps the number of samples sounding at once. Triggering past the
// cap cuts the oldest voice.
const MaxVoices = 16

// Extensions are tried in order when resolving a sample id to a file.
var Extensions = []string{".wav", ".mp3", ".flac", ".ogg", ".aiff"}

type voice struct {
	buf  *audio.Buffer
	pos  int
	gain float32
}

// Sampler mixes one-shot samples triggered by id on top of the decks.
type Sampler struct {
	sampleRate int
	reg        *audio.Registry
	dir        string
	log        *slog.Logger

	mu     sync.Mutex
	cache  map[string]*audio.Buffer
	voices []voice
}

// New returns a sampler reading samples from dir, converted to sampleRate.
func New(sampleRate int, reg *audio.Registry, dir string) *Sampler {
	return &Sampler{
		sampleRate: sampleRate,
		reg:        reg,
		dir:        dir,
		log:        logger.WithComponent("sampler"),
		cache:      make(map[string]*audio.Buffer),
		voices:     make([]voice, 0, MaxVoices),
	}
}

func (s *Sampler) Dir() string { return s.dir }

// Trigger starts a new voice playing sample id at gain. Samples not yet
// cached are decoded on the calling goroutine first. A missing or
// undecodable sample is a silent no-op.
func (s *Sampler) Trigger(id string, gain float32) {
	buf, err := s.sample(id)
	if err != nil {
		s.log.Debug("trigger ignored", "id", id, "error", err)
		return
	}

	s.mu.Lock()
	if len(s.voices) >= MaxVoices {
		n := copy(s.voices, s.voices[1:])
		s.voices[n] = voice{}
		s.voices = s.voices[:n]
	}
	s.voices = append(s.voices, voice{buf: buf, gain: gain})
	s.mu.Unlock()
}

// sample returns the cached buffer for id, loading it outside the lock on a miss.
func (s *Sampler) sample(id string) (*audio.Buffer, error) {
	s.mu.Lock()
	buf, ok := s.cache[id]
	s.mu.Unlock()
	if ok {
		return buf, nil
	}

	path, err := s.resolve(id)
	if err != nil {
		return nil, err
	}
	buf, err = audio.Load(s.reg, path, s.sampleRate)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if cached, ok := s.cache[id]; ok {
		buf = cached
	} else {
		s.cache[id] = buf
	}
	s.mu.Unlock()

	s.log.Debug("sample cached", "id", id, "path", path, "frames", buf.Frames())
	return buf, nil
}

func (s *Sampler) resolve(id string) (string, error) {
	if s.dir == "" || id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("%w: %q", ErrMissingAsset, id)
	}
	for _, ext := range Extensions {
		path := filepath.Join(s.dir, id+ext)
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrMissingAsset, id, s.dir)
}

// IDs lists the sample ids available in the asset directory, sorted.
func (s *Sampler) IDs() ([]string, error) {
	if s.dir == "" {
		return nil, ErrNoSamplesDir
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing samples: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !slices.Contains(Extensions, strings.ToLower(ext)) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ext))
	}
	slices.Sort(ids)
	return slices.Compact(ids), nil
}

// Preload decodes the given samples in parallel so that triggering them
// later never touches the disk. Missing ids fail with ErrMissingAsset.
func (s *Sampler) Preload(ctx context.Context, ids ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := s.sample(id); err != nil {
				return fmt.Errorf("preload %s: %w", id, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Info("samples preloaded", "count", len(ids))
	return nil
}

// PreloadAll preloads every sample found by IDs.
func (s *Sampler) PreloadAll(ctx context.Context) error {
	ids, err := s.IDs()
	if err != nil {
		if errors.Is(err, ErrNoSamplesDir) {
			return nil
		}
		return err
	}
	return s.Preload(ctx, ids...)
}

// Mix clears dst and adds every active voice into it as interleaved frames
// of channels. Mono samples are broadcast; sample channels past the output
// count are dropped. Finished voices are removed. Returns len(dst).
func (s *Sampler) Mix(dst []float32, channels int) int {
	clear(dst)
	if channels < 1 {
		return len(dst)
	}
	frames := len(dst) / channels

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.voices[:0]
	for _, v := range s.voices {
		srcCh := v.buf.Channels()
		data := v.buf.Data()
		n := min(v.buf.Frames()-v.pos, frames)

		for f := range n {
			src := data[(v.pos+f)*srcCh:]
			out := dst[f*channels : (f+1)*channels]
			for ch := range out {
				out[ch] += v.gain * src[min(ch, srcCh-1)]
			}
		}

		v.pos += n
		if v.pos < v.buf.Frames() {
			kept = append(kept, v)
		}
	}
	clear(s.voices[len(kept):])
	s.voices = kept

	return len(dst)
}

// Active is the number of voices currently sounding.
func (s *Sampler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

// Cached is the number of decoded samples held in memory.
func (s *Sampler) Cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// ReleaseResources stops every voice and drops the sample cache.
func (s *Sampler) ReleaseResources() {
	s.mu.Lock()
	clear(s.voices)
	s.voices = s.voices[:0]
	clear(s.cache)
	s.mu.Unlock()
}
