// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/otodecks/audio"
	"github.com/ik5/otodecks/formats/wav"
	"github.com/ik5/otodecks/internal/audiotest"
)

const (
	testRate  = 44100
	testBlock = 512
	// 512/32768, exactly representable
	unit = float32(1.0 / 64)
)

func newTestSampler(t *testing.T) (*Sampler, string) {
	t.Helper()
	dir := t.TempDir()
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	return New(testRate, reg, dir), dir
}

func TestVoiceCapEvictsOldest(t *testing.T) {
	t.Parallel()

	s, dir := newTestSampler(t)
	audiotest.WriteWAVFile(t, dir, "pad.wav", testRate, 1, audiotest.ConstantPCM(testRate, 1, 512))

	for i := 1; i <= MaxVoices+1; i++ {
		s.Trigger("pad", float32(i))
	}
	if got := s.Active(); got != MaxVoices {
		t.Fatalf("Active() = %d, want %d", got, MaxVoices)
	}

	dst := make([]float32, 2*testBlock)
	s.Mix(dst, 2)

	// gains 2..17 survive, gain 1 was the oldest
	want := unit * 152
	if dst[0] != want || dst[1] != want {
		t.Errorf("mixed frame = (%f, %f), want %f", dst[0], dst[1], want)
	}

	for i := range 10 {
		s.Trigger("pad", 100+float32(i))
		if got := s.Active(); got > MaxVoices {
			t.Fatalf("Active() = %d after extra trigger, exceeds cap", got)
		}
	}
}

func TestSampleEndsExactly(t *testing.T) {
	t.Parallel()

	s, dir := newTestSampler(t)
	audiotest.WriteWAVFile(t, dir, "blip.wav", testRate, 1, audiotest.ConstantPCM(700, 1, 512))

	s.Trigger("blip", 1)
	dst := make([]float32, testBlock)

	s.Mix(dst, 1)
	for i, v := range dst {
		if v != unit {
			t.Fatalf("first block frame %d = %f, want %f", i, v, unit)
		}
	}

	s.Mix(dst, 1)
	for i, v := range dst {
		want := float32(0)
		if i < 700-testBlock {
			want = unit
		}
		if v != want {
			t.Fatalf("second block frame %d = %f, want %f", i, v, want)
		}
	}
	if s.Active() != 0 {
		t.Errorf("Active() = %d after the sample ended, want 0", s.Active())
	}
}

func TestChannelMapping(t *testing.T) {
	t.Parallel()

	s, dir := newTestSampler(t)
	audiotest.WriteWAVFile(t, dir, "mono.wav", testRate, 1, audiotest.ConstantPCM(64, 1, 512))
	audiotest.WriteWAVFile(t, dir, "stereo.wav", testRate, 2, []int16{512, -512, 512, -512})

	dst := make([]float32, 8)
	s.Trigger("mono", 0.5)
	s.Mix(dst, 2)
	for i, v := range dst {
		if v != unit*0.5 {
			t.Fatalf("mono broadcast dst[%d] = %f", i, v)
		}
	}

	s.ReleaseResources()
	s.Trigger("stereo", 1)
	mono := make([]float32, 4)
	s.Mix(mono, 1)
	if mono[0] != unit || mono[1] != unit || mono[2] != 0 {
		t.Errorf("stereo into mono = %v, want left channel only", mono)
	}

	quad := make([]float32, 8)
	s.Trigger("stereo", 1)
	s.Mix(quad, 4)
	want := []float32{unit, -unit, -unit, -unit}
	for ch, w := range want {
		if quad[ch] != w {
			t.Errorf("quad ch %d = %f, want %f", ch, quad[ch], w)
		}
	}
}

func TestTriggerMissingIsSilent(t *testing.T) {
	t.Parallel()

	s, dir := newTestSampler(t)
	if err := os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"nope", "broken", "", "../etc/passwd", ".."} {
		s.Trigger(id, 1)
	}
	if s.Active() != 0 || s.Cached() != 0 {
		t.Errorf("Active() = %d, Cached() = %d, want 0, 0", s.Active(), s.Cached())
	}

	dst := []float32{1, 1}
	s.Mix(dst, 2)
	if dst[0] != 0 || dst[1] != 0 {
		t.Errorf("Mix with no voices = %v, want silence", dst)
	}
}

func TestPreload(t *testing.T) {
	t.Parallel()

	s, dir := newTestSampler(t)
	for _, id := range []string{"kick", "snare", "hat"} {
		audiotest.WriteWAVFile(t, dir, id+".wav", 22050, 1, audiotest.ConstantPCM(2205, 1, 100))
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err := s.IDs()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"hat", "kick", "snare"}; !slices.Equal(ids, want) {
		t.Errorf("IDs() = %v, want %v", ids, want)
	}

	if err := s.Preload(context.Background(), "kick"); err != nil {
		t.Fatal(err)
	}
	if s.Cached() != 1 {
		t.Errorf("Cached() = %d after Preload, want 1", s.Cached())
	}

	if err := s.PreloadAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if s.Cached() != 3 {
		t.Errorf("Cached() = %d after PreloadAll, want 3", s.Cached())
	}

	if err := s.Preload(context.Background(), "kick", "cowbell"); !errors.Is(err, ErrMissingAsset) {
		t.Errorf("Preload(missing) err = %v, want ErrMissingAsset", err)
	}

	s.mu.Lock()
	kick := s.cache["kick"]
	s.mu.Unlock()
	if kick.SampleRate() != testRate || kick.Frames() < 4400 || kick.Frames() > 4420 {
		t.Errorf("kick = %d frames @ %d Hz, want about 4410 @ %d", kick.Frames(), kick.SampleRate(), testRate)
	}

	s.ReleaseResources()
	if s.Cached() != 0 || s.Active() != 0 {
		t.Error("ReleaseResources left state behind")
	}
}

func TestPreloadCancelled(t *testing.T) {
	t.Parallel()

	s, dir := newTestSampler(t)
	audiotest.WriteWAVFile(t, dir, "a.wav", testRate, 1, audiotest.ConstantPCM(10, 1, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Preload(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("Preload on cancelled ctx err = %v", err)
	}
}

func TestPreloadAllWithoutDir(t *testing.T) {
	t.Parallel()

	s := New(testRate, audio.NewRegistry(), "")
	if err := s.PreloadAll(context.Background()); err != nil {
		t.Errorf("PreloadAll without a directory = %v, want nil", err)
	}
	if _, err := s.IDs(); !errors.Is(err, ErrNoSamplesDir) {
		t.Errorf("IDs() err = %v, want ErrNoSamplesDir", err)
	}
}

func TestMixZeroAllocs(t *testing.T) {
	s, dir := newTestSampler(t)
	audiotest.WriteWAVFile(t, dir, "long.wav", testRate, 2, audiotest.ConstantPCM(60*testRate, 2, 100))
	for range MaxVoices {
		s.Trigger("long", 0.1)
	}
	dst := make([]float32, 2*testBlock)

	allocs := testing.AllocsPerRun(100, func() {
		s.Mix(dst, 2)
	})
	if allocs != 0 {
		t.Errorf("Mix allocated %.1f times per run, want 0", allocs)
	}
}

func BenchmarkMix16Voices(b *testing.B) {
	dir := b.TempDir()
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	s := New(testRate, reg, dir)
	audiotest.WriteWAVFile(b, dir, "long.wav", testRate, 2, audiotest.ConstantPCM(600*testRate, 2, 100))
	for range MaxVoices {
		s.Trigger("long", 0.1)
	}
	dst := make([]float32, 2*testBlock)

	b.ReportAllocs()
	for b.Loop() {
		s.Mix(dst, 2)
	}
}
