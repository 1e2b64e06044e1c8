// SPDX-License-Identifier: EPL-2.0

package mixer

import "testing"

type constInput struct {
	value float32
	limit int // samples produced per call, -1 for all
	calls int
}

func (c *constInput) Render(dst []float32) int {
	c.calls++
	n := len(dst)
	if c.limit >= 0 {
		n = min(n, c.limit)
	}
	for i := range dst[:n] {
		dst[i] = c.value
	}
	// garbage past n must be ignored by the mixer
	for i := n; i < len(dst); i++ {
		dst[i] = 99
	}
	return n
}

func TestMixSumsWithGains(t *testing.T) {
	t.Parallel()

	m := New(4, 2)
	a := &constInput{value: 0.5, limit: -1}
	b := &constInput{value: 0.25, limit: -1}
	m.Add(a, func() float32 { return 0.5 })
	m.Add(b, nil)

	dst := []float32{7, 7, 7, 7, 7, 7, 7, 7}
	if n := m.Mix(dst); n != len(dst) {
		t.Fatalf("Mix() = %d", n)
	}
	for i, v := range dst {
		if v != 0.5 {
			t.Errorf("dst[%d] = %f, want 0.5", i, v)
		}
	}
}

func TestMixShortInputIsSilence(t *testing.T) {
	t.Parallel()

	m := New(8, 1)
	short := &constInput{value: 1, limit: 3}
	m.Add(short, nil)

	dst := make([]float32, 8)
	m.Mix(dst)
	for i, v := range dst {
		want := float32(0)
		if i < 3 {
			want = 1
		}
		if v != want {
			t.Errorf("dst[%d] = %f, want %f", i, v, want)
		}
	}
}

func TestMixChunksLargeBuffers(t *testing.T) {
	t.Parallel()

	m := New(4, 2)
	in := &constInput{value: 0.1, limit: -1}
	m.Add(in, nil)

	dst := make([]float32, 20)
	m.Mix(dst)
	if in.calls != 3 {
		t.Errorf("Render calls = %d, want 3 chunks", in.calls)
	}
	for i, v := range dst {
		if v != 0.1 {
			t.Fatalf("dst[%d] = %f, want 0.1", i, v)
		}
	}
}

func TestMixRendersMutedInputs(t *testing.T) {
	t.Parallel()

	m := New(4, 2)
	muted := &constInput{value: 1, limit: -1}
	m.Add(muted, func() float32 { return 0 })

	dst := make([]float32, 8)
	m.Mix(dst)
	if muted.calls != 1 {
		t.Error("muted input was not rendered")
	}
	for i, v := range dst {
		if v != 0 {
			t.Errorf("dst[%d] = %f, want 0", i, v)
		}
	}
}

func TestCrossfadeIsolatesDeck(t *testing.T) {
	t.Parallel()

	xf := NewCrossfader(EqualPower)
	m := New(16, 2)
	m.Add(&constInput{value: 0.3, limit: -1}, xf.GainA)
	m.Add(&constInput{value: 0.7, limit: -1}, xf.GainB)

	dst := make([]float32, 32)
	xf.Set(1)
	m.Mix(dst)
	for i, v := range dst {
		if v != 0.7 {
			t.Fatalf("dst[%d] = %f, want deck B only", i, v)
		}
	}

	xf.Set(0)
	m.Mix(dst)
	for i, v := range dst {
		if v != 0.3 {
			t.Fatalf("dst[%d] = %f, want deck A only", i, v)
		}
	}
}

func TestMixZeroAllocs(t *testing.T) {
	xf := NewCrossfader(EqualPower)
	m := New(512, 2)
	m.Add(&constInput{value: 0.3, limit: -1}, xf.GainA)
	m.Add(&constInput{value: 0.7, limit: -1}, xf.GainB)
	m.Add(InputFunc(func(dst []float32) int { clear(dst); return len(dst) }), nil)
	dst := make([]float32, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		m.Mix(dst)
	})
	if allocs != 0 {
		t.Errorf("Mix allocated %.1f times per run, want 0", allocs)
	}
}

func BenchmarkMix(b *testing.B) {
	xf := NewCrossfader(EqualPower)
	m := New(512, 2)
	m.Add(&constInput{value: 0.3, limit: -1}, xf.GainA)
	m.Add(&constInput{value: 0.7, limit: -1}, xf.GainB)
	dst := make([]float32, 1024)

	b.ReportAllocs()
	for b.Loop() {
		m.Mix(dst)
	}
}
