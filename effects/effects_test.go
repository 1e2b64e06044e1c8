// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"
	"math/rand/v2"
	"testing"
)

const (
	testRate  = 44100
	testBlock = 512
)

func noise(n int, seed uint64) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = (rng.Float32()*2 - 1) * 0.5
	}
	return buf
}

func TestDelayEcho(t *testing.T) {
	t.Parallel()

	const rate = 1000
	d := NewDelay(rate, 64)
	d.Set(0.5)

	if got := d.DelaySamples(); math.Abs(got-270) > 1e-6 {
		t.Fatalf("DelaySamples() = %f, want 270", got)
	}

	buf := make([]float32, 2*600)
	buf[0], buf[1] = 1, 1
	d.Process(buf, 2)

	mix := float32(0.55 * 0.5)
	if got, want := buf[0], 1-mix; math.Abs(float64(got-want)) > 1e-6 {
		t.Errorf("dry frame = %f, want %f", got, want)
	}
	for f := 1; f < 270; f++ {
		if buf[2*f] != 0 {
			t.Fatalf("frame %d = %f before the echo", f, buf[2*f])
		}
	}
	if got := buf[2*270]; math.Abs(float64(got-mix)) > 1e-4 {
		t.Errorf("echo = %f, want %f", got, mix)
	}
	if buf[2*270] != buf[2*270+1] {
		t.Error("echo differs between channels")
	}
	fb := float32(0.45 * 0.5)
	if got := buf[2*540]; math.Abs(float64(got-fb*mix)) > 1e-4 {
		t.Errorf("second echo = %f, want %f", got, fb*mix)
	}
}

func TestReverbZeroAmountIsBypassed(t *testing.T) {
	t.Parallel()

	r := NewReverb(testRate)
	r.Set(0)
	if r.Wet() != 0 {
		t.Errorf("Wet() = %f at amount 0, want 0", r.Wet())
	}
	r.Set(0.5)
	if r.Wet() != 0.75 {
		t.Errorf("Wet() = %f at amount 0.5, want 0.75", r.Wet())
	}
}

func TestReverbTail(t *testing.T) {
	t.Parallel()

	r := NewReverb(testRate)
	r.Set(1)

	buf := make([]float32, 2*testRate/2)
	buf[0], buf[1] = 1, 1
	r.Process(buf, 2)

	var energy float64
	for _, v := range buf[2*2000:] {
		energy += float64(v * v)
	}
	if energy == 0 {
		t.Error("no reverb tail after the impulse")
	}
	for i, v := range buf {
		if math.IsNaN(float64(v)) || math.Abs(float64(v)) > 4 {
			t.Fatalf("sample %d = %f is unstable", i, v)
		}
	}

	r.Reset()
	clear(buf)
	r.Process(buf, 2)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %f after Reset, want 0", i, v)
		}
	}
}

func TestReverbMono(t *testing.T) {
	t.Parallel()

	r := NewReverb(22050)
	r.Set(0.8)
	buf := make([]float32, 22050)
	buf[0] = 1
	r.Process(buf, 1)

	var energy float64
	for _, v := range buf[1000:] {
		energy += float64(v * v)
	}
	if energy == 0 {
		t.Error("mono reverb produced no tail")
	}
}

func TestCompressor(t *testing.T) {
	t.Parallel()

	c := NewCompressor(testRate, 1)
	c.Set(1)
	if c.ThresholdDB() != -30 || c.Ratio() != 10 {
		t.Fatalf("threshold %f dB ratio %f, want -30, 10", c.ThresholdDB(), c.Ratio())
	}

	loud := make([]float32, testRate/10)
	for i := range loud {
		loud[i] = 1
	}
	c.Process(loud, 1)

	thr := math.Pow(10, -30.0/20)
	want := math.Pow(1/thr, 0.1-1)
	if got := float64(loud[len(loud)-1]); math.Abs(got-want) > 0.01 {
		t.Errorf("settled gain = %f, want %f", got, want)
	}

	c.Reset()
	quiet := []float32{0.01, -0.01, 0.02}
	c.Process(quiet, 1)
	if quiet[0] != 0.01 || quiet[1] != -0.01 || quiet[2] != 0.02 {
		t.Errorf("signal below threshold altered: %v", quiet)
	}
}

func TestCompressorUnityAtZero(t *testing.T) {
	t.Parallel()

	c := NewCompressor(testRate, 2)
	c.Set(0)
	buf := noise(2*testBlock, 3)
	for i := range buf {
		buf[i] *= 2
	}
	want := append([]float32(nil), buf...)
	c.Process(buf, 2)
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("sample %d changed at ratio 1", i)
		}
	}
}

func TestChorusModulates(t *testing.T) {
	t.Parallel()

	c := NewChorus(testRate, 2)
	c.Set(1)
	if got := c.Mix(); math.Abs(float64(got)-0.43) > 1e-6 {
		t.Errorf("Mix() = %f, want 0.43", got)
	}

	in := noise(2*testRate/4, 11)
	buf := append([]float32(nil), in...)
	c.Process(buf, 2)

	changed := false
	for i := range buf {
		if buf[i] != in[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatal("chorus left the signal untouched")
	}

	c.Reset()
	silence := make([]float32, 2*testBlock)
	c.Process(silence, 2)
	for i, v := range silence {
		if v != 0 {
			t.Fatalf("sample %d = %f after Reset, want 0", i, v)
		}
	}
}
