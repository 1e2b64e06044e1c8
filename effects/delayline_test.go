// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math/rand/v2"
	"strconv"
	"testing"
)

func TestDelayLineReadsExactPast(t *testing.T) {
	t.Parallel()

	const sampleRate = 44100
	line := NewDelayLine(2 * sampleRate)

	for _, ms := range []int{90, 150, 270, 333, 450} {
		t.Run(strconv.Itoa(ms)+"ms", func(t *testing.T) {
			d := ms * sampleRate / 1000
			line.Reset()

			rng := rand.New(rand.NewPCG(uint64(ms), 7))
			written := make([]float32, 3*d)
			for i := range written {
				written[i] = rng.Float32()*2 - 1
			}

			for tick, x := range written {
				got := line.Read(d)
				want := float32(0)
				if tick >= d {
					want = written[tick-d]
				}
				if got != want {
					t.Fatalf("%d ms: tick %d read %f, want %f", ms, tick, got, want)
				}
				line.Write(x)
			}
		})
	}
}

func TestDelayLineClampsDelay(t *testing.T) {
	t.Parallel()

	line := NewDelayLine(4)
	if line.MaxDelay() != 4 {
		t.Fatalf("MaxDelay() = %d, want 4", line.MaxDelay())
	}
	for _, x := range []float32{1, 2, 3, 4, 5} {
		line.Write(x)
	}

	tests := []struct {
		delay int
		want  float32
	}{
		{0, 5},
		{1, 5},
		{4, 2},
		{9, 2},
	}
	for _, tt := range tests {
		if got := line.Read(tt.delay); got != tt.want {
			t.Errorf("Read(%d) = %f, want %f", tt.delay, got, tt.want)
		}
	}
}

func TestDelayLineReadFrac(t *testing.T) {
	t.Parallel()

	line := NewDelayLine(8)
	for _, x := range []float32{0, 10, 20, 30} {
		line.Write(x)
	}

	if got := line.ReadFrac(2); got != 20 {
		t.Errorf("ReadFrac(2) = %f, want 20", got)
	}
	if got := line.ReadFrac(1.5); got != 25 {
		t.Errorf("ReadFrac(1.5) = %f, want 25", got)
	}
}
