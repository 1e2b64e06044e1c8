// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"slices"
	"testing"

	"github.com/ik5/otodecks/audio"
	"github.com/ik5/otodecks/internal/audiotest"
)

func TestNewRegistryExtensions(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "flac", "mp3", "ogg", "wav"}
	if got := NewRegistry().Extensions(); !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}

func TestNewRegistryLoadsWAV(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteWAVFile(t, t.TempDir(), "Hit.WAV", 44100, 2, audiotest.ConstantPCM(441, 2, 3276))

	buf, err := audio.Load(NewRegistry(), path, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Frames() != 441 || buf.Channels() != 2 {
		t.Errorf("buffer = %d frames, %d ch", buf.Frames(), buf.Channels())
	}
}
