// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"github.com/ik5/otodecks/audio"
	"github.com/ik5/otodecks/formats/aiff"
	"github.com/ik5/otodecks/formats/flac"
	"github.com/ik5/otodecks/formats/mp3"
	"github.com/ik5/otodecks/formats/vorbis"
	"github.com/ik5/otodecks/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder keyed by file
// extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}
