// SPDX-License-Identifier: EPL-2.0

// Package sampler plays one-shot samples over the deck mix.
//
// A sample id names a file in the asset directory without its extension;
// Extensions lists the suffixes tried, in order. Decoded samples are cached
// for the life of the Sampler (or until ReleaseResources), already converted
// to the engine sample rate.
//
//	dir, _ := sampler.FindSamplesDir()
//	s := sampler.New(44100, formats.NewRegistry(), dir)
//	_ = s.PreloadAll(ctx)
//	s.Trigger("airhorn", 0.8)
//
//	// audio goroutine
//	s.Mix(block, 2)
//
// At most MaxVoices voices sound at once; a trigger beyond that evicts the
// oldest voice. Trigger on an uncached id decodes the file on the calling
// goroutine, so call Preload or PreloadAll at startup. The mutex guarding
// voices is the only lock taken by Mix and is held just for the mixing loop.
package sampler
