// SPDX-License-Identifier: EPL-2.0

// Package output connects an audio callback to the system sound device.
//
// The default build opens an ebitengine/oto v3 context producing signed
// 16-bit little-endian interleaved PCM. oto pulls bytes from a Reader, which
// calls Source.Process on oto's goroutine and converts the floats in place:
//
//	out, err := output.New(engine, output.Options{BufferSize: 50 * time.Millisecond})
//	if err != nil {
//		return err
//	}
//	defer out.Close()
//	out.Start()
//
// Building with -tags headless replaces the device with a ticker that pulls
// the source in real time and discards the PCM, for machines without audio.
package output
