// SPDX-License-Identifier: EPL-2.0

package output

import "time"

const (
	DefaultBufferSize  = 50 * time.Millisecond
	DefaultBlockFrames = 512
)

// Options tunes the device stream.
type Options struct {
	// BufferSize is the device latency. Zero means DefaultBufferSize.
	BufferSize time.Duration
	// BlockFrames bounds each Source.Process call.
	BlockFrames int
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.BlockFrames <= 0 {
		o.BlockFrames = DefaultBlockFrames
	}
	return o
}
