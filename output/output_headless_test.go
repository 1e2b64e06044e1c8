// SPDX-License-Identifier: EPL-2.0

//go:build headless

package output

import (
	"sync"
	"testing"
	"time"
)

type countingSource struct {
	mu      sync.Mutex
	samples int
}

func (s *countingSource) Process(dst []float32) {
	s.mu.Lock()
	s.samples += len(dst)
	s.mu.Unlock()
	clear(dst)
}

func (s *countingSource) SampleRate() int { return 8000 }
func (s *countingSource) Channels() int   { return 2 }

func (s *countingSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples
}

func TestHeadlessPullsSource(t *testing.T) {
	src := &countingSource{}
	out, err := New(src, Options{BufferSize: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out.Start()
	if !out.IsStarted() {
		t.Fatal("IsStarted() = false after Start")
	}
	time.Sleep(50 * time.Millisecond)
	if err := out.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if src.count() == 0 {
		t.Error("source was never pulled")
	}
	if out.IsStarted() {
		t.Error("IsStarted() = true after Close")
	}

	after := src.count()
	time.Sleep(20 * time.Millisecond)
	if src.count() != after {
		t.Error("source pulled after Close")
	}
}
