// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"slices"
	"sync"
)

// FakeStream records what a playback engine does to a device stream.
// It satisfies playback.Stream.
type FakeStream struct {
	// Errors returned by the corresponding calls. WriteErr is returned by the
	// write with index FailWrite (0-based) and every one after it.
	StartErr  error
	WriteErr  error
	FailWrite int
	StopErr   error
	CloseErr  error

	// OnWrite runs after a successful write with its index.
	OnWrite func(index int)

	mu     sync.Mutex
	calls  []string
	blocks [][]float32
}

func (s *FakeStream) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *FakeStream) Start() error {
	s.record("start")
	return s.StartErr
}

func (s *FakeStream) Write(block []float32) error {
	s.mu.Lock()
	s.calls = append(s.calls, "write")
	index := len(s.blocks)
	if s.WriteErr != nil && index >= s.FailWrite {
		s.mu.Unlock()
		return s.WriteErr
	}
	s.blocks = append(s.blocks, slices.Clone(block))
	s.mu.Unlock()

	if s.OnWrite != nil {
		s.OnWrite(index)
	}
	return nil
}

func (s *FakeStream) Stop() error {
	s.record("stop")
	return s.StopErr
}

func (s *FakeStream) Close() error {
	s.record("close")
	return s.CloseErr
}

// Calls lists the method calls in order: start, write, stop, close.
func (s *FakeStream) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Blocks returns copies of the blocks accepted by Write.
func (s *FakeStream) Blocks() [][]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.blocks)
}

// Count reports how many times call was made.
func (s *FakeStream) Count(call string) int {
	n := 0
	for _, c := range s.Calls() {
		if c == call {
			n++
		}
	}
	return n
}
