// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

const (
	KeyEscape    byte = 0x1b
	KeyInterrupt byte = 0x03 // Ctrl-C arrives as a byte in raw mode
)

// KeyWatcher latches once any of its keys is read. Pressed has the
// CancelFunc signature and is safe to poll from the playback loop.
type KeyWatcher struct {
	keys    []byte
	pressed atomic.Bool

	restoreOnce sync.Once
	restore     func() error
	restoreErr  error
}

// NewKeyWatcher reads r in a background goroutine until a key matches or r
// fails. The goroutine exits then; a blocked Read is never interrupted.
func NewKeyWatcher(r io.Reader, keys ...byte) *KeyWatcher {
	w := &KeyWatcher{keys: keys}
	go w.watch(r)
	return w
}

func (w *KeyWatcher) watch(r io.Reader) {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if slices.Contains(w.keys, b) {
				w.pressed.Store(true)
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (w *KeyWatcher) Pressed() bool { return w.pressed.Load() }

// Close restores the terminal state changed by WatchTerminal.
func (w *KeyWatcher) Close() error {
	w.restoreOnce.Do(func() {
		if w.restore != nil {
			w.restoreErr = w.restore()
		}
	})
	return w.restoreErr
}

// WatchTerminal switches f to raw mode and watches it for escape, q or
// Ctrl-C. When f is not a terminal the returned watcher never fires.
func WatchTerminal(f *os.File) (*KeyWatcher, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return &KeyWatcher{}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw terminal: %w", err)
	}

	w := NewKeyWatcher(f, KeyEscape, 'q', KeyInterrupt)
	w.restore = func() error { return term.Restore(fd, state) }
	return w, nil
}
