// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const (
	bytesPerSample = 4
	drainPoll      = 10 * time.Millisecond
	drainTimeout   = 2 * time.Second
)

// oto allows a single context per process.
var (
	otoOnce     sync.Once
	otoContext  *oto.Context
	otoErr      error
	otoRate     int
	otoChannels int
)

func sharedContext(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		otoRate, otoChannels = sampleRate, channels

		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoContext = ctx
	})

	if otoErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrDevice, otoErr)
	}
	if otoRate != sampleRate || otoChannels != channels {
		return nil, fmt.Errorf("%w: open at %d Hz/%d ch, requested %d Hz/%d ch",
			ErrFormatMismatch, otoRate, otoChannels, sampleRate, channels)
	}
	return otoContext, nil
}

// OtoOpener opens streams on the default output device through oto.
type OtoOpener struct{}

func NewOtoOpener() *OtoOpener { return &OtoOpener{} }

func (*OtoOpener) Open(cfg StreamConfig) (Stream, error) {
	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrDevice, cfg.Channels)
	}

	ctx, err := sharedContext(cfg.SampleRate, cfg.Channels)
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	// a one-block device buffer keeps Write paced to playback
	player.SetBufferSize(cfg.BlockSize * cfg.Channels * bytesPerSample)

	return &otoStream{
		player:  player,
		pr:      pr,
		pw:      pw,
		playing: make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

// watchPlayer closes pr with the player's error once one shows up, which
// fails a Write blocked on a player that stopped pulling. It returns when
// done is closed.
func watchPlayer(playerErr func() error, pr *io.PipeReader, done <-chan struct{}) {
	ticker := time.NewTicker(drainPoll)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := playerErr(); err != nil {
				_ = pr.CloseWithError(err)
				return
			}
		}
	}
}

type otoStream struct {
	player *oto.Player
	pr     *io.PipeReader
	pw     *io.PipeWriter
	buf    []byte

	started bool
	playing chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func (s *otoStream) Start() error {
	s.started = true
	go watchPlayer(s.player.Err, s.pr, s.done)

	// on some platforms Play reads from the pipe before returning
	go func() {
		s.player.Play()
		close(s.playing)
	}()
	return nil
}

// Write returns once the player has pulled every byte of block.
func (s *otoStream) Write(block []float32) error {
	n := len(block) * bytesPerSample
	if cap(s.buf) < n {
		s.buf = make([]byte, n)
	}
	s.buf = s.buf[:n]

	for i, v := range block {
		binary.LittleEndian.PutUint32(s.buf[i*bytesPerSample:], math.Float32bits(v))
	}

	if err := s.player.Err(); err != nil {
		_ = s.pr.CloseWithError(err)
		return err
	}
	if _, err := s.pw.Write(s.buf); err != nil {
		return fmt.Errorf("pipe to player: %w", err)
	}
	return s.player.Err()
}

// Stop ends the input and waits for queued audio to play out.
func (s *otoStream) Stop() error {
	if err := s.pw.Close(); err != nil {
		return fmt.Errorf("closing player input: %w", err)
	}
	if !s.started {
		return nil
	}
	<-s.playing

	deadline := time.Now().Add(drainTimeout)
	for s.player.IsPlaying() && time.Now().Before(deadline) {
		if err := s.player.Err(); err != nil {
			return err
		}
		time.Sleep(drainPoll)
	}
	return s.player.Err()
}

func (s *otoStream) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	_ = s.pr.Close()
	return s.player.Close()
}
