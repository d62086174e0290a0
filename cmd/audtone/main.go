// SPDX-License-Identifier: EPL-2.0

// Command audtone adjusts the volume, bass, mid and treble of an audio file
// and plays the result or writes it as 16-bit WAV.
//
//	audtone [flags] <input>
//
// Press escape or q to stop playback early.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audtone"
	"github.com/ik5/audtone/audio"
	"github.com/ik5/audtone/dsp"
	"github.com/ik5/audtone/internal/config"
	"github.com/ik5/audtone/playback"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// env holds what run needs from the process, so tests can swap the device
// and the keyboard.
type env struct {
	stdout io.Writer
	stderr io.Writer
	log    *log.Logger

	opener playback.Opener
	keys   func() (*playback.KeyWatcher, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	e := &env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    log.New(os.Stderr, "audtone: ", 0),
		opener: playback.NewOtoOpener(),
		keys:   func() (*playback.KeyWatcher, error) { return playback.WatchTerminal(os.Stdin) },
	}

	code := exitCode(e.log, run(ctx, os.Args[1:], e))
	stop()
	os.Exit(code)
}

func exitCode(logger *log.Logger, err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, config.ErrUsage), errors.Is(err, config.ErrInvalidValue):
		logger.Print(err)
		return exitUsage
	default:
		logger.Print(err)
		return exitError
	}
}

func run(ctx context.Context, args []string, e *env) error {
	a, err := config.Parse("audtone", args, e.stderr)
	if err != nil {
		return err
	}

	rate, buf, err := audtone.Load(a.Input, a.LoadOptions())
	if err != nil {
		return fmt.Errorf("loading %s: %w", a.Input, err)
	}

	if a.Verbose {
		e.log.Printf("%s: %d Hz, %d channels, %d frames", a.Input, rate, buf.Channels, buf.Frames())
		e.log.Printf("volume %g, bass %g, mid %g, treble %g", a.Volume, a.Bass, a.Mid, a.Treble)
		logBands(e.log, rate)
	}

	out, err := audtone.Process(buf, rate, a.Settings())
	if err != nil {
		return fmt.Errorf("processing %s: %w", a.Input, err)
	}

	switch {
	case a.Out == config.StdoutPath:
		return audtone.Write(e.stdout, rate, out)
	case a.Out != "":
		if err := audtone.Save(a.Out, rate, out); err != nil {
			return fmt.Errorf("saving %s: %w", a.Out, err)
		}
		if a.Verbose {
			e.log.Printf("wrote %s", a.Out)
		}
		return nil
	}

	return play(ctx, e, a, rate, out)
}

func play(ctx context.Context, e *env, a *config.Args, rate int, buf *audio.Buffer) error {
	keys, err := e.keys()
	if err != nil {
		return err
	}

	engine := playback.NewEngine(e.opener, playback.WithBlockSize(a.BlockSize))
	res, err := engine.Play(ctx, rate, buf, keys.Pressed)

	// the terminal must be out of raw mode before anything is logged
	if cerr := keys.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		return fmt.Errorf("playing %s: %w", a.Input, err)
	}

	if res.Cancelled {
		e.log.Print("Playback stopped")
	} else if a.Verbose {
		e.log.Printf("played %d frames in %d blocks", res.Frames, res.Blocks)
	}
	return nil
}

func logBands(logger *log.Logger, rate int) {
	bands, err := dsp.Bands(rate)
	if err != nil {
		// Process reports this one
		return
	}
	for _, b := range bands {
		logger.Printf("%s %s %v Hz: b=%.6g a=%.6g", b.Name, b.Kind, b.Cutoffs, b.B, b.A)
	}
}
