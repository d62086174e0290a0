// SPDX-License-Identifier: EPL-2.0

// Package playback streams a processed buffer to the audio device.
//
// Engine.Play cuts the buffer into fixed-size blocks and hands them to a
// Stream one at a time. Stream.Write blocks until the device takes the block,
// so playback runs at the device's pace without timers. Between blocks the
// engine polls a CancelFunc and its context; either one stops playback and is
// reported as Result.Cancelled rather than an error.
//
//	engine := playback.NewEngine(playback.NewOtoOpener())
//	keys, _ := playback.WatchTerminal(os.Stdin)
//	defer keys.Close()
//	res, err := engine.Play(ctx, rate, buf, keys.Pressed)
//
// The oto backend keeps one device context per process, as oto requires.
// Opening a second stream with a different sample rate or channel count
// fails with ErrFormatMismatch.
package playback
