// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 input with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved 16-bit stereo, so the returned
// audio.Source reports two channels even for mono streams. Samples are
// normalized the same way as WAV input (int16 / 32768). Decoding is
// read-only; there is no MP3 writer.
package mp3
