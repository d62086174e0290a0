// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed 16-bit AIFF files through
// github.com/go-audio/aiff.
//
// AIFF stores big-endian samples and an 80-bit sample rate; the go-audio
// decoder takes care of both. The returned audio.Source yields the same
// float64 scale as the WAV decoder, each int16 divided by 32768, so AIFF
// input runs through the tone pipeline unchanged.
//
// Other bit depths and more than two channels fail with errors wrapping
// audio.ErrUnsupportedFormat. Writing AIFF is not supported.
package aiff
