// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files.
//
// Decoding goes through github.com/go-audio/wav and accepts mono or stereo
// data at any sample rate. Samples come out of the returned audio.Source as
// float64 values, each int16 divided by 32768.
//
//	decoder := wav.Decoder{}
//	source, err := decoder.Decode(file)
//
// Anything other than 16-bit integer PCM is rejected with an error wrapping
// audio.ErrUnsupportedFormat.
//
// # Writing
//
// Encode writes an audio.Buffer to a path through a temporary file that is
// renamed into place, so a failed write never leaves a truncated output.
// Samples are clipped to [-1, 1] and scaled by 32767.
//
// WriteWAV16 streams already quantized samples to any io.Writer and is used
// when the destination cannot seek, such as standard output.
package wav
