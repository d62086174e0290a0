// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample representation shared by the decoders, the
// tone pipeline and playback.
//
// # Sources
//
// Decoders return a Source that streams interleaved float64 samples, nominally
// in [-1.0, 1.0]. A Source can be wrapped by a Resampler to change its rate or
// by a MonoMixer to average its channels:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	src = audio.NewMonoMixer(audio.NewResampler(src, 22050))
//
// Sources signal the end of the stream with io.EOF.
//
// # Buffers
//
// ReadAll drains a Source into a Buffer, the whole-signal form the DSP stages
// work on. Buffer keeps samples interleaved; Channel and SetChannel copy one
// channel out and back. Only mono and stereo buffers are valid.
//
// # Registry
//
// A Registry maps format keys (file extensions, case-insensitive, with or
// without the leading dot) to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Get(".WAV")
//
// # Errors
//
// ErrUnsupportedFormat and ErrInvalidConfiguration are the roots of the error
// taxonomy. Format packages and dsp wrap them, so callers can classify a
// failure with errors.Is without knowing which package produced it.
package audio
