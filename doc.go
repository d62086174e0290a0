// SPDX-License-Identifier: EPL-2.0

// Package audtone adjusts the volume and the bass, mid and treble balance of
// 16-bit PCM audio.
//
// The pipeline has three steps:
//
//	rate, buf, err := audtone.Load("in.wav", audtone.LoadOptions{})
//	out, err := audtone.Process(buf, rate, audtone.DefaultSettings())
//	err = audtone.Save("out.wav", rate, out)
//
// Process applies the volume stage (dsp.ApplyVolume) and then the tone stage
// (dsp.ApplyTone), which splits the signal into three Butterworth bands,
// weights them by the normalized bass, mid and treble gains, sums them and
// clips the result to [-1, 1]. The tone filters need a sample rate of at
// least dsp.MinSampleRate; LoadOptions.Rate can resample lower-rate input.
//
// WAV, AIFF and MP3 input are decoded through the formats subpackages. Output
// is always 16-bit PCM WAV, either to a file (Save) or to a stream (Write).
// To listen instead, hand the processed buffer to playback.Engine.
package audtone
