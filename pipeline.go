// SPDX-License-Identifier: EPL-2.0

package audtone

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/audtone/audio"
	"github.com/ik5/audtone/dsp"
	"github.com/ik5/audtone/formats/aiff"
	"github.com/ik5/audtone/formats/mp3"
	"github.com/ik5/audtone/formats/wav"
	"github.com/ik5/audtone/utils"
)

// Settings are the user-facing knobs, each nominally in [0, 10].
type Settings struct {
	Volume float64
	Bass   float64
	Mid    float64
	Treble float64
}

func DefaultSettings() Settings {
	return Settings{
		Volume: dsp.DefaultVolume,
		Bass:   dsp.DefaultTone,
		Mid:    dsp.DefaultTone,
		Treble: dsp.DefaultTone,
	}
}

// LoadOptions condition the input before it enters the pipeline.
type LoadOptions struct {
	// Rate resamples the input when positive and different from the file's rate.
	Rate int
	// Mono averages stereo input down to one channel.
	Mono bool
}

// NewRegistry returns a registry with every supported input format keyed by
// file extension.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	return r
}

var defaultRegistry = NewRegistry()

// Load decodes the file at path, picking the decoder by extension, and
// returns its sample rate and samples.
func Load(path string, opts LoadOptions) (int, *audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	return Decode(f, filepath.Ext(path), opts)
}

// Decode is Load for an already open reader. format is a registry key such
// as "wav" or ".mp3".
func Decode(r io.Reader, format string, opts LoadOptions) (int, *audio.Buffer, error) {
	if opts.Rate < 0 {
		return 0, nil, fmt.Errorf("%w: resample rate %d", audio.ErrInvalidConfiguration, opts.Rate)
	}

	dec, ok := defaultRegistry.Get(format)
	if !ok {
		return 0, nil, fmt.Errorf("%w: no decoder for %q", audio.ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = src.Close() }()

	if ch := src.Channels(); ch != 1 && ch != 2 {
		return 0, nil, fmt.Errorf("%w: %d channels", audio.ErrUnsupportedFormat, ch)
	}

	if opts.Mono && src.Channels() == 2 {
		src = audio.NewMonoMixer(src)
	}
	if opts.Rate > 0 && opts.Rate != src.SampleRate() {
		src = audio.NewResampler(src, opts.Rate)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		return 0, nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	return src.SampleRate(), buf, nil
}

// Process runs the volume stage and then the tone stage. The tone
// configuration is validated first, so a bad sample rate or gain fails
// before any work is done. buf is not modified.
func Process(buf *audio.Buffer, sampleRate int, s Settings) (*audio.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("input buffer: %w", err)
	}
	if err := dsp.ValidateTone(sampleRate, s.Bass, s.Mid, s.Treble); err != nil {
		return nil, err
	}

	loud := dsp.ApplyVolume(buf, s.Volume)

	return dsp.ApplyTone(loud, sampleRate, s.Bass, s.Mid, s.Treble)
}

// Save writes buf to path as 16-bit PCM WAV. The file is replaced only when
// the write succeeds.
func Save(path string, sampleRate int, buf *audio.Buffer) error {
	return wav.Encode(path, sampleRate, buf)
}

// Write streams buf as 16-bit PCM WAV to w, which need not be seekable.
func Write(w io.Writer, sampleRate int, buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("input buffer: %w", err)
	}
	return wav.WriteWAV16(w, sampleRate, buf.Channels, utils.QuantizeInt16(buf.Samples))
}
