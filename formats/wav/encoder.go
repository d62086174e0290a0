// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audtone/audio"
	"github.com/ik5/audtone/utils"
)

const outputPerm = 0o644

// EncodeTo writes buf as 16-bit PCM WAV through go-audio's encoder. Samples
// are clipped to [-1, 1] before quantization.
func EncodeTo(ws io.WriteSeeker, sampleRate int, buf *audio.Buffer) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w", err)
	}

	data := make([]int, len(buf.Samples))
	for i, v := range buf.Samples {
		data[i] = int(utils.Float64ToInt16(v))
	}

	enc := wav.NewEncoder(ws, sampleRate, bitDepth, buf.Channels, formatPCM)
	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: buf.Channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	// an empty Write still emits the RIFF, fmt and data headers
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}

// Encode writes buf to path. The data goes to a temporary file in the same
// directory which is renamed over path once complete, so path is either the
// previous file or the full new one.
func Encode(path string, sampleRate int, buf *audio.Buffer) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = EncodeTo(tmp, sampleRate, buf); err != nil {
		return err
	}
	if err = tmp.Chmod(outputPerm); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
