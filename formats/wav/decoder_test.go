// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audtone/audio"
)

type chunk struct {
	id   string
	data []byte
}

// buildRIFF assembles a RIFF container of the given form type and chunks.
func buildRIFF(form string, chunks ...chunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString(form)
	for _, c := range chunks {
		body.WriteString(c.id)
		binary.Write(body, binary.LittleEndian, uint32(len(c.data)))
		body.Write(c.data)
		if len(c.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func fmtChunk(format, channels, sampleRate, bitsPerSample int) chunk {
	blockAlign := channels * bitsPerSample / 8
	data := new(bytes.Buffer)
	binary.Write(data, binary.LittleEndian, uint16(format))
	binary.Write(data, binary.LittleEndian, uint16(channels))
	binary.Write(data, binary.LittleEndian, uint32(sampleRate))
	binary.Write(data, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(data, binary.LittleEndian, uint16(blockAlign))
	binary.Write(data, binary.LittleEndian, uint16(bitsPerSample))
	return chunk{id: "fmt ", data: data.Bytes()}
}

func dataChunk(samples []int16) chunk {
	data := new(bytes.Buffer)
	binary.Write(data, binary.LittleEndian, samples)
	return chunk{id: "data", data: data.Bytes()}
}

// createWAVFile builds a canonical PCM WAV with interleaved 16-bit samples.
func createWAVFile(sampleRate, channels int, samples []int16) []byte {
	return buildRIFF("WAVE", fmtChunk(formatPCM, channels, sampleRate, 16), dataChunk(samples))
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(8000, 1, []int16{0, 100, 200, -100, -200, 0})

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}
	if src.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", src.Channels())
	}
}

func TestDecoder_StereoWAVFile(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(44100, 2, []int16{100, 200, 300, 400, 500, 600})

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", buf.Frames())
	}

	left := buf.Channel(0)
	if left[1] != 300.0/32768.0 {
		t.Errorf("left[1] = %v, want %v", left[1], 300.0/32768.0)
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	samples := []int16{1, 2, 3, 4}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not a wav file", []byte("NOT A WAV FILE DATA"), ErrNotWavFile},
		{"truncated header", []byte("RIFF"), ErrNotWavFile},
		{"wrong form type", buildRIFF("NOPE", fmtChunk(formatPCM, 1, 8000, 16), dataChunk(samples)), ErrNotWavFile},
		{"8-bit", buildRIFF("WAVE", fmtChunk(formatPCM, 1, 8000, 8), dataChunk(samples)), ErrOnlyPCM16bitSupported},
		{"24-bit", buildRIFF("WAVE", fmtChunk(formatPCM, 1, 8000, 24), dataChunk(samples)), ErrOnlyPCM16bitSupported},
		{"32-bit float", buildRIFF("WAVE", fmtChunk(3, 1, 8000, 32), dataChunk(samples)), ErrOnlyPCM16bitSupported},
		{"16-bit a-law tag", buildRIFF("WAVE", fmtChunk(6, 1, 8000, 16), dataChunk(samples)), ErrOnlyPCM16bitSupported},
		{"four channels", buildRIFF("WAVE", fmtChunk(formatPCM, 4, 8000, 16), dataChunk(samples)), ErrUnsupportedChannels},
		{"missing data chunk", buildRIFF("WAVE", fmtChunk(formatPCM, 1, 8000, 16)), ErrUnsupportedWavChunks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decoder := Decoder{}
			_, err := decoder.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, audio.ErrUnsupportedFormat) {
				t.Errorf("Decode() error = %v, want it to wrap ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestDecoder_WithUnknownChunks(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, -1000}
	wavData := buildRIFF("WAVE",
		fmtChunk(formatPCM, 1, 8000, 16),
		chunk{id: "junk", data: []byte{1, 2, 3, 4, 5, 6}},
		dataChunk(samples),
	)

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(buf.Samples) != 2 || buf.Samples[0] != 1000.0/32768.0 {
		t.Errorf("Samples = %v, want [%v %v]", buf.Samples, 1000.0/32768.0, -1000.0/32768.0)
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(16000, 1, []int16{1, 2, 3})

	decoder := Decoder{}
	// io.MultiReader hides the Seek method of the bytes.Reader
	src, err := decoder.Decode(io.MultiReader(bytes.NewReader(wavData)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(buf.Samples) != 3 {
		t.Errorf("len(Samples) = %d, want 3", len(buf.Samples))
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 11025, 22050, 44100, 48000, 96000} {
		decoder := Decoder{}
		src, err := decoder.Decode(bytes.NewReader(createWAVFile(rate, 1, []int16{0})))
		if err != nil {
			t.Fatalf("Decode(%d Hz) error = %v", rate, err)
		}
		if src.SampleRate() != rate {
			t.Errorf("SampleRate() = %d, want %d", src.SampleRate(), rate)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 16384, -16384, 32767, -32768}
	want := []float64{0, 0.5, -0.5, 32767.0 / 32768.0, -1}

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(createWAVFile(8000, 1, samples)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float64, 10)
	n, err := src.ReadSamples(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(want) {
		t.Fatalf("ReadSamples() n = %d, want %d", n, len(want))
	}

	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(createWAVFile(8000, 1, []int16{100, 200, 300})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	n, err := src.ReadSamples(nil)
	if err != nil {
		t.Errorf("ReadSamples() with empty buffer error = %v, want nil", err)
	}
	if n != 0 {
		t.Errorf("ReadSamples() n = %d, want 0", n)
	}
}

func TestSource_ReadSamples_FrameAligned(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(createWAVFile(8000, 2, []int16{1, 2, 3, 4, 5, 6})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float64, 5)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4 (two whole frames)", n)
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(createWAVFile(8000, 1, []int16{100, 200, 300})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dst := make([]float64, 10)
	total := 0
	for range 5 {
		n, err := src.ReadSamples(dst)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != 3 {
		t.Errorf("total samples = %d, want 3", total)
	}

	n, err := src.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_EmptyData(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(createWAVFile(8000, 1, nil)))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", buf.Frames())
	}
}

func TestSource_BufSizeAndClose(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	src, err := decoder.Decode(bytes.NewReader(createWAVFile(8000, 1, []int16{1, 2, 3})))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.BufSize() != 4096 {
		t.Errorf("BufSize() before read = %d, want 4096", src.BufSize())
	}

	if _, err := src.ReadSamples(make([]float64, 128)); err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if src.BufSize() != 128 {
		t.Errorf("BufSize() after read = %d, want 128", src.BufSize())
	}

	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	wavData := createWAVFile(44100, 2, make([]int16, 44100*2))

	b.ReportAllocs()
	for b.Loop() {
		decoder := Decoder{}
		if _, err := decoder.Decode(bytes.NewReader(wavData)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	wavData := createWAVFile(44100, 2, make([]int16, 44100*2))
	dst := make([]float64, 4096)

	b.ReportAllocs()
	for b.Loop() {
		decoder := Decoder{}
		src, _ := decoder.Decode(bytes.NewReader(wavData))
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
