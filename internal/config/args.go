// SPDX-License-Identifier: EPL-2.0

// Package config turns the command line and an optional YAML preset into
// validated run settings. Precedence is defaults, then the preset, then
// flags given explicitly.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audtone"
	"github.com/ik5/audtone/dsp"
	"github.com/ik5/audtone/playback"
)

// StdoutPath as the output path writes the WAV stream to standard output.
const StdoutPath = "-"

type Args struct {
	Input string
	// Out is empty for playback.
	Out string

	Volume float64
	Bass   float64
	Mid    float64
	Treble float64

	BlockSize int
	Rate      int
	Mono      bool

	ConfigPath string
	Verbose    bool
}

func Defaults() Args {
	return Args{
		Volume:    dsp.DefaultVolume,
		Bass:      dsp.DefaultTone,
		Mid:       dsp.DefaultTone,
		Treble:    dsp.DefaultTone,
		BlockSize: playback.DefaultBlockSize,
	}
}

func (a *Args) Settings() audtone.Settings {
	return audtone.Settings{
		Volume: a.Volume,
		Bass:   a.Bass,
		Mid:    a.Mid,
		Treble: a.Treble,
	}
}

func (a *Args) LoadOptions() audtone.LoadOptions {
	return audtone.LoadOptions{Rate: a.Rate, Mono: a.Mono}
}

// Playing reports whether the run streams to the device instead of writing.
func (a *Args) Playing() bool { return a.Out == "" }

func newFlagSet(name string, a *Args, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "usage: %s [flags] <input>\n", name)
		fs.PrintDefaults()
	}

	fs.StringVar(&a.Out, "out", a.Out, `write WAV to this path instead of playing ("-" for stdout)`)
	fs.Float64Var(&a.Volume, "volume", a.Volume, "volume in 3dB units (9 = 0dB, 0 = no output)")
	fs.Float64Var(&a.Bass, "bass", a.Bass, "bass emphasis in 3dB units (5 = 0dB)")
	fs.Float64Var(&a.Mid, "mid", a.Mid, "mid-range emphasis in 3dB units (5 = 0dB)")
	fs.Float64Var(&a.Treble, "treble", a.Treble, "treble emphasis in 3dB units (5 = 0dB)")
	fs.IntVar(&a.BlockSize, "block-size", a.BlockSize, "frames per device write")
	fs.IntVar(&a.Rate, "rate", a.Rate, "resample the input to this rate before processing")
	fs.BoolVar(&a.Mono, "mono", a.Mono, "downmix stereo input to mono")
	fs.StringVar(&a.ConfigPath, "config", a.ConfigPath, "YAML preset file")
	fs.BoolVar(&a.Verbose, "v", a.Verbose, "verbose output")

	return fs
}

// Parse reads args (without the program name). Flags may come before or
// after the input path. Help and flag errors are printed to output.
// A -h request returns flag.ErrHelp.
func Parse(name string, args []string, output io.Writer) (*Args, error) {
	a := Defaults()
	fs := newFlagSet(name, &a, output)

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}

		consumed := len(rest) - fs.NArg()
		terminated := consumed > 0 && rest[consumed-1] == "--"

		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		if terminated {
			positional = append(positional, rest...)
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	switch len(positional) {
	case 0:
		return nil, fmt.Errorf("%w: missing input file", ErrUsage)
	case 1:
		a.Input = positional[0]
	default:
		return nil, fmt.Errorf("%w: expected one input file, got %d", ErrUsage, len(positional))
	}

	if a.ConfigPath != "" {
		p, err := LoadPreset(a.ConfigPath)
		if err != nil {
			return nil, err
		}

		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		p.apply(&a, explicit)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate rejects negative or non-finite levels and block sizes below one.
func (a *Args) Validate() error {
	levels := []struct {
		name string
		v    float64
	}{
		{"volume", a.Volume},
		{"bass", a.Bass},
		{"mid", a.Mid},
		{"treble", a.Treble},
	}
	for _, l := range levels {
		if l.v < 0 || math.IsNaN(l.v) || math.IsInf(l.v, 0) {
			return fmt.Errorf("%w: %s %v", ErrInvalidValue, l.name, l.v)
		}
	}

	if a.BlockSize < 1 {
		return fmt.Errorf("%w: block size %d", ErrInvalidValue, a.BlockSize)
	}
	if a.Rate < 0 {
		return fmt.Errorf("%w: rate %d", ErrInvalidValue, a.Rate)
	}
	return nil
}
