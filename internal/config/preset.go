// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a YAML settings file. Keys left out of the file keep whatever
// value they already had.
type Preset struct {
	Volume    *float64 `yaml:"volume"`
	Bass      *float64 `yaml:"bass"`
	Mid       *float64 `yaml:"mid"`
	Treble    *float64 `yaml:"treble"`
	BlockSize *int     `yaml:"block_size"`
	Rate      *int     `yaml:"rate"`
	Mono      *bool    `yaml:"mono"`
}

func LoadPreset(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPreset, err)
	}
	defer f.Close()

	p, err := ParsePreset(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParsePreset decodes a preset, rejecting unknown keys. An empty document
// is an empty preset.
func ParsePreset(r io.Reader) (*Preset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Preset
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrPreset, err)
	}
	return &p, nil
}

// apply copies the preset into a, skipping the flags named in explicit.
func (p *Preset) apply(a *Args, explicit map[string]bool) {
	setFloat := func(name string, dst *float64, v *float64) {
		if v != nil && !explicit[name] {
			*dst = *v
		}
	}
	setInt := func(name string, dst *int, v *int) {
		if v != nil && !explicit[name] {
			*dst = *v
		}
	}

	setFloat("volume", &a.Volume, p.Volume)
	setFloat("bass", &a.Bass, p.Bass)
	setFloat("mid", &a.Mid, p.Mid)
	setFloat("treble", &a.Treble, p.Treble)
	setInt("block-size", &a.BlockSize, p.BlockSize)
	setInt("rate", &a.Rate, p.Rate)

	if p.Mono != nil && !explicit["mono"] {
		a.Mono = *p.Mono
	}
}
