// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"errors"
	"fmt"

	"github.com/ik5/audtone/audio"
)

var (
	ErrSampleRateTooLow    = fmt.Errorf("%w: sample rate too low for the tone filters", audio.ErrInvalidConfiguration)
	ErrInvalidGain         = fmt.Errorf("%w: tone gains must be finite and non-negative", audio.ErrInvalidConfiguration)
	ErrInvalidCutoff       = fmt.Errorf("%w: invalid filter cutoff", audio.ErrInvalidConfiguration)
	ErrInvalidOrder        = fmt.Errorf("%w: filter order must be positive", audio.ErrInvalidConfiguration)
	ErrInvalidCoefficients = errors.New("filter coefficients need a non-zero a[0]")
)
