// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/ik5/audtone/audio"
)

var (
	// ErrUsage marks command line mistakes: unknown flags, bad flag values
	// and a missing or extra input path.
	ErrUsage = errors.New("usage")

	ErrInvalidValue = fmt.Errorf("%w: invalid setting", audio.ErrInvalidConfiguration)
	ErrPreset       = fmt.Errorf("%w: preset", audio.ErrInvalidConfiguration)
)
