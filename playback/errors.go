// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"

	"github.com/ik5/audtone/audio"
)

var (
	// ErrDevice is wrapped by every failure to open, start, feed or release
	// the output device.
	ErrDevice = errors.New("audio device error")

	ErrFormatMismatch = fmt.Errorf("%w: output already open with a different format", ErrDevice)

	ErrInvalidBlockSize = fmt.Errorf("%w: block size must be at least 1", audio.ErrInvalidConfiguration)
	ErrInvalidRate      = fmt.Errorf("%w: sample rate must be positive", audio.ErrInvalidConfiguration)

	ErrBusy = errors.New("engine is already streaming")
)
