// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnsupportedFormat is wrapped by every decoder error that rejects the
	// input's encoding (container, bit depth or channel layout).
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidConfiguration is wrapped by errors for numeric parameters that
	// cannot be honoured, such as a sample rate too low for the tone filters.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	ErrInvalidChannels = fmt.Errorf("%w: only mono and stereo are supported", ErrInvalidConfiguration)
)
