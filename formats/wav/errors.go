// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/audtone/audio"
)

var (
	ErrNotWavFile            = fmt.Errorf("%w: not a WAV file", audio.ErrUnsupportedFormat)
	ErrOnlyPCM16bitSupported = fmt.Errorf("%w: only PCM 16-bit supported", audio.ErrUnsupportedFormat)
	ErrUnsupportedChannels   = fmt.Errorf("%w: only mono and stereo WAV supported", audio.ErrUnsupportedFormat)
	ErrUnsupportedWavChunks  = fmt.Errorf("%w: no WAV data chunk", audio.ErrUnsupportedFormat)
	ErrInvalidSampleRate     = fmt.Errorf("%w: sample rate must be positive", audio.ErrInvalidConfiguration)
)
