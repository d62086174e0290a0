// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"

	"github.com/ik5/audtone/audio"
)

// ErrNotMP3File wraps any failure of go-mp3 to find a valid frame header.
var ErrNotMP3File = fmt.Errorf("%w: not an MP3 stream", audio.ErrUnsupportedFormat)
