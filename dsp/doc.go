// SPDX-License-Identifier: EPL-2.0

// Package dsp implements the volume and tone stages of the audtone pipeline.
//
// # Volume
//
// ApplyVolume scales a buffer by 10^(v/10). Settings below 0.1 produce exact
// silence and settings above 25 are treated as 25. The stage does not clip.
//
//	louder := dsp.ApplyVolume(buf, 12)
//
// # Tone
//
// ApplyTone splits the signal into three bands with second-order
// Butterworth filters:
//   - bass: low-pass at 300 Hz
//   - mid: band-pass from 300 Hz to 2000 Hz
//   - treble: high-pass at 4000 Hz
//
// The three gains are normalised so the largest is 10, each band's output
// is weighted by its gain, and the weighted bands are summed and clipped to
// [-1, 1]. Each band filters the original input.
//
//	shaped, err := dsp.ApplyTone(buf, 44100, 5, 5, 5)
//	if errors.Is(err, dsp.ErrSampleRateTooLow) {
//	    // the treble cutoff would sit at or above Nyquist
//	}
//
// # Filters
//
// DesignFilter and Filter are usable on their own:
//
//	c, _ := dsp.DesignFilter(dsp.Lowpass, 2, 300/(44100/2.0))
//	y, _ := dsp.Filter(c, x)
package dsp
