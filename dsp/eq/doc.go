// Package eq models the signal path of a three-position parametric
// equalizer and computes its magnitude response for display.
//
// A [Chain] runs LowCut → Peak → HighCut. The cut positions are
// [Cascade] values holding four biquad stages of which the first one to
// four are active, selected by a [Slope]. Each position can be bypassed.
//
// Processing and display use separate Chain instances fed from the same
// [Params] snapshot: the audio goroutine owns one, the UI goroutine owns
// the other. No locks are taken on the processing path.
//
// [SampleResponse] and [ResponseCurve] evaluate a chain at log-spaced
// frequencies between 20 Hz and 20 kHz and map the dB values onto a
// plotting area with a [Mapper].
package eq
