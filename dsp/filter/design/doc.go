// Package design turns equalizer parameters into biquad coefficients for
// dsp/filter/biquad.
//
// It provides the RBJ cookbook sections used by the equalizer (Peak,
// Lowpass, Highpass) and Butterworth cascades built from them for the
// low-cut and high-cut positions. Cascade sections are returned in
// processing order: section 0 is applied first.
//
// Designers expect pre-validated parameters. A frequency outside
// (0, sampleRate/2), a non-positive Q or an unsupported order is a
// programming error and panics.
package design
