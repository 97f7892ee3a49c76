// Package biquad provides the second-order IIR filter stage used by every
// position of the equalizer.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Coefficients are replaced
// as whole values, so a reader never observes a half-updated set. Magnitude
// queries read only the coefficients and never touch the delay line.
//
// Coefficient design (RBJ bell, Butterworth cut cascades) lives in
// dsp/filter/design.
package biquad
