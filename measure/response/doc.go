// Package response measures the magnitude response of an equalizer chain
// by running an impulse through it and transforming the result with an
// FFT, and compares that measurement against the closed-form response.
//
// # Usage
//
//	rep, err := response.CompareAnalytic(params, 48000, 16384)
//	fmt.Printf("max deviation %.3f dB at %.0f Hz\n", rep.MaxDeviationDB, rep.WorstFreqHz)
package response
