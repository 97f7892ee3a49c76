// Package plugin hosts the equalizer the way an audio plugin would: a
// shared parameter store, an audio-side Processor and a UI-side Editor
// that redraws the response curve when parameters change.
//
// The Processor and the Editor each own an eq.Chain. They never share
// filter state; both rebuild from the same ParamStore snapshot.
package plugin
