// Package render provides drawing surfaces for the equalizer editor: an
// SVG document builder and a Recorder that keeps the issued commands.
package render
