// Package core holds small numeric helpers and processor options shared by
// the filter, equalizer and application packages.
package core
