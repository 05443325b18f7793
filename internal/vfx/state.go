// Package vfx holds the post-effect channel state shared between the
// direction engine and the host's render layer.
package vfx

// Channel is one post-effect: an on/off flag plus a magnitude in the
// channel's own unit scale.
type Channel struct {
	Enabled   bool
	Magnitude float64
}

// State carries the five independent channels. It is replaced wholesale
// through the execution context's setter — never mutated in place — so a
// host can diff transitions.
type State struct {
	Bloom               Channel
	ChromaticAberration Channel
	Vignette            Channel
	Noise               Channel
	Glitch              Channel
}
