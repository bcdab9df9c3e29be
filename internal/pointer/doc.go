// Package pointer synthesizes mouse activity. The Actuator layers timing,
// smooth movement, and cursor save/restore on top of a Synthesizer, the
// thin bridge that actually posts events to the window system.
package pointer
