// Package mode is the core state machine. The Controller owns one of four
// states (idle, hints, grid, scroll) and every transition between them:
// activating a mode discovers or partitions targets and renders them,
// keystrokes narrow the target set, and leaving a mode releases element
// handles and clears the overlay. All input is funneled through a single
// serialized queue so transitions never interleave.
package mode
