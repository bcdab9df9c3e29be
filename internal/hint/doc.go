// Package hint assigns keyboard labels to screen elements and tracks how
// typed input narrows the labeled set.
//
// Labels are drawn from a configurable alphabet and are prefix-free: no
// label is a prefix of another, so typing never selects one element while
// a longer label still needs more keystrokes. When the element count
// exceeds the alphabet size the allocator expands into multi-character
// labels, shortest first.
package hint
