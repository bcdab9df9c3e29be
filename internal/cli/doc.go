// Package cli implements the pounce command line: launching the daemon,
// driving a running one over the control socket, and the terminal
// overlay preview.
package cli
