// Package app assembles the daemon: configuration, logging, the mode
// controller and its collaborators, global hotkeys, the control socket,
// and optional metrics and scripting.
package app
