// Package ipc implements the control channel between the pounce CLI and a
// running daemon: newline-delimited JSON over a unix socket, one command
// per connection. Commands carry a correlation ID the server echoes back,
// and a protocol version checked on both ends.
package ipc
