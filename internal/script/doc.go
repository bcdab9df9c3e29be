// Package script runs user Lua hooks. A single hook file may define
// on_mode_change(from, to) and on_selection(label, x, y); pounce calls
// them on the corresponding events. Hook errors are logged, never fatal.
package script
