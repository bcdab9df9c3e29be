// Package key defines keyboard keys, modifiers, and events for global
// hotkeys and key-capture delivery.
//
// Keys are identified by platform virtual keycodes so that a parsed
// specification like "Cmd+Shift+Space" maps directly onto the registration
// surface the platform bridge expects. Character input delivered by the
// event tap additionally carries the translated rune.
package key
