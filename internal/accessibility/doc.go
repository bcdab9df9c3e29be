// Package accessibility discovers actionable on-screen elements through a
// platform accessibility bridge.
//
// The platform API is consumed through the Client interface so the core
// carries no CGo. Raw bridge handles never escape this package: discovery
// returns owned Element values that the Index reference-counts and releases
// when the active mode ends.
package accessibility
