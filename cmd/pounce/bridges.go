package main

import (
	"github.com/kbaines/pounce/internal/app"
	"github.com/kbaines/pounce/internal/config"
	"github.com/kbaines/pounce/internal/perr"
)

// platformBridges returns the accessibility, hotkey, keyboard and pointer
// bridges for the current platform. This repository carries no native
// bindings; platform builds link a bridge package here (the daemon core
// only sees the interfaces in internal/app). Without one, 'pounce start'
// fails with a clear message while 'pounce preview' remains available.
func platformBridges(_ *config.Config) (app.Bridges, error) {
	return app.Bridges{}, perr.New(perr.CodeInternal,
		"this build has no platform bridge; use 'pounce preview' to exercise the overlay")
}
