package config

import "sync"

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// SetGlobal installs the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// Global returns the installed configuration, or the defaults when none
// has been set.
func Global() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalCfg == nil {
		return Default()
	}
	return globalCfg
}

// ResetGlobal clears the installed configuration. Tests use this.
func ResetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = nil
}
