// Package config loads, validates, and watches the TOML configuration
// file. A missing file yields the defaults; a present file is merged over
// them. Validation happens at load time so the rest of the program never
// sees an unparseable hotkey spec or color.
package config
