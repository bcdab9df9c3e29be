package config

import (
	"image"
	"time"

	"github.com/kbaines/pounce/internal/accessibility"
	"github.com/kbaines/pounce/internal/grid"
	"github.com/kbaines/pounce/internal/hint"
	"github.com/kbaines/pounce/internal/mode"
	"github.com/kbaines/pounce/internal/overlay"
	"github.com/kbaines/pounce/internal/pointer"
)

// Config is the full application configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Hotkeys HotkeysConfig `toml:"hotkeys"`
	Hints   HintsConfig   `toml:"hints"`
	Grid    GridConfig    `toml:"grid"`
	Scroll  ScrollConfig  `toml:"scroll"`
	Pointer PointerConfig `toml:"pointer"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
	IPC     IPCConfig     `toml:"ipc"`
	Script  ScriptConfig  `toml:"script"`
}

// GeneralConfig holds cross-mode behavior.
type GeneralConfig struct {
	// ExcludedApps lists bundle identifiers the modes refuse to act in.
	ExcludedApps []string `toml:"excluded_apps"`
	// ShowIndicator draws the active-mode badge.
	ShowIndicator bool `toml:"show_indicator"`
	// HideFromCapture keeps the overlay out of screen recordings.
	HideFromCapture bool `toml:"hide_from_capture"`
}

// HotkeysConfig maps key specs like "Cmd+Shift+Space" to mode names.
type HotkeysConfig struct {
	Bindings map[string]string `toml:"bindings"`
}

// HintsConfig tunes hint discovery and appearance.
type HintsConfig struct {
	Characters string `toml:"characters"`
	// Action runs on selection: left_click, right_click, middle_click,
	// double_click or move.
	Action string `toml:"action"`

	MaxDepth          int      `toml:"max_depth"`
	MinElementSize    int      `toml:"min_element_size"`
	ExtraRoles        []string `toml:"extra_roles"`
	ExcludeRoles      []string `toml:"exclude_roles"`
	MinVisibleSamples int      `toml:"min_visible_samples"`

	FontSize        int     `toml:"font_size"`
	FontFamily      string  `toml:"font_family"`
	TextColor       string  `toml:"text_color"`
	MatchedColor    string  `toml:"matched_color"`
	BackgroundColor string  `toml:"background_color"`
	BorderColor     string  `toml:"border_color"`
	BorderWidth     int     `toml:"border_width"`
	Padding         int     `toml:"padding"`
	CornerRadius    int     `toml:"corner_radius"`
	Opacity         float64 `toml:"opacity"`
	ShowArrow       bool    `toml:"show_arrow"`
}

// GridConfig tunes the recursive grid.
type GridConfig struct {
	Rows          int    `toml:"rows"`
	Cols          int    `toml:"cols"`
	Characters    string `toml:"characters"`
	Action        string `toml:"action"`
	MinCellWidth  int    `toml:"min_cell_width"`
	MinCellHeight int    `toml:"min_cell_height"`
	MaxDepth      int    `toml:"max_depth"`
}

// ScrollConfig sets wheel step sizes in lines.
type ScrollConfig struct {
	Step     int `toml:"step"`
	StepHalf int `toml:"step_half"`
	StepFull int `toml:"step_full"`
}

// PointerConfig tunes event synthesis timing.
type PointerConfig struct {
	SmoothMove    bool `toml:"smooth_move"`
	RestoreCursor bool `toml:"restore_cursor"`
	MoveDuration  int  `toml:"move_duration_ms"`
	ClickGap      int  `toml:"click_gap_ms"`
	SettleDelay   int  `toml:"settle_delay_ms"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives logs in addition to stderr; empty disables it.
	File string `toml:"file"`
}

// MetricsConfig exposes Prometheus metrics over HTTP when enabled.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

// IPCConfig locates the control socket.
type IPCConfig struct {
	SocketPath string `toml:"socket_path"`
}

// ScriptConfig points at the Lua hook file run on mode transitions and
// selections.
type ScriptConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			ExcludedApps:  []string{},
			ShowIndicator: true,
		},
		Hotkeys: HotkeysConfig{
			Bindings: map[string]string{
				"Cmd+Shift+Space": "hints",
				"Cmd+Shift+G":     "grid",
				"Cmd+Shift+J":     "scroll",
			},
		},
		Hints: HintsConfig{
			Characters:        hint.DefaultAlphabet,
			Action:            string(pointer.ActionLeftClick),
			MaxDepth:          accessibility.DefaultMaxDepth,
			MinElementSize:    8,
			MinVisibleSamples: accessibility.DefaultMinVisibleSamples,
			FontSize:          14,
			FontFamily:        "Menlo",
			TextColor:         "#1C1C1E",
			MatchedColor:      "#8E8E93",
			BackgroundColor:   "#FFD60A",
			BorderColor:       "#B8960B",
			BorderWidth:       1,
			Padding:           3,
			CornerRadius:      4,
			Opacity:           0.95,
		},
		Grid: GridConfig{
			Rows:          grid.DefaultRows,
			Cols:          grid.DefaultCols,
			Characters:    hint.DefaultAlphabet,
			Action:        string(pointer.ActionLeftClick),
			MinCellWidth:  grid.DefaultMinCellWidth,
			MinCellHeight: grid.DefaultMinCellHeight,
			MaxDepth:      grid.DefaultMaxDepth,
		},
		Scroll: ScrollConfig{
			Step:     mode.DefaultScrollLines,
			StepHalf: mode.DefaultScrollHalfPage,
			StepFull: mode.DefaultScrollFullPage,
		},
		Pointer: PointerConfig{},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Listen: "127.0.0.1:9753"},
		IPC:     IPCConfig{},
		Script:  ScriptConfig{},
	}
}

// OverlayStyle converts the hint appearance settings.
func (c *Config) OverlayStyle() overlay.Style {
	return overlay.Style{
		FontSize:        c.Hints.FontSize,
		FontFamily:      c.Hints.FontFamily,
		TextColor:       c.Hints.TextColor,
		MatchedColor:    c.Hints.MatchedColor,
		BackgroundColor: c.Hints.BackgroundColor,
		BorderColor:     c.Hints.BorderColor,
		BorderWidth:     c.Hints.BorderWidth,
		Padding:         c.Hints.Padding,
		CornerRadius:    c.Hints.CornerRadius,
		Opacity:         c.Hints.Opacity,
		ShowArrow:       c.Hints.ShowArrow,
	}
}

// DiscoveryOptions converts the hint discovery settings.
func (c *Config) DiscoveryOptions() accessibility.DiscoveryOptions {
	return accessibility.DiscoveryOptions{
		MaxDepth:          c.Hints.MaxDepth,
		MinSize:           image.Pt(c.Hints.MinElementSize, c.Hints.MinElementSize),
		ExtraRoles:        c.Hints.ExtraRoles,
		ExcludeRoles:      c.Hints.ExcludeRoles,
		ExcludedBundleIDs: c.General.ExcludedApps,
		MinVisibleSamples: c.Hints.MinVisibleSamples,
	}
}

// GridOptions converts the grid settings.
func (c *Config) GridOptions() grid.Options {
	return grid.Options{
		Rows:          c.Grid.Rows,
		Cols:          c.Grid.Cols,
		MinCellWidth:  c.Grid.MinCellWidth,
		MinCellHeight: c.Grid.MinCellHeight,
		MaxDepth:      c.Grid.MaxDepth,
	}
}

// PointerOptions converts the timing settings.
func (c *Config) PointerOptions() pointer.Options {
	return pointer.Options{
		SmoothMove:    c.Pointer.SmoothMove,
		RestoreCursor: c.Pointer.RestoreCursor,
		MoveDuration:  time.Duration(c.Pointer.MoveDuration) * time.Millisecond,
		ClickGap:      time.Duration(c.Pointer.ClickGap) * time.Millisecond,
		SettleDelay:   time.Duration(c.Pointer.SettleDelay) * time.Millisecond,
	}
}

// ModeConfig converts the controller settings.
func (c *Config) ModeConfig() mode.Config {
	return mode.Config{
		HintAction:     pointer.Action(c.Hints.Action),
		GridAction:     pointer.Action(c.Grid.Action),
		ScrollLines:    c.Scroll.Step,
		ScrollHalfPage: c.Scroll.StepHalf,
		ScrollFullPage: c.Scroll.StepFull,
		ShowIndicator:  c.General.ShowIndicator,
	}
}
