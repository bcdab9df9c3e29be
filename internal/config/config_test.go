package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbaines/pounce/internal/perr"
	"github.com/kbaines/pounce/internal/pointer"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hints.Characters != Default().Hints.Characters {
		t.Fatal("missing file did not yield defaults")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[hints]
characters = "jkl"
action = "right_click"

[scroll]
step = 5

[hotkeys.bindings]
"Cmd+Opt+H" = "hints"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hints.Characters != "jkl" {
		t.Errorf("hints.characters = %q", cfg.Hints.Characters)
	}
	if cfg.Hints.Action != string(pointer.ActionRightClick) {
		t.Errorf("hints.action = %q", cfg.Hints.Action)
	}
	if cfg.Scroll.Step != 5 {
		t.Errorf("scroll.step = %d", cfg.Scroll.Step)
	}
	// Untouched sections keep defaults.
	if cfg.Scroll.StepHalf != Default().Scroll.StepHalf {
		t.Errorf("scroll.step_half = %d", cfg.Scroll.StepHalf)
	}
	if _, ok := cfg.Hotkeys.Bindings["Cmd+Opt+H"]; !ok {
		t.Error("custom binding missing")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad hotkey spec", "[hotkeys.bindings]\n\"Cmd+Nope\" = \"hints\"\n"},
		{"bad hotkey target", "[hotkeys.bindings]\n\"Cmd+H\" = \"teleport\"\n"},
		{"bad alphabet", "[hints]\ncharacters = \"a\"\n"},
		{"bad action", "[hints]\naction = \"fling\"\n"},
		{"bad color", "[hints]\ntext_color = \"blue\"\n"},
		{"bad opacity", "[hints]\nopacity = 2.0\n"},
		{"bad scroll step", "[scroll]\nstep = 0\n"},
		{"bad log level", "[logging]\nlevel = \"loud\"\n"},
		{"script without path", "[script]\nenabled = true\n"},
		{"not toml", "hints = [[[",},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			if _, err := Load(path); !perr.HasCode(err, perr.CodeInvalidConfig) {
				t.Fatalf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestGlobalRoundTrip(t *testing.T) {
	defer ResetGlobal()

	if Global() == nil {
		t.Fatal("Global() before SetGlobal should fall back to defaults")
	}
	cfg := Default()
	cfg.Scroll.Step = 9
	SetGlobal(cfg)
	if Global().Scroll.Step != 9 {
		t.Fatal("SetGlobal did not stick")
	}
	ResetGlobal()
	if Global().Scroll.Step == 9 {
		t.Fatal("ResetGlobal did not clear")
	}
}

func TestConvertersCarryValues(t *testing.T) {
	cfg := Default()
	cfg.General.ExcludedApps = []string{"com.example.banking"}
	cfg.Hints.MaxDepth = 7
	cfg.Hints.MinElementSize = 12
	cfg.Grid.Rows = 3

	if got := cfg.DiscoveryOptions(); got.MaxDepth != 7 || len(got.ExcludedBundleIDs) != 1 {
		t.Fatalf("DiscoveryOptions = %+v", got)
	}
	// The single configured size bounds both axes.
	if got := cfg.DiscoveryOptions().MinSize; got != image.Pt(12, 12) {
		t.Fatalf("MinSize = %v, want (12,12)", got)
	}
	if got := cfg.GridOptions(); got.Rows != 3 {
		t.Fatalf("GridOptions = %+v", got)
	}
	if got := cfg.ModeConfig(); got.ScrollLines != cfg.Scroll.Step {
		t.Fatalf("ModeConfig = %+v", got)
	}
	if err := cfg.OverlayStyle().Validate(); err != nil {
		t.Fatal(err)
	}
}
