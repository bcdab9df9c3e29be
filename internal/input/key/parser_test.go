package key

import (
	"testing"

	"github.com/kbaines/pounce/internal/perr"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		spec     string
		wantCode Code
		wantMods Modifier
	}{
		{"Cmd+Shift+Space", CodeSpace, ModCmd | ModShift},
		{"cmd+shift+space", CodeSpace, ModCmd | ModShift},
		{"Ctrl+Opt+G", CodeG, ModCtrl | ModOpt},
		{"Alt+F", CodeF, ModOpt},
		{"Meta+Return", CodeReturn, ModCmd},
		{"Escape", CodeEscape, ModNone},
		{"j", CodeJ, ModNone},
		{"Cmd+1", Code1, ModCmd},
		{"Shift+F5", CodeF5, ModShift},
		{" Cmd + Space ", CodeSpace, ModCmd},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			combo, err := ParseSpec(tt.spec)
			if err != nil {
				t.Fatalf("ParseSpec(%q) error: %v", tt.spec, err)
			}
			if combo.Code != tt.wantCode {
				t.Errorf("code = %v, want %v", combo.Code, tt.wantCode)
			}
			if combo.Modifiers != tt.wantMods {
				t.Errorf("modifiers = %v, want %v", combo.Modifiers, tt.wantMods)
			}
		})
	}
}

func TestParseSpecErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"Cmd+Unknown",
		"Bogus+Space",
		"Cmd++Space",
		"Cmd+",
		"+Space",
	}

	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseSpec(spec)
			if err == nil {
				t.Fatalf("ParseSpec(%q) should fail", spec)
			}
			if !perr.IsParse(err) {
				t.Errorf("error code = %v, want %v", perr.CodeOf(err), perr.CodeParse)
			}
		})
	}
}

func TestParseSpecModifierAsKey(t *testing.T) {
	// A modifier name in key position is not a key.
	if _, err := ParseSpec("Cmd+Shift"); err == nil {
		t.Error("modifier name as final token should fail")
	}
}

func TestComboString(t *testing.T) {
	combo := Combo{Code: CodeSpace, Modifiers: ModCmd | ModShift}
	if got := combo.String(); got != "Cmd+Shift+Space" {
		t.Errorf("String() = %q, want %q", got, "Cmd+Shift+Space")
	}

	bare := Combo{Code: CodeJ}
	if got := bare.String(); got != "J" {
		t.Errorf("String() = %q, want %q", got, "J")
	}
}

func TestParseSpecRoundTrip(t *testing.T) {
	specs := []string{"Cmd+Shift+Space", "Ctrl+Opt+Shift+F2", "Escape"}
	for _, spec := range specs {
		combo, err := ParseSpec(spec)
		if err != nil {
			t.Fatalf("ParseSpec(%q): %v", spec, err)
		}
		again, err := ParseSpec(combo.String())
		if err != nil {
			t.Fatalf("ParseSpec(%q): %v", combo.String(), err)
		}
		if again != combo {
			t.Errorf("round trip %q -> %v -> %v", spec, combo, again)
		}
	}
}
