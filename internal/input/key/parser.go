package key

import (
	"strings"

	"github.com/kbaines/pounce/internal/perr"
)

// Combo is a parsed key combination: a keycode plus a modifier mask.
type Combo struct {
	Code      Code
	Modifiers Modifier
}

// String returns the canonical spec form, e.g. "Cmd+Shift+Space".
func (c Combo) String() string {
	mods := c.Modifiers.String()
	if mods == "" {
		return c.Code.String()
	}
	return mods + "+" + c.Code.String()
}

// ParseSpec parses a hotkey specification like "Cmd+Shift+Space".
//
// The spec is tokenized on "+". Every token except the last must name a
// modifier (case-insensitive); the last token must name a key. Any
// unrecognized token fails the whole parse with a perr.CodeParse error
// naming the offending token.
func ParseSpec(spec string) (Combo, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return Combo{}, perr.New(perr.CodeParse, "empty key spec")
	}

	tokens := strings.Split(trimmed, "+")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
		if tokens[i] == "" {
			return Combo{}, perr.Newf(perr.CodeParse, "empty token in key spec %q", spec)
		}
	}

	var mods Modifier
	for _, tok := range tokens[:len(tokens)-1] {
		mod := ModifierFromName(tok)
		if mod == ModNone {
			return Combo{}, perr.Newf(perr.CodeParse, "unknown modifier %q in key spec %q", tok, spec)
		}
		mods = mods.With(mod)
	}

	last := tokens[len(tokens)-1]
	code, ok := CodeFromName(last)
	if !ok {
		return Combo{}, perr.Newf(perr.CodeParse, "unknown key %q in key spec %q", last, spec)
	}

	return Combo{Code: code, Modifiers: mods}, nil
}
