package key

import (
	"fmt"
	"strings"
)

// Code is a platform virtual keycode. Values follow the ANSI layout
// conventions of the macOS virtual keycode table, which is what the
// hotkey and event-tap bridges consume.
type Code uint16

// Letter and digit keycodes (ANSI layout).
const (
	CodeA Code = 0x00
	CodeS Code = 0x01
	CodeD Code = 0x02
	CodeF Code = 0x03
	CodeH Code = 0x04
	CodeG Code = 0x05
	CodeZ Code = 0x06
	CodeX Code = 0x07
	CodeC Code = 0x08
	CodeV Code = 0x09
	CodeB Code = 0x0B
	CodeQ Code = 0x0C
	CodeW Code = 0x0D
	CodeE Code = 0x0E
	CodeR Code = 0x0F
	CodeY Code = 0x10
	CodeT Code = 0x11
	Code1 Code = 0x12
	Code2 Code = 0x13
	Code3 Code = 0x14
	Code4 Code = 0x15
	Code6 Code = 0x16
	Code5 Code = 0x17
	Code9 Code = 0x19
	Code7 Code = 0x1A
	Code8 Code = 0x1C
	Code0 Code = 0x1D
	CodeO Code = 0x1F
	CodeU Code = 0x20
	CodeI Code = 0x22
	CodeP Code = 0x23
	CodeL Code = 0x25
	CodeJ Code = 0x26
	CodeK Code = 0x28
	CodeN Code = 0x2D
	CodeM Code = 0x2E
)

// Punctuation keycodes.
const (
	CodeEqual        Code = 0x18
	CodeMinus        Code = 0x1B
	CodeRightBracket Code = 0x1E
	CodeLeftBracket  Code = 0x21
	CodeQuote        Code = 0x27
	CodeSemicolon    Code = 0x29
	CodeBackslash    Code = 0x2A
	CodeComma        Code = 0x2B
	CodeSlash        Code = 0x2C
	CodePeriod       Code = 0x2F
	CodeGrave        Code = 0x32
)

// Control and navigation keycodes.
const (
	CodeReturn        Code = 0x24
	CodeTab           Code = 0x30
	CodeSpace         Code = 0x31
	CodeBackspace     Code = 0x33
	CodeEscape        Code = 0x35
	CodeForwardDelete Code = 0x75
	CodeHome          Code = 0x73
	CodeEnd           Code = 0x77
	CodePageUp        Code = 0x74
	CodePageDown      Code = 0x79
	CodeLeft          Code = 0x7B
	CodeRight         Code = 0x7C
	CodeDown          Code = 0x7D
	CodeUp            Code = 0x7E
)

// Function-key keycodes.
const (
	CodeF1  Code = 0x7A
	CodeF2  Code = 0x78
	CodeF3  Code = 0x63
	CodeF4  Code = 0x76
	CodeF5  Code = 0x60
	CodeF6  Code = 0x61
	CodeF7  Code = 0x62
	CodeF8  Code = 0x64
	CodeF9  Code = 0x65
	CodeF10 Code = 0x6D
	CodeF11 Code = 0x67
	CodeF12 Code = 0x6F
)

// CodeNone is the zero-like sentinel for "no key". The platform assigns
// 0x00 to the A key, so a distinct out-of-range value is used.
const CodeNone Code = 0xFFFF

// codeNameMap maps key names (lowercase) to keycodes. Single letters and
// digits are handled separately in CodeFromName.
var codeNameMap = map[string]Code{
	"space":     CodeSpace,
	"tab":       CodeTab,
	"return":    CodeReturn,
	"enter":     CodeReturn,
	"escape":    CodeEscape,
	"esc":       CodeEscape,
	"backspace": CodeBackspace,
	"delete":    CodeForwardDelete,
	"del":       CodeForwardDelete,
	"home":      CodeHome,
	"end":       CodeEnd,
	"pageup":    CodePageUp,
	"pagedown":  CodePageDown,
	"left":      CodeLeft,
	"right":     CodeRight,
	"up":        CodeUp,
	"down":      CodeDown,
	"minus":     CodeMinus,
	"equal":     CodeEqual,
	"comma":     CodeComma,
	"period":    CodePeriod,
	"slash":     CodeSlash,
	"semicolon": CodeSemicolon,
	"quote":     CodeQuote,
	"backslash": CodeBackslash,
	"grave":     CodeGrave,
	"f1":        CodeF1,
	"f2":        CodeF2,
	"f3":        CodeF3,
	"f4":        CodeF4,
	"f5":        CodeF5,
	"f6":        CodeF6,
	"f7":        CodeF7,
	"f8":        CodeF8,
	"f9":        CodeF9,
	"f10":       CodeF10,
	"f11":       CodeF11,
	"f12":       CodeF12,
}

// letterCodes maps 'a'..'z' to keycodes.
var letterCodes = [26]Code{
	CodeA, CodeB, CodeC, CodeD, CodeE, CodeF, CodeG, CodeH, CodeI,
	CodeJ, CodeK, CodeL, CodeM, CodeN, CodeO, CodeP, CodeQ, CodeR,
	CodeS, CodeT, CodeU, CodeV, CodeW, CodeX, CodeY, CodeZ,
}

// digitCodes maps '0'..'9' to keycodes.
var digitCodes = [10]Code{
	Code0, Code1, Code2, Code3, Code4, Code5, Code6, Code7, Code8, Code9,
}

// codeDisplayNames maps keycodes back to canonical display names for the
// non-character keys. Built lazily from codeNameMap's preferred spellings.
var codeDisplayNames = map[Code]string{
	CodeSpace: "Space", CodeTab: "Tab", CodeReturn: "Return",
	CodeEscape: "Escape", CodeBackspace: "Backspace",
	CodeForwardDelete: "Delete", CodeHome: "Home", CodeEnd: "End",
	CodePageUp: "PageUp", CodePageDown: "PageDown",
	CodeLeft: "Left", CodeRight: "Right", CodeUp: "Up", CodeDown: "Down",
	CodeMinus: "Minus", CodeEqual: "Equal", CodeComma: "Comma",
	CodePeriod: "Period", CodeSlash: "Slash", CodeSemicolon: "Semicolon",
	CodeQuote: "Quote", CodeBackslash: "Backslash", CodeGrave: "Grave",
	CodeF1: "F1", CodeF2: "F2", CodeF3: "F3", CodeF4: "F4",
	CodeF5: "F5", CodeF6: "F6", CodeF7: "F7", CodeF8: "F8",
	CodeF9: "F9", CodeF10: "F10", CodeF11: "F11", CodeF12: "F12",
}

// letterNames maps letter keycodes back to their lowercase names.
var letterNames = func() map[Code]string {
	m := make(map[Code]string, 26)
	for i, c := range letterCodes {
		m[c] = string(rune('a' + i))
	}
	return m
}()

// digitNames maps digit keycodes back to their names.
var digitNames = func() map[Code]string {
	m := make(map[Code]string, 10)
	for i, c := range digitCodes {
		m[c] = string(rune('0' + i))
	}
	return m
}()

// CodeFromName returns the keycode for a key name (case-insensitive).
// Single letters and digits resolve to their ANSI keycodes. Returns
// (CodeNone, false) for unrecognized names.
func CodeFromName(name string) (Code, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CodeNone, false
	}

	if len(name) == 1 {
		r := rune(name[0])
		switch {
		case r >= 'a' && r <= 'z':
			return letterCodes[r-'a'], true
		case r >= '0' && r <= '9':
			return digitCodes[r-'0'], true
		}
	}

	if c, ok := codeNameMap[name]; ok {
		return c, true
	}
	return CodeNone, false
}

// String returns a canonical display name for the keycode.
func (c Code) String() string {
	if name, ok := letterNames[c]; ok {
		return strings.ToUpper(name)
	}
	if name, ok := digitNames[c]; ok {
		return name
	}
	if name, ok := codeDisplayNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(0x%02X)", uint16(c))
}

// IsFunctionKey reports whether the keycode is one of F1-F12.
func (c Code) IsFunctionKey() bool {
	switch c {
	case CodeF1, CodeF2, CodeF3, CodeF4, CodeF5, CodeF6,
		CodeF7, CodeF8, CodeF9, CodeF10, CodeF11, CodeF12:
		return true
	}
	return false
}

// IsNavigationKey reports whether the keycode is an arrow or paging key.
func (c Code) IsNavigationKey() bool {
	switch c {
	case CodeLeft, CodeRight, CodeUp, CodeDown,
		CodeHome, CodeEnd, CodePageUp, CodePageDown:
		return true
	}
	return false
}
