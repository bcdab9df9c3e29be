package overlay

import (
	"fmt"
	"image/color"

	"github.com/kbaines/pounce/internal/perr"
)

// Style controls how backends draw entries. Colors are "#RRGGBB" hex
// strings so they round-trip through the TOML config unchanged.
type Style struct {
	FontSize        int
	FontFamily      string
	TextColor       string
	MatchedColor    string
	BackgroundColor string
	BorderColor     string
	BorderWidth     int
	Padding         int
	CornerRadius    int
	Opacity         float64
	ShowArrow       bool
}

// DefaultStyle mirrors the stock look: yellow badges, matched prefix
// dimmed toward gray.
func DefaultStyle() Style {
	return Style{
		FontSize:        14,
		FontFamily:      "Menlo",
		TextColor:       "#1C1C1E",
		MatchedColor:    "#8E8E93",
		BackgroundColor: "#FFD60A",
		BorderColor:     "#B8960B",
		BorderWidth:     1,
		Padding:         3,
		CornerRadius:    4,
		Opacity:         0.95,
		ShowArrow:       false,
	}
}

// Validate checks every color and the opacity range.
func (s Style) Validate() error {
	for name, v := range map[string]string{
		"text_color":       s.TextColor,
		"matched_color":    s.MatchedColor,
		"background_color": s.BackgroundColor,
		"border_color":     s.BorderColor,
	} {
		if _, err := ParseColor(v); err != nil {
			return perr.Wrap(perr.CodeInvalidConfig, fmt.Sprintf("overlay style %s", name), err)
		}
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return perr.Newf(perr.CodeInvalidConfig, "overlay opacity %v outside [0,1]", s.Opacity)
	}
	if s.FontSize <= 0 {
		return perr.Newf(perr.CodeInvalidConfig, "overlay font size %d must be positive", s.FontSize)
	}
	return nil
}

// ParseColor parses "#RRGGBB" (or "#RGB") into an RGBA color.
func ParseColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, perr.Newf(perr.CodeParse, "color %q must start with '#'", s)
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, perr.Wrap(perr.CodeParse, fmt.Sprintf("color %q", s), err)
		}
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, perr.Wrap(perr.CodeParse, fmt.Sprintf("color %q", s), err)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, perr.Newf(perr.CodeParse, "color %q must be #RGB or #RRGGBB", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
