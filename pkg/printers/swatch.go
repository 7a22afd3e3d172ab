package printers

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NormalizeColor returns code as lower case "#rrggbb", or fallback when code
// is not a #rgb or #rrggbb hex color.
func NormalizeColor(code, fallback string) string {
	c, err := colorful.Hex(strings.TrimSpace(code))
	if err != nil {
		if code == fallback {
			return fallback
		}
		return NormalizeColor(fallback, fallback)
	}
	return c.Hex()
}

// Contrast picks black or white text for the background color code.
func Contrast(code string) string {
	c, err := colorful.Hex(code)
	if err != nil {
		return "#000000"
	}
	_, _, l := c.Hcl()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// swatch paints text on the mood color.
func (pp *PrettyPrint) swatch(text, code string) string {
	bg := NormalizeColor(code, pp.neutral())
	return pp.Profile.String(text).
		Background(pp.Profile.Color(bg)).
		Foreground(pp.Profile.Color(Contrast(bg))).
		String()
}
