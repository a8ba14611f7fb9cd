package diary

import (
	"strings"

	"github.com/yeremiapane/restaurant-diary/models"
)

// NormalizeColor returns a "#rrggbb" color, or the default color when the
// input is not a 3 or 6 digit hex value.
func NormalizeColor(c string) string {
	c = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c)), "#")
	if len(c) == 3 {
		c = string([]byte{c[0], c[0], c[1], c[1], c[2], c[2]})
	}
	if len(c) != 6 {
		return models.DefaultColor
	}
	for i := 0; i < len(c); i++ {
		ch := c[i]
		if !(ch >= '0' && ch <= '9') && !(ch >= 'a' && ch <= 'f') {
			return models.DefaultColor
		}
	}
	return "#" + c
}
