package locale

import (
	"fmt"
	"math"
	"strings"
)

// Display is what the location pills render.
type Display struct {
	City                 string `json:"city"`
	FormattedTime        string `json:"formattedTime"`
	TimezoneAbbreviation string `json:"timezoneAbbreviation"`
	Temperature          string `json:"temperature"`
}

// FormatTemperature rounds half up to a whole degree, e.g. 22.5 -> "23°C".
// A nil reading renders as the empty string.
func FormatTemperature(celsius *float64) string {
	if celsius == nil || math.IsNaN(*celsius) || math.IsInf(*celsius, 0) {
		return ""
	}
	rounded := math.Floor(*celsius + 0.5)
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return fmt.Sprintf("%.0f°C", rounded)
}

// String renders the pill as one line, e.g. "Dallas, Texas · 03:04 PM CDT · 23°C".
func (d Display) String() string {
	parts := []string{d.City, strings.TrimSpace(d.FormattedTime + " " + d.TimezoneAbbreviation)}
	if d.Temperature != "" {
		parts = append(parts, d.Temperature)
	}
	return strings.Join(parts, " · ")
}
