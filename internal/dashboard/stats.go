package dashboard

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders a stat value without its suffix.
type Formatter func(v float64) string

var grouping = message.NewPrinter(language.English)

// Grouped rounds to an integer with thousands separators: 3400 -> "3,400".
func Grouped(v float64) string {
	return grouping.Sprintf("%d", int64(math.Floor(v+0.5)))
}

// Thousands rounds to whole thousands: 850000 -> "850K".
func Thousands(v float64) string {
	return fmt.Sprintf("%dK", int64(math.Floor(v/1000+0.5)))
}

// Percent keeps two decimals: 99.97 -> "99.97".
func Percent(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Stat is one counter tile.
type Stat struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Suffix string  `json:"suffix"`
	Text   string  `json:"text"`
	format Formatter
}

func newStat(label string, value float64, suffix string, format Formatter) Stat {
	s := Stat{Label: label, Value: value, Suffix: suffix, format: format}
	s.Text = s.Render(value)
	return s
}

// Render formats an intermediate value of the count-up animation.
func (s Stat) Render(v float64) string {
	return s.format(v) + s.Suffix
}

// Board is the full set of dashboard tiles.
type Board struct {
	Headline string `json:"headline"`
	Main     []Stat `json:"main"`
	Bottom   []Stat `json:"bottom"`
}

// Stats returns the dashboard tiles in display order.
func Stats() Board {
	return Board{
		Headline: "What 6+ years of shipping looks like",
		Main: []Stat{
			newStat("PRs Merged", 1200, "+", Grouped),
			newStat("Deployments", 3400, "+", Grouped),
			newStat("Lines Shipped", 850000, "+", Thousands),
			newStat("Uptime", 99.97, "%", Percent),
		},
		Bottom: []Stat{
			newStat("Microservices", 50, "+", Grouped),
			newStat("Code Reviews", 2800, "+", Grouped),
		},
	}
}
