package locale

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
)

type dayPeriod struct {
	am, pm string
	prefix bool
}

var (
	periodTags = []language.Tag{
		language.English,
		language.Spanish,
		language.Portuguese,
		language.French,
		language.German,
		language.Hindi,
		language.Japanese,
		language.Korean,
		language.Chinese,
	}
	periods = []dayPeriod{
		{am: "AM", pm: "PM"},
		{am: "a. m.", pm: "p. m."},
		{am: "AM", pm: "PM"},
		{am: "AM", pm: "PM"},
		{am: "AM", pm: "PM"},
		{am: "am", pm: "pm"},
		{am: "午前", pm: "午後", prefix: true},
		{am: "오전", pm: "오후", prefix: true},
		{am: "上午", pm: "下午", prefix: true},
	}
	periodMatcher = language.NewMatcher(periodTags)
)

// dayPeriodFor picks AM/PM markers for an Accept-Language style string.
// Unknown or unparsable input gets the English markers.
func dayPeriodFor(displayLanguage string) dayPeriod {
	tags, _, err := language.ParseAcceptLanguage(displayLanguage)
	if err != nil || len(tags) == 0 {
		return periods[0]
	}
	_, idx, conf := periodMatcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(periods) {
		return periods[0]
	}
	return periods[idx]
}

// Clock renders snapshots as 12-hour wall-clock text in their timezone.
type Clock struct {
	now    func() time.Time
	period dayPeriod

	mu    sync.Mutex
	zones map[string]*time.Location
}

// NewClock returns a Clock using displayLanguage for its AM/PM markers.
// now defaults to time.Now.
func NewClock(displayLanguage string, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		now:    now,
		period: dayPeriodFor(displayLanguage),
		zones:  make(map[string]*time.Location),
	}
}

// Render formats the current instant for snap.
func (c *Clock) Render(snap Snapshot) Display {
	t := c.now().In(c.location(snap.Timezone))
	return Display{
		City:                 snap.City,
		FormattedTime:        c.formatTime(t),
		TimezoneAbbreviation: t.Format("MST"),
		Temperature:          FormatTemperature(snap.TemperatureC),
	}
}

func (c *Clock) formatTime(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	marker := c.period.am
	if t.Hour() >= 12 {
		marker = c.period.pm
	}
	clock := fmt.Sprintf("%02d:%02d", hour, t.Minute())
	if c.period.prefix {
		return marker + clock
	}
	return clock + " " + marker
}

func (c *Clock) location(timezone string) *time.Location {
	c.mu.Lock()
	defer c.mu.Unlock()
	if loc, ok := c.zones[timezone]; ok {
		return loc
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.Local
	}
	c.zones[timezone] = loc
	return loc
}
