package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Render(t *testing.T) {
	now := time.Date(2024, 1, 15, 21, 4, 5, 0, time.UTC)
	clock := NewClock("en-US", fixedNow(now))

	d := clock.Render(Snapshot{City: "Dallas, Texas", Timezone: "America/Chicago", TemperatureC: ptr(22.5)})

	assert.Equal(t, Display{
		City:                 "Dallas, Texas",
		FormattedTime:        "03:04 PM",
		TimezoneAbbreviation: "CST",
		Temperature:          "23°C",
	}, d)
}

func TestClock_MidnightAndNoon(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12:30 AM"},
		{9, "09:30 AM"},
		{12, "12:30 PM"},
		{23, "11:30 PM"},
	}
	for _, tt := range tests {
		clock := NewClock("en", fixedNow(time.Date(2024, 6, 1, tt.hour, 30, 0, 0, time.UTC)))
		assert.Equal(t, tt.want, clock.Render(Snapshot{City: "UTC", Timezone: "UTC"}).FormattedTime)
	}
}

func TestClock_DisplayLanguageMarkers(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 4, 0, 0, time.UTC)
	snap := Snapshot{City: "UTC", Timezone: "UTC"}

	assert.Equal(t, "03:04 p. m.", NewClock("es-MX", fixedNow(now)).Render(snap).FormattedTime)
	assert.Equal(t, "午後03:04", NewClock("ja", fixedNow(now)).Render(snap).FormattedTime)
	assert.Equal(t, "03:04 PM", NewClock("xx-invalid-@@", fixedNow(now)).Render(snap).FormattedTime)
	assert.Equal(t, "03:04 PM", NewClock("", fixedNow(now)).Render(snap).FormattedTime)
}

func TestClock_UnknownTimezoneUsesLocal(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 4, 0, 0, time.UTC)
	d := NewClock("en", fixedNow(now)).Render(Snapshot{City: "Nowhere", Timezone: "Nowhere/Land"})
	assert.Equal(t, now.In(time.Local).Format("MST"), d.TimezoneAbbreviation)
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "", FormatTemperature(nil))
	assert.Equal(t, "23°C", FormatTemperature(ptr(22.5)))
	assert.Equal(t, "22°C", FormatTemperature(ptr(22.49)))
	assert.Equal(t, "-2°C", FormatTemperature(ptr(-2.5)))
	assert.Equal(t, "0°C", FormatTemperature(ptr(-0.4)))
}

func TestDisplay_String(t *testing.T) {
	d := Display{City: "Dallas, Texas", FormattedTime: "03:04 PM", TimezoneAbbreviation: "CST", Temperature: "23°C"}
	assert.Equal(t, "Dallas, Texas · 03:04 PM CST · 23°C", d.String())

	d.Temperature = ""
	assert.Equal(t, "Dallas, Texas · 03:04 PM CST", d.String())
}
