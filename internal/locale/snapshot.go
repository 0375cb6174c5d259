package locale

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalLabel is the city shown when no timezone can be determined at all.
const LocalLabel = "Local"

// Snapshot is the widget's best-known location and weather. City and
// Timezone are never empty; TemperatureC is nil until a weather reading exists.
type Snapshot struct {
	City         string   `json:"city"`
	Timezone     string   `json:"timezone"`
	TemperatureC *float64 `json:"temperatureC"`
}

// HasTemperature reports whether a weather reading is present.
func (s Snapshot) HasTemperature() bool {
	return s.TemperatureC != nil
}

// CityFromTimezone turns "America/Los_Angeles" into "Los Angeles".
func CityFromTimezone(timezone string) string {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		return LocalLabel
	}
	parts := strings.Split(timezone, "/")
	raw := parts[len(parts)-1]
	if raw == "" {
		return LocalLabel
	}
	return strings.ReplaceAll(raw, "_", " ")
}

// Fallback builds the tier-1 snapshot from a host timezone.
func Fallback(timezone string) Snapshot {
	timezone = strings.TrimSpace(timezone)
	if timezone == "" {
		timezone = LocalLabel
	}
	return Snapshot{
		City:     CityFromTimezone(timezone),
		Timezone: timezone,
	}
}

var (
	timezoneFile  = "/etc/timezone"
	localtimeLink = "/etc/localtime"
)

// DetectTimezone resolves the host's IANA timezone name. The override wins,
// then TZ, /etc/timezone and the /etc/localtime zoneinfo link. It returns
// "Local" when none of them yields a loadable name.
func DetectTimezone(override string) string {
	candidates := []string{override, os.Getenv("TZ"), readTimezoneFile(), readLocaltimeLink()}
	for _, c := range candidates {
		c = strings.TrimPrefix(strings.TrimSpace(c), ":")
		if c == "" {
			continue
		}
		if isLoadable(c) {
			return c
		}
	}
	return LocalLabel
}

func readTimezoneFile() string {
	b, err := os.ReadFile(timezoneFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func readLocaltimeLink() string {
	target, err := filepath.EvalSymlinks(localtimeLink)
	if err != nil {
		return ""
	}
	target = filepath.ToSlash(target)
	idx := strings.Index(target, "zoneinfo/")
	if idx < 0 {
		return ""
	}
	return target[idx+len("zoneinfo/"):]
}

func isLoadable(timezone string) bool {
	_, err := time.LoadLocation(timezone)
	return err == nil
}
