package sportline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avolkov/betboard/internal/pkg/models"
)

// The upstream writes kickoff times three ways: bare "20:30", dated
// "26 Aug 20:30" (never with a year), or a live marker.
var (
	clockRegex     = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
	dayMonthRegex  = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3})\s+([01]?\d|2[0-3]):([0-5]\d)$`)
	liveMinuteRegex = regexp.MustCompile(`^(\d{1,3})'$`)
)

var monthAbbrev = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// KickoffInfo is the result of parsing one time-ish field.
type KickoffInfo struct {
	Kickoff string // HH:MM, empty when only a live marker was found
	Date    string // YYYY-MM-DD, empty when the field carried no date
	Status  models.MatchStatus
	Minute  *int
}

// ParseKickoff interprets a single raw field as kickoff information.
// The year defaults to now's calendar year since the upstream never
// supplies one.
func ParseKickoff(field string, now time.Time) (KickoffInfo, bool) {
	s := strings.TrimSpace(field)
	if s == "" {
		return KickoffInfo{}, false
	}

	if m := clockRegex.FindStringSubmatch(s); m != nil {
		return KickoffInfo{
			Kickoff: normalizeClock(m[1], m[2]),
			Status:  models.StatusUpcoming,
		}, true
	}

	if m := dayMonthRegex.FindStringSubmatch(s); m != nil {
		month, ok := monthAbbrev[strings.ToLower(m[2])]
		if !ok {
			return KickoffInfo{}, false
		}
		day, err := strconv.Atoi(m[1])
		if err != nil || day < 1 || day > 31 {
			return KickoffInfo{}, false
		}
		return KickoffInfo{
			Kickoff: normalizeClock(m[3], m[4]),
			Date:    fmt.Sprintf("%04d-%02d-%02d", now.Year(), int(month), day),
			Status:  models.StatusUpcoming,
		}, true
	}

	upper := strings.ToUpper(s)
	if upper == "LIVE" || upper == "LIVE NOW" || strings.HasPrefix(upper, "LIVE ") {
		return KickoffInfo{Status: models.StatusLive}, true
	}
	if m := liveMinuteRegex.FindStringSubmatch(s); m != nil {
		minute, err := strconv.Atoi(m[1])
		if err == nil && minute <= 130 {
			return KickoffInfo{Status: models.StatusLive, Minute: &minute}, true
		}
	}

	return KickoffInfo{}, false
}

func normalizeClock(hh, mm string) string {
	h, _ := strconv.Atoi(hh)
	return fmt.Sprintf("%02d:%s", h, mm)
}
