package models

import "fmt"

// competitionNames maps upstream competition IDs to display names.
// The upstream never documents these; the table was assembled by
// observing competitionData payloads. Read-only after startup.
var competitionNames = map[string]string{
	"1":   "English Premier League",
	"2":   "Spanish La Liga",
	"3":   "Italian Serie A",
	"4":   "German Bundesliga",
	"5":   "French Ligue 1",
	"7":   "UEFA Champions League",
	"8":   "UEFA Europa League",
	"10":  "English Championship",
	"12":  "Dutch Eredivisie",
	"14":  "Portuguese Primeira Liga",
	"16":  "Scottish Premiership",
	"21":  "Turkish Super Lig",
	"25":  "Belgian Pro League",
	"31":  "Greek Super League",
	"50":  "World Cup Qualifiers",
	"55":  "Africa Cup of Nations",
	"60":  "Copa Libertadores",
	"77":  "Brazilian Serie A",
	"80":  "Argentine Primera Division",
	"100": "Kenyan Premier League",
}

// LeagueName resolves a competition ID to a display name.
// Unknown non-empty IDs get a generic "Competition {id}" label; an empty
// ID falls back to the generic board placeholder.
func LeagueName(competitionID string) string {
	if competitionID == "" {
		return "Football League"
	}
	if name, ok := competitionNames[competitionID]; ok {
		return name
	}
	return fmt.Sprintf("Competition %s", competitionID)
}
