package sportline

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PayloadShape is the detected variant of an upstream payload. The
// upstream flips between shapes without notice, so detection runs on
// every response instead of trusting content types.
type PayloadShape int

const (
	ShapeUnknown PayloadShape = iota
	ShapeNestedJSON
	ShapeFlatDelimited
	ShapeHTML
)

func (s PayloadShape) String() string {
	switch s {
	case ShapeNestedJSON:
		return "nested_json"
	case ShapeFlatDelimited:
		return "flat_delimited"
	case ShapeHTML:
		return "html"
	default:
		return "unknown"
	}
}

// Record and field separators of the flat matchData/competitionData format.
const (
	recordSeparator = "|"
	fieldSeparator  = ";"
)

// BoardResponse is the loose envelope of the GetSport endpoint. Any
// combination of the three fields may be present.
type BoardResponse struct {
	MatchData       string            `json:"matchData"`
	Matches         []json.RawMessage `json:"matches"`
	CompetitionData string            `json:"competitionData"`
}

// DetailResponse is the envelope of the GetMatch endpoint.
type DetailResponse struct {
	Competitions []DetailCompetition `json:"competitions"`
}

type DetailCompetition struct {
	CompetitionID json.Number   `json:"competitionId"`
	Name          string        `json:"competitionName"`
	Matches       []DetailMatch `json:"matches"`
}

type DetailMatch struct {
	MatchID  json.Number `json:"matchId"`
	HomeTeam string      `json:"homeTeamName"`
	AwayTeam string      `json:"awayTeamName"`
	Markets  []Market    `json:"markets"`
}

// Market is one bettable proposition with its selections. Label text
// varies between payloads; selection POSITION is the authoritative
// signal for yes/no and over/under mapping.
type Market struct {
	MarketDisplayName string      `json:"marketDisplayName"`
	SelectionList     []Selection `json:"selectionList"`
}

type Selection struct {
	SelectionDisplayName string `json:"selectionDisplayName"`
	CompanyOdds          string `json:"companyOdds"`
}

// Competition is one parsed entry of a competitionData payload.
type Competition struct {
	ID   string
	Name string
}

// DetectShape classifies a raw upstream body.
func DetectShape(raw []byte) PayloadShape {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ShapeUnknown
	}

	lower := strings.ToLower(string(trimmed[:min(len(trimmed), 512)]))
	if trimmed[0] == '<' || strings.Contains(lower, "<html") || strings.Contains(lower, "<table") {
		return ShapeHTML
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		var board BoardResponse
		if err := json.Unmarshal(trimmed, &board); err == nil {
			if len(board.Matches) > 0 {
				return ShapeNestedJSON
			}
			if board.MatchData != "" || board.CompetitionData != "" {
				return ShapeFlatDelimited
			}
		}
		var detail DetailResponse
		if err := json.Unmarshal(trimmed, &detail); err == nil && len(detail.Competitions) > 0 {
			return ShapeNestedJSON
		}
		return ShapeUnknown
	}

	// Bare text body: the flat format always carries field separators.
	if strings.Contains(string(trimmed), fieldSeparator) {
		return ShapeFlatDelimited
	}

	return ShapeUnknown
}

// flatRecords pulls the delimited match records out of a body that may be
// either a bare delimited string or a JSON envelope with matchData.
func flatRecords(raw []byte) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	data := string(trimmed)
	if trimmed[0] == '{' {
		var board BoardResponse
		if err := json.Unmarshal(trimmed, &board); err != nil {
			return nil
		}
		data = board.MatchData
	}
	if data == "" {
		return nil
	}

	var records []string
	for _, rec := range strings.Split(data, recordSeparator) {
		if strings.TrimSpace(rec) != "" {
			records = append(records, rec)
		}
	}
	return records
}

// ParseCompetitions decodes a competitionData payload into id/name pairs.
// Each record holds a numeric id field and a name field in unstable order.
func ParseCompetitions(raw []byte) []Competition {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	data := string(trimmed)
	if trimmed[0] == '{' {
		var board BoardResponse
		if err := json.Unmarshal(trimmed, &board); err != nil {
			return nil
		}
		data = board.CompetitionData
	}
	if data == "" {
		return nil
	}

	var comps []Competition
	for _, rec := range strings.Split(data, recordSeparator) {
		fields := splitFields(rec)
		var comp Competition
		for _, f := range fields {
			if comp.ID == "" && isAllDigits(f) {
				comp.ID = f
				continue
			}
			if comp.Name == "" && !isAllDigits(f) {
				comp.Name = f
			}
		}
		if comp.ID != "" && comp.Name != "" {
			comps = append(comps, comp)
		}
	}
	return comps
}

func splitFields(record string) []string {
	sep := fieldSeparator
	if !strings.Contains(record, sep) && strings.Contains(record, ",") {
		sep = ","
	}
	parts := strings.Split(record, sep)
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		fields = append(fields, strings.TrimSpace(p))
	}
	return fields
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
