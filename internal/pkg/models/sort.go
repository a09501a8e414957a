package models

import "sort"

// SortByDate orders records by calendar date, then kickoff time, then home
// team. The sort is stable so records that tie keep their extraction order.
func SortByDate(records []MatchRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		if records[i].Kickoff != records[j].Kickoff {
			return records[i].Kickoff < records[j].Kickoff
		}
		return records[i].HomeTeam < records[j].HomeTeam
	})
}

// GroupByDate buckets records by their calendar date for the day-section
// rendering the board uses. Records within a bucket keep their order.
func GroupByDate(records []MatchRecord) map[string][]MatchRecord {
	groups := make(map[string][]MatchRecord)
	for _, r := range records {
		groups[r.Date] = append(groups[r.Date], r)
	}
	return groups
}
