package models

import "time"

// DaySummary holds the counters shown on the security and admin dashboards.
type DaySummary struct {
	Date           string `json:"date"`
	EntriesToday   int    `json:"entries_today"`
	ExitsToday     int    `json:"exits_today"`
	IncidentsToday int    `json:"incidents_today"`
	ActiveVisitors int    `json:"active_visitors"`
}

// SummarizeDay derives today's counters from the security log and the
// visitor directory. "Today" is the calendar day of now in now's location.
func SummarizeDay(entries []*SecurityLogEntry, visitors []*VisitorRecord, now time.Time) DaySummary {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	s := DaySummary{Date: start.Format(time.DateOnly)}
	for _, e := range entries {
		ts := e.Timestamp.In(now.Location())
		if ts.Before(start) || !ts.Before(end) {
			continue
		}
		switch e.Type {
		case LogTypeEntry:
			s.EntriesToday++
		case LogTypeExit:
			s.ExitsToday++
		case LogTypeIncident:
			s.IncidentsToday++
		}
	}
	for _, v := range visitors {
		if v.IsActive() {
			s.ActiveVisitors++
		}
	}
	return s
}
