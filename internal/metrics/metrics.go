// Package metrics derives reporting figures from the record store. It is
// strictly read-only.
package metrics

import (
	"math"
	"strings"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

// AcceptanceRate is the aggregate ratio of responses to sent requests as a
// percentage, rounded to 2 decimals. It is 0.0 when nothing was sent. This
// is a bulk ratio, not a per-profile match.
func AcceptanceRate(sent []models.SentRequest, responses []models.Response) float64 {
	if len(sent) == 0 {
		return 0.0
	}
	rate := float64(len(responses)) / float64(len(sent)) * 100
	return math.Round(rate*100) / 100
}

// DateLevel keys the daily log counts: calendar date (UTC, YYYY-MM-DD) and
// upper-cased level.
type DateLevel struct {
	Date  string
	Level string
}

// DailyCounts groups log entries by calendar date and level. Absent or
// empty logs yield an empty map.
func DailyCounts(logs []models.LogRecord) map[DateLevel]int {
	out := make(map[DateLevel]int)
	for _, rec := range logs {
		if rec.Timestamp.IsZero() {
			continue
		}
		key := DateLevel{
			Date:  rec.Timestamp.UTC().Format("2006-01-02"),
			Level: strings.ToUpper(rec.Level),
		}
		out[key]++
	}
	return out
}

// Summary bundles everything the dashboard and the report command show.
type Summary struct {
	TotalSent      int                       `json:"total_sent"`
	TotalResponses int                       `json:"total_responses"`
	AcceptanceRate float64                   `json:"acceptance_rate"`
	DailyLogCounts map[string]map[string]int `json:"daily_log_counts"`
}

// Collect reads all tables once and derives the summary.
func Collect(st *store.Store) Summary {
	sent := st.ReadSentRequests()
	responses := st.ReadResponses()
	daily := make(map[string]map[string]int)
	for key, n := range DailyCounts(st.ReadLogs()) {
		if daily[key.Date] == nil {
			daily[key.Date] = make(map[string]int)
		}
		daily[key.Date][key.Level] = n
	}
	return Summary{
		TotalSent:      len(sent),
		TotalResponses: len(responses),
		AcceptanceRate: AcceptanceRate(sent, responses),
		DailyLogCounts: daily,
	}
}
