package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"newsgenie/internal/storage"
)

// DailyStats aggregates one day of assistant usage.
type DailyStats struct {
	Date            string         `json:"date"`
	TotalRequests   int            `json:"total_requests"`
	UniqueSessions  int            `json:"unique_sessions"`
	RequestsByRoute map[string]int `json:"requests_by_route"`
	FallbackCount   int            `json:"fallback_count"`
}

// AnalyzeDailyLogs aggregates audit events for the given date.
func AnalyzeDailyLogs(events []storage.Event, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{
		Date:            startOfDay.Format("2006-01-02"),
		RequestsByRoute: make(map[string]int),
	}

	uniqueSessions := make(map[string]bool)

	for _, event := range events {
		if event.Timestamp.Before(startOfDay) || !event.Timestamp.Before(endOfDay) {
			continue
		}

		stats.TotalRequests++
		uniqueSessions[event.SessionID] = true
		stats.RequestsByRoute[event.Route]++
		if event.Fallback {
			stats.FallbackCount++
		}
	}

	stats.UniqueSessions = len(uniqueSessions)
	return stats
}

// GenerateReportSummary builds the digest text sent to the admin chat.
func (ds *DailyStats) GenerateReportSummary() string {
	summary := fmt.Sprintf(`NewsGenie usage for %s:

- Total requests: %d
- Unique sessions: %d
- Fallback responses: %d
`, ds.Date, ds.TotalRequests, ds.UniqueSessions, ds.FallbackCount)

	if len(ds.RequestsByRoute) > 0 {
		summary += "\nRequests by route:\n"
		routes := make([]string, 0, len(ds.RequestsByRoute))
		for route := range ds.RequestsByRoute {
			routes = append(routes, route)
		}
		sort.Strings(routes)
		for _, route := range routes {
			summary += fmt.Sprintf("- %s: %d\n", route, ds.RequestsByRoute[route])
		}
	}

	return summary
}

// ToJSON serializes the stats for detailed inspection.
func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
