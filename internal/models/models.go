package models

import "time"

// Lead is a discovered profile candidate, not yet contacted.
type Lead struct {
	ProfileURL  string
	Name        string
	Role        string
	Company     string
	Location    string
	ExtractedAt time.Time
}

type RequestStatus string

const (
	StatusSent   RequestStatus = "sent"
	StatusFailed RequestStatus = "failed"
)

// SentRequest records one attempted connection request and its outcome.
// Rows are append-only; acceptance state is never written back here, it is
// derived from the responses table.
type SentRequest struct {
	ProfileURL    string
	Name          string
	Role          string
	Company       string
	RequestSentAt time.Time
	Status        RequestStatus
	Note          string
}

// Response is an incoming acceptance/reply to a prior request. Responses are
// externally sourced (or simulated by the generator); this system only reads
// them.
type Response struct {
	ProfileURL string
	Name       string
	Role       string
	Company    string
	ResponseAt time.Time
	Message    string
}

// FollowUp records one successfully sent follow-up message, so repeated
// scanner runs do not re-message the same lead.
type FollowUp struct {
	ProfileURL   string
	FollowedUpAt time.Time
	Message      string
}

// LogRecord is one row of the CSV log table, the second sink next to the
// structured log.
type LogRecord struct {
	Timestamp time.Time
	Level     string
	Component string
	Message   string
}
