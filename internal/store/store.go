package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
)

// Store is an append-only record store over flat CSV files, one file per
// table, header row written on first append. Rows are never updated or
// deleted. A single writer at a time is assumed; there is no locking.
type Store struct {
	dir string
}

const (
	LeadsFile        = "leads.csv"
	SentRequestsFile = "sent_requests.csv"
	ResponsesFile    = "responses.csv"
	FollowUpsFile    = "follow_ups.csv"
	LogsFile         = "logs.csv"
)

var (
	leadHeader     = []string{"profile_url", "name", "role", "company", "location", "extracted_at"}
	sentHeader     = []string{"profile_url", "name", "role", "company", "request_sent_at", "status", "note"}
	responseHeader = []string{"profile_url", "name", "role", "company", "response_at", "message"}
	followUpHeader = []string{"profile_url", "followed_up_at", "message"}
	logHeader      = []string{"timestamp", "level", "component", "message"}
)

func Open(dir string) (*Store, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) path(file string) string { return filepath.Join(s.dir, file) }

// appendRow opens the table file in append mode, writing the header first
// when the file is new or empty.
func (s *Store) appendRow(file string, header, row []string) error {
	path := s.path(file)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", file, err)
	}
	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header %s: %w", file, err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row %s: %w", file, err)
	}
	w.Flush()
	return w.Error()
}

// readRows returns all data rows with the expected column count, skipping the
// header and malformed rows. Absent or unreadable files yield nil, never an
// error; callers treat an empty table and a missing table the same way.
func (s *Store) readRows(file string, header []string) [][]string {
	f, err := os.Open(s.path(file))
	if err != nil {
		return nil
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	first := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A row this process didn't write may not parse; the reader
			// resumes at the next record, so only that row is lost.
			continue
		}
		if first {
			first = false
			if len(rec) > 0 && rec[0] == header[0] {
				continue
			}
		}
		if len(rec) != len(header) {
			continue
		}
		rows = append(rows, rec)
	}
	return rows
}

func (s *Store) AppendLead(l models.Lead) error {
	return s.appendRow(LeadsFile, leadHeader, []string{
		l.ProfileURL, l.Name, l.Role, l.Company, l.Location, formatTime(l.ExtractedAt),
	})
}

func (s *Store) ReadLeads() []models.Lead {
	var out []models.Lead
	for _, r := range s.readRows(LeadsFile, leadHeader) {
		out = append(out, models.Lead{
			ProfileURL:  r[0],
			Name:        r[1],
			Role:        r[2],
			Company:     r[3],
			Location:    r[4],
			ExtractedAt: parseTime(r[5]),
		})
	}
	return out
}

func (s *Store) AppendSentRequest(req models.SentRequest) error {
	return s.appendRow(SentRequestsFile, sentHeader, []string{
		req.ProfileURL, req.Name, req.Role, req.Company,
		formatTime(req.RequestSentAt), string(req.Status), req.Note,
	})
}

func (s *Store) ReadSentRequests() []models.SentRequest {
	var out []models.SentRequest
	for _, r := range s.readRows(SentRequestsFile, sentHeader) {
		out = append(out, models.SentRequest{
			ProfileURL:    r[0],
			Name:          r[1],
			Role:          r[2],
			Company:       r[3],
			RequestSentAt: parseTime(r[4]),
			Status:        models.RequestStatus(r[5]),
			Note:          r[6],
		})
	}
	return out
}

func (s *Store) AppendResponse(resp models.Response) error {
	return s.appendRow(ResponsesFile, responseHeader, []string{
		resp.ProfileURL, resp.Name, resp.Role, resp.Company,
		formatTime(resp.ResponseAt), resp.Message,
	})
}

func (s *Store) ReadResponses() []models.Response {
	var out []models.Response
	for _, r := range s.readRows(ResponsesFile, responseHeader) {
		out = append(out, models.Response{
			ProfileURL: r[0],
			Name:       r[1],
			Role:       r[2],
			Company:    r[3],
			ResponseAt: parseTime(r[4]),
			Message:    r[5],
		})
	}
	return out
}

func (s *Store) AppendFollowUp(fu models.FollowUp) error {
	return s.appendRow(FollowUpsFile, followUpHeader, []string{
		fu.ProfileURL, formatTime(fu.FollowedUpAt), fu.Message,
	})
}

func (s *Store) ReadFollowUps() []models.FollowUp {
	var out []models.FollowUp
	for _, r := range s.readRows(FollowUpsFile, followUpHeader) {
		out = append(out, models.FollowUp{
			ProfileURL:   r[0],
			FollowedUpAt: parseTime(r[1]),
			Message:      r[2],
		})
	}
	return out
}

func (s *Store) AppendLog(rec models.LogRecord) error {
	return s.appendRow(LogsFile, logHeader, []string{
		formatTime(rec.Timestamp), rec.Level, rec.Component, rec.Message,
	})
}

func (s *Store) ReadLogs() []models.LogRecord {
	var out []models.LogRecord
	for _, r := range s.readRows(LogsFile, logHeader) {
		out = append(out, models.LogRecord{
			Timestamp: parseTime(r[0]),
			Level:     r[1],
			Component: r[2],
			Message:   r[3],
		})
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime is lenient: rows carrying an unparseable timestamp keep their
// other fields and get the zero time, which no age threshold ever matches.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
