package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
)

func mustOpen(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func TestReadEmptyTables(t *testing.T) {
	st := mustOpen(t)
	if got := st.ReadLeads(); len(got) != 0 {
		t.Fatalf("expected no leads, got %d", len(got))
	}
	if got := st.ReadSentRequests(); len(got) != 0 {
		t.Fatalf("expected no sent requests, got %d", len(got))
	}
	if got := st.ReadResponses(); len(got) != 0 {
		t.Fatalf("expected no responses, got %d", len(got))
	}
	if got := st.ReadLogs(); len(got) != 0 {
		t.Fatalf("expected no logs, got %d", len(got))
	}
}

func TestAppendReadRoundTrip(t *testing.T) {
	st := mustOpen(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	var want []models.Lead
	for i := 0; i < 5; i++ {
		l := models.Lead{
			ProfileURL:  fmt.Sprintf("https://www.linkedin.com/in/person-%d", i),
			Name:        fmt.Sprintf("Person %d", i),
			Role:        "Software Engineer",
			Company:     "Acme Corp",
			Location:    "Berlin, Germany",
			ExtractedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.AppendLead(l); err != nil {
			t.Fatalf("append lead %d: %v", i, err)
		}
		want = append(want, l)
	}
	got := st.ReadLeads()
	if len(got) != len(want) {
		t.Fatalf("expected %d leads, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lead %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSentRequestRoundTrip(t *testing.T) {
	st := mustOpen(t)
	req := models.SentRequest{
		ProfileURL:    "https://www.linkedin.com/in/ana",
		Name:          "Ana Silva",
		Role:          "Product Manager",
		Company:       "Globex",
		RequestSentAt: time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
		Status:        models.StatusSent,
		Note:          "Hi Ana, I'd love to connect — your work at Globex caught my eye.",
	}
	if err := st.AppendSentRequest(req); err != nil {
		t.Fatalf("append: %v", err)
	}
	got := st.ReadSentRequests()
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0] != req {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got[0], req)
	}
}

func TestHeaderWrittenOnce(t *testing.T) {
	st := mustOpen(t)
	rec := models.LogRecord{
		Timestamp: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Component: "search",
		Message:   "started",
	}
	for i := 0; i < 3; i++ {
		if err := st.AppendLog(rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	b, err := os.ReadFile(filepath.Join(st.Dir(), LogsFile))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	content := string(b)
	if got := strings.Count(content, "timestamp,level,component,message"); got != 1 {
		t.Fatalf("expected exactly one header row, found %d in:\n%s", got, content)
	}
	if got := st.ReadLogs(); len(got) != 3 {
		t.Fatalf("expected 3 log rows, got %d", len(got))
	}
}

func TestMalformedRowsSkipped(t *testing.T) {
	st := mustOpen(t)
	path := filepath.Join(st.Dir(), LeadsFile)
	content := "profile_url,name,role,company,location,extracted_at\n" +
		"https://www.linkedin.com/in/good,Good Person,Engineer,Acme,Berlin,2026-08-01T00:00:00Z\n" +
		"short,row\n" +
		"https://www.linkedin.com/in/also-good,Also Good,PM,Globex,Lisbon,2026-08-02T00:00:00Z\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := st.ReadLeads()
	if len(got) != 2 {
		t.Fatalf("expected 2 valid rows, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Good Person" || got[1].Name != "Also Good" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestQuoteErrorMidFileKeepsLaterRows(t *testing.T) {
	st := mustOpen(t)
	path := filepath.Join(st.Dir(), ResponsesFile)
	content := "profile_url,name,role,company,response_at,message\n" +
		"https://www.linkedin.com/in/a,A,Eng,Acme,2026-08-01T00:00:00Z,thanks\n" +
		"https://www.linkedin.com/in/bad,br\"oken,Eng,Acme,2026-08-02T00:00:00Z,oops\n" +
		"https://www.linkedin.com/in/b,B,PM,Globex,2026-08-03T00:00:00Z,sure\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := st.ReadResponses()
	if len(got) != 2 {
		t.Fatalf("expected 2 valid rows, got %d: %+v", len(got), got)
	}
	if got[0].ProfileURL != "https://www.linkedin.com/in/a" ||
		got[1].ProfileURL != "https://www.linkedin.com/in/b" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestUnparseableTimestampYieldsZeroTime(t *testing.T) {
	st := mustOpen(t)
	path := filepath.Join(st.Dir(), SentRequestsFile)
	content := "profile_url,name,role,company,request_sent_at,status,note\n" +
		"https://www.linkedin.com/in/x,X,Eng,Acme,not-a-time,sent,hi\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := st.ReadSentRequests()
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if !got[0].RequestSentAt.IsZero() {
		t.Fatalf("expected zero time, got %v", got[0].RequestSentAt)
	}
}
