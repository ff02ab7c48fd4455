package generator

import (
	"testing"
	"time"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

func TestGenerateDatasetShapes(t *testing.T) {
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	g := New(st, 42)
	if err := g.All(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := len(st.ReadLeads()); got != 100 {
		t.Errorf("leads: got %d, want 100", got)
	}
	sent := st.ReadSentRequests()
	if len(sent) != 80 {
		t.Errorf("sent requests: got %d, want 80", len(sent))
	}
	if got := len(st.ReadResponses()); got != 30 {
		t.Errorf("responses: got %d, want 30", got)
	}
	if got := len(st.ReadLogs()); got != 200 {
		t.Errorf("logs: got %d, want 200", got)
	}

	sentCount := 0
	for _, r := range sent {
		switch r.Status {
		case models.StatusSent:
			sentCount++
		case models.StatusFailed:
		default:
			t.Errorf("unexpected status %q", r.Status)
		}
	}
	// ~95% sent with seed 42; allow slack but require a clear majority
	if sentCount < 65 {
		t.Errorf("expected most requests sent, got %d/80", sentCount)
	}
}

func TestResponsesDrawFromSentRequests(t *testing.T) {
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	g := New(st, 7)
	if err := g.SentRequests(40); err != nil {
		t.Fatalf("sent requests: %v", err)
	}
	if err := g.Responses(15); err != nil {
		t.Fatalf("responses: %v", err)
	}
	sentURLs := make(map[string]bool)
	for _, r := range st.ReadSentRequests() {
		sentURLs[r.ProfileURL] = true
	}
	for _, resp := range st.ReadResponses() {
		if !sentURLs[resp.ProfileURL] {
			t.Errorf("response profile %s not drawn from sent requests", resp.ProfileURL)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	st1, _ := store.Open(t.TempDir())
	st2, _ := store.Open(t.TempDir())
	if err := New(st1, 99).WithNow(now).Leads(20); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := New(st2, 99).WithNow(now).Leads(20); err != nil {
		t.Fatalf("second run: %v", err)
	}
	a, b := st1.ReadLeads(), st2.ReadLeads()
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
