package metrics

import (
	"testing"
	"time"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

func TestAcceptanceRateEmptySent(t *testing.T) {
	cases := [][]models.Response{
		nil,
		{},
		{{ProfileURL: "https://www.linkedin.com/in/x"}},
	}
	for _, responses := range cases {
		if got := AcceptanceRate(nil, responses); got != 0.0 {
			t.Errorf("empty sent with %d responses: got %v, want 0.0", len(responses), got)
		}
	}
}

func TestAcceptanceRateRatio(t *testing.T) {
	sent := make([]models.SentRequest, 10)
	responses := make([]models.Response, 3)
	if got := AcceptanceRate(sent, responses); got != 30.0 {
		t.Fatalf("got %v, want 30.0", got)
	}
}

func TestAcceptanceRateRounding(t *testing.T) {
	sent := make([]models.SentRequest, 3)
	responses := make([]models.Response, 1)
	if got := AcceptanceRate(sent, responses); got != 33.33 {
		t.Fatalf("got %v, want 33.33", got)
	}
}

func TestDailyCountsEmpty(t *testing.T) {
	if got := DailyCounts(nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestDailyCountsGrouping(t *testing.T) {
	d1 := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	logs := []models.LogRecord{
		{Timestamp: d1, Level: "INFO"},
		{Timestamp: d1.Add(time.Hour), Level: "info"},
		{Timestamp: d1.Add(2 * time.Hour), Level: "ERROR"},
		{Timestamp: d2, Level: "WARNING"},
	}
	got := DailyCounts(logs)
	want := map[DateLevel]int{
		{"2026-08-30", "INFO"}:    2,
		{"2026-08-30", "ERROR"}:   1,
		{"2026-08-31", "WARNING"}: 1,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, n := range want {
		if got[k] != n {
			t.Errorf("%+v: got %d, want %d", k, got[k], n)
		}
	}
}

func TestCollectFromStore(t *testing.T) {
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if err := st.AppendSentRequest(models.SentRequest{
			ProfileURL:    "https://www.linkedin.com/in/p",
			RequestSentAt: now,
			Status:        models.StatusSent,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := st.AppendResponse(models.Response{ProfileURL: "https://www.linkedin.com/in/p", ResponseAt: now}); err != nil {
		t.Fatalf("append response: %v", err)
	}
	sum := Collect(st)
	if sum.TotalSent != 4 || sum.TotalResponses != 1 {
		t.Fatalf("totals: %+v", sum)
	}
	if sum.AcceptanceRate != 25.0 {
		t.Fatalf("rate: got %v, want 25.0", sum.AcceptanceRate)
	}
}
