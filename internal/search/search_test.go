package search

import (
	"fmt"
	"testing"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
)

func TestSplitSubtitle(t *testing.T) {
	cases := []struct {
		in            string
		role, company string
	}{
		{"Software Engineer at Acme Corp", "Software Engineer", "Acme Corp"},
		{"Engineering Manager at Big Co at Night", "Engineering Manager", "Big Co at Night"},
		{"Freelance Designer", "Freelance Designer", ""},
		{"", "", ""},
		{"  Data Scientist at Globex  ", "Data Scientist", "Globex"},
	}
	for _, tc := range cases {
		role, company := SplitSubtitle(tc.in)
		if role != tc.role || company != tc.company {
			t.Errorf("SplitSubtitle(%q) = (%q, %q), want (%q, %q)", tc.in, role, company, tc.role, tc.company)
		}
	}
}

func TestNormalizeProfileURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/in/ana-silva?miniProfile=xyz", "https://www.linkedin.com/in/ana-silva"},
		{"https://www.linkedin.com/in/ana-silva", "https://www.linkedin.com/in/ana-silva"},
		{"/in/ana-silva", "https://www.linkedin.com/in/ana-silva"},
	}
	for _, tc := range cases {
		if got := normalizeProfileURL(tc.in); got != tc.want {
			t.Errorf("normalizeProfileURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCollectorCapsAndDeduplicates(t *testing.T) {
	col := newCollector(3)
	// duplicates of the same URL count once
	for i := 0; i < 5; i++ {
		col.add(models.Lead{ProfileURL: "https://www.linkedin.com/in/dup"})
	}
	if len(col.leads) != 1 {
		t.Fatalf("expected 1 lead after duplicate adds, got %d", len(col.leads))
	}
	for i := 0; i < 10; i++ {
		col.add(models.Lead{ProfileURL: fmt.Sprintf("https://www.linkedin.com/in/p%d", i)})
	}
	if len(col.leads) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(col.leads))
	}
	if !col.full() {
		t.Fatal("collector should report full at cap")
	}
	seen := map[string]bool{}
	for _, l := range col.leads {
		if seen[l.ProfileURL] {
			t.Fatalf("duplicate profile URL in results: %s", l.ProfileURL)
		}
		seen[l.ProfileURL] = true
	}
}
