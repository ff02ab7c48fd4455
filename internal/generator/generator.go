// Package generator produces synthetic datasets for local testing of the
// follow-up scanner, metrics, and dashboard without touching the live site.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

var (
	firstNames = []string{"Ana", "Ben", "Chitra", "Diego", "Elena", "Farhan", "Grace", "Hiro", "Ines", "Jonas", "Kavya", "Liam", "Mara", "Noah", "Olga", "Priya", "Quentin", "Rosa", "Sam", "Tariq"}
	lastNames  = []string{"Silva", "Novak", "Iyer", "Garcia", "Kovacs", "Ahmed", "Chen", "Tanaka", "Ferreira", "Becker", "Rao", "O'Brien", "Costa", "Schmidt", "Popova", "Sharma", "Dubois", "Moreno", "Lee", "Hassan"}
	roles      = []string{"Software Engineer", "Engineering Manager", "Product Manager", "Data Scientist", "Product Designer"}
	companies  = []string{"Acme Corp", "Globex", "Initech", "Umbrella Labs", "Stark Industries", "Hooli", "Vandelay Systems", "Wayne Tech", "Pied Piper", "Aperture Works"}
	cities     = []string{"Berlin, Germany", "Lisbon, Portugal", "Bengaluru, India", "Austin, United States", "Toronto, Canada", "Amsterdam, Netherlands", "Warsaw, Poland", "Singapore, Singapore"}
	replies    = []string{
		"Thanks for reaching out, happy to connect!",
		"Appreciate the note — let's connect and chat.",
		"Thanks! Looking forward to staying in touch.",
	}
	logComponents = []string{"auth", "search", "connection", "followup", "workflow", "scheduler"}
)

// Generator writes append-only synthetic rows through the same store the
// bot uses, so generated files are byte-compatible with real runs. A fixed
// seed makes output deterministic.
type Generator struct {
	st  *store.Store
	rng *rand.Rand
	now time.Time
}

func New(st *store.Store, seed int64) *Generator {
	return &Generator{st: st, rng: rand.New(rand.NewSource(seed)), now: time.Now().UTC()}
}

// WithNow pins the reference time the random past timestamps count back
// from; tests use it to make age-based assertions exact.
func (g *Generator) WithNow(now time.Time) *Generator {
	g.now = now.UTC()
	return g
}

func (g *Generator) pastTime(maxDays int) time.Time {
	d := time.Duration(g.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(g.rng.Intn(24))*time.Hour +
		time.Duration(g.rng.Intn(60))*time.Minute
	return g.now.Add(-d)
}

func (g *Generator) pick(list []string) string { return list[g.rng.Intn(len(list))] }

func (g *Generator) person() (name, slug string) {
	first := g.pick(firstNames)
	last := g.pick(lastNames)
	name = first + " " + last
	slug = fmt.Sprintf("%s-%s-%04d",
		strings.ToLower(first),
		strings.ToLower(strings.Map(slugRune, last)),
		g.rng.Intn(10000))
	return name, slug
}

func slugRune(r rune) rune {
	if r == '\'' || r == ' ' {
		return -1
	}
	return r
}

func (g *Generator) Leads(n int) error {
	for i := 0; i < n; i++ {
		name, slug := g.person()
		lead := models.Lead{
			ProfileURL:  "https://www.linkedin.com/in/" + slug,
			Name:        name,
			Role:        g.pick(roles),
			Company:     g.pick(companies),
			Location:    g.pick(cities),
			ExtractedAt: g.pastTime(30),
		}
		if err := g.st.AppendLead(lead); err != nil {
			return fmt.Errorf("lead %d: %w", i, err)
		}
	}
	return nil
}

// SentRequests generates n rows, roughly 95% of them status "sent".
func (g *Generator) SentRequests(n int) error {
	for i := 0; i < n; i++ {
		name, slug := g.person()
		company := g.pick(companies)
		status := models.StatusSent
		if g.rng.Float64() >= 0.95 {
			status = models.StatusFailed
		}
		first := strings.SplitN(name, " ", 2)[0]
		req := models.SentRequest{
			ProfileURL:    "https://www.linkedin.com/in/" + slug,
			Name:          name,
			Role:          g.pick(roles),
			Company:       company,
			RequestSentAt: g.pastTime(30),
			Status:        status,
			Note:          fmt.Sprintf("Hi %s, I came across your profile at %s and wanted to connect.", first, company),
		}
		if err := g.st.AppendSentRequest(req); err != nil {
			return fmt.Errorf("sent request %d: %w", i, err)
		}
	}
	return nil
}

// Responses generates n rows drawn from already-generated sent requests so
// that profile URLs line up; with no sent requests on disk it invents
// standalone profiles.
func (g *Generator) Responses(n int) error {
	sent := g.st.ReadSentRequests()
	for i := 0; i < n; i++ {
		var resp models.Response
		if len(sent) > 0 {
			src := sent[g.rng.Intn(len(sent))]
			resp = models.Response{
				ProfileURL: src.ProfileURL,
				Name:       src.Name,
				Role:       src.Role,
				Company:    src.Company,
			}
		} else {
			name, slug := g.person()
			resp = models.Response{
				ProfileURL: "https://www.linkedin.com/in/" + slug,
				Name:       name,
				Role:       g.pick(roles),
				Company:    g.pick(companies),
			}
		}
		resp.ResponseAt = g.pastTime(30)
		resp.Message = g.pick(replies)
		if err := g.st.AppendResponse(resp); err != nil {
			return fmt.Errorf("response %d: %w", i, err)
		}
	}
	return nil
}

// Logs generates n log rows weighted 80/10/10 info/warning/error.
func (g *Generator) Logs(n int) error {
	for i := 0; i < n; i++ {
		level := "INFO"
		switch r := g.rng.Float64(); {
		case r >= 0.9:
			level = "ERROR"
		case r >= 0.8:
			level = "WARNING"
		}
		rec := models.LogRecord{
			Timestamp: g.pastTime(30),
			Level:     level,
			Component: g.pick(logComponents),
			Message:   fmt.Sprintf("synthetic %s event %d", strings.ToLower(level), i),
		}
		if err := g.st.AppendLog(rec); err != nil {
			return fmt.Errorf("log %d: %w", i, err)
		}
	}
	return nil
}

// All writes the default dataset sizes.
func (g *Generator) All() error {
	if err := g.Leads(100); err != nil {
		return err
	}
	if err := g.SentRequests(80); err != nil {
		return err
	}
	if err := g.Responses(30); err != nil {
		return err
	}
	return g.Logs(200)
}
