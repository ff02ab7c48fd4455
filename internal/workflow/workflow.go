// Package workflow runs the outreach passes: Run logs in, discovers leads
// for every configured query, and composes and dispatches connection
// requests under the daily cap; FollowUps messages overdue connections in
// a later, separate invocation.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/auth"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/browser"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/compose"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/config"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/connection"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/followup"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/search"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/stealth"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

// Runner owns one end-to-end outreach pass.
type Runner struct {
	br   *browser.Browser
	cfg  *config.Config
	st   *store.Store
	comp *compose.Composer
	log  *logging.Logger

	auth     *auth.Auth
	search   *search.Service
	conn     *connection.Service
	followup *followup.Scanner
}

func New(br *browser.Browser, cfg *config.Config, st *store.Store, comp *compose.Composer, log *logging.Logger) *Runner {
	return &Runner{
		br:       br,
		cfg:      cfg,
		st:       st,
		comp:     comp,
		log:      log.With("module", "workflow"),
		auth:     auth.New(br, cfg, log),
		search:   search.New(br, cfg, st, log),
		conn:     connection.New(br, cfg, st, log),
		followup: followup.New(br, cfg, st, log),
	}
}

// Run executes one outreach pass. The pass is abandoned only when login
// fails or a page cannot be opened; per-lead failures are recorded and
// skipped.
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.NewString()
	log := r.log.With("run_id", runID)
	log.Info("outreach run starting")
	defer log.Info("outreach run finished")

	if err := r.auth.EnsureLoggedIn(ctx); err != nil {
		log.Error("login failed, aborting run", "error", err)
		return fmt.Errorf("login: %w", err)
	}

	budget := r.cfg.Limits.MaxDailyConnections - SentToday(r.st.ReadSentRequests(), time.Now().UTC())
	if budget <= 0 {
		log.Warn("daily connection cap already reached, skipping dispatch",
			"cap", r.cfg.Limits.MaxDailyConnections)
	}

	p, err := r.br.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	defer p.Close()

	for _, query := range r.cfg.Queries() {
		if budget <= 0 {
			break
		}
		leads, err := r.search.Discover(ctx, p, query, r.cfg.Limits.MaxProfilesPerQuery)
		if err != nil {
			log.Warn("lead discovery incomplete", "query", query, "found", len(leads), "error", err)
		}
		log.Info("query scanned", "query", query, "leads", len(leads))

		for _, lead := range leads {
			if budget <= 0 {
				log.Info("daily connection cap reached", "cap", r.cfg.Limits.MaxDailyConnections)
				break
			}
			note := r.noteFor(ctx, lead)
			status := r.conn.Dispatch(ctx, p, lead, note)
			if status == models.StatusSent {
				budget--
				stealth.SleepRandom(r.cfg.Delay.MinSeconds*1000, r.cfg.Delay.MaxSeconds*1000)
			}
		}
	}

	return nil
}

// FollowUps runs the follow-up scanner on its own session. It is a separate
// invocation from Run so a pass never messages the connections it just
// requested; only earlier runs' requests can be old enough to qualify.
func (r *Runner) FollowUps(ctx context.Context) error {
	runID := uuid.NewString()
	log := r.log.With("run_id", runID)
	log.Info("follow-up run starting")
	defer log.Info("follow-up run finished")

	if err := r.auth.EnsureLoggedIn(ctx); err != nil {
		log.Error("login failed, aborting follow-up run", "error", err)
		return fmt.Errorf("login: %w", err)
	}

	p, err := r.br.NewPage(ctx)
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	defer p.Close()

	sent := r.followup.ScanAndFollowUp(ctx, p, r.cfg.FollowUp.Days, r.cfg.FollowUp.Message)
	log.Info("follow-up scan complete", "messaged", sent)
	return nil
}

func (r *Runner) noteFor(ctx context.Context, lead models.Lead) string {
	note := r.comp.Compose(ctx, lead.Name, lead.Role, lead.Company, "connect")
	return compose.PersonalizeTemplate(note, map[string]string{
		"name":       lead.Name,
		"first_name": compose.FirstName(lead.Name),
	})
}

// SentToday counts requests dispatched successfully on now's UTC calendar
// date.
func SentToday(sent []models.SentRequest, now time.Time) int {
	day := now.UTC().Format("2006-01-02")
	n := 0
	for _, req := range sent {
		if req.Status != models.StatusSent || req.RequestSentAt.IsZero() {
			continue
		}
		if req.RequestSentAt.UTC().Format("2006-01-02") == day {
			n++
		}
	}
	return n
}
