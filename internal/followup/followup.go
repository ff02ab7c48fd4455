package followup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/browser"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/config"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/stealth"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

type Scanner struct {
	br  *browser.Browser
	cfg *config.Config
	st  *store.Store
	log *logging.Logger
}

func New(br *browser.Browser, cfg *config.Config, st *store.Store, log *logging.Logger) *Scanner {
	return &Scanner{br: br, cfg: cfg, st: st, log: log.With("module", "followup")}
}

// Candidates returns the sent requests eligible for a follow-up: status
// "sent", at least thresholdDays old at now, no response for the same
// profile URL, and not already followed up. Follow-up eligibility is always
// derived from the tables, never stored on the request.
func Candidates(sent []models.SentRequest, responses []models.Response, followUps []models.FollowUp, now time.Time, thresholdDays int) []models.SentRequest {
	responded := make(map[string]bool, len(responses))
	for _, r := range responses {
		responded[r.ProfileURL] = true
	}
	done := make(map[string]bool, len(followUps))
	for _, f := range followUps {
		done[f.ProfileURL] = true
	}
	cutoff := now.Add(-time.Duration(thresholdDays) * 24 * time.Hour)
	var out []models.SentRequest
	for _, req := range sent {
		if req.Status != models.StatusSent {
			continue
		}
		if req.RequestSentAt.IsZero() || req.RequestSentAt.After(cutoff) {
			continue
		}
		if responded[req.ProfileURL] || done[req.ProfileURL] {
			continue
		}
		out = append(out, req)
	}
	return out
}

// ScanAndFollowUp messages every unanswered lead older than thresholdDays
// and returns the number of follow-ups actually sent. A candidate whose
// send fails is logged and skipped; the scan continues.
func (s *Scanner) ScanAndFollowUp(ctx context.Context, p *rod.Page, thresholdDays int, message string) int {
	cands := Candidates(
		s.st.ReadSentRequests(),
		s.st.ReadResponses(),
		s.st.ReadFollowUps(),
		time.Now().UTC(),
		thresholdDays,
	)
	s.log.Info("follow-up candidates computed", "count", len(cands), "threshold_days", thresholdDays)

	sent := 0
	seen := make(map[string]bool)
	for _, cand := range cands {
		if seen[cand.ProfileURL] {
			continue
		}
		seen[cand.ProfileURL] = true
		if err := s.messageOne(ctx, p, cand.ProfileURL, message); err != nil {
			s.log.Error("follow-up failed", "url", cand.ProfileURL, "err", err)
			continue
		}
		sent++
		if err := s.st.AppendFollowUp(models.FollowUp{
			ProfileURL:   cand.ProfileURL,
			FollowedUpAt: time.Now().UTC(),
			Message:      message,
		}); err != nil {
			s.log.Error("record follow-up failed", "url", cand.ProfileURL, "err", err)
		}
		s.log.Info("follow-up sent", "url", cand.ProfileURL)
		stealth.SleepRandom(s.cfg.Delay.MinSeconds*1000, s.cfg.Delay.MaxSeconds*1000)
	}
	s.log.Info("follow-up scan complete", "sent", sent)
	return sent
}

func (s *Scanner) messageOne(ctx context.Context, p *rod.Page, profileURL, message string) error {
	if err := p.Navigate(profileURL); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("profile load: %w", err)
	}
	stealth.ThinkTime()

	msgBtn, err := p.Timeout(s.cfg.ImplicitWait()).ElementR("button", "^Message$")
	if err != nil {
		msgBtn, err = p.Timeout(s.cfg.ImplicitWait()).Element(`button[aria-label*="Message"]`)
	}
	if err != nil {
		return fmt.Errorf("message button not found: %w", err)
	}
	if err := stealth.ClickHumanLike(p, msgBtn); err != nil {
		return fmt.Errorf("click message: %w", err)
	}
	stealth.SleepRandom(1000, 2000)

	input, err := p.Timeout(s.cfg.ImplicitWait()).Element(`div.msg-form__contenteditable`)
	if err != nil {
		input, err = p.Timeout(s.cfg.ImplicitWait()).Element(`div[contenteditable="true"]`)
	}
	if err != nil {
		return browser.ScreenshotOnError(p, "message_input_fail", fmt.Errorf("message input not found: %w", err))
	}
	if err := stealth.TypeHumanLike(input, message); err != nil {
		return fmt.Errorf("type message: %w", err)
	}
	stealth.SleepRandom(500, 1000)

	sendBtn, err := p.Timeout(s.cfg.ImplicitWait()).Element(`button.msg-form__send-button`)
	if err != nil {
		sendBtn, err = p.Timeout(s.cfg.ImplicitWait()).ElementR("button", "^Send$")
	}
	if err != nil {
		return browser.ScreenshotOnError(p, "send_message_fail", fmt.Errorf("send button not found: %w", err))
	}
	if err := stealth.ClickHumanLike(p, sendBtn); err != nil {
		return fmt.Errorf("click send: %w", err)
	}
	stealth.SleepRandom(800, 1500)
	return nil
}
