package connection

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

// noteLimit is the site's maximum connection-note length.
const noteLimit = 280

type Service struct {
	br  *browser.Browser
	cfg *config.Config
	st  *store.Store
	log *logging.Logger
}

func New(br *browser.Browser, cfg *config.Config, st *store.Store, log *logging.Logger) *Service {
	return &Service{br: br, cfg: cfg, st: st, log: log.With("module", "connection")}
}

// Dispatch drives the connect-request flow for one lead and always records
// exactly one SentRequest row, status "sent" or "failed". It never
// propagates browser errors; failures are logged and recorded.
func (s *Service) Dispatch(ctx context.Context, p *rod.Page, lead models.Lead, note string) models.RequestStatus {
	status := models.StatusSent
	if err := s.sendOne(ctx, p, lead, note); err != nil {
		s.log.Error("send connection failed", "url", lead.ProfileURL, "err", err)
		status = models.StatusFailed
	} else {
		s.log.Info("connection request sent", "url", lead.ProfileURL)
	}
	req := models.SentRequest{
		ProfileURL:    lead.ProfileURL,
		Name:          lead.Name,
		Role:          lead.Role,
		Company:       lead.Company,
		RequestSentAt: time.Now().UTC(),
		Status:        status,
		Note:          note,
	}
	if err := s.st.AppendSentRequest(req); err != nil {
		s.log.Error("record sent request failed", "url", lead.ProfileURL, "err", err)
	}
	return status
}

func (s *Service) sendOne(ctx context.Context, p *rod.Page, lead models.Lead, note string) error {
	if err := p.Navigate(lead.ProfileURL); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("profile load: %w", err)
	}
	stealth.ThinkTime()
	stealth.ScrollHumanLike(p)
	stealth.SleepRandom(500, 1200)

	connectBtn, err := s.findConnect(p)
	if err != nil {
		return browser.ScreenshotOnError(p, "connect_button_fail", err)
	}
	if err := stealth.ClickHumanLike(p, connectBtn); err != nil {
		return fmt.Errorf("click connect: %w", err)
	}
	stealth.SleepRandom(800, 1500)

	// A note dialog is not always offered; when absent the site auto-sends.
	if addNote, err := p.Timeout(s.cfg.ImplicitWait()).ElementR("button", "Add a note"); err == nil {
		_ = stealth.ClickHumanLike(p, addNote)
		stealth.SleepRandom(600, 1200)
		if textarea, err := p.Timeout(s.cfg.ImplicitWait()).Element(`textarea[name="message"]`); err == nil {
			if err := stealth.TypeHumanLike(textarea, clampNote(note)); err != nil {
				return fmt.Errorf("type note: %w", err)
			}
		} else {
			s.log.Info("note textarea not found, sending without custom note", "url", lead.ProfileURL)
		}
	} else {
		s.log.Info("add-a-note not offered, sending plain request", "url", lead.ProfileURL)
	}
	stealth.SleepRandom(500, 1000)

	sendBtn, err := s.findSend(p)
	if err != nil {
		return browser.ScreenshotOnError(p, "send_button_fail", err)
	}
	if err := stealth.ClickHumanLike(p, sendBtn); err != nil {
		return fmt.Errorf("click send: %w", err)
	}
	stealth.SleepRandom(800, 1500)
	return nil
}

// findConnect tries the primary Connect action, then the secondary path
// through the More-actions menu.
func (s *Service) findConnect(p *rod.Page) (*rod.Element, error) {
	if btn, err := p.Timeout(s.cfg.ImplicitWait()).Element(`button[aria-label*="Invite"][aria-label*="connect"]`); err == nil {
		return btn, nil
	}
	if btn, err := p.Timeout(s.cfg.ImplicitWait()).ElementR("button", "^Connect$"); err == nil {
		return btn, nil
	}
	moreBtn, err := p.Timeout(3 * time.Second).ElementR("button", "More")
	if err != nil {
		return nil, fmt.Errorf("connect button not found and no More menu: %w", err)
	}
	_ = stealth.ClickHumanLike(p, moreBtn)
	stealth.SleepRandom(600, 1000)
	btn, err := p.Timeout(s.cfg.ImplicitWait()).ElementR("div[role='menu'] *, div", "^Connect$")
	if err != nil {
		return nil, fmt.Errorf("connect entry not found in More menu: %w", err)
	}
	return btn, nil
}

func (s *Service) findSend(p *rod.Page) (*rod.Element, error) {
	if btn, err := p.Timeout(s.cfg.ImplicitWait()).ElementR("button", "^Send( invitation)?$"); err == nil {
		return btn, nil
	}
	if btn, err := p.Timeout(3 * time.Second).Element(`button[aria-label*="Send"]`); err == nil {
		return btn, nil
	}
	return nil, fmt.Errorf("send button not found")
}

func clampNote(note string) string {
	if len(note) > noteLimit {
		return note[:noteLimit]
	}
	return note
}
