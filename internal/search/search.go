package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/browser"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/config"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/models"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/stealth"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/store"
)

type Service struct {
	br  *browser.Browser
	cfg *config.Config
	st  *store.Store
	log *logging.Logger
}

func New(br *browser.Browser, cfg *config.Config, st *store.Store, log *logging.Logger) *Service {
	return &Service{br: br, cfg: cfg, st: st, log: log.With("module", "search")}
}

// Discover searches for profiles matching query and appends each extracted
// lead to the store as it is found. It returns whatever was collected when
// the scan ends, whether it ran to completion or aborted; a non-nil error
// marks an aborted scan, already logged here.
func (s *Service) Discover(ctx context.Context, p *rod.Page, query string, maxResults int) ([]models.Lead, error) {
	if maxResults <= 0 {
		maxResults = s.cfg.Limits.MaxProfilesPerQuery
	}
	col := newCollector(maxResults)
	err := s.scan(ctx, p, query, col)
	if err != nil {
		s.log.Error("discovery aborted", "query", query, "collected", len(col.leads), "err", err)
		return col.leads, err
	}
	s.log.Info("discovery complete", "query", query, "collected", len(col.leads))
	return col.leads, nil
}

func (s *Service) scan(ctx context.Context, p *rod.Page, query string, col *collector) error {
	searchBox, err := p.Timeout(2 * s.cfg.ImplicitWait()).
		Element("input[placeholder*='Search'], input[aria-label*='Search']")
	if err != nil {
		return browser.ScreenshotOnError(p, "search_box_fail", fmt.Errorf("search box not found: %w", err))
	}
	if err := searchBox.SelectAllText(); err == nil {
		_ = searchBox.Input("")
	}
	if err := stealth.TypeHumanLike(searchBox, query); err != nil {
		return fmt.Errorf("type query: %w", err)
	}
	if err := p.Keyboard.Press(input.Enter); err != nil {
		return fmt.Errorf("submit query: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("results page load: %w", err)
	}
	stealth.SleepRandom(1500, 2500)

	// The People filter is not always rendered; its absence is not an error.
	if peopleTab, err := p.Timeout(3 * time.Second).ElementR("button", "People"); err == nil {
		_ = stealth.ClickHumanLike(p, peopleTab)
		stealth.SleepRandom(1000, 2000)
	}

	lastHeight, err := browser.PageHeight(p)
	if err != nil {
		return fmt.Errorf("read page height: %w", err)
	}
	for !col.full() {
		for _, card := range s.resultCards(p) {
			if col.full() {
				break
			}
			lead, ok := s.extractCard(card)
			if !ok {
				continue
			}
			lead.ExtractedAt = time.Now().UTC()
			if !col.add(lead) {
				continue
			}
			if err := s.st.AppendLead(lead); err != nil {
				s.log.Warn("store lead failed", "url", lead.ProfileURL, "err", err)
			}
			s.log.Info("lead extracted", "url", lead.ProfileURL, "total", len(col.leads))
		}
		if col.full() {
			break
		}
		stealth.ScrollHumanLike(p)
		stealth.SleepRandom(1500, 2500)
		h, err := browser.PageHeight(p)
		if err != nil {
			return fmt.Errorf("read page height: %w", err)
		}
		if h == lastHeight {
			s.log.Info("no further content growth, ending scan", "collected", len(col.leads))
			break
		}
		lastHeight = h
	}
	return nil
}

// resultCards tries the current result-card container first and falls back
// to the generic list layout the site sometimes serves.
func (s *Service) resultCards(p *rod.Page) rod.Elements {
	cards, err := p.Timeout(5 * time.Second).Elements("div.reusable-search__result-container")
	if err == nil && len(cards) > 0 {
		return cards
	}
	cards, err = p.Timeout(3 * time.Second).Elements("ul[role='list'] > li")
	if err != nil {
		return nil
	}
	return cards
}

// extractCard reads one result card. A card that cannot yield at least a
// profile link and a name is skipped; partial subtitle data is fine.
func (s *Service) extractCard(card *rod.Element) (models.Lead, bool) {
	linkEl, err := card.Timeout(time.Second).Element(`a[href*="/in/"]`)
	if err != nil {
		return models.Lead{}, false
	}
	href, err := linkEl.Attribute("href")
	if err != nil || href == nil {
		return models.Lead{}, false
	}
	profileURL := normalizeProfileURL(*href)
	if !strings.Contains(profileURL, "/in/") {
		return models.Lead{}, false
	}

	name := s.cardText(card, `span.entity-result__title-text span[aria-hidden="true"]`)
	if name == "" {
		name = s.cardText(card, `span.entity-result__title-text`)
	}
	if name == "" {
		return models.Lead{}, false
	}

	role, company := SplitSubtitle(s.cardText(card, `div.entity-result__primary-subtitle`))
	location := s.cardText(card, `div.entity-result__secondary-subtitle`)

	return models.Lead{
		ProfileURL: profileURL,
		Name:       name,
		Role:       role,
		Company:    company,
		Location:   location,
	}, true
}

func (s *Service) cardText(card *rod.Element, sel string) string {
	el, err := card.Timeout(time.Second).Element(sel)
	if err != nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// SplitSubtitle parses a result-card subtitle into role and company on the
// first " at ". Without the separator the whole subtitle is the role.
func SplitSubtitle(subtitle string) (role, company string) {
	subtitle = strings.TrimSpace(subtitle)
	if idx := strings.Index(subtitle, " at "); idx >= 0 {
		return strings.TrimSpace(subtitle[:idx]), strings.TrimSpace(subtitle[idx+4:])
	}
	return subtitle, ""
}

func normalizeProfileURL(u string) string {
	if i := strings.Index(u, "?"); i >= 0 {
		u = u[:i]
	}
	if !strings.HasPrefix(u, "http") {
		u = "https://www.linkedin.com" + u
	}
	return u
}

// collector enforces the per-call result cap and within-call de-duplication
// by profile URL. De-duplication is deliberately not persisted across runs;
// the tables are append logs.
type collector struct {
	max   int
	seen  map[string]bool
	leads []models.Lead
}

func newCollector(max int) *collector {
	return &collector{max: max, seen: make(map[string]bool)}
}

func (c *collector) full() bool { return len(c.leads) >= c.max }

func (c *collector) add(l models.Lead) bool {
	if c.full() || c.seen[l.ProfileURL] {
		return false
	}
	c.seen[l.ProfileURL] = true
	c.leads = append(c.leads, l)
	return true
}
