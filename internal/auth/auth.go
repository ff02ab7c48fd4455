package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/browser"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/config"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/retry"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/stealth"
)

type Auth struct {
	br  *browser.Browser
	cfg *config.Config
	log *logging.Logger
}

func New(br *browser.Browser, cfg *config.Config, log *logging.Logger) *Auth {
	return &Auth{br: br, cfg: cfg, log: log.With("module", "auth")}
}

// EnsureLoggedIn validates a cookie-cached session or performs a fresh
// login. An error here means the whole run must be aborted; nothing else is
// attempted against the site without a session.
func (a *Auth) EnsureLoggedIn(ctx context.Context) error {
	p, err := a.br.NewPage(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := a.loadCookies(p); err == nil {
		if a.validateSession(p) {
			a.log.Info("session validated using cached cookies")
			return nil
		}
	}
	if err := a.login(ctx, p); err != nil {
		return err
	}
	if err := a.saveCookies(p); err != nil {
		a.log.Warn("save cookies failed", "err", err)
	}
	return nil
}

func (a *Auth) login(ctx context.Context, p *rod.Page) error {
	email, password, err := a.cfg.Credentials()
	if err != nil {
		return err
	}
	a.log.Info("attempting login", "email", email)

	loginURL := a.cfg.LinkedIn.BaseURL + "login"
	err = retry.Do(ctx, a.cfg.Retry.Attempts, a.cfg.RetryBackoff(), func() error {
		if err := p.Navigate(loginURL); err != nil {
			return err
		}
		return p.WaitLoad()
	})
	if err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	stealth.SleepRandom(800, 1500)

	userEl, err := p.Timeout(a.cfg.ImplicitWait()).Element("input#username")
	if err != nil {
		return browser.ScreenshotOnError(p, "login_page_fail", fmt.Errorf("username input not found: %w", err))
	}
	if err := stealth.TypeHumanLike(userEl, email); err != nil {
		return fmt.Errorf("input email: %w", err)
	}
	passEl, err := p.Timeout(a.cfg.ImplicitWait()).Element("input#password")
	if err != nil {
		return fmt.Errorf("password input not found: %w", err)
	}
	if err := stealth.TypeHumanLike(passEl, password); err != nil {
		return fmt.Errorf("input password: %w", err)
	}
	submit, err := p.Timeout(a.cfg.ImplicitWait()).Element("button[type='submit']")
	if err != nil {
		return fmt.Errorf("submit button not found: %w", err)
	}
	if err := stealth.ClickHumanLike(p, submit); err != nil {
		return fmt.Errorf("click submit: %w", err)
	}
	stealth.SleepRandom(4000, 6000)

	return a.verifyLoggedIn(p)
}

// verifyLoggedIn applies the success checks in order of reliability; the
// site renders several layouts depending on account state.
func (a *Auth) verifyLoggedIn(p *rod.Page) error {
	info, err := p.Info()
	if err != nil {
		return fmt.Errorf("read page info: %w", err)
	}
	currentURL := info.URL

	if strings.Contains(currentURL, "/feed") {
		a.log.Info("login successful", "detection", "feed url")
		return nil
	}
	checks := []struct {
		name string
		sel  string
	}{
		{"search box", "input[placeholder*='Search'], input[aria-label*='Search']"},
		{"navigation bar", "nav.global-nav, [class*='global-nav']"},
		{"feed link", "a[href*='/feed']"},
	}
	for _, c := range checks {
		if browser.HasElement(p, c.sel, 3*time.Second) {
			a.log.Info("login successful", "detection", c.name)
			return nil
		}
	}
	if !strings.Contains(currentURL, "/login") && !strings.Contains(currentURL, "/uas/login") {
		a.log.Info("login successful", "detection", "navigated away from login page")
		return nil
	}

	if el, err := p.Timeout(2 * time.Second).Element(".alert--error, .form__label--error, .error"); err == nil {
		if text, _ := el.Text(); text != "" {
			return browser.ScreenshotOnError(p, "login_error", fmt.Errorf("login failed: %s", text))
		}
	}
	if browser.HasElement(p, "[data-test-id='checkpoint'], .challenge-dialog", 2*time.Second) {
		return browser.ScreenshotOnError(p, "login_checkpoint",
			errors.New("login blocked by checkpoint/verification - log in manually in a browser first"))
	}
	return browser.ScreenshotOnError(p, "login_fail",
		errors.New("login failed: still on login page after submitting credentials"))
}

func (a *Auth) validateSession(p *rod.Page) bool {
	if err := p.Navigate(a.cfg.LinkedIn.BaseURL + "feed/"); err != nil {
		return false
	}
	if err := p.WaitLoad(); err != nil {
		return false
	}
	return browser.HasElement(p, "a[href*='/feed/']", 5*time.Second)
}

func cookiesPath() string {
	return filepath.Join(".cache", "cookies.json")
}

func (a *Auth) loadCookies(p *rod.Page) error {
	b, err := os.ReadFile(cookiesPath())
	if err != nil {
		return err
	}
	var cookies []*proto.NetworkCookie
	if err := json.Unmarshal(b, &cookies); err != nil {
		return err
	}
	for _, c := range cookies {
		_, _ = proto.NetworkSetCookie{
			Domain:   c.Domain,
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  c.Expires,
			HTTPOnly: c.HTTPOnly,
			Secure:   c.Secure,
		}.Call(p)
	}
	return nil
}

func (a *Auth) saveCookies(p *rod.Page) error {
	cookies, err := proto.StorageGetCookies{}.Call(p.Timeout(20 * time.Second))
	if err != nil {
		return err
	}
	b, _ := json.MarshalIndent(cookies.Cookies, "", "  ")
	if err := os.MkdirAll(filepath.Dir(cookiesPath()), 0o755); err != nil {
		return err
	}
	return os.WriteFile(cookiesPath(), b, 0o644)
}
