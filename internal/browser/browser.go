package browser

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/config"
	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
)

// Browser owns one automation session. The orchestrator holds it exclusively
// for the duration of a run; no component uses it concurrently.
type Browser struct {
	Rod *rod.Browser
	Cfg *config.Config
	log *logging.Logger
}

func New(ctx context.Context, cfg *config.Config, log *logging.Logger) (*Browser, error) {
	l := launcher.New().
		Leakless(false).
		Headless(cfg.Browser.Headless).
		Set("disable-gpu").
		Set("no-sandbox")
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	rb := rod.New().ControlURL(url)
	if err := rb.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	rb = rb.MustIgnoreCertErrors(true)
	b := &Browser{Rod: rb, Cfg: cfg, log: log.With("module", "browser")}
	b.log.Info("browser session started", "headless", cfg.Browser.Headless)
	return b, nil
}

// NewPage opens a page with the page-load timeout from config and the
// fingerprint script applied before any site script runs.
func (b *Browser) NewPage(ctx context.Context) (*rod.Page, error) {
	p, err := b.Rod.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	p = p.Context(ctx).Timeout(b.Cfg.PageLoadTimeout())

	ua := pickUserAgent()
	platform := "Win32"
	if strings.Contains(ua, "Macintosh") {
		platform = "MacIntel"
	} else if strings.Contains(ua, "Linux") {
		platform = "Linux x86_64"
	}
	_ = proto.EmulationSetUserAgentOverride{UserAgent: ua, Platform: platform}.Call(p)

	w := randRange(1280, 1680)
	h := randRange(720, 1050)
	_ = p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             w,
		Height:            h,
		DeviceScaleFactor: 1,
		Mobile:            false,
	})
	if _, err := p.EvalOnNewDocument(fingerprintScript(platform)); err != nil {
		b.log.Warn("fingerprint script injection failed", "err", err)
	}
	return p, nil
}

func (b *Browser) Close() {
	if b.Rod != nil {
		_ = b.Rod.Close()
	}
}

func pickUserAgent() string {
	uas := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	}
	return uas[rand.Intn(len(uas))]
}

func fingerprintScript(platform string) string {
	return fmt.Sprintf(`() => {
		Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
		window.chrome = window.chrome || { runtime: {}, loadTimes: function() {}, csi: function() {}, app: {} };
		Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
		Object.defineProperty(navigator, 'platform', { get: () => %q });
		Object.defineProperty(navigator, 'plugins', {
			get: () => [
				{ name: 'PDF Viewer', filename: 'internal-pdf-viewer', description: 'Portable Document Format' },
				{ name: 'Chrome PDF Viewer', filename: 'internal-pdf-viewer', description: 'Portable Document Format' }
			]
		});
		Object.defineProperty(navigator, 'hardwareConcurrency', { get: () => 8 });
		Object.defineProperty(navigator, 'deviceMemory', { get: () => 8 });
	}`, platform)
}

func randRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + rand.Intn(max-min+1)
}

// Helpers

func WaitVisible(p *rod.Page, sel string, d time.Duration) error {
	if err := p.Timeout(d).WaitLoad(); err != nil {
		return err
	}
	el, err := p.Timeout(d).Element(sel)
	if err != nil {
		return err
	}
	return el.WaitVisible()
}

func Click(p *rod.Page, sel string, d time.Duration) error {
	el, err := p.Timeout(d).Element(sel)
	if err != nil {
		return err
	}
	if err := el.WaitVisible(); err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func Type(p *rod.Page, sel, text string, d time.Duration) error {
	el, err := p.Timeout(d).Element(sel)
	if err != nil {
		return err
	}
	if err := el.WaitVisible(); err != nil {
		return err
	}
	return el.Input(text)
}

func HasElement(p *rod.Page, sel string, d time.Duration) bool {
	_, err := p.Timeout(d).Element(sel)
	return err == nil
}

func HasElementWithText(p *rod.Page, text string, d time.Duration) bool {
	_, err := p.Timeout(d).ElementR("*", text)
	return err == nil
}

// PageHeight reports document.body.scrollHeight, the discovery loop's
// no-more-content signal.
func PageHeight(p *rod.Page) (int, error) {
	res, err := p.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

// ScreenshotOnError saves a screenshot next to the process for debugging and
// passes err through unchanged.
func ScreenshotOnError(p *rod.Page, prefix string, err error) error {
	if p == nil || err == nil {
		return err
	}
	path := fmt.Sprintf("%s-%d.png", prefix, time.Now().Unix())
	bts, _ := p.Screenshot(true, &proto.PageCaptureScreenshot{})
	_ = os.WriteFile(path, bts, 0o644)
	return err
}
