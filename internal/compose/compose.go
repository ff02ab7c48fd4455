package compose

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
)

// Generator produces outreach text from a prompt. The OpenAI-backed
// implementation lives in openai.go; tests substitute their own.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Composer struct {
	gen Generator
	log *logging.Logger
}

// New builds a composer. gen may be nil, in which case every Compose call
// takes the fallback path.
func New(gen Generator, log *logging.Logger) *Composer {
	return &Composer{gen: gen, log: log.With("module", "compose")}
}

// Compose returns a short personalized outreach note for the profile. It
// never fails: any generation error degrades to the deterministic fallback
// template. intent defaults to "connect".
func (c *Composer) Compose(ctx context.Context, name, role, company, intent string) string {
	if intent == "" {
		intent = "connect"
	}
	prompt := fmt.Sprintf(
		"Write a short, friendly LinkedIn connection message to %s, a %s at %s. "+
			"Purpose: %s. Keep it professional, concise (1-2 sentences), and include a personalization token.",
		name, role, company, intent,
	)
	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.log.Error("generation failed, falling back to template", "name", name, "err", err)
		return Fallback(name, role, company)
	}
	c.log.Info("generated message", "name", name)
	return SanitizeText(text)
}

func (c *Composer) generate(ctx context.Context, prompt string) (string, error) {
	if c.gen == nil {
		return "", errNotConfigured
	}
	return c.gen.Generate(ctx, prompt)
}

// Fallback is the deterministic template used whenever generation is
// unavailable. Empty fields render as empty strings.
func Fallback(name, role, company string) string {
	return SanitizeText(fmt.Sprintf(
		"Hi %s, I noticed your work as a %s at %s — I'd love to connect and learn more about your experience.",
		name, role, company,
	))
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	tokenRe      = regexp.MustCompile(`\{\{[^{}]*\}\}`)
)

// SanitizeText collapses whitespace runs to single spaces and trims.
func SanitizeText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// FirstName returns the first whitespace-separated token of a full name,
// or "" for a blank name. Connection notes address people by first name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// PersonalizeTemplate substitutes {{token}} placeholders from tokens.
// Placeholders without a mapping resolve to the empty string; the result is
// sanitized and never contains a leftover placeholder.
func PersonalizeTemplate(template string, tokens map[string]string) string {
	out := template
	for k, v := range tokens {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}
	out = tokenRe.ReplaceAllString(out, "")
	return SanitizeText(out)
}
