package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nitishrudra3510/linkedin-automation-project/internal/logging"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func TestComposeUsesGenerator(t *testing.T) {
	c := New(stubGenerator{text: "  Hi Ana,\n\ngreat  work at Globex! "}, logging.New("error"))
	got := c.Compose(context.Background(), "Ana", "PM", "Globex", "connect")
	if got != "Hi Ana, great work at Globex!" {
		t.Fatalf("got %q", got)
	}
}

func TestComposeFallsBackOnError(t *testing.T) {
	c := New(stubGenerator{err: errors.New("api down")}, logging.New("error"))
	got := c.Compose(context.Background(), "Ana", "PM", "Globex", "")
	want := Fallback("Ana", "PM", "Globex")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !strings.Contains(got, "Hi Ana") {
		t.Fatalf("fallback should address the lead by name: %q", got)
	}
}

func TestComposeNilGeneratorFallsBack(t *testing.T) {
	c := New(nil, logging.New("error"))
	got := c.Compose(context.Background(), "Ana", "PM", "Globex", "connect")
	if got != Fallback("Ana", "PM", "Globex") {
		t.Fatalf("got %q", got)
	}
}

func TestFallbackNoPlaceholderLeakage(t *testing.T) {
	cases := []struct{ name, role, company string }{
		{"Ana Silva", "Product Manager", "Globex"},
		{"", "Engineer", "Acme"},
		{"Ana", "", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		got := Fallback(tc.name, tc.role, tc.company)
		if strings.Contains(got, "{{") || strings.Contains(got, "}}") {
			t.Errorf("placeholder leaked for %+v: %q", tc, got)
		}
		if strings.Contains(got, "None") || strings.Contains(got, "<nil>") {
			t.Errorf("nil leaked for %+v: %q", tc, got)
		}
		if strings.Contains(got, "  ") {
			t.Errorf("whitespace not collapsed for %+v: %q", tc, got)
		}
	}
}

func TestPersonalizeTemplate(t *testing.T) {
	cases := []struct {
		template string
		tokens   map[string]string
		want     string
	}{
		{"Hi {{name}}", map[string]string{"name": "Ana"}, "Hi Ana"},
		{"Hi {{name}}", map[string]string{}, "Hi"},
		{"Hi {{name}}", nil, "Hi"},
		{"{{greeting}} {{name}}, re {{topic}}", map[string]string{"name": "Ana"}, "Ana, re"},
		{"no tokens here", map[string]string{"name": "Ana"}, "no tokens here"},
	}
	for _, tc := range cases {
		if got := PersonalizeTemplate(tc.template, tc.tokens); got != tc.want {
			t.Errorf("PersonalizeTemplate(%q, %v) = %q, want %q", tc.template, tc.tokens, got, tc.want)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{"a  b\t c\n\nd", "a b c d"},
		{"already clean", "already clean"},
	}
	for _, tc := range cases {
		if got := SanitizeText(tc.in); got != tc.want {
			t.Errorf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFirstName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Ana Silva", "Ana"},
		{"  Ana   Silva ", "Ana"},
		{"Cher", "Cher"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := FirstName(tc.in); got != tc.want {
			t.Errorf("FirstName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisabledOpenAIGeneratorErrors(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	g := NewOpenAIGenerator("gpt-4o-mini")
	if _, err := g.Generate(context.Background(), "hello"); !errors.Is(err, errNotConfigured) {
		t.Fatalf("expected not-configured error, got %v", err)
	}
}
