package email

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	output string
	err    error
	calls  int
}

func (f *fakeGenerator) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

var testVars = map[string]string{
	"prenom":       "Claire",
	"nom":          "Martin",
	"conseiller":   "Paul Dupont",
	"organisation": "Cabinet Dupont",
}

func TestComposeUsesGeneratedEmail(t *testing.T) {
	gen := &fakeGenerator{output: "Objet: Votre plaquette\n\nBonjour Claire,\n\nVoici notre plaquette."}
	composer := NewComposer(gen, nil)

	composed := composer.Compose(context.Background(), Prompt{UseAI: true}, DefaultPrompt(TypePlaquette), testVars)
	if composed.Subject != "Votre plaquette" {
		t.Fatalf("unexpected subject: %q", composed.Subject)
	}
	if !strings.HasPrefix(composed.Body, "Bonjour Claire,") {
		t.Fatalf("unexpected body: %q", composed.Body)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one generation call, got %d", gen.calls)
	}
}

func TestComposeFallsBackWhenGenerationFails(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	composer := NewComposer(gen, nil)

	composed := composer.Compose(context.Background(), Prompt{UseAI: true}, DefaultPrompt(TypePlaquette), testVars)
	if composed.Subject != "Votre plaquette Cabinet Dupont" {
		t.Fatalf("expected the substituted fixed template, got %q", composed.Subject)
	}
	if !strings.Contains(composed.Body, "Bonjour Claire,") || !strings.Contains(composed.Body, "Paul Dupont") {
		t.Fatalf("fixed body should be substituted: %q", composed.Body)
	}
}

func TestComposeFallsBackOnMalformedGeneration(t *testing.T) {
	// No "Objet:" first line: the output cannot be split into subject and body.
	gen := &fakeGenerator{output: "Bonjour Claire, voici notre plaquette."}
	composer := NewComposer(gen, nil)

	composed := composer.Compose(context.Background(), Prompt{UseAI: true}, DefaultPrompt(TypePlaquette), testVars)
	if composed.Subject != "Votre plaquette Cabinet Dupont" {
		t.Fatalf("expected the fixed template, got %q", composed.Subject)
	}
}

func TestComposeSkipsGenerationWhenDisabled(t *testing.T) {
	gen := &fakeGenerator{output: "Objet: ne devrait pas servir\n\ncorps"}
	composer := NewComposer(gen, nil)

	composed := composer.Compose(context.Background(), Prompt{UseAI: false}, DefaultPrompt(TypeRdvValide), testVars)
	if gen.calls != 0 {
		t.Fatal("generation must not run when the tenant disabled it")
	}
	if composed.Subject != "Confirmation de votre rendez-vous" {
		t.Fatalf("unexpected subject: %q", composed.Subject)
	}
}

func TestComposeWithoutGenerator(t *testing.T) {
	composer := NewComposer(nil, nil)

	composed := composer.Compose(context.Background(), Prompt{UseAI: true}, DefaultPrompt(TypeRappelRdv), map[string]string{"prenom": "Claire", "date_rdv": "05/09/2026 à 14h30"})
	if composed.Subject != "Rappel : votre rendez-vous du 05/09/2026 à 14h30" {
		t.Fatalf("unexpected subject: %q", composed.Subject)
	}
}

func TestComposeTenantOverridesBeatDefaults(t *testing.T) {
	composer := NewComposer(nil, nil)
	tenant := Prompt{Subject: "Plaquette {{organisation}}"}

	composed := composer.Compose(context.Background(), tenant, DefaultPrompt(TypePlaquette), testVars)
	if composed.Subject != "Plaquette Cabinet Dupont" {
		t.Fatalf("tenant subject should win, got %q", composed.Subject)
	}
	// Blank tenant fields fall back to the defaults.
	if !strings.Contains(composed.Body, "plaquette de présentation") {
		t.Fatalf("default body expected, got %q", composed.Body)
	}
}

func TestSubstitute(t *testing.T) {
	out := Substitute("Bonjour {{prenom}} {{nom}}, {{inconnu}}", testVars)
	if out != "Bonjour Claire Martin, {{inconnu}}" {
		t.Fatalf("unexpected substitution: %q", out)
	}
	if Substitute("", testVars) != "" {
		t.Fatal("empty template should stay empty")
	}
	if Substitute("{{prenom}}", nil) != "{{prenom}}" {
		t.Fatal("no variables means no substitution")
	}
}

func TestParseGenerated(t *testing.T) {
	cases := []struct {
		input       string
		wantSubject string
		wantOK      bool
	}{
		{"Objet: Bienvenue\n\nBonjour.", "Bienvenue", true},
		{"objet: minuscule\ncorps", "minuscule", true},
		{"Subject: english model\nbody", "english model", true},
		{"Pas d'objet ici\ncorps", "", false},
		{"Objet: sans corps\n", "", false},
		{"une seule ligne", "", false},
	}

	for _, tc := range cases {
		composed, ok := parseGenerated(tc.input)
		if ok != tc.wantOK {
			t.Fatalf("input %q: expected ok=%v, got %v", tc.input, tc.wantOK, ok)
		}
		if ok && composed.Subject != tc.wantSubject {
			t.Fatalf("input %q: expected subject %q, got %q", tc.input, tc.wantSubject, composed.Subject)
		}
	}
}
