package email

import (
	"context"
	"strings"

	"ultron_backend/platform/logger"
)

// Prompt configures composition of one email type: either an AI generation
// (system prompt + user template) or a fixed subject/body pair. All fields
// support {{variable}} substitution.
type Prompt struct {
	UseAI        bool
	SystemPrompt string
	UserTemplate string
	Subject      string
	Body         string
}

// Composed is a ready-to-send subject/body pair.
type Composed struct {
	Subject string
	Body    string
}

// TextGenerator produces text from a system instruction and a prompt.
// Satisfied by the Gemini platform client.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// Composer turns a prompt config plus prospect variables into a subject/body
// pair. Composition never fails: when AI generation errors or is disabled the
// fixed template pair is used instead, falling back to the default prompt for
// any field the tenant left blank.
type Composer struct {
	gen TextGenerator
	log *logger.Logger
}

func NewComposer(gen TextGenerator, log *logger.Logger) *Composer {
	return &Composer{gen: gen, log: log}
}

// Compose renders the email for a prompt config. fallback supplies defaults
// for fields missing from prompt (typically a built-in per-workflow default).
func (c *Composer) Compose(ctx context.Context, prompt, fallback Prompt, vars map[string]string) Composed {
	merged := mergePrompt(prompt, fallback)

	if merged.UseAI && c.gen != nil {
		rendered := Substitute(merged.UserTemplate, vars)
		output, err := c.gen.GenerateText(ctx, merged.SystemPrompt, rendered)
		if err == nil {
			if composed, ok := parseGenerated(output); ok {
				return composed
			}
			if c.log != nil {
				c.log.Warn("generated email missing subject line, using fixed template")
			}
		} else if c.log != nil {
			c.log.Warn("email generation failed, using fixed template", "error", err)
		}
	}

	return Composed{
		Subject: Substitute(merged.Subject, vars),
		Body:    Substitute(merged.Body, vars),
	}
}

func mergePrompt(prompt, fallback Prompt) Prompt {
	merged := prompt
	if merged.SystemPrompt == "" {
		merged.SystemPrompt = fallback.SystemPrompt
	}
	if merged.UserTemplate == "" {
		merged.UserTemplate = fallback.UserTemplate
	}
	if merged.Subject == "" {
		merged.Subject = fallback.Subject
	}
	if merged.Body == "" {
		merged.Body = fallback.Body
	}
	return merged
}

// Substitute replaces {{name}} placeholders with the matching variable value.
// Unknown placeholders are left untouched.
func Substitute(template string, vars map[string]string) string {
	if template == "" || len(vars) == 0 {
		return template
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// parseGenerated splits a generated email into subject and body. The model is
// instructed to put the subject on a first line prefixed "Objet:"; anything
// else is rejected so the caller can fall back to the fixed template.
func parseGenerated(output string) (Composed, bool) {
	trimmed := strings.TrimSpace(output)
	line, rest, found := strings.Cut(trimmed, "\n")
	if !found {
		return Composed{}, false
	}

	lower := strings.ToLower(line)
	var subject string
	switch {
	case strings.HasPrefix(lower, "objet:"):
		subject = strings.TrimSpace(line[len("objet:"):])
	case strings.HasPrefix(lower, "subject:"):
		subject = strings.TrimSpace(line[len("subject:"):])
	default:
		return Composed{}, false
	}

	body := strings.TrimSpace(rest)
	if subject == "" || body == "" {
		return Composed{}, false
	}

	return Composed{Subject: subject, Body: body}, true
}
