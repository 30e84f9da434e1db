package parser

import (
	"regexp"
	"strings"

	"github.com/doeshing/intentshell/internal/domain"
)

var (
	envVarRe    = regexp.MustCompile(`^%([A-Za-z_][A-Za-z0-9_]*)%$`)
	extensionRe = regexp.MustCompile(`\.(txt|pdf|doc|docx|jpg|jpeg|png|gif|log|json|yaml|yml|xml|csv|md|zip|tar|gz|go|py|sh|exe)$`)
	integerRe   = regexp.MustCompile(`^\d+$`)
)

// Extract pulls structured entities out of raw input text. The output is
// ordered by first occurrence, each token yields at most one entity, and the
// whole pass scans the input exactly once, independent of catalog size.
//
// Resolution of env_var and clipboard_ref entities is deferred to execution
// time; they leave here with Resolved=false.
func Extract(input string) []domain.Entity {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}

	var entities []domain.Entity
	for i, field := range fields {
		token := strings.Trim(field, `"'`)
		token = strings.TrimRight(token, ".,!?;:")
		if token == "" {
			continue
		}

		switch {
		case envVarRe.MatchString(token):
			name := envVarRe.FindStringSubmatch(token)[1]
			entities = append(entities, domain.Entity{
				Kind:    domain.EntityEnvVar,
				RawText: name,
			})
		case strings.EqualFold(token, "clipboard") || strings.EqualFold(token, "that"):
			entities = append(entities, domain.Entity{
				Kind:    domain.EntityClipboardRef,
				RawText: token,
			})
		case strings.ContainsAny(token, `/\`):
			entities = append(entities, domain.Entity{
				Kind:          domain.EntityPath,
				RawText:       token,
				ResolvedValue: token,
				Resolved:      true,
			})
		case extensionRe.MatchString(strings.ToLower(token)):
			ext := extensionRe.FindStringSubmatch(strings.ToLower(token))[1]
			entities = append(entities, domain.Entity{
				Kind:          domain.EntityFileExtension,
				RawText:       token,
				ResolvedValue: ext,
				Resolved:      true,
			})
		case i == len(fields)-1 && integerRe.MatchString(token):
			// Trailing standalone integer, e.g. "kill process 1234".
			entities = append(entities, domain.Entity{
				Kind:          domain.EntityNumericLit,
				RawText:       token,
				ResolvedValue: token,
				Resolved:      true,
			})
		}
	}
	return entities
}
