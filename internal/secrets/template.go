package secrets

import (
	"fmt"
	"regexp"

	"github.com/jimvekemans/dbt-academy/internal/config"
)

// Profile values embed placeholders of the form {{ env_var('NAME') }} or
// {{ env_var('NAME', 'default') }}. Anything else between {{ }} is a
// template error.
var (
	placeholderRe = regexp.MustCompile(`\{\{[^}]*\}\}`)
	envVarRe      = regexp.MustCompile(`^\{\{\s*env_var\(\s*['"]([^'"]+)['"]\s*(?:,\s*['"]([^'"]*)['"]\s*)?\)\s*\}\}$`)
)

// Render resolves env_var placeholders in input against the store. On a
// template error (a placeholder that is not a well-formed env_var call) the
// error is logged and the original input is returned unchanged.
func (s *Store) Render(input string) string {
	rendered := input
	ok := true

	rendered = placeholderRe.ReplaceAllStringFunc(rendered, func(match string) string {
		groups := envVarRe.FindStringSubmatch(match)
		if groups == nil {
			s.logger.Error(fmt.Sprintf("Error in template: unsupported expression %s", match))
			ok = false
			return match
		}
		name, fallback := groups[1], groups[2]
		if value, found := s.Get(name); found {
			return value
		}
		return fallback
	})

	if !ok {
		return input
	}
	return rendered
}

// ParseTarget renders every value of a target output, producing the raw
// string mapping fed to connection-detail normalization. Non-string values
// are stringified.
func (s *Store) ParseTarget(output config.Output) map[string]string {
	details := make(map[string]string, len(output))
	for key, value := range output {
		if str, isStr := value.(string); isStr {
			details[key] = s.Render(str)
			continue
		}
		details[key] = fmt.Sprint(value)
	}
	return details
}
