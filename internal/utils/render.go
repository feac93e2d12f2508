package utils

// render.go implements placeholder substitution for contract templates.
// Template bodies reference values with the literal {{token}} convention.
// Rendering replaces each referenced token with its HTML-escaped value.
// Tokens declared required must all be supplied; any other unresolved
// token is left literal so partially filled drafts can be re-rendered
// later without losing placeholders.

import (
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"
)

var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// ExtractTokens returns the distinct placeholder names referenced in a
// template body, in order of first appearance.
func ExtractTokens(content string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range tokenRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// UndeclaredTokens returns the tokens referenced in content that appear
// in none of the declared field lists, in order of first appearance. A
// template is only valid when every placeholder it references is
// declared as a required or variable field.
func UndeclaredTokens(content string, declared ...[]string) []string {
	known := map[string]bool{}
	for _, list := range declared {
		for _, name := range list {
			known[name] = true
		}
	}
	var out []string
	for _, name := range ExtractTokens(content) {
		if !known[name] {
			out = append(out, name)
		}
	}
	return out
}

// MissingRequired returns the required tokens that have no value in the
// supplied map, sorted for stable error messages.
func MissingRequired(required []string, values map[string]string) []string {
	var missing []string
	for _, name := range required {
		if v, ok := values[name]; !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// RenderTemplate substitutes placeholder values into content. It fails
// when any token listed in required has no value. Supplied values are
// HTML-escaped because template bodies are HTML fragments; tokens with
// no value that are not required stay literal.
func RenderTemplate(content string, required []string, values map[string]string) (string, error) {
	if missing := MissingRequired(required, values); len(missing) > 0 {
		return "", fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	out := tokenRe.ReplaceAllStringFunc(content, func(m string) string {
		name := tokenRe.FindStringSubmatch(m)[1]
		v, ok := values[name]
		if !ok {
			return m // leave unresolved optional tokens literal
		}
		return html.EscapeString(v)
	})
	return out, nil
}
