package usecase

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var namePhrase = regexp.MustCompile(`(?i)(my name is|i am|this is|mera naam|mein)\s+(.+)`)

// ExtractName pulls a display name out of free text, title-cased.
func ExtractName(text string) string {
	text = strings.TrimSpace(text)
	if m := namePhrase.FindStringSubmatch(text); m != nil {
		return titleCase(strings.TrimSpace(m[2]))
	}
	return titleCase(text)
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
