package reconcile

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase normalizes a project title: each word capitalized, the rest
// lower case.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
