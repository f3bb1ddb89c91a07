package views

import (
	"regexp"
	"strings"
)

// nonAlnumRun matches one or more characters that aren't lowercase
// letters or digits, so DeriveSlug can collapse each run to one hyphen.
var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveSlug converts a view's display name into its id: lowercase,
// every run of non-alphanumeric characters becomes a single hyphen,
// leading/trailing hyphens are trimmed.
func DeriveSlug(name string) string {
	lowered := strings.ToLower(name)
	slug := nonAlnumRun.ReplaceAllString(lowered, "-")
	return strings.Trim(slug, "-")
}
