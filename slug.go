package catalog

import (
	"regexp"
	"strings"
)

const (
	slugMinLen = 2
	slugMaxLen = 140
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugDashRun = regexp.MustCompile(`[^a-z0-9]+`)

	// German storefront names lose meaning under generic Unicode stripping
	// ("Kräuter" must become "kraeuter", not "kruter"), so the fold table is
	// a small fixed substitution rather than a normalization pass.
	slugFolder = strings.NewReplacer(
		"ä", "ae",
		"ö", "oe",
		"ü", "ue",
		"Ä", "Ae",
		"Ö", "Oe",
		"Ü", "Ue",
		"ß", "ss",
	)
)

// Slugify derives the canonical URL slug for a product name or slug
// candidate: fold locale characters, lowercase, collapse every run of
// non-alphanumerics into a single dash, and trim boundary dashes. The
// function is idempotent; an already canonical slug returns unchanged.
func Slugify(source string) string {
	s := slugFolder.Replace(source)
	s = strings.ToLower(s)
	s = slugDashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSlug reports whether s satisfies the canonical slug shape and length
// bounds. Out-of-bounds derived slugs are a validation failure, never
// silently truncated.
func ValidSlug(s string) bool {
	if len(s) < slugMinLen || len(s) > slugMaxLen {
		return false
	}
	return slugPattern.MatchString(s)
}
