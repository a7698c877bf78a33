package stateful

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// slugFallback is the slug base used when a title has no ASCII letters or digits.
const slugFallback = "article"

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a URL-safe slug.
// "Hello World" -> "hello-world".
// "Café Society!" -> "cafe-society".
func Slugify(s string) string {
	// Decompose accented characters so their base letter survives.
	s = norm.NFKD.String(s)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// articleSlug builds the slug for a new article: the slugified title
// followed by a disambiguating sequence number.
func articleSlug(title string, seq int64) string {
	base := Slugify(title)
	if base == "" {
		base = slugFallback
	}
	return base + "-" + strconv.FormatInt(seq, 10)
}
