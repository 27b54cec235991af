package feed

import (
	"strings"
	"unicode"
)

// NormalizeTitle reduces a human title to its lookup key: lower-cased,
// apostrophes stripped, every run of non-alphanumeric characters collapsed
// to a single space, leading and trailing space trimmed.
//
//	NormalizeTitle("Limited-Time Deals!") == "limited time deals"
//	NormalizeTitle("What's New")          == "whats new"
func NormalizeTitle(title string) string {
	lower := strings.ToLower(title)
	lower = apostrophes.Replace(lower)

	var b strings.Builder
	b.Grow(len(lower))
	pendingSpace := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// apostrophes covers both the ASCII apostrophe and the right single
// quotation mark mobile keyboards insert.
var apostrophes = strings.NewReplacer("'", "", "’", "")

// builtinAliases maps normalized alternate titles to canonical slugs.
// Keys must already be in normalized form. Marketing copy, push payloads,
// and older app versions all address sections by loose names; this table
// absorbs the known synonyms.
func builtinAliases() map[string]Slug {
	return map[string]Slug{
		"deals":             SlugLimitedTimeDeals,
		"hot deals":         SlugLimitedTimeDeals,
		"on sale":           SlugLimitedTimeDeals,
		"sale":              SlugLimitedTimeDeals,
		"bestsellers":       SlugBestSellers,
		"top sellers":       SlugBestSellers,
		"most popular":      SlugBestSellers,
		"categories":        SlugCategories,
		"browse categories": SlugCategories,
		"whats new":         SlugNewArrivals,
		"new in":            SlugNewArrivals,
		"just in":           SlugNewArrivals,
		"trending":          SlugTrending,
		"popular now":       SlugTrending,
	}
}

// ResolveSlug maps a free-text section title (from a deep link or banner
// action) to a canonical slug. Resolution order: the alias table first,
// then the normalized titles of the layout's own sections. The boolean is
// false when nothing matches; resolution never fails with an error.
func (l Layout) ResolveSlug(title string) (Slug, bool) {
	key := NormalizeTitle(title)
	if key == "" {
		return "", false
	}

	if slug, ok := l.Aliases[key]; ok {
		return slug, true
	}

	for _, section := range l.Sections {
		if NormalizeTitle(section.Title) == key {
			return section.Slug, true
		}
	}

	return "", false
}
