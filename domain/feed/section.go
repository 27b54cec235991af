package feed

import (
	"fmt"

	"regimen/domain/core"
)

// Slug is the canonical machine-readable identifier for a section,
// distinct from its display title.
type Slug string

// String returns the string representation
func (s Slug) String() string {
	return string(s)
}

// IsEmpty checks if the slug is empty
func (s Slug) IsEmpty() bool {
	return s == ""
}

// SectionKind defines how a section renders on the home screen
type SectionKind string

const (
	KindBanner     SectionKind = "banner"
	KindCategories SectionKind = "categories"
	KindShowcase   SectionKind = "showcase"
)

// Canonical home screen slugs. The default layout renders them in this
// order; scroll-target indices are derived from whatever order the active
// layout declares.
const (
	SlugBanner           Slug = "banner"
	SlugCategories       Slug = "categories"
	SlugBestSellers      Slug = "best-sellers"
	SlugLimitedTimeDeals Slug = "limited-time-deals"
	SlugNewArrivals      Slug = "new-arrivals"
	SlugTrending         Slug = "trending"
)

// Section is a named, ordered, displayable unit of the home screen with a
// stable slug and a human title.
type Section struct {
	Slug  Slug        `json:"slug"`
	Title string      `json:"title"`
	Kind  SectionKind `json:"kind"`
	Blurb string      `json:"blurb,omitempty"` // optional markdown shown under the title
}

// Layout is the ordered section list plus the alias table used for title
// resolution. Layouts are immutable value objects; reloading produces a
// fresh Layout rather than mutating the current one.
type Layout struct {
	Sections []Section       `json:"sections"`
	Aliases  map[string]Slug `json:"aliases,omitempty"`
}

// DefaultLayout returns the built-in home screen layout. It is rebuilt on
// every call so callers can never mutate shared state.
func DefaultLayout() Layout {
	return Layout{
		Sections: []Section{
			{Slug: SlugBanner, Title: "Featured", Kind: KindBanner},
			{Slug: SlugCategories, Title: "Shop by Category", Kind: KindCategories},
			{Slug: SlugBestSellers, Title: "Best Sellers", Kind: KindShowcase},
			{Slug: SlugLimitedTimeDeals, Title: "Limited-Time Deals", Kind: KindShowcase},
			{Slug: SlugNewArrivals, Title: "New Arrivals", Kind: KindShowcase},
			{Slug: SlugTrending, Title: "Trending Now", Kind: KindShowcase},
		},
		Aliases: builtinAliases(),
	}
}

// Validate checks the layout for duplicate slugs, missing fields, and
// unknown section kinds.
func (l Layout) Validate() error {
	if len(l.Sections) == 0 {
		return core.NewLayoutError("", "layout has no sections")
	}
	seen := make(map[Slug]bool, len(l.Sections))
	for _, section := range l.Sections {
		if section.Slug.IsEmpty() {
			return core.NewLayoutError(string(section.Slug), "slug is required")
		}
		if section.Title == "" {
			return core.NewLayoutError(string(section.Slug), "title is required")
		}
		switch section.Kind {
		case KindBanner, KindCategories, KindShowcase:
		default:
			return core.NewLayoutError(string(section.Slug), fmt.Sprintf("unknown kind %q", section.Kind))
		}
		if seen[section.Slug] {
			return fmt.Errorf("%w: %s", core.ErrDuplicateSlug, section.Slug)
		}
		seen[section.Slug] = true
	}
	return nil
}

// Position returns the zero-based position of a slug in the canonical
// section order, before any empty sections are dropped at render time.
func (l Layout) Position(slug Slug) (int, bool) {
	for i, section := range l.Sections {
		if section.Slug == slug {
			return i, true
		}
	}
	return 0, false
}

// Slugs returns the ordered slug sequence of the layout
func (l Layout) Slugs() []string {
	slugs := make([]string, len(l.Sections))
	for i, section := range l.Sections {
		slugs[i] = string(section.Slug)
	}
	return slugs
}

// Hash fingerprints the ordered slug sequence
func (l Layout) Hash() core.LayoutHash {
	return core.ComputeLayoutHash(l.Slugs())
}
