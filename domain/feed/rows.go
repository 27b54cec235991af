package feed

// RowKind distinguishes the renderable row types of the home screen list
type RowKind string

const (
	RowBanner       RowKind = "banner"
	RowCategoryGrid RowKind = "category_grid"
	RowShowcase     RowKind = "showcase"
)

// BannerAction is what tapping the hero banner does. ActionScrollToSection
// carries a free-text section title that the client feeds back through the
// resolver; ActionOpenURL opens an external page.
type BannerAction struct {
	Type   string `json:"type"` // "scroll-to-section" or "open-url"
	Target string `json:"target"`
}

const (
	ActionScrollToSection = "scroll-to-section"
	ActionOpenURL         = "open-url"
)

// BannerContent is the hero banner payload
type BannerContent struct {
	Headline string        `json:"headline"`
	Blurb    string        `json:"blurb,omitempty"` // markdown
	ImageURL string        `json:"image_url,omitempty"`
	Action   *BannerAction `json:"action,omitempty"`
}

// CategoryTile is one cell of the category grid
type CategoryTile struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProductCard is the showcase-row view of a product
type ProductCard struct {
	ID             string  `json:"id"`
	CatalogNumber  int64   `json:"catalog_number"`
	Name           string  `json:"name"`
	Brand          string  `json:"brand"`
	PriceCents     int64   `json:"price_cents"`
	DealPriceCents *int64  `json:"deal_price_cents,omitempty"`
	Rating         float64 `json:"rating"`
}

// Row is one rendered unit of the virtualized home list. Exactly one of
// the payload fields is populated, according to Kind.
type Row struct {
	Kind       RowKind        `json:"kind"`
	Slug       Slug           `json:"slug"`
	Title      string         `json:"title"`
	Blurb      string         `json:"blurb,omitempty"`
	Banner     *BannerContent `json:"banner,omitempty"`
	Categories []CategoryTile `json:"categories,omitempty"`
	Products   []ProductCard  `json:"products,omitempty"`
}

// Content holds the loaded data the row builder draws from
type Content struct {
	Banner    *BannerContent
	Tiles     []CategoryTile
	Showcases map[Slug][]ProductCard
}

// BuildRows assembles the rendered row sequence from the layout and the
// loaded content. The build is deterministic: layout order is preserved,
// and sections with nothing to show (nil banner, no tiles, empty showcase)
// are dropped so row indices always match what the client displays.
func BuildRows(layout Layout, content Content) []Row {
	rows := make([]Row, 0, len(layout.Sections))
	for _, section := range layout.Sections {
		switch section.Kind {
		case KindBanner:
			if content.Banner == nil {
				continue
			}
			rows = append(rows, Row{
				Kind:   RowBanner,
				Slug:   section.Slug,
				Title:  section.Title,
				Blurb:  section.Blurb,
				Banner: content.Banner,
			})
		case KindCategories:
			if len(content.Tiles) == 0 {
				continue
			}
			rows = append(rows, Row{
				Kind:       RowCategoryGrid,
				Slug:       section.Slug,
				Title:      section.Title,
				Blurb:      section.Blurb,
				Categories: content.Tiles,
			})
		case KindShowcase:
			products := content.Showcases[section.Slug]
			if len(products) == 0 {
				continue
			}
			rows = append(rows, Row{
				Kind:     RowShowcase,
				Slug:     section.Slug,
				Title:    section.Title,
				Blurb:    section.Blurb,
				Products: products,
			})
		}
	}
	return rows
}

// IndexOf scans the rendered row sequence for the given slug and returns
// its zero-based position. The boolean is false when the section is not in
// the current render, so callers cannot mistake row 0 for a failed lookup.
func IndexOf(slug Slug, rows []Row) (int, bool) {
	for i, row := range rows {
		if row.Slug == slug {
			return i, true
		}
	}
	return 0, false
}

// ScrollTarget points the client list at a resolved row position. It is
// produced at most once per scroll_to parameter and never stored, so a
// screen refocus without the parameter cannot repeat the scroll.
type ScrollTarget struct {
	Index  int  `json:"index"`
	Smooth bool `json:"smooth"`
}

// ResolveScrollTarget runs the full pipeline: title resolution against the
// layout, then index lookup in the rendered rows. Both steps must succeed;
// a miss at either stage yields no target and no error.
func ResolveScrollTarget(layout Layout, rows []Row, title string) (ScrollTarget, bool) {
	slug, ok := layout.ResolveSlug(title)
	if !ok {
		return ScrollTarget{}, false
	}
	index, ok := IndexOf(slug, rows)
	if !ok {
		return ScrollTarget{}, false
	}
	return ScrollTarget{Index: index, Smooth: true}, true
}
