package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullContent returns content that lights up every default section.
func fullContent() Content {
	card := func(id string, n int64, name string) ProductCard {
		return ProductCard{ID: id, CatalogNumber: n, Name: name, Brand: "NaturaLab", PriceCents: 1999, Rating: 4.5}
	}
	return Content{
		Banner: &BannerContent{
			Headline: "Summer Wellness Event",
			Blurb:    "Up to **40% off** select stacks.",
			Action:   &BannerAction{Type: ActionScrollToSection, Target: "Limited-Time Deals"},
		},
		Tiles: []CategoryTile{
			{Slug: "vitamins", Name: "Vitamins", Count: 42},
			{Slug: "minerals", Name: "Minerals", Count: 17},
		},
		Showcases: map[Slug][]ProductCard{
			SlugBestSellers:      {card("p1", 101, "Omega-3 Fish Oil"), card("p2", 102, "Vitamin D3")},
			SlugLimitedTimeDeals: {card("p3", 103, "Magnesium Glycinate")},
			SlugNewArrivals:      {card("p4", 104, "Ashwagandha Root")},
			SlugTrending:         {card("p5", 105, "Creatine Monohydrate")},
		},
	}
}

func TestBuildRowsFullContent(t *testing.T) {
	layout := DefaultLayout()
	rows := BuildRows(layout, fullContent())

	require.Len(t, rows, len(layout.Sections))
	for i, section := range layout.Sections {
		assert.Equal(t, section.Slug, rows[i].Slug)
		assert.Equal(t, section.Title, rows[i].Title)
	}

	assert.Equal(t, RowBanner, rows[0].Kind)
	assert.Equal(t, RowCategoryGrid, rows[1].Kind)
	assert.Equal(t, RowShowcase, rows[2].Kind)

	// Canonical order: banner, categories, best-sellers, limited-time-deals.
	index, ok := IndexOf(SlugLimitedTimeDeals, rows)
	require.True(t, ok)
	assert.Equal(t, 3, index)
}

func TestBuildRowsSkipsEmptySections(t *testing.T) {
	layout := DefaultLayout()
	content := fullContent()
	content.Banner = nil
	delete(content.Showcases, SlugBestSellers)

	rows := BuildRows(layout, content)
	require.Len(t, rows, len(layout.Sections)-2)

	// With banner and best-sellers gone, deals moves up to row 1.
	index, ok := IndexOf(SlugLimitedTimeDeals, rows)
	require.True(t, ok)
	assert.Equal(t, 1, index)

	_, ok = IndexOf(SlugBanner, rows)
	assert.False(t, ok)
	_, ok = IndexOf(SlugBestSellers, rows)
	assert.False(t, ok)
}

func TestBuildRowsIsDeterministic(t *testing.T) {
	layout := DefaultLayout()
	content := fullContent()

	first := BuildRows(layout, content)
	second := BuildRows(layout, content)
	assert.Equal(t, first, second)
}

func TestIndexOfDistinguishesRowZeroFromMiss(t *testing.T) {
	rows := BuildRows(DefaultLayout(), fullContent())

	index, ok := IndexOf(SlugBanner, rows)
	require.True(t, ok)
	assert.Equal(t, 0, index)

	index, ok = IndexOf(Slug("gift-cards"), rows)
	assert.False(t, ok)
	assert.Equal(t, 0, index)
}

func TestResolveScrollTarget(t *testing.T) {
	layout := DefaultLayout()
	rows := BuildRows(layout, fullContent())

	t.Run("resolves title to rendered index", func(t *testing.T) {
		target, ok := ResolveScrollTarget(layout, rows, "LIMITED TIME DEALS")
		require.True(t, ok)
		assert.Equal(t, 3, target.Index)
		assert.True(t, target.Smooth)
	})

	t.Run("unknown title yields no target", func(t *testing.T) {
		_, ok := ResolveScrollTarget(layout, rows, "Flash Sale Extravaganza")
		assert.False(t, ok)
	})

	t.Run("resolvable title with unrendered section yields no target", func(t *testing.T) {
		content := fullContent()
		delete(content.Showcases, SlugTrending)
		thinned := BuildRows(layout, content)

		_, ok := ResolveScrollTarget(layout, thinned, "Trending Now")
		assert.False(t, ok)
	})
}

func TestScrollTargetRoundTripAllSections(t *testing.T) {
	layout := DefaultLayout()
	rows := BuildRows(layout, fullContent())

	// Every canonical title must come back to its own rendered position.
	for _, section := range layout.Sections {
		target, ok := ResolveScrollTarget(layout, rows, section.Title)
		require.True(t, ok, "section %q did not round-trip", section.Slug)

		expected, found := layout.Position(section.Slug)
		require.True(t, found)
		assert.Equal(t, expected, target.Index)
	}
}
