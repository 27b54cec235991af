package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"regimen/domain/catalog"
	"regimen/domain/core"
	"regimen/domain/feed"
	"regimen/internal/layout"
	"regimen/ports"
)

// HomeService assembles the storefront home feed from the catalog, the
// active deals, and the section layout registry, with a disk snapshot as
// the stale fallback when a live source is down.
type HomeService struct {
	products           ports.ProductRepository
	deals              ports.DealRepository
	snapshots          ports.SnapshotStore
	registry           *layout.Registry
	storefront         core.StorefrontID
	showcaseSize       int
	trendingWindowDays int
	logger             *zap.Logger
}

func NewHomeService(
	products ports.ProductRepository,
	deals ports.DealRepository,
	snapshots ports.SnapshotStore,
	registry *layout.Registry,
	storefront core.StorefrontID,
	showcaseSize int,
	trendingWindowDays int,
	logger *zap.Logger,
) *HomeService {
	if showcaseSize <= 0 {
		showcaseSize = 10
	}
	if trendingWindowDays <= 0 {
		trendingWindowDays = 14
	}
	return &HomeService{
		products:           products,
		deals:              deals,
		snapshots:          snapshots,
		registry:           registry,
		storefront:         storefront,
		showcaseSize:       showcaseSize,
		trendingWindowDays: trendingWindowDays,
		logger:             logger,
	}
}

// HomeView is the assembled home screen response. ScrollTarget is set at
// most once per request and only when the requested section resolved and
// is present in Rows; clients scroll on it and never persist it.
type HomeView struct {
	Storefront   core.StorefrontID  `json:"storefront"`
	Rows         []feed.Row         `json:"rows"`
	LayoutHash   core.LayoutHash    `json:"layout_hash"`
	AssembledAt  time.Time          `json:"assembled_at"`
	Stale        bool               `json:"stale,omitempty"`
	ScrollTarget *feed.ScrollTarget `json:"scroll_target,omitempty"`
	RuntimeMs    int64              `json:"runtime_ms"`
}

// NavigationView is a resolved section navigation response
type NavigationView struct {
	Slug   feed.Slug         `json:"slug"`
	Target feed.ScrollTarget `json:"target"`
	Stale  bool              `json:"stale,omitempty"`
}

// AssembleHome loads every home data source concurrently, builds the row
// sequence, and resolves the optional scroll title against the rows that
// were actually rendered. All sources must succeed; on failure the last
// snapshot is served instead, marked stale. The snapshot is refreshed
// after every successful assembly.
func (s *HomeService) AssembleHome(ctx context.Context, scrollTitle string) (*HomeView, error) {
	startTime := time.Now()
	activeLayout := s.registry.Current()

	feedContent, err := s.loadContent(ctx)
	if err != nil {
		view, fallbackErr := s.serveSnapshot(activeLayout, scrollTitle, err)
		if fallbackErr != nil {
			return nil, fallbackErr
		}
		view.RuntimeMs = time.Since(startTime).Milliseconds()
		return view, nil
	}

	rows := feed.BuildRows(activeLayout, *feedContent)
	assembledAt := time.Now()
	s.saveSnapshot(feed.Snapshot{Rows: rows, LayoutHash: activeLayout.Hash(), AssembledAt: assembledAt})

	view := &HomeView{
		Storefront:  s.storefront,
		Rows:        rows,
		LayoutHash:  activeLayout.Hash(),
		AssembledAt: assembledAt,
	}
	if scrollTitle != "" {
		if target, ok := feed.ResolveScrollTarget(activeLayout, rows, scrollTitle); ok {
			view.ScrollTarget = &target
		}
	}
	view.RuntimeMs = time.Since(startTime).Milliseconds()
	return view, nil
}

// Sections returns the active layout's section list in display order
func (s *HomeService) Sections() []feed.Section {
	return s.registry.Current().Sections
}

// Navigate resolves a free-text section title to a scroll target in the
// current home render. ok is false when the title matches no section or
// the section has nothing to show right now.
func (s *HomeService) Navigate(ctx context.Context, title string) (*NavigationView, bool, error) {
	activeLayout := s.registry.Current()
	slug, ok := activeLayout.ResolveSlug(title)
	if !ok {
		return nil, false, nil
	}

	view, err := s.AssembleHome(ctx, title)
	if err != nil {
		return nil, false, fmt.Errorf("failed to assemble rows for navigation: %w", err)
	}
	if view.ScrollTarget == nil {
		return nil, false, nil
	}
	return &NavigationView{Slug: slug, Target: *view.ScrollTarget, Stale: view.Stale}, true, nil
}

// loadContent fetches all home data sources under one errgroup. The
// content is composed only after the joint wait, so a failed source can
// never produce a partially populated screen.
func (s *HomeService) loadContent(ctx context.Context) (*feed.Content, error) {
	var (
		tiles        []feed.CategoryTile
		bestSellers  []catalog.Product
		newArrivals  []catalog.Product
		trending     []catalog.Product
		activeDeals  []catalog.Deal
		dealProducts []catalog.Product
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := s.products.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		tiles = categoryTiles(categories)
		return nil
	})

	g.Go(func() error {
		var err error
		bestSellers, err = s.products.ListBestSellers(gctx, s.showcaseSize)
		if err != nil {
			return fmt.Errorf("failed to load best sellers: %w", err)
		}
		newArrivals, err = s.products.ListNewArrivals(gctx, s.showcaseSize)
		if err != nil {
			return fmt.Errorf("failed to load new arrivals: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		series, err := s.products.ListDailySales(gctx, s.trendingWindowDays)
		if err != nil {
			return fmt.Errorf("failed to load daily sales: %w", err)
		}
		scores := catalog.TrendingScores(series)
		if len(scores) > s.showcaseSize {
			scores = scores[:s.showcaseSize]
		}
		if len(scores) == 0 {
			return nil
		}
		ids := make([]core.ProductID, 0, len(scores))
		for _, score := range scores {
			ids = append(ids, score.ProductID)
		}
		trending, err = s.products.ListByIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load trending products: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		activeDeals, err = s.deals.ListActive(gctx, time.Now())
		if err != nil {
			return fmt.Errorf("failed to load active deals: %w", err)
		}
		if len(activeDeals) == 0 {
			return nil
		}
		ids := make([]core.ProductID, 0, len(activeDeals))
		for _, deal := range activeDeals {
			ids = append(ids, deal.ProductID)
		}
		dealProducts, err = s.products.ListByIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load deal products: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dealPriceByProduct := make(map[core.ProductID]int64, len(activeDeals))
	for _, deal := range activeDeals {
		dealPriceByProduct[deal.ProductID] = deal.PriceCents
	}

	return &feed.Content{
		Banner: s.banner(activeDeals, dealProducts, newArrivals),
		Tiles:  tiles,
		Showcases: map[feed.Slug][]feed.ProductCard{
			feed.SlugBestSellers:      productCards(bestSellers, dealPriceByProduct),
			feed.SlugLimitedTimeDeals: productCards(dealProducts, dealPriceByProduct),
			feed.SlugNewArrivals:      productCards(newArrivals, dealPriceByProduct),
			feed.SlugTrending:         productCards(trending, dealPriceByProduct),
		},
	}, nil
}

// banner picks the hero banner content. Deals win over new arrivals;
// ListActive orders by soonest expiry, so the first deal is the most
// urgent one. The banner action carries the section title as free text,
// which the client feeds back through the scroll resolver.
func (s *HomeService) banner(activeDeals []catalog.Deal, dealProducts []catalog.Product, newArrivals []catalog.Product) *feed.BannerContent {
	if len(activeDeals) > 0 {
		deal := activeDeals[0]
		for _, product := range dealProducts {
			if product.ID != deal.ProductID {
				continue
			}
			return &feed.BannerContent{
				Headline: fmt.Sprintf("Deal of the day: %s", product.Name),
				Blurb:    fmt.Sprintf("Now **%s**, ends %s.", formatPrice(deal.PriceCents), deal.Window.EndsAt.Format("Jan 2")),
				Action:   &feed.BannerAction{Type: feed.ActionScrollToSection, Target: "Limited-Time Deals"},
			}
		}
	}
	if len(newArrivals) > 0 {
		return &feed.BannerContent{
			Headline: "Just landed",
			Blurb:    fmt.Sprintf("Fresh on the shelf: **%s**.", newArrivals[0].Name),
			Action:   &feed.BannerAction{Type: feed.ActionScrollToSection, Target: "New Arrivals"},
		}
	}
	return nil
}

func (s *HomeService) serveSnapshot(activeLayout feed.Layout, scrollTitle string, assembleErr error) (*HomeView, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("failed to assemble home feed: %w", assembleErr)
	}
	snapshot, err := s.snapshots.Load(s.storefront)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble home feed: %w", assembleErr)
	}

	s.logger.Warn("Serving stale home feed snapshot",
		zap.String("storefront", s.storefront.String()),
		zap.Time("assembled_at", snapshot.AssembledAt),
		zap.Error(assembleErr))

	view := &HomeView{
		Storefront:  s.storefront,
		Rows:        snapshot.Rows,
		LayoutHash:  snapshot.LayoutHash,
		AssembledAt: snapshot.AssembledAt,
		Stale:       true,
	}
	if scrollTitle != "" {
		if target, ok := feed.ResolveScrollTarget(activeLayout, snapshot.Rows, scrollTitle); ok {
			view.ScrollTarget = &target
		}
	}
	return view, nil
}

func (s *HomeService) saveSnapshot(snapshot feed.Snapshot) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(s.storefront, snapshot); err != nil {
		s.logger.Warn("Failed to save home feed snapshot",
			zap.String("storefront", s.storefront.String()),
			zap.Error(err))
	}
}

func categoryTiles(categories []catalog.Category) []feed.CategoryTile {
	tiles := make([]feed.CategoryTile, 0, len(categories))
	for _, category := range categories {
		tiles = append(tiles, feed.CategoryTile{Slug: category.Slug, Name: category.Name, Count: category.Count})
	}
	return tiles
}

func productCards(products []catalog.Product, dealPriceByProduct map[core.ProductID]int64) []feed.ProductCard {
	cards := make([]feed.ProductCard, 0, len(products))
	for _, product := range products {
		card := feed.ProductCard{
			ID:            product.ID.String(),
			CatalogNumber: product.CatalogNumber,
			Name:          product.Name,
			Brand:         product.Brand,
			PriceCents:    product.PriceCents,
			Rating:        product.Rating,
		}
		if price, ok := dealPriceByProduct[product.ID]; ok {
			card.DealPriceCents = &price
		}
		cards = append(cards, card)
	}
	return cards
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
