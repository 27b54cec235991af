package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"regimen/domain/catalog"
	"regimen/domain/core"
)

// CatalogGeneratorConfig configures the demo catalog generator
type CatalogGeneratorConfig struct {
	ProductCount  int     `json:"product_count"`
	DealCount     int     `json:"deal_count"`
	SalesDays     int     `json:"sales_days"`
	TrendingShare float64 `json:"trending_share"` // fraction of products with rising sales
	Seed          int64   `json:"seed"`
}

// DefaultCatalogConfig returns sensible defaults for demo catalog generation
func DefaultCatalogConfig() CatalogGeneratorConfig {
	return CatalogGeneratorConfig{
		ProductCount:  60,
		DealCount:     8,
		SalesDays:     21,
		TrendingShare: 0.15,
		Seed:          42,
	}
}

// Product name pools per category. Names may repeat across brands; catalog
// numbers are the identity.
var catalogBrands = []string{
	"NutraWorks", "Pure Peak", "Fjord Naturals", "Verdant Labs", "Ironwood", "Solstice Health",
}

var catalogCategories = []string{
	"Vitamins", "Minerals", "Herbs & Botanicals", "Probiotics", "Omega-3 & Fish Oil", "Protein & Fitness",
}

var catalogNames = map[string][]string{
	"Vitamins": {
		"Vitamin D3 5000 IU", "Vitamin C 1000mg", "B-Complex", "Vitamin K2 MK-7", "Biotin 10000mcg", "Methylfolate 800mcg",
	},
	"Minerals": {
		"Magnesium Glycinate 400mg", "Zinc Picolinate 22mg", "Iron Bisglycinate 25mg", "Selenium 200mcg", "Calcium Citrate",
	},
	"Herbs & Botanicals": {
		"Ashwagandha KSM-66", "Turmeric Curcumin", "Rhodiola Rosea", "Milk Thistle", "Ginkgo Biloba",
	},
	"Probiotics": {
		"Probiotic 50 Billion CFU", "Saccharomyces Boulardii", "Daily Probiotic", "Probiotic + Prebiotic",
	},
	"Omega-3 & Fish Oil": {
		"Triple Strength Omega-3", "Krill Oil 1000mg", "Algae DHA", "Cod Liver Oil",
	},
	"Protein & Fitness": {
		"Whey Isolate Vanilla", "Creatine Monohydrate", "Collagen Peptides", "Plant Protein Chocolate", "Electrolyte Mix",
	},
}

// Base list price in cents per category, before per-product variation
var catalogBasePrice = map[string]int64{
	"Vitamins":           1499,
	"Minerals":           1799,
	"Herbs & Botanicals": 2199,
	"Probiotics":         2999,
	"Omega-3 & Fish Oil": 2499,
	"Protein & Fitness":  3499,
}

// CatalogDataGenerator produces a deterministic demo catalog: products
// across the supplement categories, a handful of active deals, and daily
// sales series shaped so that a known share of products is trending.
type CatalogDataGenerator struct {
	config CatalogGeneratorConfig
	rng    *rand.Rand
	now    time.Time
}

// NewCatalogDataGenerator creates a generator seeded from the config.
// The clock is pinned to the current hour so equal seeds produce equal
// batches within a run.
func NewCatalogDataGenerator(config CatalogGeneratorConfig) *CatalogDataGenerator {
	return &CatalogDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		now:    time.Now().UTC().Truncate(time.Hour),
	}
}

// GenerateBatch generates a complete import batch
func (g *CatalogDataGenerator) GenerateBatch() (*catalog.ImportBatch, error) {
	if g.config.ProductCount <= 0 {
		return nil, fmt.Errorf("product count must be positive")
	}
	if g.config.DealCount > g.config.ProductCount {
		return nil, fmt.Errorf("deal count %d exceeds product count %d", g.config.DealCount, g.config.ProductCount)
	}

	batch := &catalog.ImportBatch{}

	rankOrder := g.rng.Perm(g.config.ProductCount)
	for i := 0; i < g.config.ProductCount; i++ {
		batch.Products = append(batch.Products, g.product(i, rankOrder[i]+1))
	}

	for _, idx := range g.rng.Perm(g.config.ProductCount)[:g.config.DealCount] {
		batch.Deals = append(batch.Deals, g.deal(batch.Products[idx]))
	}

	if g.config.SalesDays > 0 {
		for i := range batch.Products {
			batch.Sales = append(batch.Sales, g.salesSeries(batch.Products[i])...)
		}
	}

	return batch, nil
}

func (g *CatalogDataGenerator) product(i, salesRank int) catalog.Product {
	category := catalogCategories[g.rng.Intn(len(catalogCategories))]
	names := catalogNames[category]
	name := names[g.rng.Intn(len(names))]
	brand := catalogBrands[g.rng.Intn(len(catalogBrands))]

	// Vary the list price around the category base, ending in .99
	price := catalogBasePrice[category] + int64(g.rng.Intn(21)-10)*100
	if price < 499 {
		price = 499
	}
	price = price/100*100 + 99

	// Ratings skew high, the way live review averages do
	rating := float64(35+g.rng.Intn(16)) / 10

	return catalog.Product{
		CatalogNumber: int64(1001 + i),
		Name:          name,
		Brand:         brand,
		Category:      category,
		Description:   fmt.Sprintf("**%s** by %s.", name, brand),
		PriceCents:    price,
		Rating:        rating,
		SalesRank:     salesRank,
	}
}

// deal discounts the product 15-40% over a window that contains now, with
// some windows ending within a day so banner urgency shows up in demos
func (g *CatalogDataGenerator) deal(product catalog.Product) catalog.DealRow {
	discount := 0.15 + g.rng.Float64()*0.25
	price := int64(float64(product.PriceCents) * (1 - discount))
	price = price/100*100 + 99
	if price >= product.PriceCents {
		price = product.PriceCents - 100
	}

	startsAt := g.now.Add(-time.Duration(12+g.rng.Intn(60)) * time.Hour)
	endsAt := g.now.Add(time.Duration(6+g.rng.Intn(162)) * time.Hour)

	return catalog.DealRow{
		CatalogNumber: product.CatalogNumber,
		PriceCents:    price,
		Window:        core.Window{StartsAt: startsAt, EndsAt: endsAt},
	}
}

// salesSeries generates one sales pattern per product: rising for the
// trending share, fading for a matching share, steady noise for the rest
func (g *CatalogDataGenerator) salesSeries(product catalog.Product) []catalog.SalesRow {
	pattern := g.rng.Float64()
	base := 3 + g.rng.Intn(12)
	slope := 1 + g.rng.Intn(3)

	rows := make([]catalog.SalesRow, 0, g.config.SalesDays)
	for d := 0; d < g.config.SalesDays; d++ {
		units := base + g.rng.Intn(3)
		switch {
		case pattern < g.config.TrendingShare:
			units = base + slope*d + g.rng.Intn(2)
		case pattern > 1-g.config.TrendingShare:
			units = base - slope*d/2
			if units < 0 {
				units = 0
			}
		}

		day := g.now.AddDate(0, 0, -(g.config.SalesDays - 1 - d))
		rows = append(rows, catalog.SalesRow{
			CatalogNumber: product.CatalogNumber,
			Day:           time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Units:         units,
		})
	}
	return rows
}
