package testkit

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regimen/adapters/excel"
	"regimen/domain/catalog"
	"regimen/domain/core"
)

func TestGenerateBatchIsDeterministic(t *testing.T) {
	config := DefaultCatalogConfig()

	first, err := NewCatalogDataGenerator(config).GenerateBatch()
	require.NoError(t, err)
	second, err := NewCatalogDataGenerator(config).GenerateBatch()
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("equal seeds produced different batches (-first +second):\n%s", diff)
	}
}

func TestGenerateBatchShape(t *testing.T) {
	config := DefaultCatalogConfig()
	batch, err := NewCatalogDataGenerator(config).GenerateBatch()
	require.NoError(t, err)

	require.Len(t, batch.Products, config.ProductCount)
	require.Len(t, batch.Deals, config.DealCount)
	assert.Len(t, batch.Sales, config.ProductCount*config.SalesDays)
	assert.Empty(t, batch.Issues)

	seen := make(map[int64]bool)
	priceByNumber := make(map[int64]int64)
	for _, product := range batch.Products {
		assert.False(t, seen[product.CatalogNumber], "catalog number %d repeats", product.CatalogNumber)
		seen[product.CatalogNumber] = true
		priceByNumber[product.CatalogNumber] = product.PriceCents

		assert.NotEmpty(t, product.Name)
		assert.GreaterOrEqual(t, product.Rating, 3.5)
		assert.LessOrEqual(t, product.Rating, 5.0)
		assert.Positive(t, product.PriceCents)
	}

	now := time.Now().UTC()
	for _, deal := range batch.Deals {
		assert.True(t, deal.Window.Contains(now), "deal window should contain now")
		assert.Less(t, deal.PriceCents, priceByNumber[deal.CatalogNumber], "deal must undercut the list price")
	}
}

func TestGenerateBatchTrendingIsDetectable(t *testing.T) {
	config := CatalogGeneratorConfig{
		ProductCount:  5,
		DealCount:     0,
		SalesDays:     10,
		TrendingShare: 1.0,
		Seed:          7,
	}
	batch, err := NewCatalogDataGenerator(config).GenerateBatch()
	require.NoError(t, err)

	series := make([]catalog.DailySales, 0, len(batch.Sales))
	for _, row := range batch.Sales {
		series = append(series, catalog.DailySales{
			ProductID: core.ProductID(fmt.Sprintf("p-%d", row.CatalogNumber)),
			Day:       row.Day,
			Units:     row.Units,
		})
	}

	scores := catalog.TrendingScores(series)
	require.Len(t, scores, config.ProductCount, "every product should trend when the share is 1.0")
	for _, score := range scores {
		assert.Positive(t, score.Slope)
	}
}

func TestGenerateBatchRejectsBadConfig(t *testing.T) {
	_, err := NewCatalogDataGenerator(CatalogGeneratorConfig{ProductCount: 0}).GenerateBatch()
	require.Error(t, err)

	_, err = NewCatalogDataGenerator(CatalogGeneratorConfig{ProductCount: 2, DealCount: 5}).GenerateBatch()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deal count")
}

func TestWriteDemoWorkbookRoundTrip(t *testing.T) {
	config := CatalogGeneratorConfig{
		ProductCount:  12,
		DealCount:     3,
		SalesDays:     5,
		TrendingShare: 0.25,
		Seed:          42,
	}
	path := filepath.Join(t.TempDir(), "demo.xlsx")

	written, err := WriteDemoWorkbook(path, config)
	require.NoError(t, err)
	require.Len(t, written.Products, 12)

	read, err := excel.NewCatalogReader(path).Read(context.Background())
	require.NoError(t, err)

	assert.Empty(t, read.Issues)
	assert.Len(t, read.Products, len(written.Products))
	assert.Len(t, read.Deals, len(written.Deals))
	assert.Len(t, read.Sales, len(written.Sales))
	assert.Equal(t, written.Products[0].CatalogNumber, read.Products[0].CatalogNumber)
	assert.Equal(t, written.Products[0].PriceCents, read.Products[0].PriceCents)
}
