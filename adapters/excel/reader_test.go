package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"regimen/domain/catalog"
	"regimen/domain/core"
	"regimen/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func demoBatch() *catalog.ImportBatch {
	return &catalog.ImportBatch{
		Products: []catalog.Product{
			{
				CatalogNumber: 1001,
				Name:          "Omega-3 Fish Oil",
				Brand:         "DeepBlue",
				Category:      "Essential Fatty Acids",
				Description:   "Supports **heart** health.",
				PriceCents:    2499,
				Rating:        4.5,
				SalesRank:     1,
			},
			{
				CatalogNumber: 1002,
				Name:          "Magnesium Glycinate",
				Brand:         "Mineral Works",
				Category:      "Minerals",
				PriceCents:    1899,
				Rating:        4.8,
				SalesRank:     2,
			},
			{
				CatalogNumber: 1003,
				Name:          "Vitamin D3 5000 IU",
				Category:      "Vitamins",
				PriceCents:    1299,
			},
		},
		Deals: []catalog.DealRow{
			{
				CatalogNumber: 1002,
				PriceCents:    1499,
				Window: core.NewWindow(
					time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
				),
			},
		},
		Sales: []catalog.SalesRow{
			{CatalogNumber: 1001, Day: time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), Units: 40},
			{CatalogNumber: 1001, Day: time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), Units: 55},
		},
	}
}

func TestCatalogReaderRoundTripsWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, WriteWorkbook(path, demoBatch()))

	batch, err := NewCatalogReader(path).Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, batch.Issues)

	require.Len(t, batch.Products, 3)
	assert.Equal(t, int64(1001), batch.Products[0].CatalogNumber)
	assert.Equal(t, "Omega-3 Fish Oil", batch.Products[0].Name)
	assert.Equal(t, "Supports **heart** health.", batch.Products[0].Description)
	assert.Equal(t, int64(2499), batch.Products[0].PriceCents)
	assert.InDelta(t, 4.5, batch.Products[0].Rating, 1e-9)
	assert.Equal(t, 1, batch.Products[0].SalesRank)
	assert.Equal(t, "Vitamins", batch.Products[2].Category)
	assert.Zero(t, batch.Products[2].SalesRank)

	require.Len(t, batch.Deals, 1)
	deal := batch.Deals[0]
	assert.Equal(t, int64(1002), deal.CatalogNumber)
	assert.Equal(t, int64(1499), deal.PriceCents)
	assert.True(t, deal.Window.StartsAt.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, deal.Window.EndsAt.Equal(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))

	require.Len(t, batch.Sales, 2)
	assert.Equal(t, 55, batch.Sales[1].Units)
	assert.True(t, batch.Sales[1].Day.Equal(time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)))
}

func TestCatalogReaderCollectsRowIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messy.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetProducts))
	rows := [][]interface{}{
		{"catalog_number", "name", "price_cents"},
		{"abc", "Fish Oil", "1999"},
		{"1001", "", "1999"},
		{"1002", "Zinc Picolinate", "cheap"},
		{"1003", "Magnesium", "2499"},
	}
	for i, row := range rows {
		r := row
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetProducts, cellRef, &r))
	}

	_, err := f.NewSheet(SheetDeals)
	require.NoError(t, err)
	dealRows := [][]interface{}{
		{"catalog_number", "price_cents", "starts_at", "ends_at"},
		{"1003", "1999", "2026-03-08", "2026-03-01"},
		{"1003", "1999", "not-a-date", "2026-03-08"},
	}
	for i, row := range dealRows {
		r := row
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetDeals, cellRef, &r))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	batch, err := NewCatalogReader(path).Read(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Products, 1)
	assert.Equal(t, "Magnesium", batch.Products[0].Name)
	assert.Empty(t, batch.Deals)

	require.Len(t, batch.Issues, 5)
	assert.Equal(t, SheetProducts, batch.Issues[0].Sheet)
	assert.Equal(t, 2, batch.Issues[0].Row)
	assert.Contains(t, batch.Issues[0].Message, "catalog_number")
	assert.Contains(t, batch.Issues[1].Message, "name is required")
	assert.Contains(t, batch.Issues[2].Message, "price_cents")
	assert.Contains(t, batch.Issues[3].Message, "window must start before it ends")
	assert.Contains(t, batch.Issues[4].Message, "starts_at")
}

func TestCatalogReaderMissingFile(t *testing.T) {
	_, err := NewCatalogReader(filepath.Join(t.TempDir(), "absent.xlsx")).Read(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeImportFailed, errors.GetCode(err))
}

func TestCatalogReaderRequiresProductsSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewCatalogReader(path).Read(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeImportFailed, errors.GetCode(err))
}

func TestCatalogReaderRequiresHeaderAndData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headeronly.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetProducts))
	header := []interface{}{"catalog_number", "name", "price_cents"}
	require.NoError(t, f.SetSheetRow(SheetProducts, "A1", &header))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewCatalogReader(path).Read(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeImportFailed, errors.GetCode(err))
}

func TestCatalogReaderRequiresPriceColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nocolumn.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", SheetProducts))
	rows := [][]interface{}{
		{"catalog_number", "name"},
		{"1001", "Fish Oil"},
	}
	for i, row := range rows {
		r := row
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(SheetProducts, cellRef, &r))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := NewCatalogReader(path).Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_cents")
}

func TestCatalogReaderReadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	csv := "catalog_number,name,brand,category,description,price_cents,rating,sales_rank\n" +
		"1001,Omega-3 Fish Oil,DeepBlue,Essential Fatty Acids,Supports heart health.,2499,4.5,1\n" +
		"1002,Magnesium Glycinate,Mineral Works,Minerals,,1899,4.8,2\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	batch, err := NewCatalogReader(path).Read(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Products, 2)
	assert.Equal(t, "Magnesium Glycinate", batch.Products[1].Name)
	assert.Empty(t, batch.Deals)
	assert.Empty(t, batch.Sales)
	assert.Empty(t, batch.Issues)
}
