package excel

import (
	"time"

	"regimen/domain/catalog"
	"regimen/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook authors a catalog workbook at path from the batch. It
// produces the same sheet and column layout CatalogReader consumes, and
// is used to generate demo catalogs.
func WriteWorkbook(path string, batch *catalog.ImportBatch) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetProducts); err != nil {
		return errors.Wrap(err, "failed to create products sheet")
	}

	productHeader := []interface{}{
		"catalog_number", "name", "brand", "category", "description",
		"price_cents", "rating", "sales_rank",
	}
	if err := f.SetSheetRow(SheetProducts, "A1", &productHeader); err != nil {
		return errors.Wrap(err, "failed to write products header")
	}
	for i, product := range batch.Products {
		row := []interface{}{
			product.CatalogNumber, product.Name, product.Brand, product.Category,
			product.Description, product.PriceCents, product.Rating, product.SalesRank,
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to address products row")
		}
		if err := f.SetSheetRow(SheetProducts, cellRef, &row); err != nil {
			return errors.Wrap(err, "failed to write products row")
		}
	}

	if len(batch.Deals) > 0 {
		if _, err := f.NewSheet(SheetDeals); err != nil {
			return errors.Wrap(err, "failed to create deals sheet")
		}
		dealHeader := []interface{}{"catalog_number", "price_cents", "starts_at", "ends_at"}
		if err := f.SetSheetRow(SheetDeals, "A1", &dealHeader); err != nil {
			return errors.Wrap(err, "failed to write deals header")
		}
		for i, deal := range batch.Deals {
			row := []interface{}{
				deal.CatalogNumber, deal.PriceCents,
				deal.Window.StartsAt.UTC().Format(time.RFC3339),
				deal.Window.EndsAt.UTC().Format(time.RFC3339),
			}
			cellRef, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return errors.Wrap(err, "failed to address deals row")
			}
			if err := f.SetSheetRow(SheetDeals, cellRef, &row); err != nil {
				return errors.Wrap(err, "failed to write deals row")
			}
		}
	}

	if len(batch.Sales) > 0 {
		if _, err := f.NewSheet(SheetDailySales); err != nil {
			return errors.Wrap(err, "failed to create daily sales sheet")
		}
		salesHeader := []interface{}{"catalog_number", "day", "units"}
		if err := f.SetSheetRow(SheetDailySales, "A1", &salesHeader); err != nil {
			return errors.Wrap(err, "failed to write daily sales header")
		}
		for i, sales := range batch.Sales {
			row := []interface{}{
				sales.CatalogNumber,
				sales.Day.UTC().Format("2006-01-02"),
				sales.Units,
			}
			cellRef, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return errors.Wrap(err, "failed to address daily sales row")
			}
			if err := f.SetSheetRow(SheetDailySales, cellRef, &row); err != nil {
				return errors.Wrap(err, "failed to write daily sales row")
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "failed to save workbook")
	}

	return nil
}
