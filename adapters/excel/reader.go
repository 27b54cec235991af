package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"regimen/domain/catalog"
	"regimen/domain/core"
	"regimen/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names expected from merchandisers
const (
	SheetProducts   = "Products"
	SheetDeals      = "Deals"
	SheetDailySales = "DailySales"
)

// CatalogReader reads a merchandiser workbook into an ImportBatch. Excel
// workbooks carry products, deals, and daily sales on separate sheets;
// CSV files carry products only.
type CatalogReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewCatalogReader creates a reader for an Excel or CSV catalog source
func NewCatalogReader(filePath string) *CatalogReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &CatalogReader{filePath: filePath, fileType: fileType}
}

// Read parses the full source. Row-level problems land in the batch's
// Issues; only unreadable sources return an error.
func (r *CatalogReader) Read(ctx context.Context) (*catalog.ImportBatch, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.ImportFailed(r.filePath, fmt.Errorf("file not found"))
	}

	switch r.fileType {
	case "csv":
		return r.readCSV(ctx)
	case "xlsx":
		return r.readWorkbook(ctx)
	default:
		return nil, errors.ImportFailed(r.filePath, fmt.Errorf("unsupported file type %s", r.fileType))
	}
}

func (r *CatalogReader) readWorkbook(ctx context.Context) (*catalog.ImportBatch, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.ImportFailed(r.filePath, err)
	}
	defer f.Close()

	batch := &catalog.ImportBatch{}

	// The products sheet is the one required part of the workbook
	productRows, err := f.GetRows(SheetProducts)
	if err != nil {
		return nil, errors.ImportFailed(r.filePath, err)
	}
	if len(productRows) < 2 {
		return nil, errors.ImportFailed(r.filePath,
			fmt.Errorf("%s sheet must have a header row and at least one data row", SheetProducts))
	}
	if err := r.parseProducts(ctx, productRows, batch); err != nil {
		return nil, err
	}

	// Deals and daily sales sheets are optional
	if hasSheet(f, SheetDeals) {
		dealRows, err := f.GetRows(SheetDeals)
		if err != nil {
			return nil, errors.ImportFailed(r.filePath, err)
		}
		if err := r.parseDeals(ctx, dealRows, batch); err != nil {
			return nil, err
		}
	}

	if hasSheet(f, SheetDailySales) {
		salesRows, err := f.GetRows(SheetDailySales)
		if err != nil {
			return nil, errors.ImportFailed(r.filePath, err)
		}
		if err := r.parseDailySales(ctx, salesRows, batch); err != nil {
			return nil, err
		}
	}

	return batch, nil
}

func (r *CatalogReader) readCSV(ctx context.Context) (*catalog.ImportBatch, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.ImportFailed(r.filePath, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.ImportFailed(r.filePath, err)
	}
	if len(rows) < 2 {
		return nil, errors.ImportFailed(r.filePath,
			fmt.Errorf("csv must have a header row and at least one data row"))
	}

	batch := &catalog.ImportBatch{}
	if err := r.parseProducts(ctx, rows, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *CatalogReader) parseProducts(ctx context.Context, rows [][]string, batch *catalog.ImportBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cols := headerIndex(rows[0])
	for _, required := range []string{"catalog_number", "name", "price_cents"} {
		if _, ok := cols[required]; !ok {
			return errors.ImportFailed(r.filePath,
				fmt.Errorf("%s sheet is missing the %q column", SheetProducts, required))
		}
	}

	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		catalogNumber, err := parseInt(cell(row, cols, "catalog_number"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetProducts, rowNum, "invalid catalog_number: %v", err))
			continue
		}

		name := cell(row, cols, "name")
		if name == "" {
			batch.Issues = append(batch.Issues, issue(SheetProducts, rowNum, "name is required"))
			continue
		}

		priceCents, err := parseInt(cell(row, cols, "price_cents"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetProducts, rowNum, "invalid price_cents: %v", err))
			continue
		}

		product := catalog.Product{
			CatalogNumber: catalogNumber,
			Name:          name,
			Brand:         cell(row, cols, "brand"),
			Category:      cell(row, cols, "category"),
			Description:   cell(row, cols, "description"),
			PriceCents:    priceCents,
		}

		if raw := cell(row, cols, "rating"); raw != "" {
			rating, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				batch.Issues = append(batch.Issues, issue(SheetProducts, rowNum, "invalid rating: %v", err))
				continue
			}
			product.Rating = rating
		}

		if raw := cell(row, cols, "sales_rank"); raw != "" {
			rank, err := parseInt(raw)
			if err != nil {
				batch.Issues = append(batch.Issues, issue(SheetProducts, rowNum, "invalid sales_rank: %v", err))
				continue
			}
			product.SalesRank = int(rank)
		}

		batch.Products = append(batch.Products, product)
	}

	return nil
}

func (r *CatalogReader) parseDeals(ctx context.Context, rows [][]string, batch *catalog.ImportBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(rows) < 2 {
		return nil
	}

	cols := headerIndex(rows[0])
	for _, required := range []string{"catalog_number", "price_cents", "starts_at", "ends_at"} {
		if _, ok := cols[required]; !ok {
			return errors.ImportFailed(r.filePath,
				fmt.Errorf("%s sheet is missing the %q column", SheetDeals, required))
		}
	}

	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		catalogNumber, err := parseInt(cell(row, cols, "catalog_number"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetDeals, rowNum, "invalid catalog_number: %v", err))
			continue
		}

		priceCents, err := parseInt(cell(row, cols, "price_cents"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetDeals, rowNum, "invalid price_cents: %v", err))
			continue
		}

		startsAt, err := parseTime(cell(row, cols, "starts_at"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetDeals, rowNum, "invalid starts_at: %v", err))
			continue
		}

		endsAt, err := parseTime(cell(row, cols, "ends_at"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetDeals, rowNum, "invalid ends_at: %v", err))
			continue
		}

		window := core.NewWindow(startsAt, endsAt)
		if !window.IsValid() {
			batch.Issues = append(batch.Issues, issue(SheetDeals, rowNum, "window must start before it ends"))
			continue
		}

		batch.Deals = append(batch.Deals, catalog.DealRow{
			CatalogNumber: catalogNumber,
			PriceCents:    priceCents,
			Window:        window,
		})
	}

	return nil
}

func (r *CatalogReader) parseDailySales(ctx context.Context, rows [][]string, batch *catalog.ImportBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(rows) < 2 {
		return nil
	}

	cols := headerIndex(rows[0])
	for _, required := range []string{"catalog_number", "day", "units"} {
		if _, ok := cols[required]; !ok {
			return errors.ImportFailed(r.filePath,
				fmt.Errorf("%s sheet is missing the %q column", SheetDailySales, required))
		}
	}

	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		catalogNumber, err := parseInt(cell(row, cols, "catalog_number"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetDailySales, rowNum, "invalid catalog_number: %v", err))
			continue
		}

		day, err := parseTime(cell(row, cols, "day"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetDailySales, rowNum, "invalid day: %v", err))
			continue
		}

		units, err := parseInt(cell(row, cols, "units"))
		if err != nil {
			batch.Issues = append(batch.Issues, issue(SheetDailySales, rowNum, "invalid units: %v", err))
			continue
		}

		batch.Sales = append(batch.Sales, catalog.SalesRow{
			CatalogNumber: catalogNumber,
			Day:           day,
			Units:         int(units),
		})
	}

	return nil
}

// headerIndex maps trimmed lower-case header names to column positions
func headerIndex(headerRow []string) map[string]int {
	cols := make(map[string]int, len(headerRow))
	for i, header := range headerRow {
		name := strings.ToLower(strings.TrimSpace(header))
		if name != "" {
			cols[name] = i
		}
	}
	return cols
}

// cell returns the trimmed value of the named column, or "" when the row
// is shorter than the header. Trailing empty cells are truncated by the
// sheet reader, so short rows are normal.
func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func issue(sheet string, row int, format string, args ...interface{}) catalog.RowIssue {
	return catalog.RowIssue{Sheet: sheet, Row: row, Message: fmt.Sprintf(format, args...)}
}

func parseInt(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("value is empty")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// parseTime accepts the date forms merchandisers actually author: a bare
// ISO date or a full RFC3339 timestamp.
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("value is empty")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func hasSheet(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx != -1
}
