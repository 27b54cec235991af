package catalog

import (
	"fmt"
	"time"

	"regimen/domain/core"
)

// RowIssue is one non-fatal problem found while parsing an import source
type RowIssue struct {
	Sheet   string `json:"sheet"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (i RowIssue) String() string {
	return fmt.Sprintf("%s row %d: %s", i.Sheet, i.Row, i.Message)
}

// DealRow is a deal parsed from an import source. It is keyed by catalog
// number because the product's internal id is only known once the product
// row has been upserted.
type DealRow struct {
	CatalogNumber int64       `json:"catalog_number"`
	PriceCents    int64       `json:"price_cents"`
	Window        core.Window `json:"window"`
}

// SalesRow is one day of unit sales for a product, keyed by catalog number
type SalesRow struct {
	CatalogNumber int64     `json:"catalog_number"`
	Day           time.Time `json:"day"`
	Units         int       `json:"units"`
}

// ImportBatch is a parsed catalog authoring source. Issues carry the rows
// that were skipped; a batch with issues is still importable.
type ImportBatch struct {
	Products []Product  `json:"products"`
	Deals    []DealRow  `json:"deals"`
	Sales    []SalesRow `json:"sales"`
	Issues   []RowIssue `json:"issues,omitempty"`
}
