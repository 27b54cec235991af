package catalog

import (
	"strings"
	"time"

	"regimen/domain/core"
)

// Product is one sellable catalog entry. CatalogNumber is the merchandiser
// facing numeric id used in workbooks and legacy feeds; ID is the internal
// identity.
type Product struct {
	ID            core.ProductID `json:"id"`
	CatalogNumber int64          `json:"catalog_number"`
	Name          string         `json:"name"`
	Brand         string         `json:"brand"`
	Category      string         `json:"category"`
	Description   string         `json:"description,omitempty"` // markdown
	PriceCents    int64          `json:"price_cents"`
	Rating        float64        `json:"rating"`
	SalesRank     int            `json:"sales_rank"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Deal is a time-windowed discount on a product
type Deal struct {
	ID         core.DealID    `json:"id"`
	ProductID  core.ProductID `json:"product_id"`
	PriceCents int64          `json:"price_cents"`
	Window     core.Window    `json:"window"`
}

// Active reports whether the deal window contains now
func (d Deal) Active(now time.Time) bool {
	return d.Window.Contains(now)
}

// Category is a distinct product category with its product count
type Category struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategorySlug derives the URL slug for a category name. Runs of
// non-alphanumeric characters collapse to a single hyphen, so
// "Herbs & Botanicals" becomes "herbs-botanicals".
func CategorySlug(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// DailySales is one day of a product's unit sales, the input series for
// trending detection
type DailySales struct {
	ProductID core.ProductID `json:"product_id"`
	Day       time.Time      `json:"day"`
	Units     int            `json:"units"`
}
