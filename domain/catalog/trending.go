package catalog

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"regimen/domain/core"
)

// minTrendPoints is the shortest daily series worth fitting a line to
const minTrendPoints = 3

// TrendScore is a product's fitted daily sales slope. Positive means
// sales are accelerating.
type TrendScore struct {
	ProductID core.ProductID `json:"product_id"`
	Slope     float64        `json:"slope"`
}

// TrendingScores fits an ordinary least squares line to each product's
// daily unit sales and returns products with a positive slope, steepest
// first. Series shorter than minTrendPoints are skipped: a line through
// one or two points says nothing about momentum.
func TrendingScores(series []DailySales) []TrendScore {
	byProduct := make(map[core.ProductID][]DailySales)
	for _, day := range series {
		byProduct[day.ProductID] = append(byProduct[day.ProductID], day)
	}

	scores := make([]TrendScore, 0, len(byProduct))
	for productID, days := range byProduct {
		if len(days) < minTrendPoints {
			continue
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })

		xs := make([]float64, len(days))
		ys := make([]float64, len(days))
		for i, day := range days {
			xs[i] = float64(i)
			ys[i] = float64(day.Units)
		}

		_, slope := stat.LinearRegression(xs, ys, nil, false)
		if slope <= 0 {
			continue
		}
		scores = append(scores, TrendScore{ProductID: productID, Slope: slope})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Slope != scores[j].Slope {
			return scores[i].Slope > scores[j].Slope
		}
		return scores[i].ProductID < scores[j].ProductID
	})
	return scores
}
