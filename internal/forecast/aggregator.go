package forecast

import (
	"sort"

	"TradePulse/internal/domain/models"
	"TradePulse/pkg/util"
)

// QuarterlyTotals groups trade records by quarter, summing the flow's value
// field and counting contributing records. Output is ordered ascending by
// (year, quarter number). Records with missing or non-numeric values
// contribute zero; records without a quarter are dropped. Never errors:
// empty input yields an empty slice.
func QuarterlyTotals(records []models.TradeRecord, flow models.Flow) []models.QuarterlyPoint {
	totals := make(map[string]*models.QuarterlyPoint)
	for _, rec := range records {
		if rec.Quarter == "" {
			continue
		}
		point, ok := totals[rec.Quarter]
		if !ok {
			point = &models.QuarterlyPoint{Period: rec.Quarter}
			totals[rec.Quarter] = point
		}
		point.Value += rec.Value(flow)
		point.Records++
	}

	points := make([]models.QuarterlyPoint, 0, len(totals))
	for _, point := range totals {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool {
		return util.CompareQuarters(points[i].Period, points[j].Period) < 0
	})
	return points
}

// Window returns the last n points of the series, or the whole series when
// it is shorter.
func Window(points []models.QuarterlyPoint, n int) []models.QuarterlyPoint {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
