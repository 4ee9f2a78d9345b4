// Package analytics computes summary statistics over the loaded order table.
// Every function here is a pure read: same table in, same answer out.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"basket-kpis-go/internal/dataset"
	"basket-kpis-go/internal/types"
)

// AnalysisPeriod is a fixed label; the source carries no time range.
const AnalysisPeriod = "All available data"

// PeakHourCount caps the peak-hours ranking.
const PeakHourCount = 10

var dayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// BasketKPIs returns order and item totals plus mean and median basket size.
// An empty table yields zeros rather than an error: an empty but parsable
// source is still valid data.
func BasketKPIs(t *dataset.Table) types.BasketKPIs {
	if len(t.Orders) == 0 {
		return types.BasketKPIs{}
	}

	sizes := make([]float64, len(t.Orders))
	var sum float64
	for i, o := range t.Orders {
		sizes[i] = o.BasketSize()
		sum += sizes[i]
	}

	return types.BasketKPIs{
		TotalOrders:         len(t.Orders),
		TotalItems:          int(sum),
		AvgItemsPerOrder:    round2(sum / float64(len(sizes))),
		MedianItemsPerOrder: round2(median(sizes)),
	}
}

// TopCategories ranks categories by total item count across all orders and
// returns the first limit entries. Ties keep their original column order.
// The caller validates limit; values outside [1,100] never reach here.
func TopCategories(t *dataset.Table, limit int) types.TopCategories {
	totals := make([]types.CategoryTotal, len(t.Categories))
	for i, name := range t.Categories {
		totals[i].Category = name
	}
	for _, o := range t.Orders {
		for i, v := range o.Items {
			totals[i].TotalItems += int(v)
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalItems > totals[j].TotalItems
	})
	if limit < len(totals) {
		totals = totals[:limit]
	}

	return types.TopCategories{Limit: limit, TopCategories: totals}
}

// OrderDistribution buckets orders by day of week and by hour. Days appear
// only when at least one order fell on them, ordered Sunday→Saturday; hours
// are the top ten by order count, ties kept in first-encounter order.
func OrderDistribution(t *dataset.Table) types.OrderDistribution {
	total := len(t.Orders)

	var dowCounts [7]int
	hourCounts := map[int]int{}
	var hourOrder []int
	for _, o := range t.Orders {
		if o.DayOfWeek >= 0 && o.DayOfWeek < 7 {
			dowCounts[o.DayOfWeek]++
		}
		if _, seen := hourCounts[o.HourOfDay]; !seen {
			hourOrder = append(hourOrder, o.HourOfDay)
		}
		hourCounts[o.HourOfDay]++
	}

	days := make([]types.DayBucket, 0, 7)
	for dow, n := range dowCounts {
		if n == 0 {
			continue
		}
		days = append(days, types.DayBucket{
			Day:        dayNames[dow],
			DayNumber:  dow,
			Orders:     n,
			Percentage: round1(float64(n) / float64(total) * 100),
		})
	}

	sort.SliceStable(hourOrder, func(i, j int) bool {
		return hourCounts[hourOrder[i]] > hourCounts[hourOrder[j]]
	})
	if len(hourOrder) > PeakHourCount {
		hourOrder = hourOrder[:PeakHourCount]
	}
	peaks := make([]types.HourBucket, 0, len(hourOrder))
	for _, h := range hourOrder {
		peaks = append(peaks, types.HourBucket{
			Hour:   FormatHour(h),
			Hour24: h,
			Orders: hourCounts[h],
		})
	}

	return types.OrderDistribution{
		Summary: types.DistributionSummary{
			TotalOrders:    total,
			AnalysisPeriod: AnalysisPeriod,
		},
		DayOfWeekDistribution: days,
		PeakHours:             peaks,
	}
}

// FormatHour renders an hour of day in 12-hour clock notation.
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12:00 AM"
	case hour < 12:
		return fmt.Sprintf("%d:00 AM", hour)
	case hour == 12:
		return "12:00 PM"
	default:
		return fmt.Sprintf("%d:00 PM", hour-12)
	}
}

func median(values []float64) float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
