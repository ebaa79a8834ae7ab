// Package estimate derives costs and effort totals from work items and the
// job-type rate table. Every function is pure.
package estimate

import (
	"math"
	"strconv"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/dustin/go-humanize"
)

const (
	currencySymbol = "￥"
	effortSuffix   = "人月"
)

// CostOf returns the cost of one work item. A work item whose job type is
// missing from jobTypes costs nothing.
func CostOf(item domain.WorkItem, jobTypes []domain.JobType) float64 {
	jt := domain.FindJobType(jobTypes, item.JobTypeID)
	if jt == nil {
		return 0
	}
	return item.ManMonths * jt.MonthlyRate
}

// TotalCost sums CostOf over items.
func TotalCost(items []domain.WorkItem, jobTypes []domain.JobType) float64 {
	var total float64
	for _, item := range items {
		total += CostOf(item, jobTypes)
	}
	return total
}

// TotalEffort sums the man-months of items.
func TotalEffort(items []domain.WorkItem) float64 {
	var total float64
	for _, item := range items {
		total += item.ManMonths
	}
	return total
}

// FormatCurrency renders amount in whole yen with thousands grouping,
// e.g. ￥1,350,000. The amount is rounded half away from zero.
func FormatCurrency(amount float64) string {
	return FormatAmount(currencySymbol, amount)
}

// FormatAmount is FormatCurrency with a caller-chosen symbol.
func FormatAmount(symbol string, amount float64) string {
	rounded := math.Round(amount)
	if rounded < 0 {
		return "-" + symbol + humanize.Commaf(-rounded)
	}
	return symbol + humanize.Commaf(math.Abs(rounded))
}

// FormatEffort renders man-months with one decimal place, e.g. 1.5人月.
func FormatEffort(manMonths float64) string {
	return strconv.FormatFloat(manMonths, 'f', 1, 64) + effortSuffix
}
