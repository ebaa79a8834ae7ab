package estimate

import "github.com/alexanderramin/estimate/internal/domain"

// Breakdown aggregates the work items assigned to one job type.
type Breakdown struct {
	JobTypeID   string
	JobTypeName string
	MonthlyRate float64
	ItemCount   int
	ManMonths   float64
	Cost        float64
}

// Summary is the full derived view of an estimate.
type Summary struct {
	ItemCount   int
	TotalEffort float64
	TotalCost   float64
	// ByJobType lists job types in order of first appearance among the items.
	ByJobType []Breakdown
	// Orphaned counts items whose job type no longer exists.
	Orphaned       int
	OrphanedEffort float64
}

// Summarize computes totals and the per-job-type breakdown for items.
func Summarize(items []domain.WorkItem, jobTypes []domain.JobType) Summary {
	s := Summary{
		ItemCount:   len(items),
		TotalEffort: TotalEffort(items),
		TotalCost:   TotalCost(items, jobTypes),
	}

	index := make(map[string]int)
	for _, item := range items {
		jt := domain.FindJobType(jobTypes, item.JobTypeID)
		if jt == nil {
			s.Orphaned++
			s.OrphanedEffort += item.ManMonths
			continue
		}
		i, ok := index[jt.ID]
		if !ok {
			i = len(s.ByJobType)
			index[jt.ID] = i
			s.ByJobType = append(s.ByJobType, Breakdown{
				JobTypeID:   jt.ID,
				JobTypeName: jt.Name,
				MonthlyRate: jt.MonthlyRate,
			})
		}
		b := &s.ByJobType[i]
		b.ItemCount++
		b.ManMonths += item.ManMonths
		b.Cost += item.ManMonths * jt.MonthlyRate
	}
	return s
}
