package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimate"
)

// FormatTemplateList renders templates with their size and what one
// application of each would cost at the current rates.
func FormatTemplateList(templates []domain.Template, jobTypes []domain.JobType) string {
	return RenderBox("Templates", templateRows(templates, jobTypes))
}

func templateRows(templates []domain.Template, jobTypes []domain.JobType) string {
	headers := []string{"ID", "NAME", "ITEMS", "EFFORT", "COST"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		items := instantiate(t)
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Name),
			strconv.Itoa(len(items)),
			estimate.FormatEffort(estimate.TotalEffort(items)),
			estimate.FormatCurrency(estimate.TotalCost(items, jobTypes)),
		})
	}
	return RenderTable(headers, rows, AlignRight(2, 3, 4))
}

// FormatTemplateShow renders a template's items priced at the current rates.
func FormatTemplateShow(t domain.Template, jobTypes []domain.JobType) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(t.Name) + "  " + Dim(t.ID) + "\n\n")

	if len(t.WorkItems) == 0 {
		b.WriteString(Dim("This template has no items. Add one with 'estimate template add-item'.") + "\n")
		return RenderBox("Template", b.String())
	}

	items := instantiate(t)
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		jobType := StyleRed.Render(OrphanJobType)
		if jt := domain.FindJobType(jobTypes, item.JobTypeID); jt != nil {
			jobType = jt.Name
		}
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			item.Name,
			jobType,
			estimate.FormatEffort(item.ManMonths),
			estimate.FormatCurrency(estimate.CostOf(item, jobTypes)),
		})
	}
	b.WriteString(RenderTable([]string{"#", "ITEM", "JOB TYPE", "EFFORT", "COST"}, rows,
		AlignRight(0, 3, 4),
		WithFooter("", "Total", "", estimate.FormatEffort(estimate.TotalEffort(items)), estimate.FormatCurrency(estimate.TotalCost(items, jobTypes))),
	))
	return RenderBox("Template", b.String())
}

// instantiate prices template items through the work item calculations.
func instantiate(t domain.Template) []domain.WorkItem {
	items := make([]domain.WorkItem, 0, len(t.WorkItems))
	for i, ti := range t.WorkItems {
		items = append(items, ti.Instantiate(strconv.Itoa(i)))
	}
	return items
}
