package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimate"
)

// OrphanJobType labels work items whose job type has been removed.
const OrphanJobType = "(removed job type)"

// ProjectListEntry pairs a project with its computed totals.
type ProjectListEntry struct {
	Project domain.EstimateProject
	Summary estimate.Summary
}

// FormatProjectList renders the project overview table inside a box.
func FormatProjectList(entries []ProjectListEntry, now time.Time) string {
	headers := []string{"ID", "NAME", "CUSTOMER", "ITEMS", "EFFORT", "TOTAL", "UPDATED"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.Project.ID),
			Bold(e.Project.Name),
			Placeholder(e.Project.CustomerName),
			strconv.Itoa(e.Summary.ItemCount),
			estimate.FormatEffort(e.Summary.TotalEffort),
			Amount(estimate.FormatCurrency(e.Summary.TotalCost), e.Summary.TotalCost == 0),
			Dim(HumanTimestampFrom(e.Project.UpdatedAt, now)),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows, AlignRight(3, 4, 5)))
}

// FormatProjectDetail renders one project: header fields, the line-item
// table with totals, and the per-job-type breakdown.
func FormatProjectDetail(p domain.EstimateProject, jobTypes []domain.JobType, s estimate.Summary) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n\n")
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("ID      "), Dim(p.ID))
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("CUSTOMER"), Placeholder(p.CustomerName))
	fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render("CREATED "), p.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "  %s  %s (%s)\n", StyleDim.Render("UPDATED "), p.UpdatedAt.Local().Format("2006-01-02 15:04"), HumanTimestamp(p.UpdatedAt))
	b.WriteString("\n")

	if len(p.WorkItems) == 0 {
		b.WriteString(Dim("No work items yet. Add one with 'project add-item' or 'project apply-template'.") + "\n")
		return RenderBox("Estimate", b.String())
	}

	b.WriteString(Header("Work items") + "\n")
	headers := []string{"#", "ITEM", "JOB TYPE", "EFFORT", "RATE", "COST"}
	rows := make([][]string, 0, len(p.WorkItems))
	for i, item := range p.WorkItems {
		jobType, rate := StyleRed.Render(OrphanJobType), Dim("--")
		if jt := domain.FindJobType(jobTypes, item.JobTypeID); jt != nil {
			jobType, rate = jt.Name, estimate.FormatCurrency(jt.MonthlyRate)
		}
		cost := estimate.CostOf(item, jobTypes)
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			item.Name,
			jobType,
			estimate.FormatEffort(item.ManMonths),
			rate,
			Amount(estimate.FormatCurrency(cost), cost == 0),
		})
	}
	b.WriteString(RenderTable(headers, rows,
		AlignRight(0, 3, 4, 5),
		WithFooter("", "Total", "", estimate.FormatEffort(s.TotalEffort), "", estimate.FormatCurrency(s.TotalCost)),
	))

	if len(s.ByJobType) > 0 {
		b.WriteString("\n" + Header("By job type") + "\n")
		b.WriteString(formatBreakdown(s.ByJobType))
	}
	if s.Orphaned > 0 {
		b.WriteString("\n" + Warning(fmt.Sprintf("%d item(s), %s, reference a removed job type and are priced at %s.",
			s.Orphaned, estimate.FormatEffort(s.OrphanedEffort), estimate.FormatCurrency(0))) + "\n")
	}

	return RenderBox("Estimate", b.String())
}

func formatBreakdown(breakdown []estimate.Breakdown) string {
	headers := []string{"JOB TYPE", "ITEMS", "EFFORT", "COST"}
	rows := make([][]string, 0, len(breakdown))
	for _, bd := range breakdown {
		rows = append(rows, []string{
			bd.JobTypeName,
			strconv.Itoa(bd.ItemCount),
			estimate.FormatEffort(bd.ManMonths),
			estimate.FormatCurrency(bd.Cost),
		})
	}
	return RenderTable(headers, rows, AlignRight(1, 2, 3))
}
