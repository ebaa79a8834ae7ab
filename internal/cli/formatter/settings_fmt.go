package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimate"
)

// FormatJobTypeList renders the rate table.
func FormatJobTypeList(jobTypes []domain.JobType) string {
	headers := []string{"ID", "NAME", "MONTHLY RATE"}
	rows := make([][]string, 0, len(jobTypes))
	for _, jt := range jobTypes {
		rows = append(rows, []string{
			TruncID(jt.ID),
			Bold(jt.Name),
			estimate.FormatCurrency(jt.MonthlyRate),
		})
	}
	return RenderBox("Job types", RenderTable(headers, rows, AlignRight(2)))
}

// FormatSettings renders the rate table and a template summary. customized
// reports whether the settings come from storage rather than the built-in
// defaults.
func FormatSettings(s domain.Settings, customized bool) string {
	var b strings.Builder

	source := StyleYellow.Render("built-in defaults")
	if customized {
		source = StyleGreen.Render("saved")
	}
	fmt.Fprintf(&b, "  %s  %s\n\n", StyleDim.Render("SOURCE"), source)

	b.WriteString(Header("Job types") + "\n")
	if len(s.JobTypes) == 0 {
		b.WriteString(Dim("none") + "\n")
	} else {
		rows := make([][]string, 0, len(s.JobTypes))
		for _, jt := range s.JobTypes {
			rows = append(rows, []string{TruncID(jt.ID), jt.Name, estimate.FormatCurrency(jt.MonthlyRate)})
		}
		b.WriteString(RenderTable([]string{"ID", "NAME", "MONTHLY RATE"}, rows, AlignRight(2)))
	}

	b.WriteString("\n" + Header("Templates") + "\n")
	if len(s.Templates) == 0 {
		b.WriteString(Dim("none") + "\n")
	} else {
		b.WriteString(templateRows(s.Templates, s.JobTypes))
	}

	return RenderBox("Settings", b.String())
}
