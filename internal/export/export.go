// Package export renders a priced project as a spreadsheet or a printable
// document.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
	"github.com/alexanderramin/estimate/internal/estimate"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// OrphanLabel is shown in place of a job type name that no longer exists.
const OrphanLabel = "(削除された職種)"

// ParseFormat accepts "xlsx" or "pdf", case-insensitive, with or without a
// leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Document is everything a generator needs to lay out one estimate.
type Document struct {
	Project     domain.EstimateProject
	JobTypes    []domain.JobType
	Summary     estimate.Summary
	GeneratedAt time.Time
}

// Line is one work item as it appears in an exported table.
type Line struct {
	Name        string
	JobTypeName string
	ManMonths   float64
	MonthlyRate float64
	Cost        float64
	// Orphaned is set when the item's job type no longer exists.
	Orphaned bool
}

// Lines resolves each work item against the rate table.
func (d Document) Lines() []Line {
	lines := make([]Line, 0, len(d.Project.WorkItems))
	for _, item := range d.Project.WorkItems {
		line := Line{
			Name:        item.Name,
			JobTypeName: OrphanLabel,
			ManMonths:   item.ManMonths,
			Cost:        estimate.CostOf(item, d.JobTypes),
			Orphaned:    true,
		}
		if jt := domain.FindJobType(d.JobTypes, item.JobTypeID); jt != nil {
			line.JobTypeName = jt.Name
			line.MonthlyRate = jt.MonthlyRate
			line.Orphaned = false
		}
		lines = append(lines, line)
	}
	return lines
}

type Generator interface {
	Generate(doc Document) ([]byte, error)
}

// Options configures the generators built by Render.
type Options struct {
	// FontPath is a TTF file used for PDF text. Empty selects the built-in
	// Helvetica with English labels; names outside cp1252 still degrade.
	FontPath string
}

// Render generates doc in the requested format.
func Render(doc Document, format Format, opts Options) ([]byte, error) {
	var g Generator
	switch format {
	case FormatXLSX:
		g = NewXLSXGenerator()
	case FormatPDF:
		g = NewPDFGenerator(opts.FontPath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	out, err := g.Generate(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", format, err)
	}
	return out, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}
