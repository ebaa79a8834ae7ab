package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/alexanderramin/estimate/internal/estimate"
)

const (
	coreFont   = "Helvetica"
	customFont = "EstimateBody"
)

// pdfText is the fixed wording of the document for one font setup.
type pdfText struct {
	Title       string
	Customer    string // format, takes the customer name
	Subject     string // format, takes the project name
	Issued      string // format, takes the date
	Total       string // format, takes the amount
	Columns     []string
	Sum         string
	Breakdown   string
	OrphanNote  string // format, takes the item count
	OrphanLabel string
	Currency    string
	EffortUnit  string
}

var japaneseText = pdfText{
	Title:       "御見積書",
	Customer:    "%s 御中",
	Subject:     "件名: %s",
	Issued:      "発行日: %s",
	Total:       "御見積金額 %s",
	Columns:     []string{"作業項目", "職種", "人月", "月単価", "金額"},
	Sum:         "合計",
	Breakdown:   "職種別内訳",
	OrphanNote:  "%d 件の作業項目は職種が削除されているため金額に含まれていません。",
	OrphanLabel: OrphanLabel,
	Currency:    "￥",
	EffortUnit:  "人月",
}

// latinText stays inside cp1252, the only range the core fonts cover.
// U+00A5 is the cp1252 yen sign; the fullwidth ￥ is not.
var latinText = pdfText{
	Title:       "Quotation",
	Customer:    "To: %s",
	Subject:     "Project: %s",
	Issued:      "Date: %s",
	Total:       "Total: %s",
	Columns:     []string{"Work item", "Job type", "MM", "Monthly rate", "Amount"},
	Sum:         "Total",
	Breakdown:   "By job type",
	OrphanNote:  "%d work item(s) reference a removed job type and are not priced.",
	OrphanLabel: "(removed job type)",
	Currency:    "¥",
	EffortUnit:  " man-months",
}

func (t pdfText) money(v float64) string {
	return estimate.FormatAmount(t.Currency, v)
}

func (t pdfText) effort(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + t.EffortUnit
}

type PDFGenerator struct {
	fontPath string
}

// NewPDFGenerator returns a generator that embeds the TTF at fontPath, or
// uses core Helvetica with English labels when fontPath is empty. Project
// and job type names outside cp1252 cannot be drawn by Helvetica and come
// out as dots.
func NewPDFGenerator(fontPath string) *PDFGenerator {
	return &PDFGenerator{fontPath: fontPath}
}

func (g *PDFGenerator) text() pdfText {
	if g.fontPath == "" {
		return latinText
	}
	return japaneseText
}

func (g *PDFGenerator) Generate(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)

	fontName := coreFont
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if g.fontPath != "" {
		pdf.AddUTF8Font(customFont, "", g.fontPath)
		pdf.AddUTF8Font(customFont, "B", g.fontPath)
		fontName = customFont
		tr = func(s string) string { return s }
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("loading font %q: %w", g.fontPath, err)
	}
	txt := g.text()

	pdf.AddPage()

	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 10, tr(txt.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(fontName, "", 11)
	if doc.Project.CustomerName != "" {
		pdf.CellFormat(0, 7, tr(fmt.Sprintf(txt.Customer, doc.Project.CustomerName)), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr(fmt.Sprintf(txt.Subject, doc.Project.Name)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf(txt.Issued, formatDate(doc.GeneratedAt))), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(fontName, "B", 13)
	pdf.CellFormat(0, 9, tr(fmt.Sprintf(txt.Total, txt.money(doc.Summary.TotalCost))), "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	colWidths := []float64{70, 35, 20, 27, 28}
	drawTableRow(pdf, fontName, tr, txt.Columns, colWidths, true)
	for _, line := range doc.Lines() {
		jobType, rate := line.JobTypeName, ""
		if line.Orphaned {
			jobType = txt.OrphanLabel
		}
		if line.MonthlyRate > 0 {
			rate = txt.money(line.MonthlyRate)
		}
		drawTableRow(pdf, fontName, tr, []string{
			line.Name,
			jobType,
			strconv.FormatFloat(line.ManMonths, 'f', 1, 64),
			rate,
			txt.money(line.Cost),
		}, colWidths, false)
	}
	drawTableRow(pdf, fontName, tr, []string{
		txt.Sum,
		"",
		strconv.FormatFloat(doc.Summary.TotalEffort, 'f', 1, 64),
		"",
		txt.money(doc.Summary.TotalCost),
	}, colWidths, true)

	if len(doc.Summary.ByJobType) > 0 {
		pdf.Ln(6)
		pdf.SetFont(fontName, "B", 12)
		pdf.CellFormat(0, 8, tr(txt.Breakdown), "", 1, "L", false, 0, "")
		pdf.SetFont(fontName, "", 10)
		for _, b := range doc.Summary.ByJobType {
			line := fmt.Sprintf("%s  %s  %s", b.JobTypeName, txt.effort(b.ManMonths), txt.money(b.Cost))
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
	}
	if doc.Summary.Orphaned > 0 {
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf(txt.OrphanNote, doc.Summary.Orphaned)), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
