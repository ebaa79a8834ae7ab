package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	itemsSheet   = "見積明細"
	summarySheet = "職種別集計"

	yenNumFmt    = `"￥"#,##0`
	effortNumFmt = `0.0`
)

type XLSXGenerator struct{}

func NewXLSXGenerator() *XLSXGenerator {
	return &XLSXGenerator{}
}

func (g *XLSXGenerator) Generate(doc Document) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", itemsSheet); err != nil {
		return nil, err
	}
	if _, err := file.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	st, err := newSheetStyles(file)
	if err != nil {
		return nil, err
	}
	g.writeItems(file, st, doc)
	g.writeSummary(file, st, doc)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	header int
	yen    int
	effort int
}

func newSheetStyles(file *excelize.File) (sheetStyles, error) {
	var st sheetStyles
	var err error
	if st.header, err = file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	yen := yenNumFmt
	if st.yen, err = file.NewStyle(&excelize.Style{CustomNumFmt: &yen}); err != nil {
		return st, err
	}
	effort := effortNumFmt
	if st.effort, err = file.NewStyle(&excelize.Style{CustomNumFmt: &effort}); err != nil {
		return st, err
	}
	return st, nil
}

func (g *XLSXGenerator) writeItems(file *excelize.File, st sheetStyles, doc Document) {
	sheet := itemsSheet
	set := func(cell string, value any) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "案件名")
	set("B1", doc.Project.Name)
	set("A2", "顧客名")
	set("B2", doc.Project.CustomerName)
	set("A3", "作成日")
	set("B3", formatDate(doc.Project.CreatedAt))
	set("A4", "更新日")
	set("B4", formatDate(doc.Project.UpdatedAt))

	tableRow := 6
	headers := []string{"作業項目", "職種", "人月", "月単価", "金額"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}
	_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", tableRow), fmt.Sprintf("E%d", tableRow), st.header)

	lines := doc.Lines()
	for i, line := range lines {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), line.Name)
		set(fmt.Sprintf("B%d", row), line.JobTypeName)
		set(fmt.Sprintf("C%d", row), line.ManMonths)
		set(fmt.Sprintf("D%d", row), line.MonthlyRate)
		set(fmt.Sprintf("E%d", row), line.Cost)
	}

	totalRow := tableRow + 1 + len(lines)
	set(fmt.Sprintf("A%d", totalRow), "合計")
	set(fmt.Sprintf("C%d", totalRow), doc.Summary.TotalEffort)
	set(fmt.Sprintf("E%d", totalRow), doc.Summary.TotalCost)
	_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("A%d", totalRow), st.header)

	_ = file.SetCellStyle(sheet, fmt.Sprintf("C%d", tableRow+1), fmt.Sprintf("C%d", totalRow), st.effort)
	_ = file.SetCellStyle(sheet, fmt.Sprintf("D%d", tableRow+1), fmt.Sprintf("E%d", totalRow), st.yen)

	_ = file.SetColWidth(sheet, "A", "A", 36)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	_ = file.SetColWidth(sheet, "C", "C", 10)
	_ = file.SetColWidth(sheet, "D", "E", 16)
}

func (g *XLSXGenerator) writeSummary(file *excelize.File, st sheetStyles, doc Document) {
	sheet := summarySheet
	set := func(cell string, value any) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"職種", "件数", "人月", "月単価", "金額"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	_ = file.SetCellStyle(sheet, "A1", "E1", st.header)

	row := 2
	for _, b := range doc.Summary.ByJobType {
		set(fmt.Sprintf("A%d", row), b.JobTypeName)
		set(fmt.Sprintf("B%d", row), b.ItemCount)
		set(fmt.Sprintf("C%d", row), b.ManMonths)
		set(fmt.Sprintf("D%d", row), b.MonthlyRate)
		set(fmt.Sprintf("E%d", row), b.Cost)
		row++
	}
	if doc.Summary.Orphaned > 0 {
		set(fmt.Sprintf("A%d", row), OrphanLabel)
		set(fmt.Sprintf("B%d", row), doc.Summary.Orphaned)
		set(fmt.Sprintf("C%d", row), doc.Summary.OrphanedEffort)
		set(fmt.Sprintf("E%d", row), 0)
		row++
	}

	set(fmt.Sprintf("A%d", row), "合計")
	set(fmt.Sprintf("B%d", row), doc.Summary.ItemCount)
	set(fmt.Sprintf("C%d", row), doc.Summary.TotalEffort)
	set(fmt.Sprintf("E%d", row), doc.Summary.TotalCost)
	_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), st.header)

	_ = file.SetCellStyle(sheet, "C2", fmt.Sprintf("C%d", row), st.effort)
	_ = file.SetCellStyle(sheet, "D2", fmt.Sprintf("E%d", row), st.yen)

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "C", 10)
	_ = file.SetColWidth(sheet, "D", "E", 16)
}
