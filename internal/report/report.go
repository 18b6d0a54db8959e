// Package report assembles the multi-sheet spreadsheet report.
package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/analysis"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/charts"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/dataset"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/logger"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/table"
)

const (
	allDataSheet = "All Data"
	summarySheet = "Summary"
	rankingSheet = "Ranking"

	// excelize rejects longer sheet names
	maxSheetName = 31

	// vertical spacing between embedded chart images
	chartRowStep = 25
)

// BuildFull builds the consolidated workbook: raw data, dataset summary,
// one analysis sheet and one charts sheet per subject, the total analysis,
// and the overall ranking.
func BuildFull(res *dataset.Result) (*excelize.File, error) {
	log := logger.New().WithComponent("report")
	f := res.Frame

	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", allDataSheet); err != nil {
		return nil, err
	}
	if err := writeFrame(wb, allDataSheet, f); err != nil {
		return nil, err
	}
	if err := writeSummary(wb, dataset.Summarize(res)); err != nil {
		return nil, err
	}

	subjects := table.MarkColumns(f)
	for _, subject := range subjects {
		rep, err := analysis.AnalyzeSubject(f, subject)
		if err != nil {
			return nil, err
		}
		if err := writeSubject(wb, f, rep); err != nil {
			return nil, fmt.Errorf("subject %s: %w", subject, err)
		}
	}

	if f.HasColumn(table.ColTotal) {
		rep, err := analysis.AnalyzeTotal(f)
		if err != nil {
			return nil, err
		}
		if err := writeSubject(wb, f, rep); err != nil {
			return nil, fmt.Errorf("total: %w", err)
		}
		if err := writeRanking(wb, f); err != nil {
			return nil, err
		}
	}

	log.WithField("subjects", len(subjects)).WithField("students", f.Len()).
		Info("workbook assembled")
	return wb, nil
}

// BuildSubject builds a workbook for a single subject: raw data plus the
// subject's analysis and charts.
func BuildSubject(res *dataset.Result, subject string) (*excelize.File, error) {
	rep, err := analysis.AnalyzeSubject(res.Frame, subject)
	if err != nil {
		return nil, err
	}
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", allDataSheet); err != nil {
		return nil, err
	}
	if err := writeFrame(wb, allDataSheet, res.Frame); err != nil {
		return nil, err
	}
	if err := writeSubject(wb, res.Frame, rep); err != nil {
		return nil, err
	}
	return wb, nil
}

// Bytes serializes a workbook in memory.
func Bytes(wb *excelize.File) ([]byte, error) {
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFrame(wb *excelize.File, sheet string, f *table.Frame) error {
	style, err := headerStyle(wb)
	if err != nil {
		return err
	}
	cols := f.Columns()
	for i, name := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		_ = wb.SetCellStyle(sheet, cell, cell, style)
		_ = wb.SetColWidth(sheet, cellColumn(cell), cellColumn(cell), 16)
	}
	for r := 0; r < f.Len(); r++ {
		row := f.Row(r)
		for c := range cols {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := wb.SetCellValue(sheet, cell, row[c]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSummary(wb *excelize.File, sum dataset.Summary) error {
	if _, err := wb.NewSheet(summarySheet); err != nil {
		return err
	}
	style, err := headerStyle(wb)
	if err != nil {
		return err
	}

	set := func(cell string, v interface{}) {
		_ = wb.SetCellValue(summarySheet, cell, v)
	}
	set("A1", "Total Students")
	set("B1", sum.TotalStudents)
	set("A2", "Skipped Records")
	set("B2", sum.SkippedRecords)

	row := 4
	set(fmt.Sprintf("A%d", row), "Gender")
	set(fmt.Sprintf("B%d", row), "Count")
	_ = wb.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), style)
	for _, g := range []string{"F", "M"} {
		if c, ok := sum.GenderCounts[g]; ok {
			row++
			set(fmt.Sprintf("A%d", row), g)
			set(fmt.Sprintf("B%d", row), c)
		}
	}

	row += 2
	set(fmt.Sprintf("A%d", row), "Subject")
	set(fmt.Sprintf("B%d", row), "Average Marks")
	_ = wb.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), style)
	for _, subject := range sortedKeys(sum.SubjectAverages) {
		row++
		set(fmt.Sprintf("A%d", row), subject)
		set(fmt.Sprintf("B%d", row), sum.SubjectAverages[subject])
	}

	if sum.TopScorer != nil {
		row += 2
		set(fmt.Sprintf("A%d", row), "Top Scorer")
		set(fmt.Sprintf("B%d", row), sum.TopScorer.Name)
		if sum.TopScorer.Total != nil {
			set(fmt.Sprintf("C%d", row), *sum.TopScorer.Total)
		}
	}
	_ = wb.SetColWidth(summarySheet, "A", "A", 18)
	return nil
}

func writeSubject(wb *excelize.File, f *table.Frame, rep *analysis.SubjectReport) error {
	sheet := sheetName(rep.Subject)
	if _, err := wb.NewSheet(sheet); err != nil {
		return err
	}
	style, err := headerStyle(wb)
	if err != nil {
		return err
	}
	set := func(cell string, v interface{}) {
		_ = wb.SetCellValue(sheet, cell, v)
	}

	set("A1", "Statistic")
	set("B1", "Value")
	_ = wb.SetCellStyle(sheet, "A1", "B1", style)
	row := 1
	if st := rep.Stats; st != nil {
		stats := [][2]interface{}{
			{"Mean", st.Mean},
			{"Median", st.Median},
		}
		if st.Std != nil {
			stats = append(stats, [2]interface{}{"Std", *st.Std})
		}
		stats = append(stats,
			[2]interface{}{"Max", st.Max},
			[2]interface{}{"Min", st.Min},
			[2]interface{}{"Count", st.Count},
		)
		for _, s := range stats {
			row++
			set(fmt.Sprintf("A%d", row), s[0])
			set(fmt.Sprintf("B%d", row), s[1])
		}
	}

	if len(rep.GradeCounts) > 0 {
		row += 2
		set(fmt.Sprintf("A%d", row), "Grade")
		set(fmt.Sprintf("B%d", row), "Count")
		_ = wb.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), style)
		for _, gc := range rep.GradeCounts {
			row++
			set(fmt.Sprintf("A%d", row), gc.Grade)
			set(fmt.Sprintf("B%d", row), gc.Count)
		}
	}

	row += 2
	row = writeScoreTable(wb, sheet, style, row, fmt.Sprintf("Top %d", len(rep.Top)), rep.Top)
	row++
	writeScoreTable(wb, sheet, style, row, fmt.Sprintf("Bottom %d", len(rep.Bottom)), rep.Bottom)

	_ = wb.SetColWidth(sheet, "A", "D", 16)
	return writeCharts(wb, f, rep)
}

// writeScoreTable writes a titled name/roll/marks/grade block and returns
// the next free row.
func writeScoreTable(wb *excelize.File, sheet string, style, row int, title string, rows []analysis.ScoreRow) int {
	set := func(cell string, v interface{}) {
		_ = wb.SetCellValue(sheet, cell, v)
	}
	set(fmt.Sprintf("A%d", row), title)
	_ = wb.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), style)
	row++
	set(fmt.Sprintf("A%d", row), "Name")
	set(fmt.Sprintf("B%d", row), "Roll Number")
	set(fmt.Sprintf("C%d", row), "Marks")
	set(fmt.Sprintf("D%d", row), "Grade")
	_ = wb.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), style)
	for _, s := range rows {
		row++
		set(fmt.Sprintf("A%d", row), s.Name)
		set(fmt.Sprintf("B%d", row), s.RollNumber)
		if s.Marks != nil {
			set(fmt.Sprintf("C%d", row), *s.Marks)
		}
		set(fmt.Sprintf("D%d", row), s.Grade)
	}
	return row + 1
}

func writeCharts(wb *excelize.File, f *table.Frame, rep *analysis.SubjectReport) error {
	sheet := sheetName(rep.Subject + " Charts")
	if _, err := wb.NewSheet(sheet); err != nil {
		return err
	}
	marks := f.Numeric(rep.Subject)

	var images [][]byte
	if len(rep.GradeCounts) > 0 {
		if png, err := charts.GradePie(rep.Subject, rep.GradeCounts); err == nil {
			images = append(images, png)
		}
	}
	if png, err := charts.MarksHistogram(rep.Subject, marks); err == nil {
		images = append(images, png)
	}
	if png, err := charts.MarksBoxPlot(rep.Subject, marks); err == nil {
		images = append(images, png)
	}
	combined := append(append([]analysis.ScoreRow(nil), rep.Top...), rep.Bottom...)
	if png, err := charts.TopBottomBar(rep.Subject, combined); err == nil {
		images = append(images, png)
	}

	row := 1
	for _, png := range images {
		cell := fmt.Sprintf("A%d", row)
		err := wb.AddPictureFromBytes(sheet, cell, &excelize.Picture{
			Extension: ".png",
			File:      png,
			Format:    &excelize.GraphicOptions{ScaleX: 0.8, ScaleY: 0.8},
		})
		if err != nil {
			return fmt.Errorf("embed chart: %w", err)
		}
		row += chartRowStep
	}
	return nil
}

func writeRanking(wb *excelize.File, f *table.Frame) error {
	if _, err := wb.NewSheet(rankingSheet); err != nil {
		return err
	}
	style, err := headerStyle(wb)
	if err != nil {
		return err
	}
	headers := []string{"Rank", "Name", "Roll Number", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = wb.SetCellValue(rankingSheet, cell, h)
		_ = wb.SetCellStyle(rankingSheet, cell, cell, style)
	}
	for i, r := range analysis.Ranking(f) {
		row := i + 2
		_ = wb.SetCellValue(rankingSheet, fmt.Sprintf("A%d", row), r.Rank)
		_ = wb.SetCellValue(rankingSheet, fmt.Sprintf("B%d", row), r.Name)
		_ = wb.SetCellValue(rankingSheet, fmt.Sprintf("C%d", row), r.RollNumber)
		if r.Total != nil {
			_ = wb.SetCellValue(rankingSheet, fmt.Sprintf("D%d", row), *r.Total)
		}
	}
	_ = wb.SetColWidth(rankingSheet, "B", "B", 24)
	return nil
}

func headerStyle(wb *excelize.File) (int, error) {
	return wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
}

func sheetName(s string) string {
	if len(s) > maxSheetName {
		return s[:maxSheetName]
	}
	return s
}

func cellColumn(cell string) string {
	for i, r := range cell {
		if r >= '0' && r <= '9' {
			return cell[:i]
		}
	}
	return cell
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
