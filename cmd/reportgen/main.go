package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/analysis"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/charts"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/dataset"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/logger"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/report"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/table"
)

func main() {
	in := flag.String("in", "", "path or http(s) URL of the exam export (.txt)")
	out := flag.String("out", "student_report.xlsx", "output workbook path")
	subject := flag.String("subject", "", "limit the report to one subject column")
	chartsDir := flag.String("charts-dir", "", "also write the charts as standalone PNG files")
	flag.Parse()

	log := logger.New().WithComponent("reportgen")
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	var (
		res *dataset.Result
		err error
	)
	if dataset.IsURL(*in) {
		res, err = dataset.LoadURL(*in)
	} else {
		res, err = dataset.Load(*in)
	}
	if err != nil {
		log.WithError(err).Fatal("load export")
	}
	log.WithField("students", res.Frame.Len()).
		WithField("skipped", res.Skipped).Info("export parsed")

	var wb *excelize.File
	if *subject != "" {
		wb, err = report.BuildSubject(res, *subject)
	} else {
		wb, err = report.BuildFull(res)
	}
	if err != nil {
		log.WithError(err).Fatal("build report")
	}
	if err := wb.SaveAs(*out); err != nil {
		log.WithError(err).Fatal("save workbook")
	}
	log.WithField("path", *out).Info("report written")

	if *chartsDir != "" {
		if err := dumpCharts(res, *subject, *chartsDir); err != nil {
			log.WithError(err).Fatal("write charts")
		}
		log.WithField("dir", *chartsDir).Info("charts written")
	}
}

func dumpCharts(res *dataset.Result, only, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create charts dir: %w", err)
	}

	subjects := table.MarkColumns(res.Frame)
	if res.Frame.HasColumn(table.ColTotal) {
		subjects = append(subjects, table.ColTotal)
	}
	if only != "" {
		subjects = []string{only}
	}

	for _, subject := range subjects {
		rep, err := analysis.AnalyzeSubject(res.Frame, subject)
		if err != nil {
			return err
		}
		marks := res.Frame.Numeric(subject)

		renders := map[string]func() ([]byte, error){
			"pie":  func() ([]byte, error) { return charts.GradePie(subject, rep.GradeCounts) },
			"hist": func() ([]byte, error) { return charts.MarksHistogram(subject, marks) },
			"box":  func() ([]byte, error) { return charts.MarksBoxPlot(subject, marks) },
			"top_bottom": func() ([]byte, error) {
				combined := append(append([]analysis.ScoreRow(nil), rep.Top...), rep.Bottom...)
				return charts.TopBottomBar(subject, combined)
			},
		}
		if len(rep.GradeCounts) == 0 {
			delete(renders, "pie")
		}

		for name, render := range renders {
			png, err := render()
			if err != nil {
				continue
			}
			file := fmt.Sprintf("%s_%s.png", fileToken(subject), name)
			if err := os.WriteFile(filepath.Join(dir, file), png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", file, err)
			}
		}
	}
	return nil
}

func fileToken(subject string) string {
	return strings.ToLower(strings.ReplaceAll(subject, " ", "_"))
}
