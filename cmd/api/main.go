package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/analysis"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/dataset"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/logger"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/report"
	"github.com/Karunya-Muddana/CBSE-RESULT-ANALASYS-streamlit/internal/table"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "cbse-result-analysis").Info("starting service")

	var (
		mu  sync.RWMutex
		cur *dataset.Result
	)

	resultsPath := envOr("RESULTS_PATH", "results.txt")
	if res, err := dataset.Load(resultsPath); err != nil {
		log.WithError(err).WithField("results_path", resultsPath).
			Warn("no dataset at startup; waiting for upload")
	} else {
		cur = res
		log.WithField("students", res.Frame.Len()).
			WithField("skipped", res.Skipped).Info("dataset loaded")
	}

	current := func() *dataset.Result {
		mu.RLock()
		defer mu.RUnlock()
		return cur
	}

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// upload replaces the in-memory dataset with the posted export text
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "upload")
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			reqLog.WithError(err).Warn("read body failed")
			http.Error(w, "read body failed", http.StatusBadRequest)
			return
		}
		res, err := dataset.FromText(string(body))
		if err != nil {
			reqLog.WithError(err).Warn("upload rejected")
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		mu.Lock()
		cur = res
		mu.Unlock()
		reqLog.WithField("students", res.Frame.Len()).
			WithField("skipped", res.Skipped).Info("dataset replaced")
		writeJSON(w, reqLog, dataset.Summarize(res))
	})

	// detected subject mark columns
	mux.HandleFunc("/subjects", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "subjects")
		res := current()
		if res == nil {
			noDataset(w)
			return
		}
		writeJSON(w, reqLog, map[string][]string{"subjects": table.MarkColumns(res.Frame)})
	})

	// per-subject analysis
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analyze")
		res := current()
		if res == nil {
			noDataset(w)
			return
		}
		subject := r.URL.Query().Get("subject")
		if subject == "" || !res.Frame.HasColumn(subject) {
			reqLog.WithField("subject", subject).Warn("unknown subject")
			msg := fmt.Sprintf("unknown subject %q; detected: %s",
				subject, strings.Join(table.MarkColumns(res.Frame), ", "))
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		rep, err := analysis.AnalyzeSubject(res.Frame, subject)
		if err != nil {
			reqLog.WithError(err).Error("analysis failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, reqLog, rep)
	})

	// overall total analysis
	mux.HandleFunc("/analyze/total", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analyze_total")
		res := current()
		if res == nil {
			noDataset(w)
			return
		}
		rep, err := analysis.AnalyzeTotal(res.Frame)
		if err != nil {
			reqLog.WithError(err).Error("total analysis failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, reqLog, rep)
	})

	// ranking by total marks
	mux.HandleFunc("/ranking", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "ranking")
		res := current()
		if res == nil {
			noDataset(w)
			return
		}
		writeJSON(w, reqLog, analysis.Ranking(res.Frame))
	})

	// dataset summary
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "summary")
		res := current()
		if res == nil {
			noDataset(w)
			return
		}
		writeJSON(w, reqLog, dataset.Summarize(res))
	})

	// consolidated workbook download
	mux.HandleFunc("/report.xlsx", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "report")
		res := current()
		if res == nil {
			noDataset(w)
			return
		}
		start := time.Now()
		wb, err := report.BuildFull(res)
		if err != nil {
			reqLog.WithError(err).Error("report build failed")
			http.Error(w, "report build failed", http.StatusInternalServerError)
			return
		}
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("report built")
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=student_report.xlsx")
		if err := wb.Write(w); err != nil {
			reqLog.WithError(err).Error("failed to write workbook")
		}
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func writeJSON(w http.ResponseWriter, reqLog *logrus.Entry, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		reqLog.WithError(err).Error("failed to write response")
	}
}

func noDataset(w http.ResponseWriter) {
	http.Error(w, "no dataset loaded; POST an export to /upload first", http.StatusServiceUnavailable)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
