// Package server hosts the single-screen upload-and-chart shell. Every
// request runs the pipeline against its own in-memory table; nothing is
// persisted or shared between requests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/halfmoonliu/SaturationApp/internal/chart"
	"github.com/halfmoonliu/SaturationApp/internal/config"
	"github.com/halfmoonliu/SaturationApp/internal/pipeline"
)

// Server serves the upload form and renders analysis results.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	http   *http.Server
}

// New wires the routes and returns a server ready to Run.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	s := &Server{cfg: cfg, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/healthz", s.handleHealthz)

	s.http = &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving upload-and-chart shell", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

// handleIndex shows the upload form plus the example-format table.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.renderIndex(w, http.StatusOK, "")
}

// handleAnalyze runs the pipeline on an uploaded CSV and renders the
// result page, or the upload page with the failure message and the static
// format hint. No partial output is shown alongside an error.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.logger.Warn("upload rejected", zap.Error(err))
		s.renderIndex(w, http.StatusBadRequest, "Please choose a CSV file to upload.")
		return
	}
	defer file.Close()

	label := r.FormValue("unit")
	if label == "" {
		label = s.cfg.UnitLabel
	}

	res, err := pipeline.Run(file, pipeline.Options{Label: label})
	if err != nil {
		s.logger.Info("analysis failed",
			zap.String("file", header.Filename),
			zap.Error(err))
		s.renderIndex(w, http.StatusUnprocessableEntity, userMessage(err))
		return
	}

	payload, err := json.Marshal(chart.Build(res))
	if err != nil {
		s.logger.Error("chart payload encoding failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("analysis complete",
		zap.String("file", header.Filename),
		zap.Int("interviews", res.Summary.TotalInterviews),
		zap.Int("dropped_rows", res.Dataset.DroppedRows))

	data := resultData{
		Label:     titleCase(res.Dataset.Label),
		Rows:      tableRows(res),
		Summary:   res.Summary,
		Dropped:   res.Dataset.DroppedRows,
		ChartJSON: template.JS(payload),
		AvgItems:  fmt.Sprintf("%.1f", res.Summary.AvgItemsPerInterview),
		AvgNew:    fmt.Sprintf("%.1f", res.Summary.AvgNewItemsPerInterview),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := resultTmpl.Execute(w, data); err != nil {
		s.logger.Error("result render failed", zap.Error(err))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) renderIndex(w http.ResponseWriter, status int, errMsg string) {
	data := indexData{
		Label:   titleCase(s.cfg.UnitLabel),
		Unit:    s.cfg.UnitLabel,
		Error:   errMsg,
		Hint:    pipeline.FormatHint,
		Example: tableRows(pipeline.Example(s.cfg.UnitLabel)),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("index render failed", zap.Error(err))
	}
}

// userMessage maps pipeline failures to the message shown on the page.
func userMessage(err error) string {
	var se *pipeline.StructuralError
	if errors.As(err, &se) {
		return fmt.Sprintf("The file must have at least 3 columns (found %d).", se.Columns)
	}
	var pe *pipeline.ProcessingError
	if errors.As(err, &pe) && pe.Stage == "filtering" {
		return "No usable rows: every row had a non-numeric value in a required column."
	}
	return fmt.Sprintf("Could not process the file: %v.", err)
}
