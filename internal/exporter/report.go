package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"fundingpulse/internal/dataprocessing"
	"fundingpulse/pkg/contracts/domain"
)

// ReportFormat selects the optional parts of a report export
type ReportFormat struct {
	BOMPrefix bool
	Workbook  bool
}

// ReportWriter writes the report file set into one directory
type ReportWriter struct {
	dir      string
	format   ReportFormat
	csv      *CSVWriter
	workbook *WorkbookWriter
	logger   *slog.Logger
}

// NewReportWriter creates a report writer for dir
func NewReportWriter(dir string, format ReportFormat, logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		dir:      dir,
		format:   format,
		csv:      NewCSVWriter(dir, logger),
		workbook: NewWorkbookWriter(logger),
		logger:   logger.With(slog.String("component", "report_writer")),
	}
}

// Write exports every table of report, plus the stage query result when
// stageDeals is non-nil, and returns the paths written in order.
func (w *ReportWriter) Write(ctx context.Context, report *dataprocessing.Report, stageDeals []domain.StageDeal) ([]string, error) {
	tables := ReportTables(report, stageDeals)
	files := make([]string, 0, len(tables)+1)

	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		path, err := w.csv.WriteTable(t, w.format.BOMPrefix)
		if err != nil {
			return files, fmt.Errorf("write %s: %w", t.Name, err)
		}
		files = append(files, path)
	}

	if w.format.Workbook {
		path := filepath.Join(w.dir, WorkbookFile)
		if err := w.workbook.Write(path, tables); err != nil {
			return files, err
		}
		files = append(files, path)
	}

	w.logger.InfoContext(ctx, "report exported",
		slog.String("dir", w.dir),
		slog.Int("files", len(files)),
		slog.Bool("workbook", w.format.Workbook))
	return files, nil
}
