package dataprocessing

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "fundingpulse/internal/errors"
	"fundingpulse/pkg/contracts/domain"
)

// nullMarkers are cell values treated as missing, alongside the empty string.
var nullMarkers = []string{"NA", "NaN", "<nil>"}

// Loader reads funding datasets from disk.
type Loader struct {
	logger *slog.Logger
	sheet  string
}

// NewLoader creates a loader. sheet selects the worksheet for XLSX input;
// empty means the first sheet of the workbook.
func NewLoader(logger *slog.Logger, sheet string) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger: logger.With(slog.String("component", "loader")),
		sheet:  sheet,
	}
}

// Load reads path as CSV or XLSX depending on its extension.
func (l *Loader) Load(ctx context.Context, path string) (*domain.RawDataset, error) {
	l.logger.InfoContext(ctx, "loading funding dataset", slog.String("path", path))

	var (
		raw *domain.RawDataset
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		raw, err = LoadWorkbook(path, l.sheet)
	default:
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, apperrors.NewParsingError("open dataset", err).WithContext("path", path)
		}
		defer f.Close()
		raw, err = LoadCSV(f)
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "failed to load dataset",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	l.logger.InfoContext(ctx, "funding dataset loaded",
		slog.String("path", path),
		slog.Int("rows", len(raw.Rows)),
		slog.Int("columns", len(raw.Header)))
	return raw, nil
}

// LoadCSV reads a headed CSV into a RawDataset. Every column is read as a
// string so that coercion is left entirely to Clean. A file holding only a
// header row loads as a dataset with no rows.
func LoadCSV(r io.Reader) (*domain.RawDataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewParsingError("read csv", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nullMarkers),
	)
	if df.Err != nil {
		// gota refuses a frame without data rows
		if header, ok := headerOnly(data); ok {
			return &domain.RawDataset{Header: header}, nil
		}
		return nil, apperrors.NewParsingError("read csv", df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("read csv", fmt.Errorf("no header row"))
	}

	rows := records[1:]
	for _, row := range rows {
		normalizeNulls(row)
	}
	return &domain.RawDataset{
		Header: df.Names(),
		Rows:   rows,
	}, nil
}

// headerOnly reports the header of a CSV whose only record is the header.
func headerOnly(data []byte) ([]string, bool) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// LoadWorkbook reads one worksheet of an XLSX file. The first row is the
// header. Cell values are read unformatted so amounts keep their raw digits;
// date cells in the Funding Date column are rendered back to FundingDateLayout.
func LoadWorkbook(path, sheet string) (*domain.RawDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("open workbook", fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError("read sheet", err).WithContext("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("read sheet", fmt.Errorf("sheet %q is empty", sheet))
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	dateCol := -1
	for i, h := range header {
		if h == domain.ColumnDate {
			dateCol = i
			break
		}
	}

	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells
		padded := make([]string, len(header))
		copy(padded, row)
		normalizeNulls(padded)
		if dateCol >= 0 {
			padded[dateCol] = serialToFundingDate(padded[dateCol])
		}
		body = append(body, padded)
	}

	return &domain.RawDataset{Header: header, Rows: body}, nil
}

// serialToFundingDate converts an Excel date serial to FundingDateLayout.
// Any other value is returned unchanged.
func serialToFundingDate(cell string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || serial <= 0 {
		return cell
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}
	return t.Format(FundingDateLayout)
}

func normalizeNulls(row []string) {
	for i, cell := range row {
		for _, marker := range nullMarkers {
			if cell == marker {
				row[i] = ""
				break
			}
		}
	}
}
