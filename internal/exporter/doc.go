// Package exporter writes funding reports to disk.
//
// This package contains three components:
//
// CSVWriter: Core CSV writing with an optional UTF-8 BOM for Excel
// compatibility.
//
// WorkbookWriter: Writes a set of tables to one XLSX workbook, one sheet per
// table, using excelize.
//
// ReportWriter: Turns a computed dataprocessing.Report into the report file
// set (one CSV per view plus the combined workbook).
//
// Example usage:
//
//	writer := exporter.NewReportWriter("data/reports", exporter.ReportFormat{BOMPrefix: true, Workbook: true}, logger)
//	files, err := writer.Write(ctx, report, seedDeals)
package exporter
