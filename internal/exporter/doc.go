// Package exporter delivers projection tables to the visualization
// consumers.
//
// CSVWriter: core CSV writing with headers, streaming, and a UTF-8 BOM for
// Excel compatibility.
//
// Wide/beeswarm helpers: turn domain rows into CSV records, both the wide
// table the scraper produces and the display-ready vote table the beeswarm
// chart template ingests.
//
// XLSX and Google Sheets: the same beeswarm table written as an Excel
// workbook (xuri/excelize) or published to a spreadsheet range
// (google.golang.org/api sheets/v4) for chart tools that read from Sheets.
package exporter
