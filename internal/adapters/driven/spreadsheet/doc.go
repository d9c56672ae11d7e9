// Package spreadsheet groups the workbook adapters.
//
// Subpackages:
//   - excel: reads .xlsx files with excelize
//   - memory: in-memory workbooks for tests and fixtures
package spreadsheet
