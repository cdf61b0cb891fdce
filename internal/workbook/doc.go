// Package workbook reads weekly rosters from uploaded spreadsheets and renders
// staffing reports as xlsx workbooks.
package workbook
