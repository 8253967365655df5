// Package export encodes aggregation results as CSV and XLSX downloads.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/cloksy/cloksy-backend/internal/timesheet/report"
)

// Download file names and content types
const (
	ProjectSummaryCSVName       = "project_summary.csv"
	ProjectSummaryXLSXName      = "project_summary.xlsx"
	DepartmentBreakdownCSVName  = "dept_breakdown.csv"
	DepartmentBreakdownXLSXName = "dept_breakdown.xlsx"

	CSVContentType  = "text/csv"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Sheet names
const (
	SummarySheet   = "Summary"
	BreakdownSheet = "Breakdown"
)

var (
	projectTotalsHeader       = []string{"project", "hours"}
	departmentBreakdownHeader = []string{"department", "day", "project", "hours"}
)

// FormatHours renders hours in the shortest form that round-trips
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// ProjectTotalsCSV encodes totals with a project,hours header
func ProjectTotalsCSV(totals []report.ProjectTotal) ([]byte, error) {
	records := make([][]string, 0, len(totals))
	for _, t := range totals {
		records = append(records, []string{t.Project, FormatHours(t.Hours)})
	}
	return encodeCSV(projectTotalsHeader, records)
}

// DepartmentBreakdownCSV encodes the long-form department breakdown
func DepartmentBreakdownCSV(rows []report.DepartmentDayTotal) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Department, r.Day, r.Project, FormatHours(r.Hours)})
	}
	return encodeCSV(departmentBreakdownHeader, records)
}

func encodeCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseProjectTotalsCSV decodes the output of ProjectTotalsCSV
func ParseProjectTotalsCSV(data []byte) ([]report.ProjectTotal, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(projectTotalsHeader)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if header[0] != projectTotalsHeader[0] || header[1] != projectTotalsHeader[1] {
		return nil, fmt.Errorf("unexpected csv header %v", header)
	}

	var out []report.ProjectTotal
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		hours, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours on line %d: %w", line, err)
		}
		out = append(out, report.ProjectTotal{Project: rec[0], Hours: hours})
	}
	return out, nil
}

// ProjectTotalsXLSX writes totals to a single "Summary" sheet
func ProjectTotalsXLSX(totals []report.ProjectTotal) ([]byte, error) {
	rows := make([][]interface{}, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []interface{}{t.Project, t.Hours})
	}
	return encodeXLSX(SummarySheet, projectTotalsHeader, rows)
}

// DepartmentBreakdownXLSX writes the long-form breakdown to a "Breakdown" sheet
func DepartmentBreakdownXLSX(rows []report.DepartmentDayTotal) ([]byte, error) {
	cells := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []interface{}{r.Department, r.Day, r.Project, r.Hours})
	}
	return encodeXLSX(BreakdownSheet, departmentBreakdownHeader, cells)
}

func encodeXLSX(sheet string, header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// rename the default sheet so the workbook has exactly one
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
