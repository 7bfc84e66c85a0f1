package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sandrello1971/newassessment/app/models"
)

// Column order of a questionnaire workbook. The header row is matched by name
// so extra columns after help_text are ignored.
var questionColumns = []string{"process", "activity", "category", "dimension", "help_text"}

// ParseQuestionnaire reads an .xlsx workbook and returns its rows as questions
// for one template version. The first sheet is used; the first row must be a
// header naming at least process, activity, category and dimension. Rows with
// an unknown category abort the import so a typo never silently drops a
// question into a fifth domain.
func ParseQuestionnaire(r io.Reader, versionID string) ([]*models.Question, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var questions []*models.Question
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		q := &models.Question{
			VersionID: versionID,
			Process:   cell(row, cols["process"]),
			Activity:  cell(row, cols["activity"]),
			Category:  normalizeCategory(cell(row, cols["category"])),
			Dimension: cell(row, cols["dimension"]),
			SortOrder: len(questions),
			Weight:    1.0,
			IsActive:  true,
		}
		if help, ok := cols["help_text"]; ok {
			if text := cell(row, help); text != "" {
				q.HelpText = &text
			}
		}

		if q.Process == "" || q.Activity == "" || q.Category == "" || q.Dimension == "" {
			return nil, fmt.Errorf("row %d: missing process, activity, category or dimension", i+2)
		}
		if !models.IsValidCategory(q.Category) {
			return nil, fmt.Errorf("row %d: unknown category %q", i+2, q.Category)
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("sheet %q contains no questions", sheet)
	}
	return questions, nil
}

func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(questionColumns))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		cols[key] = i
	}
	for _, required := range questionColumns[:4] {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("header is missing the %q column", required)
		}
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// normalizeCategory maps the spellings that appear in historical workbooks
// onto the canonical category names.
func normalizeCategory(raw string) string {
	switch strings.ToLower(raw) {
	case "governance":
		return string(models.Governance)
	case "monitoring", "monitoring & control", "monitoring and control":
		return string(models.Monitoring)
	case "technology":
		return string(models.Technology)
	case "organization", "organisation":
		return string(models.Organization)
	}
	return raw
}
