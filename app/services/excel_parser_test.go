package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseQuestionnaire(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Process", "Activity", "Category", "Dimension", "Help Text"},
		{"Design", "CAD Modelling", "Technology", "Tool adoption", "3D tooling in use"},
		{"Design", "CAD Modelling", "Governance", "Ownership", ""},
		{"", "", "", "", ""},
		{"Logistics", "Warehousing", "monitoring & control", "Tracking", ""},
	})

	questions, err := ParseQuestionnaire(buf, "version-1")
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, "Design", questions[0].Process)
	assert.Equal(t, "Technology", questions[0].Category)
	require.NotNil(t, questions[0].HelpText)
	assert.Equal(t, "3D tooling in use", *questions[0].HelpText)
	assert.Nil(t, questions[1].HelpText)

	// Categories are normalized to their canonical spelling.
	assert.Equal(t, "Monitoring & Control", questions[2].Category)

	for i, q := range questions {
		assert.Equal(t, "version-1", q.VersionID)
		assert.Equal(t, i, q.SortOrder)
		assert.True(t, q.IsActive)
	}
}

func TestParseQuestionnaireRejectsUnknownCategory(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Process", "Activity", "Category", "Dimension"},
		{"Design", "CAD Modelling", "Finance", "Budget"},
	})

	_, err := ParseQuestionnaire(buf, "version-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestParseQuestionnaireRejectsMissingColumns(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Process", "Activity", "Dimension"},
		{"Design", "CAD Modelling", "Tooling"},
	})

	_, err := ParseQuestionnaire(buf, "version-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestParseQuestionnaireRejectsEmptySheet(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Process", "Activity", "Category", "Dimension"},
	})

	_, err := ParseQuestionnaire(buf, "version-1")
	require.Error(t, err)
}
