package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRender(t *testing.T) {
	buf, err := Render("Attendance Daily",
		[]string{"Employee Code", "Name", "Hours Worked"},
		[][]any{
			{"EMP-001", "Jane Doe", 8.5},
			{"EMP-002", "John Roe", 0},
		},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance Daily"}, f.GetSheetList())

	rows, err := f.GetRows("Attendance Daily")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee Code", "Name", "Hours Worked"}, rows[0])
	assert.Equal(t, []string{"EMP-001", "Jane Doe", "8.5"}, rows[1])
	assert.Equal(t, "EMP-002", rows[2][0])

	width, err := f.GetColWidth("Attendance Daily", "C")
	require.NoError(t, err)
	assert.Equal(t, float64(columnWidth), width)

	styleID, err := f.GetCellStyle("Attendance Daily", "B1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "center", style.Alignment.Horizontal)
}

func TestRender_EmptyRows(t *testing.T) {
	buf, err := Render("", []string{"Employee Code", "Name"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(defaultSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, defaultSheet, sheetName(""))
	assert.Len(t, sheetName("A sheet name that is definitely longer than allowed"), maxSheetNameLen)
}
