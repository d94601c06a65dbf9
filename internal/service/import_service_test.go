package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/HThanh-how/LBG/pkg/errors"
)

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2", 2, true},
		{"6", 6, true},
		{"Thứ 2", 2, true},
		{"Thứ 6", 6, true},
		{" 4 ", 4, true},
		{"1", 0, false},
		{"7", 0, false},
		{"CN", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		day, err := parseWeekday(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, tc.want, day, tc.in)
		} else {
			require.Error(t, err, tc.in)
		}
	}
}

func TestParseCellInt(t *testing.T) {
	n, err := parseCellInt("5")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	// xls numeric cells render as floats.
	n, err = parseCellInt("5.0")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = parseCellInt("Toán")
	require.Error(t, err)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, isNumeric("3"))
	assert.True(t, isNumeric("3.0"))
	assert.False(t, isNumeric("Thứ 3"))
	assert.False(t, isNumeric(""))
}

func TestImportTimetableRejectsNonXls(t *testing.T) {
	svc := NewImportService(nil, nil, nil)

	_, err := svc.ImportTimetable(context.Background(), "user-1", "tkb.xlsx", bytes.NewReader([]byte("PK\x03\x04")))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFormat.Code, appErrors.FromError(err).Code)
}
