package api

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportHandler_ExportCSV(t *testing.T) {
	s := newTestServer(t, nil)
	a := s.createRoom(t, "Block C", "Asha", "0")
	s.addExpense(t, "Groceries", "300", "shared", "Food", a.User.ID, a.Room.ID)

	w := s.do("GET", fmt.Sprintf("/api/rooms/%d/export/csv", a.Room.ID), "")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "statement_"+a.Room.Code)
	assert.Contains(t, w.Body.String(), "ID,Date,Title,Category,Type,Paid By,Amount")
	assert.Contains(t, w.Body.String(), "Groceries,Food,shared,Asha,300.00")
}

func TestExportHandler_ExportXLSX(t *testing.T) {
	s := newTestServer(t, nil)
	a := s.createRoom(t, "Block C", "Asha", "0")
	s.addExpense(t, "Groceries", "300", "shared", "Food", a.User.ID, a.Room.ID)

	w := s.do("GET", fmt.Sprintf("/api/rooms/%d/export/xlsx", a.Room.ID), "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	title, err := f.GetCellValue("Expenses", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", title)
}

func TestExportHandler_NotFound(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Equal(t, 404, s.do("GET", "/api/rooms/7/export/csv", "").Code)
	assert.Equal(t, 404, s.do("GET", "/api/rooms/7/export/xlsx", "").Code)
	assert.Equal(t, 400, s.do("GET", "/api/rooms/0/export/csv", "").Code)
}
