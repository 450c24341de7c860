package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"hostel/models"
	"hostel/settlement"

	"github.com/xuri/excelize/v2"
)

const (
	sheetExpenses   = "Expenses"
	sheetSettlement = "Settlement"
	dateLayout      = "2006-01-02"
)

// Statement 房间当期结算单，用于导出和邮件附件
type Statement struct {
	Room        *models.Room
	Expenses    []models.Expense
	Summary     *settlement.Summary
	GeneratedAt time.Time
}

// NewStatement 基于当前账本数据生成结算单
func NewStatement(room *models.Room, users []models.User, expenses []models.Expense) *Statement {
	return &Statement{
		Room:        room,
		Expenses:    expenses,
		Summary:     settlement.Compute(room.ID, users, expenses),
		GeneratedAt: time.Now(),
	}
}

// Filename 导出文件名，如 statement_ABC123_2024-06-30.xlsx
func (s *Statement) Filename(ext string) string {
	return fmt.Sprintf("statement_%s_%s.%s", s.Room.Code, s.GeneratedAt.Format(dateLayout), ext)
}

var expenseHeaders = []string{"ID", "Date", "Title", "Category", "Type", "Paid By", "Amount"}

func payerName(e models.Expense) string {
	if e.PaidBy != nil {
		return e.PaidBy.Name
	}
	return fmt.Sprintf("#%d", e.PaidByID)
}

// WriteCSV 导出消费明细与结算情况为 CSV
func (s *Statement) WriteCSV(w io.Writer) error {
	// 添加 BOM 以支持 Excel 打开
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}
	writer := csv.NewWriter(w)

	if err := writer.Write(expenseHeaders); err != nil {
		return err
	}
	for _, e := range s.Expenses {
		row := []string{
			fmt.Sprintf("%d", e.ID),
			e.Date.Format(dateLayout),
			e.Title,
			e.Category,
			e.Type,
			payerName(e),
			e.Amount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	// 空行分隔结算部分
	rows := [][]string{
		{},
		{"Member", "Paid", "Fair Share", "Net", "Status"},
	}
	for _, p := range s.Summary.Positions {
		rows = append(rows, []string{
			p.Name,
			p.Paid.StringFixed(0),
			p.FairShare.StringFixed(0),
			p.Net.StringFixed(0),
			positionStatus(p),
		})
	}
	rows = append(rows, []string{"Total Shared", s.Summary.TotalShared.StringFixed(0)})
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}

// sharedCount 计入平摊的消费条数
func (s *Statement) sharedCount() int {
	n := 0
	for i := range s.Expenses {
		if s.Expenses[i].IsShared() {
			n++
		}
	}
	return n
}

func positionStatus(p settlement.Position) string {
	if p.Settled() {
		return "settled"
	}
	if p.Direction() == settlement.DirectionGetsBack {
		return "gets back " + p.Net.Abs().StringFixed(0)
	}
	return "pays " + p.Net.Abs().StringFixed(0)
}

// XLSX 生成包含消费明细和结算两个工作表的 Excel 文件
func (s *Statement) XLSX() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetExpenses); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(sheetSettlement); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})

	// 消费明细
	f.SetColWidth(sheetExpenses, "A", "A", 8)
	f.SetColWidth(sheetExpenses, "B", "B", 14)
	f.SetColWidth(sheetExpenses, "C", "C", 30)
	f.SetColWidth(sheetExpenses, "D", "F", 14)
	f.SetColWidth(sheetExpenses, "G", "G", 12)
	writeRow(f, sheetExpenses, 1, toCells(expenseHeaders), headerStyle)
	for i, e := range s.Expenses {
		amount, _ := e.Amount.Float64()
		writeRow(f, sheetExpenses, i+2, []interface{}{
			e.ID, e.Date.Format(dateLayout), e.Title, e.Category, e.Type, payerName(e), amount,
		}, dataStyle)
	}
	totalRow := len(s.Expenses) + 2
	shared, _ := s.Summary.TotalShared.Float64()
	writeRow(f, sheetExpenses, totalRow, []interface{}{
		"Shared Total", "", "", "", "", fmt.Sprintf("%d shared records", s.sharedCount()), shared,
	}, summaryStyle)
	f.MergeCell(sheetExpenses, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("E%d", totalRow))

	// 结算
	f.SetColWidth(sheetSettlement, "A", "A", 18)
	f.SetColWidth(sheetSettlement, "B", "E", 14)
	writeRow(f, sheetSettlement, 1, toCells([]string{"Member", "Paid", "Fair Share", "Net", "Status"}), headerStyle)
	for i, p := range s.Summary.Positions {
		writeRow(f, sheetSettlement, i+2, []interface{}{
			p.Name,
			p.Paid.Round(0).IntPart(),
			p.FairShare.Round(0).IntPart(),
			p.Net.Round(0).IntPart(),
			positionStatus(p),
		}, dataStyle)
	}
	return f, nil
}

// WriteXLSX 导出 Excel 到 w
func (s *Statement) WriteXLSX(w io.Writer) error {
	f, err := s.XLSX()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// XLSXBytes 导出 Excel 字节，用于邮件附件
func (s *Statement) XLSXBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteXLSX(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}, style int) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	f.SetCellStyle(sheet, first, last, style)
}
