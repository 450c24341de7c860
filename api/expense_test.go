package api

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseHandler_Create(t *testing.T) {
	s := newTestServer(t, nil)
	a := s.createRoom(t, "Block C", "Asha", "0")

	body := fmt.Sprintf(`{"title":"Groceries","amount":"300.50","type":"shared","category":"Food","paidById":%d,"roomId":%d}`,
		a.User.ID, a.Room.ID)
	w := s.do("POST", "/api/expenses", body)
	require.Equal(t, 201, w.Code, w.Body.String())

	var expense struct {
		ID       uint   `json:"id"`
		Title    string `json:"title"`
		Amount   string `json:"amount"`
		Type     string `json:"type"`
		Category string `json:"category"`
		PaidByID uint   `json:"paidById"`
		RoomID   uint   `json:"roomId"`
		Date     string `json:"date"`
		Archived bool   `json:"archived"`
	}
	decode(t, w, &expense)
	assert.NotZero(t, expense.ID)
	assert.Equal(t, "300.5", expense.Amount)
	assert.Equal(t, "shared", expense.Type)
	assert.Equal(t, a.User.ID, expense.PaidByID)
	assert.NotEmpty(t, expense.Date)
	assert.False(t, expense.Archived)

	// 数字金额同样接受
	body = fmt.Sprintf(`{"title":"Soap","amount":45,"type":"personal","category":"Laundry","paidById":%d,"roomId":%d}`,
		a.User.ID, a.Room.ID)
	assert.Equal(t, 201, s.do("POST", "/api/expenses", body).Code)

	// 列表附带付款人
	w = s.do("GET", fmt.Sprintf("/api/rooms/%d/expenses", a.Room.ID), "")
	var list []struct {
		Title  string `json:"title"`
		PaidBy struct {
			Name string `json:"name"`
		} `json:"paidBy"`
	}
	decode(t, w, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Asha", list[0].PaidBy.Name)
}

func TestExpenseHandler_Create_Validation(t *testing.T) {
	s := newTestServer(t, nil)
	a := s.createRoom(t, "Block C", "Asha", "0")
	other := s.createRoom(t, "Block D", "Dev", "0")

	valid := func(overrides string) string {
		return fmt.Sprintf(`{"title":"Bill","amount":"100","type":"shared","category":"WiFi","paidById":%d,"roomId":%d%s}`,
			a.User.ID, a.Room.ID, overrides)
	}

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", fmt.Sprintf(`{"amount":"10","type":"shared","category":"Food","paidById":%d,"roomId":%d}`, a.User.ID, a.Room.ID), "title"},
		{"missing amount", fmt.Sprintf(`{"title":"x","type":"shared","category":"Food","paidById":%d,"roomId":%d}`, a.User.ID, a.Room.ID), "amount"},
		{"zero amount", valid(`,"amount":"0"`), "amount"},
		{"negative amount", valid(`,"amount":-20`), "amount"},
		{"amount below a paisa", valid(`,"amount":"0.004"`), "amount"},
		{"amount with three decimals", valid(`,"amount":"12.345"`), "amount"},
		{"amount out of range", valid(`,"amount":"123456789012345.678"`), "amount"},
		{"amount at column limit", valid(`,"amount":10000000000`), "amount"},
		{"bad type", valid(`,"type":"loan"`), "type"},
		{"blank category", valid(`,"category":"  "`), "category"},
		{"payer from other room", valid(fmt.Sprintf(`,"paidById":%d`, other.User.ID)), "paidById"},
		{"unknown payer", valid(`,"paidById":999`), "paidById"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do("POST", "/api/expenses", tt.body)
			assert.Equal(t, 400, w.Code, w.Body.String())
			var resp ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.field, resp.Field)
		})
	}

	// 校验失败不写入
	w := s.do("GET", fmt.Sprintf("/api/rooms/%d/expenses", a.Room.ID), "")
	assert.JSONEq(t, `[]`, w.Body.String())

	// 尾随零不算多余小数位，列上限内的金额可写入
	assert.Equal(t, 201, s.do("POST", "/api/expenses", valid(`,"amount":"12.500"`)).Code)
	assert.Equal(t, 201, s.do("POST", "/api/expenses", valid(`,"amount":"9999999999.99"`)).Code)
}

func TestExpenseHandler_Delete(t *testing.T) {
	s := newTestServer(t, nil)
	a := s.createRoom(t, "Block C", "A", "0")
	b := s.joinRoom(t, a.Room.Code, "B")

	keep := s.addExpense(t, "Groceries", "300", "shared", "Food", a.User.ID, a.Room.ID)
	drop := s.addExpense(t, "Router", "100", "shared", "WiFi", b.User.ID, a.Room.ID)

	w := s.do("DELETE", fmt.Sprintf("/api/expenses/%d", drop), "")
	assert.Equal(t, 204, w.Code)
	assert.Empty(t, w.Body.String())

	// 重复删除
	assert.Equal(t, 204, s.do("DELETE", fmt.Sprintf("/api/expenses/%d", drop), "").Code)
	assert.Equal(t, 400, s.do("DELETE", "/api/expenses/abc", "").Code)

	var list []struct {
		ID uint `json:"id"`
	}
	decode(t, s.do("GET", fmt.Sprintf("/api/rooms/%d/expenses", a.Room.ID), ""), &list)
	require.Len(t, list, 1)
	assert.Equal(t, keep, list[0].ID)

	// 删除后不计入统计
	var summary SummaryResponse
	decode(t, s.do("GET", fmt.Sprintf("/api/rooms/%d/summary", a.Room.ID), ""), &summary)
	assert.Equal(t, "300", summary.MonthTotal.String())
	assert.Equal(t, "150", summary.FairShare.String())
}

func TestExpenseHandler_Categories(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do("GET", "/api/categories", "")
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `["Food","Electricity","WiFi","Travel","Laundry","Misc"]`, w.Body.String())
}
