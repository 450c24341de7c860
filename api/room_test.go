package api

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hostel/ledger"
	"hostel/middleware"
	"hostel/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomHandler_Create(t *testing.T) {
	s := newTestServer(t, nil)

	out := s.createRoom(t, "Block C 204", "Asha", "5000")
	assert.Equal(t, "Block C 204", out.Room.Name)
	assert.Len(t, out.Room.Code, 6)
	assert.Equal(t, strings.ToUpper(out.Room.Code), out.Room.Code)
	assert.Equal(t, "5000", out.Room.CommunalBudget)
	assert.Equal(t, "Asha", out.User.Name)
	assert.Equal(t, out.Room.ID, out.User.RoomID)
	assert.Equal(t, "0", out.User.PersonalBudget, "budget defaults to 0")

	claims, err := middleware.ParseToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Room.ID, claims.RoomID)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, out.Room.Code, claims.RoomCode)
}

func TestRoomHandler_Create_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"userName":"Asha"}`, "name"},
		{"blank name", `{"name":"   ","userName":"Asha"}`, "name"},
		{"missing user", `{"name":"Room"}`, "userName"},
		{"negative budget", `{"name":"Room","userName":"Asha","communalBudget":"-1"}`, "communalBudget"},
		{"negative personal budget", `{"name":"Room","userName":"Asha","userPersonalBudget":-5}`, "userPersonalBudget"},
		{"budget out of range", `{"name":"Room","userName":"Asha","communalBudget":"99999999999999"}`, "communalBudget"},
		{"budget below a paisa", `{"name":"Room","userName":"Asha","communalBudget":"100.005"}`, "communalBudget"},
		{"personal budget out of range", `{"name":"Room","userName":"Asha","userPersonalBudget":10000000000}`, "userPersonalBudget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do("POST", "/api/rooms", tt.body)
			assert.Equal(t, 400, w.Code)
			var resp ErrorResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.field, resp.Field)
			assert.NotEmpty(t, resp.Message)
		})
	}

	// 非法 JSON
	w := s.do("POST", "/api/rooms", `{"name":`)
	assert.Equal(t, 400, w.Code)

	// 预算格式错误
	w = s.do("POST", "/api/rooms", `{"name":"Room","userName":"Asha","communalBudget":"lots"}`)
	assert.Equal(t, 400, w.Code)

	// 空字符串预算视为 0
	w = s.do("POST", "/api/rooms", `{"name":"Room","userName":"Asha","communalBudget":""}`)
	assert.Equal(t, 201, w.Code)
}

func TestRoomHandler_Join(t *testing.T) {
	s := newTestServer(t, nil)
	created := s.createRoom(t, "Block C", "Asha", "0")

	// 加入码忽略大小写和首尾空白
	w := s.do("POST", "/api/rooms/join",
		fmt.Sprintf(`{"code":" %s ","userName":"Ben","userPersonalBudget":"1500"}`, strings.ToLower(created.Room.Code)))
	require.Equal(t, 200, w.Code, w.Body.String())
	var joined sessionBody
	decode(t, w, &joined)
	assert.Equal(t, created.Room.ID, joined.Room.ID)
	assert.Equal(t, "Ben", joined.User.Name)
	assert.Equal(t, "1500", joined.User.PersonalBudget)
	assert.NotEqual(t, created.User.ID, joined.User.ID)
	assert.NotEmpty(t, joined.Token)
}

func TestRoomHandler_Join_Errors(t *testing.T) {
	s := newTestServer(t, nil)
	s.createRoom(t, "Block C", "Asha", "0")

	w := s.do("POST", "/api/rooms/join", `{"code":"ZZZZZZ","userName":"Ben"}`)
	assert.Equal(t, 404, w.Code)
	var resp ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "Room not found. Check the code!", resp.Message)

	w = s.do("POST", "/api/rooms/join", `{"code":"ABC","userName":"Ben"}`)
	assert.Equal(t, 400, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, "code", resp.Field)

	w = s.do("POST", "/api/rooms/join", `{"code":"ABCDEF"}`)
	assert.Equal(t, 400, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, "userName", resp.Field)
	assert.Equal(t, "userName is required", resp.Message)
}

func TestRoomHandler_GetAndUsers(t *testing.T) {
	s := newTestServer(t, nil)
	created := s.createRoom(t, "Block C", "Asha", "0")
	s.joinRoom(t, created.Room.Code, "Ben")
	s.joinRoom(t, created.Room.Code, "Cara")

	w := s.do("GET", fmt.Sprintf("/api/rooms/%d", created.Room.ID), "")
	require.Equal(t, 200, w.Code)
	var room struct {
		ID      uint   `json:"id"`
		Code    string `json:"code"`
		Members []struct {
			Name string `json:"name"`
		} `json:"members"`
	}
	decode(t, w, &room)
	assert.Equal(t, created.Room.ID, room.ID)
	assert.Equal(t, created.Room.Code, room.Code)
	require.Len(t, room.Members, 3)
	assert.Equal(t, "Asha", room.Members[0].Name)
	assert.Equal(t, "Cara", room.Members[2].Name)

	w = s.do("GET", fmt.Sprintf("/api/rooms/%d/users", created.Room.ID), "")
	require.Equal(t, 200, w.Code)
	var users []struct {
		Name string `json:"name"`
	}
	decode(t, w, &users)
	assert.Equal(t, "Ben", users[1].Name)

	assert.Equal(t, 404, s.do("GET", "/api/rooms/999", "").Code)
	assert.Equal(t, 400, s.do("GET", "/api/rooms/abc", "").Code)

	// 不存在的房间成员列表为空数组
	w = s.do("GET", "/api/rooms/999/users", "")
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRoomHandler_Reset(t *testing.T) {
	mailer := &fakeMailer{}
	s := newTestServer(t, mailer)
	a := s.createRoom(t, "Block C", "A", "1000")
	b := s.joinRoom(t, a.Room.Code, "B")
	roomID := a.Room.ID

	s.addExpense(t, "Groceries", "300", "shared", "Food", a.User.ID, roomID)
	s.addExpense(t, "Router", "100", "shared", "WiFi", b.User.ID, roomID)

	w := s.do("POST", fmt.Sprintf("/api/rooms/%d/reset", roomID), "")
	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"message":"Month reset successfully"}`, w.Body.String())

	// 结算单内容为归档前的数据
	require.Len(t, mailer.sent, 1)
	assert.Len(t, mailer.sent[0].Expenses, 2)
	assert.Equal(t, "400", mailer.sent[0].Summary.TotalShared.String())

	w = s.do("GET", fmt.Sprintf("/api/rooms/%d/expenses", roomID), "")
	assert.JSONEq(t, `[]`, w.Body.String())

	var summary SummaryResponse
	decode(t, s.do("GET", fmt.Sprintf("/api/rooms/%d/summary", roomID), ""), &summary)
	assert.Equal(t, "0", summary.MonthTotal.String())
	assert.Empty(t, summary.Settlements)

	var settlements SettlementsResponse
	decode(t, s.do("GET", fmt.Sprintf("/api/rooms/%d/settlements", roomID), ""), &settlements)
	assert.Equal(t, NothingToSettle, settlements.Message)

	// 再次重置仍然成功
	assert.Equal(t, 200, s.do("POST", fmt.Sprintf("/api/rooms/%d/reset", roomID), "").Code)
}

func TestRoomHandler_Reset_MailFailureDoesNotBlock(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	s := newTestServer(t, mailer)
	a := s.createRoom(t, "Block C", "A", "0")
	s.addExpense(t, "Groceries", "300", "shared", "Food", a.User.ID, a.Room.ID)

	w := s.do("POST", fmt.Sprintf("/api/rooms/%d/reset", a.Room.ID), "")
	assert.Equal(t, 200, w.Code)

	w = s.do("GET", fmt.Sprintf("/api/rooms/%d/expenses", a.Room.ID), "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

type archiveFailingStore struct {
	*ledger.MemoryStore
}

func (s archiveFailingStore) ArchiveRoomExpenses(context.Context, uint) (int64, error) {
	return 0, errors.New("lock wait timeout exceeded")
}

func TestRoomHandler_Reset_ArchiveFailureSendsNoMail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mailer := &fakeMailer{}
	store := ledger.NewMemoryStore()
	room := &models.Room{Name: "Block C"}
	require.NoError(t, store.OpenRoom(context.Background(), room, &models.User{Name: "A"}))

	rooms := NewRoomHandler(archiveFailingStore{store}, time.Hour, mailer)
	r := gin.New()
	r.POST("/api/rooms/:id/reset", rooms.Reset)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/rooms/%d/reset", room.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, 500, w.Code)
	assert.Empty(t, mailer.sent)
}
