package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"hostel/config"
	"hostel/ledger"
	"hostel/middleware"
	"hostel/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	store  *ledger.MemoryStore
	router *gin.Engine
}

type fakeMailer struct {
	sent []*service.Statement
	err  error
}

func (m *fakeMailer) SendStatement(st *service.Statement) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, st)
	return nil
}

func newTestServer(t *testing.T, mailer service.StatementMailer) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	t.Cleanup(func() { config.GlobalConfig = nil })

	store := ledger.NewMemoryStore()
	rooms := NewRoomHandler(store, time.Hour, mailer)
	expenses := NewExpenseHandler(store)
	settlements := NewSettlementHandler(store)
	exports := NewExportHandler(store)
	sessions := NewSessionHandler(store)

	r := gin.New()
	r.POST("/api/rooms", rooms.Create)
	r.POST("/api/rooms/join", rooms.Join)
	r.GET("/api/rooms/:id", rooms.Get)
	r.GET("/api/rooms/:id/users", rooms.Users)
	r.GET("/api/rooms/:id/expenses", rooms.Expenses)
	r.POST("/api/rooms/:id/reset", rooms.Reset)
	r.GET("/api/rooms/:id/summary", settlements.Summary)
	r.GET("/api/rooms/:id/settlements", settlements.Settlements)
	r.GET("/api/rooms/:id/categories", settlements.Categories)
	r.GET("/api/rooms/:id/export/csv", exports.ExportCSV)
	r.GET("/api/rooms/:id/export/xlsx", exports.ExportXLSX)
	r.POST("/api/expenses", expenses.Create)
	r.DELETE("/api/expenses/:id", expenses.Delete)
	r.GET("/api/categories", expenses.Categories)
	r.GET("/api/session", middleware.JWTAuth(), sessions.Get)

	return &testServer{store: store, router: r}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, nil)
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type sessionBody struct {
	Room struct {
		ID             uint   `json:"id"`
		Name           string `json:"name"`
		Code           string `json:"code"`
		CommunalBudget string `json:"communalBudget"`
	} `json:"room"`
	User struct {
		ID             uint   `json:"id"`
		Name           string `json:"name"`
		RoomID         uint   `json:"roomId"`
		PersonalBudget string `json:"personalBudget"`
	} `json:"user"`
	Token string `json:"token"`
}

// createRoom 创建房间并返回会话
func (s *testServer) createRoom(t *testing.T, name, userName, budget string) sessionBody {
	t.Helper()
	w := s.do("POST", "/api/rooms", fmt.Sprintf(`{"name":%q,"userName":%q,"communalBudget":%q}`, name, userName, budget))
	require.Equal(t, 201, w.Code, w.Body.String())
	var out sessionBody
	decode(t, w, &out)
	return out
}

// joinRoom 加入房间并返回会话
func (s *testServer) joinRoom(t *testing.T, code, userName string) sessionBody {
	t.Helper()
	w := s.do("POST", "/api/rooms/join", fmt.Sprintf(`{"code":%q,"userName":%q}`, code, userName))
	require.Equal(t, 200, w.Code, w.Body.String())
	var out sessionBody
	decode(t, w, &out)
	return out
}

// addExpense 添加消费并返回 ID
func (s *testServer) addExpense(t *testing.T, title, amount, typ, category string, payer, room uint) uint {
	t.Helper()
	body := fmt.Sprintf(`{"title":%q,"amount":%q,"type":%q,"category":%q,"paidById":%d,"roomId":%d}`,
		title, amount, typ, category, payer, room)
	w := s.do("POST", "/api/expenses", body)
	require.Equal(t, 201, w.Code, w.Body.String())
	var out struct {
		ID uint `json:"id"`
	}
	decode(t, w, &out)
	return out.ID
}
