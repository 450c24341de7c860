package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"hostel/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) getSession(token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/session", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestSessionHandler_Get(t *testing.T) {
	s := newTestServer(t, nil)
	a := s.createRoom(t, "Block C", "Asha", "0")
	b := s.joinRoom(t, a.Room.Code, "Ben")

	w := s.getSession(b.Token)
	require.Equal(t, 200, w.Code, w.Body.String())
	var out sessionBody
	decode(t, w, &out)
	assert.Equal(t, a.Room.ID, out.Room.ID)
	assert.Equal(t, "Ben", out.User.Name)
}

func TestSessionHandler_Unauthorized(t *testing.T) {
	s := newTestServer(t, nil)
	a := s.createRoom(t, "Block C", "Asha", "0")
	other := s.createRoom(t, "Block D", "Dev", "0")

	assert.Equal(t, 401, s.getSession("").Code)
	assert.Equal(t, 401, s.getSession("garbage").Code)

	// 房间不存在
	token, err := middleware.GenerateToken(99, a.User.ID, "NOPE00", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 401, s.getSession(token).Code)

	// 成员不属于令牌中的房间
	token, err = middleware.GenerateToken(a.Room.ID, other.User.ID, a.Room.Code, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 401, s.getSession(token).Code)

	// 令牌中的加入码与房间不符
	token, err = middleware.GenerateToken(a.Room.ID, a.User.ID, other.Room.Code, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 401, s.getSession(token).Code)

	// 成员不存在
	token, err = middleware.GenerateToken(a.Room.ID, 999, a.Room.Code, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 401, s.getSession(token).Code)
}
