package api

import (
	"errors"

	"hostel/ledger"
	"hostel/middleware"
	"hostel/models"

	"github.com/gin-gonic/gin"
)

// SessionHandler 会话恢复处理器
// 令牌只用于恢复客户端状态，不作为访问控制
type SessionHandler struct {
	store ledger.Store
}

// NewSessionHandler 创建会话处理器
func NewSessionHandler(store ledger.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// SessionResponse 当前会话
type SessionResponse struct {
	Room *models.Room `json:"room"`
	User *models.User `json:"user"`
}

// Get 根据令牌恢复房间与成员
// @Summary 恢复会话
// @Tags 会话
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse "会话信息"
// @Failure 401 {object} ErrorResponse "令牌无效或成员已不存在"
// @Router /api/session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	room, err := h.store.GetRoom(ctx, middleware.GetCurrentRoomID(c))
	if errors.Is(err, ledger.ErrNotFound) {
		Unauthorized(c, "Session room no longer exists")
		return
	}
	if err != nil {
		storeError(c, err, "Room not found")
		return
	}
	if room.Code != middleware.GetCurrentRoomCode(c) {
		Unauthorized(c, "Session room no longer exists")
		return
	}
	user, err := h.store.GetUser(ctx, middleware.GetCurrentUserID(c))
	if errors.Is(err, ledger.ErrNotFound) || (err == nil && user.RoomID != room.ID) {
		Unauthorized(c, "Session member no longer exists")
		return
	}
	if err != nil {
		storeError(c, err, "Member not found")
		return
	}
	Success(c, SessionResponse{Room: room, User: user})
}
