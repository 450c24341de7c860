package api

import (
	"errors"
	"time"

	"hostel/ledger"
	"hostel/middleware"
	"hostel/models"
	"hostel/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomHandler 房间处理器
type RoomHandler struct {
	store    ledger.Store
	tokenTTL time.Duration
	mailer   service.StatementMailer
}

// NewRoomHandler 创建房间处理器，mailer 为空时重置账期不发送结算单
func NewRoomHandler(store ledger.Store, tokenTTL time.Duration, mailer service.StatementMailer) *RoomHandler {
	return &RoomHandler{store: store, tokenTTL: tokenTTL, mailer: mailer}
}

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	Name               string         `json:"name" binding:"required,max=100" example:"Block C 204"`
	UserName           string         `json:"userName" binding:"required,max=100" example:"Asha"`
	CommunalBudget     optionalAmount `json:"communalBudget" swaggertype:"string" example:"5000"`
	UserPersonalBudget optionalAmount `json:"userPersonalBudget" swaggertype:"string" example:"2000"`
}

// JoinRoomRequest 加入房间请求
type JoinRoomRequest struct {
	Code               string         `json:"code" binding:"required" example:"K7QX2M"`
	UserName           string         `json:"userName" binding:"required,max=100" example:"Ben"`
	UserPersonalBudget optionalAmount `json:"userPersonalBudget" swaggertype:"string" example:"1500"`
}

// RoomSessionResponse 创建或加入房间后的会话信息
type RoomSessionResponse struct {
	Room  *models.Room `json:"room"`
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// RoomWithMembers 房间及成员
type RoomWithMembers struct {
	*models.Room
	Members []models.User `json:"members"`
}

// Create 创建房间
// @Summary 创建房间
// @Description 创建房间并将创建者加入，返回房间加入码和会话令牌
// @Tags 房间
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "房间信息"
// @Success 201 {object} RoomSessionResponse "创建成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	name, ok := requireText(c, "name", req.Name)
	if !ok {
		return
	}
	userName, ok := requireText(c, "userName", req.UserName)
	if !ok {
		return
	}
	if !requireNonNegative(c, "communalBudget", req.CommunalBudget.Decimal) ||
		!requireNonNegative(c, "userPersonalBudget", req.UserPersonalBudget.Decimal) {
		return
	}

	room := &models.Room{Name: name, CommunalBudget: req.CommunalBudget.Decimal}
	user := &models.User{Name: userName, PersonalBudget: req.UserPersonalBudget.Decimal}
	if err := h.store.OpenRoom(c.Request.Context(), room, user); err != nil {
		storeError(c, err, "Room not found")
		return
	}
	zap.L().Info("room created", zap.Uint("room_id", room.ID), zap.String("code", room.Code))

	h.respondSession(c, Created, room, user)
}

// Join 通过加入码加入房间
// @Summary 加入房间
// @Description 加入码不区分大小写，成功后创建成员并返回会话令牌
// @Tags 房间
// @Accept json
// @Produce json
// @Param request body JoinRoomRequest true "加入信息"
// @Success 200 {object} RoomSessionResponse "加入成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 404 {object} ErrorResponse "加入码不存在"
// @Failure 429 {object} ErrorResponse "尝试过于频繁"
// @Router /api/rooms/join [post]
func (h *RoomHandler) Join(c *gin.Context) {
	var req JoinRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	code := models.NormalizeRoomCode(req.Code)
	if len(code) != models.RoomCodeLength {
		FieldError(c, "code", "code must be exactly 6 characters")
		return
	}
	userName, ok := requireText(c, "userName", req.UserName)
	if !ok {
		return
	}
	if !requireNonNegative(c, "userPersonalBudget", req.UserPersonalBudget.Decimal) {
		return
	}

	ctx := c.Request.Context()
	room, err := h.store.GetRoomByCode(ctx, code)
	if err != nil {
		storeError(c, err, "Room not found. Check the code!")
		return
	}
	user := &models.User{Name: userName, RoomID: room.ID, PersonalBudget: req.UserPersonalBudget.Decimal}
	if err := h.store.CreateUser(ctx, user); err != nil {
		storeError(c, err, "Room not found")
		return
	}
	zap.L().Info("member joined", zap.Uint("room_id", room.ID), zap.Uint("user_id", user.ID))

	h.respondSession(c, Success, room, user)
}

func (h *RoomHandler) respondSession(c *gin.Context, respond func(*gin.Context, interface{}), room *models.Room, user *models.User) {
	token, err := middleware.GenerateToken(room.ID, user.ID, room.Code, h.tokenTTL)
	if err != nil {
		zap.L().Error("sign session token", zap.Error(err))
		InternalError(c, SafeErrorMessage(err, "Could not create session"))
		return
	}
	respond(c, RoomSessionResponse{Room: room, User: user, Token: token})
}

// Get 获取房间及成员
// @Summary 获取房间
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} RoomWithMembers "房间信息"
// @Failure 404 {object} ErrorResponse "房间不存在"
// @Router /api/rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	roomID, ok := parseID(c, "id", "room")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	room, err := h.store.GetRoom(ctx, roomID)
	if err != nil {
		storeError(c, err, "Room not found")
		return
	}
	members, err := h.store.GetRoomUsers(ctx, roomID)
	if err != nil {
		storeError(c, err, "Room not found")
		return
	}
	Success(c, RoomWithMembers{Room: room, Members: members})
}

// Users 房间成员列表
// @Summary 房间成员列表
// @Description 按加入顺序返回
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {array} models.User "成员列表"
// @Router /api/rooms/{id}/users [get]
func (h *RoomHandler) Users(c *gin.Context) {
	roomID, ok := parseID(c, "id", "room")
	if !ok {
		return
	}
	users, err := h.store.GetRoomUsers(c.Request.Context(), roomID)
	if err != nil {
		storeError(c, err, "Room not found")
		return
	}
	Success(c, users)
}

// Expenses 当前账期消费列表
// @Summary 房间消费列表
// @Description 仅返回未归档消费，附带付款人，按日期倒序
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {array} models.Expense "消费列表"
// @Router /api/rooms/{id}/expenses [get]
func (h *RoomHandler) Expenses(c *gin.Context) {
	roomID, ok := parseID(c, "id", "room")
	if !ok {
		return
	}
	expenses, err := h.store.GetRoomExpenses(c.Request.Context(), roomID)
	if err != nil {
		storeError(c, err, "Room not found")
		return
	}
	Success(c, expenses)
}

// Reset 结束本月账期
// @Summary 重置本月
// @Description 归档房间内全部未归档消费，不可撤销；启用邮件时归档成功后发送归档前的结算单
// @Tags 房间
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} MessageResponse "重置成功"
// @Router /api/rooms/{id}/reset [post]
func (h *RoomHandler) Reset(c *gin.Context) {
	roomID, ok := parseID(c, "id", "room")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// 结算单取归档前的数据
	var closing *service.Statement
	if h.mailer != nil {
		closing = h.closingStatement(c, roomID)
	}

	archived, err := h.store.ArchiveRoomExpenses(ctx, roomID)
	if err != nil {
		storeError(c, err, "Room not found")
		return
	}
	zap.L().Info("month reset", zap.Uint("room_id", roomID), zap.Int64("archived", archived))

	if closing != nil {
		h.mailStatement(closing)
	}
	Success(c, MessageResponse{Message: "Month reset successfully"})
}

// closingStatement 读取归档前的结算单，房间不存在或读取失败时返回 nil
func (h *RoomHandler) closingStatement(c *gin.Context, roomID uint) *service.Statement {
	snap, err := loadRoomSnapshot(c.Request.Context(), h.store, roomID)
	if err != nil {
		if !errors.Is(err, ledger.ErrNotFound) {
			zap.L().Warn("load statement before reset", zap.Uint("room_id", roomID), zap.Error(err))
		}
		return nil
	}
	return service.NewStatement(snap.room, snap.users, snap.expenses)
}

// mailStatement 发送结算单，失败只记录日志，不影响重置
func (h *RoomHandler) mailStatement(st *service.Statement) {
	roomID := st.Room.ID
	if err := h.mailer.SendStatement(st); err != nil {
		if !errors.Is(err, service.ErrEmailDisabled) {
			zap.L().Warn("send closing statement", zap.Uint("room_id", roomID), zap.Error(err))
		}
		return
	}
	zap.L().Info("closing statement sent", zap.Uint("room_id", roomID))
}
