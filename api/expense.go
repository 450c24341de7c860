package api

import (
	"errors"

	"hostel/ledger"
	"hostel/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	store ledger.Store
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(store ledger.Store) *ExpenseHandler {
	return &ExpenseHandler{store: store}
}

// CreateExpenseRequest 创建消费记录请求
type CreateExpenseRequest struct {
	Title    string           `json:"title" binding:"required,max=255" example:"Groceries"`
	Amount   *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"300"`
	Type     string           `json:"type" binding:"required" example:"shared"`
	Category string           `json:"category" binding:"required,max=50" example:"Food"`
	PaidByID uint             `json:"paidById" binding:"required" example:"1"`
	RoomID   uint             `json:"roomId" binding:"required" example:"1"`
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 付款人必须属于该房间；日期为创建时间
// @Tags 消费记录
// @Accept json
// @Produce json
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 201 {object} models.Expense "创建成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	title, ok := requireText(c, "title", req.Title)
	if !ok {
		return
	}
	if !models.ValidExpenseType(req.Type) {
		FieldError(c, "type", "type must be one of: shared, personal")
		return
	}
	category, ok := requireText(c, "category", req.Category)
	if !ok {
		return
	}
	if !requirePositive(c, "amount", *req.Amount) {
		return
	}

	expense := &models.Expense{
		Title:    title,
		Amount:   *req.Amount,
		Type:     req.Type,
		Category: category,
		PaidByID: req.PaidByID,
		RoomID:   req.RoomID,
	}
	if err := h.store.CreateExpense(c.Request.Context(), expense); err != nil {
		if errors.Is(err, ledger.ErrPayerNotInRoom) {
			FieldError(c, "paidById", "Payer is not a member of this room")
			return
		}
		storeError(c, err, "Room not found")
		return
	}
	zap.L().Debug("expense created", zap.Uint("expense_id", expense.ID), zap.Uint("room_id", expense.RoomID))
	Created(c, expense)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Description 永久删除，重复删除同样返回 204
// @Tags 消费记录
// @Param id path int true "消费记录ID"
// @Success 204 "删除成功"
// @Failure 400 {object} ErrorResponse "ID 无效"
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "expense")
	if !ok {
		return
	}
	if err := h.store.DeleteExpense(c.Request.Context(), id); err != nil {
		storeError(c, err, "Expense not found")
		return
	}
	NoContent(c)
}

// Categories 获取消费类别
// @Summary 获取消费类别
// @Description 前端使用的类别列表，服务端不限制类别取值
// @Tags 消费记录
// @Produce json
// @Success 200 {array} string "类别列表"
// @Router /api/categories [get]
func (h *ExpenseHandler) Categories(c *gin.Context) {
	Success(c, models.GetCategories())
}
