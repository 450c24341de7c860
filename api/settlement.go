package api

import (
	"strconv"

	"hostel/ledger"
	"hostel/settlement"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// NothingToSettle 当期没有共享消费时的提示
const NothingToSettle = "No shared expenses to settle yet."

// SettlementHandler 结算处理器，每次请求基于当前账本重新计算
type SettlementHandler struct {
	store ledger.Store
}

// NewSettlementHandler 创建结算处理器
func NewSettlementHandler(store ledger.Store) *SettlementHandler {
	return &SettlementHandler{store: store}
}

// 展示层金额统一取整到个位
func present(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// PositionView 成员结算情况
type PositionView struct {
	UserID    uint            `json:"userId"`
	Name      string          `json:"name"`
	Paid      decimal.Decimal `json:"paid" swaggertype:"string"`
	FairShare decimal.Decimal `json:"fairShare" swaggertype:"string"`
	Net       decimal.Decimal `json:"net" swaggertype:"string"`
	Direction string          `json:"direction"`
	Settled   bool            `json:"settled"`
}

// SettlementLine 谁欠谁列表中的一行
type SettlementLine struct {
	UserID    uint            `json:"userId"`
	Name      string          `json:"name"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string"`
}

// TransferView 建议转账
type TransferView struct {
	FromUserID uint            `json:"fromUserId"`
	From       string          `json:"from"`
	ToUserID   uint            `json:"toUserId"`
	To         string          `json:"to"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string"`
}

// CategoryView 类别汇总
type CategoryView struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total" swaggertype:"string"`
}

// BudgetView 预算使用情况
type BudgetView struct {
	Spent     decimal.Decimal `json:"spent" swaggertype:"string"`
	Budget    decimal.Decimal `json:"budget" swaggertype:"string"`
	Remaining decimal.Decimal `json:"remaining" swaggertype:"string"`
	Percent   decimal.Decimal `json:"percent" swaggertype:"string"`
	Over      bool            `json:"over"`
}

// SummaryResponse 房间看板数据
type SummaryResponse struct {
	RoomID         uint             `json:"roomId"`
	MemberCount    int              `json:"memberCount"`
	MonthTotal     decimal.Decimal  `json:"monthTotal" swaggertype:"string"`
	TotalPersonal  decimal.Decimal  `json:"totalPersonal" swaggertype:"string"`
	FairShare      decimal.Decimal  `json:"fairShare" swaggertype:"string"`
	Positions      []PositionView   `json:"positions"`
	Settlements    []SettlementLine `json:"settlements"`
	Transfers      []TransferView   `json:"transfers"`
	Categories     []CategoryView   `json:"categories"`
	CommunalBudget BudgetView       `json:"communalBudget"`
	PersonalBudget *BudgetView      `json:"personalBudget,omitempty"`
}

// SettlementsResponse 结算列表
type SettlementsResponse struct {
	Settlements []SettlementLine `json:"settlements"`
	Transfers   []TransferView   `json:"transfers"`
	Message     string           `json:"message,omitempty"`
}

func positionViews(s *settlement.Summary) []PositionView {
	views := make([]PositionView, 0, len(s.Positions))
	for _, p := range s.Positions {
		views = append(views, PositionView{
			UserID:    p.UserID,
			Name:      p.Name,
			Paid:      present(p.Paid),
			FairShare: present(p.FairShare),
			Net:       present(p.Net),
			Direction: p.Direction(),
			Settled:   p.Settled(),
		})
	}
	return views
}

func settlementLines(s *settlement.Summary) []SettlementLine {
	lines := s.Settlements()
	views := make([]SettlementLine, 0, len(lines))
	for _, l := range lines {
		views = append(views, SettlementLine{
			UserID:    l.UserID,
			Name:      l.Name,
			Direction: l.Direction,
			Amount:    present(l.Amount),
		})
	}
	return views
}

func transferViews(s *settlement.Summary) []TransferView {
	transfers := s.Transfers()
	views := make([]TransferView, 0, len(transfers))
	for _, t := range transfers {
		views = append(views, TransferView{
			FromUserID: t.FromUserID,
			From:       t.From,
			ToUserID:   t.ToUserID,
			To:         t.To,
			Amount:     present(t.Amount),
		})
	}
	return views
}

func categoryViews(s *settlement.Summary) []CategoryView {
	views := make([]CategoryView, 0, len(s.Categories))
	for _, ct := range s.Categories {
		views = append(views, CategoryView{Category: ct.Category, Total: present(ct.Total)})
	}
	return views
}

func budgetView(u settlement.Usage) BudgetView {
	return BudgetView{
		Spent:     present(u.Spent),
		Budget:    present(u.Budget),
		Remaining: present(u.Remaining),
		Percent:   present(u.Percent),
		Over:      u.Over,
	}
}

func (h *SettlementHandler) compute(c *gin.Context) (*roomSnapshot, *settlement.Summary, bool) {
	roomID, ok := parseID(c, "id", "room")
	if !ok {
		return nil, nil, false
	}
	snap, err := loadRoomSnapshot(c.Request.Context(), h.store, roomID)
	if err != nil {
		storeError(c, err, "Room not found")
		return nil, nil, false
	}
	return snap, settlement.Compute(roomID, snap.users, snap.expenses), true
}

// Summary 房间看板
// @Summary 房间看板
// @Description 本月共享总额、人均、成员净额、谁欠谁、类别汇总与预算使用；传入 userId 时附带该成员个人预算
// @Tags 结算
// @Produce json
// @Param id path int true "房间ID"
// @Param userId query int false "成员ID"
// @Success 200 {object} SummaryResponse "看板数据"
// @Failure 404 {object} ErrorResponse "房间或成员不存在"
// @Router /api/rooms/{id}/summary [get]
func (h *SettlementHandler) Summary(c *gin.Context) {
	snap, s, ok := h.compute(c)
	if !ok {
		return
	}

	resp := SummaryResponse{
		RoomID:         s.RoomID,
		MemberCount:    s.MemberCount,
		MonthTotal:     present(s.TotalShared),
		TotalPersonal:  present(s.TotalPersonal),
		FairShare:      present(s.FairShare),
		Positions:      positionViews(s),
		Settlements:    settlementLines(s),
		Transfers:      transferViews(s),
		Categories:     categoryViews(s),
		CommunalBudget: budgetView(settlement.BudgetUsage(s.TotalShared, snap.room.CommunalBudget)),
	}

	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			FieldError(c, "userId", "userId is invalid")
			return
		}
		p, found := s.Position(uint(userID))
		if !found {
			NotFound(c, "Member not found in this room")
			return
		}
		personal := budgetView(settlement.BudgetUsage(p.PersonalSpent, p.PersonalBudget))
		resp.PersonalBudget = &personal
	}
	Success(c, resp)
}

// Settlements 谁欠谁
// @Summary 结算列表
// @Description 净额绝对值小于 1 的成员视为已结清，不出现在列表中
// @Tags 结算
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {object} SettlementsResponse "结算列表"
// @Failure 404 {object} ErrorResponse "房间不存在"
// @Router /api/rooms/{id}/settlements [get]
func (h *SettlementHandler) Settlements(c *gin.Context) {
	_, s, ok := h.compute(c)
	if !ok {
		return
	}
	resp := SettlementsResponse{
		Settlements: settlementLines(s),
		Transfers:   transferViews(s),
	}
	if !s.HasSharedExpenses() {
		resp.Message = NothingToSettle
	}
	Success(c, resp)
}

// Categories 类别汇总
// @Summary 类别汇总
// @Description 当期全部消费（含个人）按类别汇总，按首次出现顺序
// @Tags 结算
// @Produce json
// @Param id path int true "房间ID"
// @Success 200 {array} CategoryView "类别汇总"
// @Failure 404 {object} ErrorResponse "房间不存在"
// @Router /api/rooms/{id}/categories [get]
func (h *SettlementHandler) Categories(c *gin.Context) {
	_, s, ok := h.compute(c)
	if !ok {
		return
	}
	Success(c, categoryViews(s))
}
