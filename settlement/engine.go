// Package settlement 房间结算计算：平摊、个人净额、谁欠谁、类别汇总
//
// 计算是纯函数，每次查看都基于账本当前未归档数据重新计算，不做缓存。
// 内部累加全部使用未取整的 decimal，取整只在展示时进行。
package settlement

import (
	"sort"

	"hostel/models"

	"github.com/shopspring/decimal"
)

// 结算方向
const (
	DirectionGetsBack = "gets_back"
	DirectionPays     = "pays"
)

var (
	// negligible 绝对值小于 1 个货币单位的净额视为已结清
	negligible = decimal.NewFromInt(1)
	hundred    = decimal.NewFromInt(100)
)

// Position 成员在当前周期的结算情况
type Position struct {
	UserID         uint
	Name           string
	Paid           decimal.Decimal // 本人支付的共享消费
	FairShare      decimal.Decimal
	Net            decimal.Decimal // Paid - FairShare，正数为应收
	PersonalSpent  decimal.Decimal
	PersonalBudget decimal.Decimal
}

// Settled 净额可忽略
func (p Position) Settled() bool {
	return p.Net.Abs().LessThan(negligible)
}

// Direction 应收或应付
func (p Position) Direction() string {
	if p.Net.IsPositive() {
		return DirectionGetsBack
	}
	return DirectionPays
}

// Line 结算列表中的一行
type Line struct {
	UserID    uint
	Name      string
	Direction string
	Amount    decimal.Decimal // 净额绝对值，未取整
}

// CategoryTotal 类别汇总
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Summary 一个房间当前周期的结算结果
type Summary struct {
	RoomID        uint
	MemberCount   int
	TotalShared   decimal.Decimal
	TotalPersonal decimal.Decimal
	FairShare     decimal.Decimal
	Positions     []Position      // 与 users 入参顺序一致
	Categories    []CategoryTotal // 按 expenses 入参中首次出现的顺序
}

// Compute 计算房间结算
// users 为房间成员（加入顺序），expenses 为账本返回的消费列表（日期倒序）。
// 不属于 roomID 或已归档的消费会被忽略。
// 金额按消费 ID 升序累加，保证不同存储返回顺序下结果一致。
func Compute(roomID uint, users []models.User, expenses []models.Expense) *Summary {
	active := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.RoomID == roomID && !e.Archived {
			active = append(active, e)
		}
	}

	s := &Summary{
		RoomID:        roomID,
		MemberCount:   len(users),
		TotalShared:   decimal.Zero,
		TotalPersonal: decimal.Zero,
		FairShare:     decimal.Zero,
		Categories:    categoryTotals(active),
	}

	ordered := make([]models.Expense, len(active))
	copy(ordered, active)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	paid := make(map[uint]decimal.Decimal)
	personal := make(map[uint]decimal.Decimal)
	for _, e := range ordered {
		if e.IsShared() {
			s.TotalShared = s.TotalShared.Add(e.Amount)
			paid[e.PaidByID] = paid[e.PaidByID].Add(e.Amount)
			continue
		}
		if e.Type == models.ExpenseTypePersonal {
			s.TotalPersonal = s.TotalPersonal.Add(e.Amount)
			personal[e.PaidByID] = personal[e.PaidByID].Add(e.Amount)
		}
	}

	if len(users) > 0 {
		s.FairShare = s.TotalShared.Div(decimal.NewFromInt(int64(len(users))))
	}

	s.Positions = make([]Position, 0, len(users))
	for _, u := range users {
		p := Position{
			UserID:         u.ID,
			Name:           u.Name,
			Paid:           paid[u.ID],
			FairShare:      s.FairShare,
			PersonalSpent:  personal[u.ID],
			PersonalBudget: u.PersonalBudget,
		}
		p.Net = p.Paid.Sub(s.FairShare)
		s.Positions = append(s.Positions, p)
	}
	return s
}

func categoryTotals(expenses []models.Expense) []CategoryTotal {
	totals := make([]CategoryTotal, 0)
	index := make(map[string]int)
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}
	return totals
}

// HasSharedExpenses 当前周期是否有共享消费
func (s *Summary) HasSharedExpenses() bool {
	return !s.TotalShared.IsZero()
}

// Position 查找成员结算情况
func (s *Summary) Position(userID uint) (Position, bool) {
	for _, p := range s.Positions {
		if p.UserID == userID {
			return p, true
		}
	}
	return Position{}, false
}

// NetTotal 全部成员净额之和，正常情况下为 0
func (s *Summary) NetTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range s.Positions {
		sum = sum.Add(p.Net)
	}
	return sum
}

// Settlements 谁欠谁列表，忽略净额绝对值小于 1 的成员
func (s *Summary) Settlements() []Line {
	lines := make([]Line, 0, len(s.Positions))
	for _, p := range s.Positions {
		if p.Settled() {
			continue
		}
		lines = append(lines, Line{
			UserID:    p.UserID,
			Name:      p.Name,
			Direction: p.Direction(),
			Amount:    p.Net.Abs(),
		})
	}
	return lines
}

// Usage 预算使用情况
type Usage struct {
	Spent     decimal.Decimal
	Budget    decimal.Decimal
	Remaining decimal.Decimal
	Percent   decimal.Decimal // 未设置预算时为 0
	Over      bool
}

// BudgetUsage 计算预算使用情况，预算只是软目标
func BudgetUsage(spent, budget decimal.Decimal) Usage {
	u := Usage{
		Spent:     spent,
		Budget:    budget,
		Remaining: budget.Sub(spent),
		Percent:   decimal.Zero,
	}
	if budget.IsPositive() {
		u.Percent = spent.Div(budget).Mul(hundred)
		u.Over = spent.GreaterThan(budget)
	}
	return u
}
