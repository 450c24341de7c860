package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// transferEpsilon 低于该值的余额视为已配平
var transferEpsilon = decimal.RequireFromString("0.01")

// Transfer 建议的一笔还款，仅用于展示，不落库
type Transfer struct {
	FromUserID uint
	From       string
	ToUserID   uint
	To         string
	Amount     decimal.Decimal
}

type party struct {
	userID  uint
	name    string
	balance decimal.Decimal
}

// Transfers 贪心匹配欠款人与应收人，最大欠款优先对应最大应收
// 小于 1 个货币单位的转账不输出，与结算列表口径一致
func (s *Summary) Transfers() []Transfer {
	var debtors, creditors []party
	for _, p := range s.Positions {
		switch {
		case p.Net.IsNegative():
			debtors = append(debtors, party{userID: p.UserID, name: p.Name, balance: p.Net.Neg()})
		case p.Net.IsPositive():
			creditors = append(creditors, party{userID: p.UserID, name: p.Name, balance: p.Net})
		}
	}
	byBalance := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool { return ps[i].balance.GreaterThan(ps[j].balance) }
	}
	sort.SliceStable(debtors, byBalance(debtors))
	sort.SliceStable(creditors, byBalance(creditors))

	transfers := make([]Transfer, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]
		amount := decimal.Min(d.balance, c.balance)
		if amount.GreaterThanOrEqual(negligible) {
			transfers = append(transfers, Transfer{
				FromUserID: d.userID,
				From:       d.name,
				ToUserID:   c.userID,
				To:         c.name,
				Amount:     amount,
			})
		}
		d.balance = d.balance.Sub(amount)
		c.balance = c.balance.Sub(amount)
		if d.balance.LessThan(transferEpsilon) {
			i++
		}
		if c.balance.LessThan(transferEpsilon) {
			j++
		}
	}
	return transfers
}
