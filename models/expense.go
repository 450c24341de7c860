package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense 消费记录模型
// Archived 为 true 的记录属于已结束的月份，不再参与任何统计
type Expense struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	Title    string          `json:"title" gorm:"size:255;not null"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Type     string          `json:"type" gorm:"size:20;not null"`
	Category string          `json:"category" gorm:"size:50;not null"`
	PaidByID uint            `json:"paidById" gorm:"index;not null"`
	RoomID   uint            `json:"roomId" gorm:"index:idx_expenses_room_archived;not null"`
	Date     time.Time       `json:"date" gorm:"index;not null"`
	Archived bool            `json:"archived" gorm:"index:idx_expenses_room_archived;not null;default:false"`
	PaidBy   *User           `json:"paidBy,omitempty" gorm:"foreignKey:PaidByID"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// BeforeCreate 未指定日期时使用创建时间
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return nil
}

// IsShared 是否计入平摊
func (e *Expense) IsShared() bool {
	return e.Type == ExpenseTypeShared
}

// 消费类型
const (
	ExpenseTypeShared   = "shared"
	ExpenseTypePersonal = "personal"
)

// ValidExpenseType 校验消费类型
func ValidExpenseType(t string) bool {
	return t == ExpenseTypeShared || t == ExpenseTypePersonal
}

// Category 消费类别常量（前端约定，服务端不强制）
const (
	CategoryFood        = "Food"
	CategoryElectricity = "Electricity"
	CategoryWiFi        = "WiFi"
	CategoryTravel      = "Travel"
	CategoryLaundry     = "Laundry"
	CategoryMisc        = "Misc"
)

// GetCategories 获取所有消费类别
func GetCategories() []string {
	return []string{
		CategoryFood,
		CategoryElectricity,
		CategoryWiFi,
		CategoryTravel,
		CategoryLaundry,
		CategoryMisc,
	}
}
