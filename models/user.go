package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User 房间成员，创建后不可更换房间
type User struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:100;not null"`
	RoomID         uint            `json:"roomId" gorm:"index;not null"`
	PersonalBudget decimal.Decimal `json:"personalBudget" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
