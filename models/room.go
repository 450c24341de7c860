package models

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RoomCodeLength 加入码长度
const RoomCodeLength = 6

// roomCodeAlphabet 加入码字符集，统一大写
const roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Room 房间模型
type Room struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:100;not null"`
	Code           string          `json:"code" gorm:"size:6;not null;uniqueIndex"`
	CommunalBudget decimal.Decimal `json:"communalBudget" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// TableName 设置表名
func (Room) TableName() string {
	return "rooms"
}

// GenerateRoomCode 生成随机加入码
func GenerateRoomCode() (string, error) {
	max := big.NewInt(int64(len(roomCodeAlphabet)))
	var sb strings.Builder
	sb.Grow(RoomCodeLength)
	for i := 0; i < RoomCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(roomCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeRoomCode 去除空白并转大写，查询前调用
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
