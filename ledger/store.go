// Package ledger 房间账本存储：房间、成员与消费记录的持久化和按房间查询
package ledger

import (
	"context"
	"errors"

	"hostel/models"
)

var (
	// ErrNotFound 房间、成员不存在
	ErrNotFound = errors.New("record not found")
	// ErrPayerNotInRoom 付款人不属于该房间
	ErrPayerNotInRoom = errors.New("payer does not belong to this room")
	// ErrCodeExhausted 多次生成加入码均冲突
	ErrCodeExhausted = errors.New("could not allocate a unique room code")
)

// maxCodeAttempts 加入码冲突后的最大重试次数
const maxCodeAttempts = 5

// CodeGenerator 加入码生成函数，测试中可替换
type CodeGenerator func() (string, error)

// Store 账本存储接口
// 所有查询只返回未归档数据，归档与删除互不影响
type Store interface {
	// CreateRoom 创建房间并分配唯一加入码，room.ID/Code 由存储层回填
	CreateRoom(ctx context.Context, room *models.Room) error
	// OpenRoom 在同一事务中创建房间及其创建者
	OpenRoom(ctx context.Context, room *models.Room, creator *models.User) error
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	// GetRoomByCode 精确匹配，调用方负责大写化
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	// GetRoomUsers 按加入顺序返回房间成员
	GetRoomUsers(ctx context.Context, roomID uint) ([]models.User, error)

	// CreateExpense 写入消费记录，付款人必须属于 expense.RoomID
	CreateExpense(ctx context.Context, expense *models.Expense) error
	// GetRoomExpenses 返回房间内未归档的消费（附带付款人），按日期倒序
	GetRoomExpenses(ctx context.Context, roomID uint) ([]models.Expense, error)
	// DeleteExpense 物理删除，记录不存在时不报错
	DeleteExpense(ctx context.Context, id uint) error
	// ArchiveRoomExpenses 归档房间内全部未归档消费，返回归档条数
	ArchiveRoomExpenses(ctx context.Context, roomID uint) (int64, error)
}
