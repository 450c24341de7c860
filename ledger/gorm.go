package ledger

import (
	"context"
	"errors"
	"fmt"

	"hostel/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ Store = (*GormStore)(nil)

// GormStore 基于 gorm 的账本存储
// 需以 TranslateError: true 打开，加入码冲突依赖 gorm.ErrDuplicatedKey 识别
type GormStore struct {
	db      *gorm.DB
	newCode CodeGenerator
}

// NewGormStore 创建 gorm 存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, newCode: models.GenerateRoomCode}
}

// WithCodeGenerator 替换加入码生成函数
func (s *GormStore) WithCodeGenerator(gen CodeGenerator) *GormStore {
	s.newCode = gen
	return s
}

// CreateRoom 创建房间
func (s *GormStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := s.insertRoom(s.db.WithContext(ctx), room); err != nil {
		return err
	}
	recordWrite("create_room")
	return nil
}

// OpenRoom 创建房间和创建者，任一失败整体回滚
func (s *GormStore) OpenRoom(ctx context.Context, room *models.Room, creator *models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.insertRoom(tx, room); err != nil {
			return err
		}
		creator.RoomID = room.ID
		if err := tx.Create(creator).Error; err != nil {
			return fmt.Errorf("create room owner: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	recordWrite("create_room")
	recordWrite("create_user")
	return nil
}

func (s *GormStore) insertRoom(tx *gorm.DB, room *models.Room) error {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return fmt.Errorf("generate room code: %w", err)
		}
		room.Code = code

		err = tx.Create(room).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create room: %w", err)
		}
		zap.L().Warn("room code collision", zap.String("code", code), zap.Int("attempt", attempt))
	}
	return ErrCodeExhausted
}

// GetRoom 按 ID 获取房间
func (s *GormStore) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, notFound(err, "get room")
	}
	return &room, nil
}

// GetRoomByCode 按加入码获取房间
func (s *GormStore) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&room).Error; err != nil {
		return nil, notFound(err, "get room by code")
	}
	return &room, nil
}

// CreateUser 创建成员
func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	recordWrite("create_user")
	return nil
}

// GetUser 按 ID 获取成员
func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "get user")
	}
	return &user, nil
}

// GetRoomUsers 房间成员，按加入顺序
func (s *GormStore) GetRoomUsers(ctx context.Context, roomID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list room users: %w", err)
	}
	return users, nil
}

// CreateExpense 写入消费记录
func (s *GormStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	db := s.db.WithContext(ctx)

	var payer models.User
	if err := db.Select("id", "room_id").First(&payer, expense.PaidByID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPayerNotInRoom
		}
		return fmt.Errorf("load payer: %w", err)
	}
	if payer.RoomID != expense.RoomID {
		return ErrPayerNotInRoom
	}

	expense.Archived = false
	expense.PaidBy = nil
	if err := db.Create(expense).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	recordWrite("create_expense")
	return nil
}

// GetRoomExpenses 房间内未归档消费，内连接付款人
func (s *GormStore) GetRoomExpenses(ctx context.Context, roomID uint) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	if err := s.db.WithContext(ctx).
		InnerJoins("PaidBy").
		Where("expenses.room_id = ? AND expenses.archived = ?", roomID, false).
		Order("expenses.date DESC").
		Order("expenses.id DESC").
		Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list room expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense 物理删除消费记录
func (s *GormStore) DeleteExpense(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Expense{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete expense: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		zap.L().Debug("delete expense: nothing to delete", zap.Uint("expense_id", id))
	}
	recordWrite("delete_expense")
	return nil
}

// ArchiveRoomExpenses 月度重置：归档房间内全部未归档消费
func (s *GormStore) ArchiveRoomExpenses(ctx context.Context, roomID uint) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("room_id = ? AND archived = ?", roomID, false).
		Update("archived", true)
	if result.Error != nil {
		return 0, fmt.Errorf("archive room expenses: %w", result.Error)
	}
	recordWrite("archive_expenses")
	return result.RowsAffected, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
