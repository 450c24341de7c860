package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"hostel/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore 进程内存储，用于本地调试与测试
type MemoryStore struct {
	mu       sync.RWMutex
	newCode  CodeGenerator
	rooms    map[uint]models.Room
	codes    map[string]uint
	users    map[uint]models.User
	expenses map[uint]models.Expense

	nextRoomID    uint
	nextUserID    uint
	nextExpenseID uint
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		newCode:  models.GenerateRoomCode,
		rooms:    make(map[uint]models.Room),
		codes:    make(map[string]uint),
		users:    make(map[uint]models.User),
		expenses: make(map[uint]models.Expense),
	}
}

// WithCodeGenerator 替换加入码生成函数
func (s *MemoryStore) WithCodeGenerator(gen CodeGenerator) *MemoryStore {
	s.newCode = gen
	return s
}

// CreateRoom 创建房间
func (s *MemoryStore) CreateRoom(_ context.Context, room *models.Room) error {
	s.mu.Lock()
	err := s.insertRoomLocked(room)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	recordWrite("create_room")
	return nil
}

// OpenRoom 创建房间和创建者
func (s *MemoryStore) OpenRoom(_ context.Context, room *models.Room, creator *models.User) error {
	s.mu.Lock()
	if err := s.insertRoomLocked(room); err != nil {
		s.mu.Unlock()
		return err
	}
	creator.RoomID = room.ID
	s.insertUserLocked(creator)
	s.mu.Unlock()

	recordWrite("create_room")
	recordWrite("create_user")
	return nil
}

func (s *MemoryStore) insertRoomLocked(room *models.Room) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return err
		}
		if _, taken := s.codes[code]; taken {
			continue
		}
		s.nextRoomID++
		room.ID = s.nextRoomID
		room.Code = code
		if room.CreatedAt.IsZero() {
			room.CreatedAt = time.Now()
		}
		s.rooms[room.ID] = *room
		s.codes[code] = room.ID
		return nil
	}
	return ErrCodeExhausted
}

// GetRoom 按 ID 获取房间
func (s *MemoryStore) GetRoom(_ context.Context, id uint) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &room, nil
}

// GetRoomByCode 按加入码获取房间
func (s *MemoryStore) GetRoomByCode(_ context.Context, code string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codes[code]
	if !ok {
		return nil, ErrNotFound
	}
	room := s.rooms[id]
	return &room, nil
}

// CreateUser 创建成员
func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	s.insertUserLocked(user)
	s.mu.Unlock()
	recordWrite("create_user")
	return nil
}

func (s *MemoryStore) insertUserLocked(user *models.User) {
	s.nextUserID++
	user.ID = s.nextUserID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = *user
}

// GetUser 按 ID 获取成员
func (s *MemoryStore) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetRoomUsers 房间成员，按加入顺序
func (s *MemoryStore) GetRoomUsers(_ context.Context, roomID uint) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0)
	for _, u := range s.users {
		if u.RoomID == roomID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CreateExpense 写入消费记录
func (s *MemoryStore) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payer, ok := s.users[expense.PaidByID]
	if !ok || payer.RoomID != expense.RoomID {
		return ErrPayerNotInRoom
	}
	defer recordWrite("create_expense")
	s.nextExpenseID++
	expense.ID = s.nextExpenseID
	expense.Archived = false
	expense.PaidBy = nil
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	s.expenses[expense.ID] = *expense
	return nil
}

// GetRoomExpenses 房间内未归档消费，按日期倒序
func (s *MemoryStore) GetRoomExpenses(_ context.Context, roomID uint) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expenses := make([]models.Expense, 0)
	for _, e := range s.expenses {
		if e.RoomID != roomID || e.Archived {
			continue
		}
		payer, ok := s.users[e.PaidByID]
		if !ok {
			continue
		}
		e.PaidBy = &payer
		expenses = append(expenses, e)
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
	return expenses, nil
}

// DeleteExpense 删除消费记录
func (s *MemoryStore) DeleteExpense(_ context.Context, id uint) error {
	s.mu.Lock()
	delete(s.expenses, id)
	s.mu.Unlock()
	recordWrite("delete_expense")
	return nil
}

// ArchiveRoomExpenses 归档房间内全部未归档消费
func (s *MemoryStore) ArchiveRoomExpenses(_ context.Context, roomID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer recordWrite("archive_expenses")
	var n int64
	for id, e := range s.expenses {
		if e.RoomID == roomID && !e.Archived {
			e.Archived = true
			s.expenses[id] = e
			n++
		}
	}
	return n, nil
}
