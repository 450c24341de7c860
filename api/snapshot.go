package api

import (
	"context"

	"hostel/ledger"
	"hostel/models"

	"golang.org/x/sync/errgroup"
)

// roomSnapshot 同一次请求中读取的房间、成员与当期消费
type roomSnapshot struct {
	room     *models.Room
	users    []models.User
	expenses []models.Expense
}

// loadRoomSnapshot 并发读取房间数据，任一查询失败则整体失败
func loadRoomSnapshot(ctx context.Context, store ledger.Store, roomID uint) (*roomSnapshot, error) {
	snap := &roomSnapshot{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		room, err := store.GetRoom(ctx, roomID)
		snap.room = room
		return err
	})
	g.Go(func() error {
		users, err := store.GetRoomUsers(ctx, roomID)
		snap.users = users
		return err
	})
	g.Go(func() error {
		expenses, err := store.GetRoomExpenses(ctx, roomID)
		snap.expenses = expenses
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
