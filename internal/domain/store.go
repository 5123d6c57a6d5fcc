package domain

import "context"

// Store 聚合三个仓储；InTx 里拿到的 Store 绑定同一事务，
// fn 返回 error 即整体回滚。
type Store interface {
	Users() UserRepository
	Schedules() ScheduleRepository
	Bookings() BookingRepository
	InTx(ctx context.Context, fn func(Store) error) error
}
