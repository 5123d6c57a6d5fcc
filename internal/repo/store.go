package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"gym-class-booking/internal/domain"
)

// Store gorm 版 domain.Store；InTx 里重建一份绑定事务的 Store
type Store struct {
	db        *gorm.DB
	users     *UserRepo
	schedules *ScheduleRepo
	bookings  *BookingRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		users:     &UserRepo{db: db},
		schedules: &ScheduleRepo{db: db},
		bookings:  &BookingRepo{db: db},
	}
}

func (s *Store) Users() domain.UserRepository         { return s.users }
func (s *Store) Schedules() domain.ScheduleRepository { return s.schedules }
func (s *Store) Bookings() domain.BookingRepository   { return s.bookings }

func (s *Store) InTx(ctx context.Context, fn func(domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&domain.User{}, &domain.ClassSchedule{}, &domain.Booking{})
}

// IsDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
