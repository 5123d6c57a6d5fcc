package domain

import (
	"context"
	"time"
)

// Booking 同一学员同一节课只能有一条（复合唯一索引兜底并发）
type Booking struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	TraineeID  uint64    `gorm:"not null;uniqueIndex:uniq_trainee_schedule" json:"traineeId"`
	ScheduleID uint64    `gorm:"not null;uniqueIndex:uniq_trainee_schedule" json:"scheduleId"`
	CreatedAt  time.Time `json:"createdAt"`

	Trainee  *User          `gorm:"foreignKey:TraineeID" json:"trainee,omitempty"`
	Schedule *ClassSchedule `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	// FindOwned 只匹配归属该学员的预约，查不到返回 (nil, nil)
	FindOwned(ctx context.Context, id, traineeID uint64) (*Booking, error)
	FindByTraineeAndSchedule(ctx context.Context, traineeID, scheduleID uint64) (*Booking, error)
	// ListByTraineeWithSchedules 预载 schedule（冲突检测用）
	ListByTraineeWithSchedules(ctx context.Context, traineeID uint64) ([]Booking, error)
	// ListByTrainee 预载 schedule.trainer，按创建时间倒序
	ListByTrainee(ctx context.Context, traineeID uint64) ([]Booking, error)
	Delete(ctx context.Context, id uint64) error
	DeleteBySchedule(ctx context.Context, scheduleID uint64) error
}
