package domain

import (
	"context"
	"time"
)

// 业务上限
const (
	ClassDuration      = 2 * time.Hour // 每节课固定 2 小时
	MaxSchedulesPerDay = 5             // 同一天最多 5 节
	MaxClassCapacity   = 10            // 每节最多 10 名学员
)

// ClassSchedule 的 TraineeCount 是预约数的冗余计数，
// 必须与 bookings 行数一致（变更都走同一事务）。
type ClassSchedule struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	TrainerID    uint64    `gorm:"index;not null" json:"trainerId"`
	Date         time.Time `gorm:"index;not null" json:"date"`
	StartTime    time.Time `gorm:"not null" json:"startTime"`
	EndTime      time.Time `gorm:"not null" json:"endTime"`
	TraineeCount int       `gorm:"not null;default:0" json:"traineeCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Trainer  *User     `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}

func (ClassSchedule) TableName() string { return "class_schedules" }

// Overlaps 闭区间判定：边界相接（上节结束==下节开始）也算冲突
func (s *ClassSchedule) Overlaps(o *ClassSchedule) bool {
	return !s.StartTime.After(o.EndTime) && !s.EndTime.Before(o.StartTime)
}

// DayWindow 返回 d 所在日历日的 [00:00, 次日00:00)
func DayWindow(d time.Time) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
	return start, start.Add(24 * time.Hour)
}

type ScheduleRepository interface {
	Create(ctx context.Context, s *ClassSchedule) error
	FindByID(ctx context.Context, id uint64) (*ClassSchedule, error)
	// LockByID 行锁读取（SELECT ... FOR UPDATE），只能在 InTx 内使用
	LockByID(ctx context.Context, id uint64) (*ClassSchedule, error)
	CountInWindow(ctx context.Context, from, to time.Time) (int64, error)
	UpdateTrainer(ctx context.Context, id, trainerID uint64) error
	Delete(ctx context.Context, id uint64) error
	// AddTrainees 调整冗余计数，delta 可为负
	AddTrainees(ctx context.Context, id uint64, delta int) error
	// ListAll 预载 trainer 与 bookings.trainee
	ListAll(ctx context.Context) ([]ClassSchedule, error)
	// ListByTrainer 按日期升序，预载 bookings.trainee
	ListByTrainer(ctx context.Context, trainerID uint64) ([]ClassSchedule, error)
	// ListAvailable 未满员且日期不早于 now，按日期升序，预载 trainer
	ListAvailable(ctx context.Context, now time.Time) ([]ClassSchedule, error)
}
