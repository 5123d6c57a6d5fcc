package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gym-class-booking/internal/domain"
)

type ScheduleRepo struct{ db *gorm.DB }

func (r *ScheduleRepo) Create(ctx context.Context, s *domain.ClassSchedule) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleRepo) FindByID(ctx context.Context, id uint64) (*domain.ClassSchedule, error) {
	var s domain.ClassSchedule
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LockByID 锁行再校验容量，并发订满员课时不会超卖
func (r *ScheduleRepo) LockByID(ctx context.Context, id uint64) (*domain.ClassSchedule, error) {
	var s domain.ClassSchedule
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepo) CountInWindow(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.ClassSchedule{}).
		Where("date >= ? AND date < ?", from, to).
		Count(&n).Error
	return n, err
}

func (r *ScheduleRepo) UpdateTrainer(ctx context.Context, id, trainerID uint64) error {
	return r.db.WithContext(ctx).Model(&domain.ClassSchedule{}).
		Where("id = ?", id).
		Update("trainer_id", trainerID).Error
}

func (r *ScheduleRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.ClassSchedule{}, "id = ?", id).Error
}

func (r *ScheduleRepo) AddTrainees(ctx context.Context, id uint64, delta int) error {
	return r.db.WithContext(ctx).Model(&domain.ClassSchedule{}).
		Where("id = ?", id).
		UpdateColumn("trainee_count", gorm.Expr("trainee_count + ?", delta)).Error
}

func (r *ScheduleRepo) ListAll(ctx context.Context) ([]domain.ClassSchedule, error) {
	var out []domain.ClassSchedule
	err := r.db.WithContext(ctx).
		Preload("Trainer").
		Preload("Bookings.Trainee").
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *ScheduleRepo) ListByTrainer(ctx context.Context, trainerID uint64) ([]domain.ClassSchedule, error) {
	var out []domain.ClassSchedule
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Preload("Bookings.Trainee").
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *ScheduleRepo) ListAvailable(ctx context.Context, now time.Time) ([]domain.ClassSchedule, error) {
	var out []domain.ClassSchedule
	err := r.db.WithContext(ctx).
		Where("trainee_count < ? AND date >= ?", domain.MaxClassCapacity, now).
		Preload("Trainer").
		Order("date ASC").
		Find(&out).Error
	return out, err
}
