package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gym-class-booking/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepo) FindOwned(ctx context.Context, id, traineeID uint64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).First(&b, "id = ? AND trainee_id = ?", id, traineeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) FindByTraineeAndSchedule(ctx context.Context, traineeID, scheduleID uint64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).First(&b, "trainee_id = ? AND schedule_id = ?", traineeID, scheduleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) ListByTraineeWithSchedules(ctx context.Context, traineeID uint64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("trainee_id = ?", traineeID).
		Preload("Schedule").
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) ListByTrainee(ctx context.Context, traineeID uint64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("trainee_id = ?", traineeID).
		Preload("Schedule.Trainer").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Booking{}, "id = ?", id).Error
}

func (r *BookingRepo) DeleteBySchedule(ctx context.Context, scheduleID uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Booking{}, "schedule_id = ?", scheduleID).Error
}
