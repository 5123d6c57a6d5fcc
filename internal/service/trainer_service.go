package service

import (
	"context"

	"gym-class-booking/internal/apperr"
	"gym-class-booking/internal/domain"
)

type TrainerService struct {
	store domain.Store
}

func NewTrainerService(store domain.Store) *TrainerService {
	return &TrainerService{store: store}
}

// ListOwnSchedules 本人课表，日期升序，带预约与学员信息
func (s *TrainerService) ListOwnSchedules(ctx context.Context, trainerID uint64) ([]domain.ClassSchedule, error) {
	schedules, err := s.store.Schedules().ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, apperr.Internal("list schedules failed", err)
	}
	return schedules, nil
}
