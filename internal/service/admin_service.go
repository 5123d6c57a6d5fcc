package service

import (
	"context"
	"time"

	"gym-class-booking/internal/apperr"
	"gym-class-booking/internal/core/cache"
	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/repo"
	"gym-class-booking/pkg/utils"
)

type AdminService struct {
	store domain.Store
	cache *cache.Cache // 可为 nil
}

func NewAdminService(store domain.Store, c *cache.Cache) *AdminService {
	return &AdminService{store: store, cache: c}
}

func (s *AdminService) CreateTrainer(ctx context.Context, name, email, password string) (*domain.User, error) {
	taken, err := s.store.Users().EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, apperr.Internal("check email failed", err)
	}
	if taken {
		return nil, apperr.Conflict("Email already in use")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal("hash password failed", err)
	}

	u := &domain.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     domain.RoleTrainer,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return nil, apperr.Conflict("Email already in use")
		}
		return nil, apperr.Internal("create trainer failed", err)
	}
	return u, nil
}

type CreateScheduleInput struct {
	TrainerID uint64
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

func (s *AdminService) CreateSchedule(ctx context.Context, in CreateScheduleInput) (*domain.ClassSchedule, error) {
	trainer, err := s.store.Users().FindByIDAndRole(ctx, in.TrainerID, domain.RoleTrainer)
	if err != nil {
		return nil, apperr.Internal("find trainer failed", err)
	}
	if trainer == nil {
		return nil, apperr.NotFound("Trainer not found")
	}

	if in.EndTime.Sub(in.StartTime) != domain.ClassDuration {
		return nil, apperr.Conflict("Class duration must be exactly 2 hours")
	}

	sched := &domain.ClassSchedule{
		TrainerID: in.TrainerID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	// 当日计数与写入放同一事务，防止并发冲破每日上限
	err = s.store.InTx(ctx, func(tx domain.Store) error {
		from, to := domain.DayWindow(in.Date)
		n, err := tx.Schedules().CountInWindow(ctx, from, to)
		if err != nil {
			return apperr.Internal("count schedules failed", err)
		}
		if n >= domain.MaxSchedulesPerDay {
			return apperr.Capacity("Maximum 5 schedules per day reached")
		}
		if err := tx.Schedules().Create(ctx, sched); err != nil {
			return apperr.Internal("create schedule failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateAvailable(ctx)
	return sched, nil
}

// UpdateSchedule 只允许改教练（部分更新）
func (s *AdminService) UpdateSchedule(ctx context.Context, id uint64, trainerID *uint64) (*domain.ClassSchedule, error) {
	sched, err := s.store.Schedules().FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("find schedule failed", err)
	}
	if sched == nil {
		return nil, apperr.NotFound("Schedule not found")
	}

	if trainerID != nil {
		trainer, err := s.store.Users().FindByIDAndRole(ctx, *trainerID, domain.RoleTrainer)
		if err != nil {
			return nil, apperr.Internal("find trainer failed", err)
		}
		if trainer == nil {
			return nil, apperr.NotFound("Trainer not found")
		}
		if err := s.store.Schedules().UpdateTrainer(ctx, id, *trainerID); err != nil {
			return nil, apperr.Internal("update schedule failed", err)
		}
		sched.TrainerID = *trainerID
	}
	s.invalidateAvailable(ctx)
	return sched, nil
}

// DeleteSchedule 课表与其预约同事务删除，两者要么都删要么都不删
func (s *AdminService) DeleteSchedule(ctx context.Context, id uint64) error {
	sched, err := s.store.Schedules().FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("find schedule failed", err)
	}
	if sched == nil {
		return apperr.NotFound("Schedule not found")
	}

	err = s.store.InTx(ctx, func(tx domain.Store) error {
		if err := tx.Bookings().DeleteBySchedule(ctx, id); err != nil {
			return apperr.Internal("delete bookings failed", err)
		}
		if err := tx.Schedules().Delete(ctx, id); err != nil {
			return apperr.Internal("delete schedule failed", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateAvailable(ctx)
	return nil
}

func (s *AdminService) ListTrainers(ctx context.Context) ([]domain.User, error) {
	trainers, err := s.store.Users().ListByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, apperr.Internal("list trainers failed", err)
	}
	return trainers, nil
}

func (s *AdminService) ListSchedules(ctx context.Context) ([]domain.ClassSchedule, error) {
	schedules, err := s.store.Schedules().ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal("list schedules failed", err)
	}
	return schedules, nil
}

func (s *AdminService) invalidateAvailable(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, availableSchedulesKey)
	}
}
