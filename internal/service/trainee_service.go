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

const (
	availableSchedulesKey = "schedules:available"
	availableSchedulesTTL = 30 * time.Second
)

type TraineeService struct {
	store domain.Store
	cache *cache.Cache // 可为 nil，直接回源
	now   func() time.Time
}

func NewTraineeService(store domain.Store, c *cache.Cache) *TraineeService {
	return &TraineeService{store: store, cache: c, now: time.Now}
}

type UpdateProfileInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfile 全部字段可选；改邮箱要查重（排除自己），改密码要重新哈希
func (s *TraineeService) UpdateProfile(ctx context.Context, userID uint64, in UpdateProfileInput) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("find user failed", err)
	}
	if u == nil {
		return nil, apperr.Unauthorized("Unauthorized access")
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" && in.Email != u.Email {
		taken, err := s.store.Users().EmailTaken(ctx, in.Email, userID)
		if err != nil {
			return nil, apperr.Internal("check email failed", err)
		}
		if taken {
			return nil, apperr.Conflict("Email already in use")
		}
		u.Email = in.Email
	}
	if in.Password != "" {
		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return nil, apperr.Internal("hash password failed", err)
		}
		u.Password = hash
	}

	if err := s.store.Users().Update(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return nil, apperr.Conflict("Email already in use")
		}
		return nil, apperr.Internal("update user failed", err)
	}
	return u, nil
}

// CreateBooking 先做快路径检查（无锁），再进事务锁课表行复核容量，
// 预约写入与计数 +1 同事务提交。
func (s *TraineeService) CreateBooking(ctx context.Context, traineeID, scheduleID uint64) (*domain.Booking, error) {
	sched, err := s.store.Schedules().FindByID(ctx, scheduleID)
	if err != nil {
		return nil, apperr.Internal("find schedule failed", err)
	}
	if sched == nil {
		return nil, apperr.NotFound("Schedule not found")
	}

	existing, err := s.store.Bookings().FindByTraineeAndSchedule(ctx, traineeID, scheduleID)
	if err != nil {
		return nil, apperr.Internal("find booking failed", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("You have already booked this class")
	}

	if sched.TraineeCount >= domain.MaxClassCapacity {
		return nil, apperr.Capacity("Class schedule is full. Maximum 10 trainees allowed")
	}

	// 闭区间重叠：已有课结束时刻==新课开始时刻也算冲突
	mine, err := s.store.Bookings().ListByTraineeWithSchedules(ctx, traineeID)
	if err != nil {
		return nil, apperr.Internal("list bookings failed", err)
	}
	for i := range mine {
		if mine[i].Schedule != nil && sched.Overlaps(mine[i].Schedule) {
			return nil, apperr.Conflict("You have another class scheduled during this time")
		}
	}

	booking := &domain.Booking{TraineeID: traineeID, ScheduleID: scheduleID}
	err = s.store.InTx(ctx, func(tx domain.Store) error {
		locked, err := tx.Schedules().LockByID(ctx, scheduleID)
		if err != nil {
			return apperr.Internal("lock schedule failed", err)
		}
		if locked == nil {
			return apperr.NotFound("Schedule not found")
		}
		// 锁内复核：两个并发请求抢最后一个名额时只放行一个
		if locked.TraineeCount >= domain.MaxClassCapacity {
			return apperr.Capacity("Class schedule is full. Maximum 10 trainees allowed")
		}
		if err := tx.Bookings().Create(ctx, booking); err != nil {
			if repo.IsDupKey(err) {
				return apperr.Conflict("You have already booked this class")
			}
			return apperr.Internal("create booking failed", err)
		}
		if err := tx.Schedules().AddTrainees(ctx, scheduleID, 1); err != nil {
			return apperr.Internal("update trainee count failed", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateAvailable(ctx)
	return booking, nil
}

// CancelBooking 只能取消本人的预约；删除与计数 -1 同事务
func (s *TraineeService) CancelBooking(ctx context.Context, traineeID, bookingID uint64) error {
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		booking, err := tx.Bookings().FindOwned(ctx, bookingID, traineeID)
		if err != nil {
			return apperr.Internal("find booking failed", err)
		}
		if booking == nil {
			return apperr.NotFound("Booking not found")
		}
		if _, err := tx.Schedules().LockByID(ctx, booking.ScheduleID); err != nil {
			return apperr.Internal("lock schedule failed", err)
		}
		if err := tx.Bookings().Delete(ctx, bookingID); err != nil {
			return apperr.Internal("delete booking failed", err)
		}
		if err := tx.Schedules().AddTrainees(ctx, booking.ScheduleID, -1); err != nil {
			return apperr.Internal("update trainee count failed", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidateAvailable(ctx)
	return nil
}

// ListAvailableSchedules 未满员且未过期，日期升序；有缓存时读穿缓存
func (s *TraineeService) ListAvailableSchedules(ctx context.Context) ([]domain.ClassSchedule, error) {
	load := func(ctx context.Context) ([]domain.ClassSchedule, error) {
		return s.store.Schedules().ListAvailable(ctx, s.now())
	}
	var (
		schedules []domain.ClassSchedule
		err       error
	)
	if s.cache != nil {
		schedules, err = cache.GetOrLoadJSON(s.cache, ctx, availableSchedulesKey, availableSchedulesTTL, load)
	} else {
		schedules, err = load(ctx)
	}
	if err != nil {
		return nil, apperr.Internal("list schedules failed", err)
	}
	return schedules, nil
}

func (s *TraineeService) ListOwnBookings(ctx context.Context, traineeID uint64) ([]domain.Booking, error) {
	bookings, err := s.store.Bookings().ListByTrainee(ctx, traineeID)
	if err != nil {
		return nil, apperr.Internal("list bookings failed", err)
	}
	return bookings, nil
}

func (s *TraineeService) invalidateAvailable(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, availableSchedulesKey)
	}
}
