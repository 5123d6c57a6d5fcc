// Package memory 提供 domain.Store 的内存实现，供测试使用。
// 行为对齐 gorm 版：查不到返回 (nil, nil)，唯一键冲突返回 duplicate 错误，
// InTx 串行化执行（等价于行锁）。
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"gym-class-booking/internal/domain"
)

var ErrDuplicate = errors.New("duplicate key")

type Store struct {
	mu   sync.Mutex
	txmu sync.Mutex

	users     map[uint64]domain.User
	schedules map[uint64]domain.ClassSchedule
	bookings  map[uint64]domain.Booking

	nextUser     uint64
	nextSchedule uint64
	nextBooking  uint64
}

func NewStore() *Store {
	return &Store{
		users:     map[uint64]domain.User{},
		schedules: map[uint64]domain.ClassSchedule{},
		bookings:  map[uint64]domain.Booking{},
	}
}

func (s *Store) Users() domain.UserRepository         { return (*userRepo)(s) }
func (s *Store) Schedules() domain.ScheduleRepository { return (*scheduleRepo)(s) }
func (s *Store) Bookings() domain.BookingRepository   { return (*bookingRepo)(s) }

// InTx 整库互斥：事务内的检查与写入对并发调用者原子可见
func (s *Store) InTx(_ context.Context, fn func(domain.Store) error) error {
	s.txmu.Lock()
	defer s.txmu.Unlock()
	return fn(s)
}

/* ---------- users ---------- */

type userRepo Store

func (r *userRepo) Create(_ context.Context, u *domain.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.users {
		if ex.Email == u.Email {
			return ErrDuplicate
		}
	}
	s.nextUser++
	u.ID = s.nextUser
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uint64) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindByIDAndRole(_ context.Context, id uint64, role domain.Role) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok && u.Role == role {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *userRepo) FirstByRole(_ context.Context, role domain.Role) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *domain.User
	for _, u := range s.users {
		if u.Role != role {
			continue
		}
		if found == nil || u.ID < found.ID {
			cp := u
			found = &cp
		}
	}
	return found, nil
}

func (r *userRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.User
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *userRepo) EmailTaken(_ context.Context, email string, excludeID uint64) (bool, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Update(_ context.Context, u *domain.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return errors.New("user not found")
	}
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

/* ---------- schedules ---------- */

type scheduleRepo Store

func (r *scheduleRepo) Create(_ context.Context, sc *domain.ClassSchedule) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSchedule++
	sc.ID = s.nextSchedule
	now := time.Now()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	s.schedules[sc.ID] = stripSchedule(*sc)
	return nil
}

func (r *scheduleRepo) FindByID(_ context.Context, id uint64) (*domain.ClassSchedule, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok := s.schedules[id]; ok {
		cp := sc
		return &cp, nil
	}
	return nil, nil
}

// LockByID 内存实现无行锁，靠 InTx 的互斥保证
func (r *scheduleRepo) LockByID(ctx context.Context, id uint64) (*domain.ClassSchedule, error) {
	return r.FindByID(ctx, id)
}

func (r *scheduleRepo) CountInWindow(_ context.Context, from, to time.Time) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, sc := range s.schedules {
		if !sc.Date.Before(from) && sc.Date.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *scheduleRepo) UpdateTrainer(_ context.Context, id, trainerID uint64) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.schedules[id]
	if !ok {
		return errors.New("schedule not found")
	}
	sc.TrainerID = trainerID
	sc.UpdatedAt = time.Now()
	s.schedules[id] = sc
	return nil
}

func (r *scheduleRepo) Delete(_ context.Context, id uint64) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.schedules, id)
	return nil
}

func (r *scheduleRepo) AddTrainees(_ context.Context, id uint64, delta int) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.schedules[id]
	if !ok {
		return errors.New("schedule not found")
	}
	sc.TraineeCount += delta
	sc.UpdatedAt = time.Now()
	s.schedules[id] = sc
	return nil
}

func (r *scheduleRepo) ListAll(_ context.Context) ([]domain.ClassSchedule, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ClassSchedule
	for _, sc := range s.schedules {
		cp := sc
		s.attachTrainer(&cp)
		s.attachBookings(&cp)
		out = append(out, cp)
	}
	sortByDate(out)
	return out, nil
}

func (r *scheduleRepo) ListByTrainer(_ context.Context, trainerID uint64) ([]domain.ClassSchedule, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ClassSchedule
	for _, sc := range s.schedules {
		if sc.TrainerID != trainerID {
			continue
		}
		cp := sc
		s.attachBookings(&cp)
		out = append(out, cp)
	}
	sortByDate(out)
	return out, nil
}

func (r *scheduleRepo) ListAvailable(_ context.Context, now time.Time) ([]domain.ClassSchedule, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ClassSchedule
	for _, sc := range s.schedules {
		if sc.TraineeCount >= domain.MaxClassCapacity || sc.Date.Before(now) {
			continue
		}
		cp := sc
		s.attachTrainer(&cp)
		out = append(out, cp)
	}
	sortByDate(out)
	return out, nil
}

/* ---------- bookings ---------- */

type bookingRepo Store

func (r *bookingRepo) Create(_ context.Context, b *domain.Booking) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ex := range s.bookings {
		if ex.TraineeID == b.TraineeID && ex.ScheduleID == b.ScheduleID {
			return ErrDuplicate
		}
	}
	s.nextBooking++
	b.ID = s.nextBooking
	b.CreatedAt = time.Now()
	cp := *b
	cp.Trainee = nil
	cp.Schedule = nil
	s.bookings[b.ID] = cp
	return nil
}

func (r *bookingRepo) FindOwned(_ context.Context, id, traineeID uint64) (*domain.Booking, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok && b.TraineeID == traineeID {
		cp := b
		return &cp, nil
	}
	return nil, nil
}

func (r *bookingRepo) FindByTraineeAndSchedule(_ context.Context, traineeID, scheduleID uint64) (*domain.Booking, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.TraineeID == traineeID && b.ScheduleID == scheduleID {
			cp := b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *bookingRepo) ListByTraineeWithSchedules(_ context.Context, traineeID uint64) ([]domain.Booking, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.TraineeID != traineeID {
			continue
		}
		cp := b
		if sc, ok := s.schedules[b.ScheduleID]; ok {
			scp := sc
			cp.Schedule = &scp
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *bookingRepo) ListByTrainee(_ context.Context, traineeID uint64) ([]domain.Booking, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.TraineeID != traineeID {
			continue
		}
		cp := b
		if sc, ok := s.schedules[b.ScheduleID]; ok {
			scp := sc
			s.attachTrainer(&scp)
			cp.Schedule = &scp
		}
		out = append(out, cp)
	}
	// created_at DESC，同刻按 ID 倒序兜底
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *bookingRepo) Delete(_ context.Context, id uint64) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookings, id)
	return nil
}

func (r *bookingRepo) DeleteBySchedule(_ context.Context, scheduleID uint64) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, b := range s.bookings {
		if b.ScheduleID == scheduleID {
			delete(s.bookings, id)
		}
	}
	return nil
}

/* ---------- helpers ---------- */

func stripSchedule(sc domain.ClassSchedule) domain.ClassSchedule {
	sc.Trainer = nil
	sc.Bookings = nil
	return sc
}

func (s *Store) attachTrainer(sc *domain.ClassSchedule) {
	if u, ok := s.users[sc.TrainerID]; ok {
		cp := u
		sc.Trainer = &cp
	}
}

func (s *Store) attachBookings(sc *domain.ClassSchedule) {
	var bs []domain.Booking
	for _, b := range s.bookings {
		if b.ScheduleID != sc.ID {
			continue
		}
		cp := b
		if u, ok := s.users[b.TraineeID]; ok {
			ucp := u
			cp.Trainee = &ucp
		}
		bs = append(bs, cp)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].ID < bs[j].ID })
	sc.Bookings = bs
}

func sortByDate(xs []domain.ClassSchedule) {
	sort.Slice(xs, func(i, j int) bool {
		if xs[i].Date.Equal(xs[j].Date) {
			return xs[i].ID < xs[j].ID
		}
		return xs[i].Date.Before(xs[j].Date)
	})
}
