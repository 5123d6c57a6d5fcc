package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gym-class-booking/internal/apperr"
	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/repo/memory"
)

func TestBookAndCancelFlow(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	ctx := context.Background()

	trainer := mustUser(t, st, "Coach", "coach@x.com", domain.RoleTrainer)
	trainee := mustUser(t, st, "Alice", "alice@x.com", domain.RoleTrainee)
	sc := mustSchedule(t, st, trainer.ID, "2099-09-01", 10)

	b, err := svc.CreateBooking(ctx, trainee.ID, sc.ID)
	require.NoError(t, err)
	require.NotZero(t, b.ID)
	require.Equal(t, 1, scheduleCount(t, st, sc.ID))

	// 同一节课不能订第二次
	_, err = svc.CreateBooking(ctx, trainee.ID, sc.ID)
	requireKind(t, err, apperr.KindConflict, "You have already booked this class")
	require.Equal(t, 1, scheduleCount(t, st, sc.ID))

	require.NoError(t, svc.CancelBooking(ctx, trainee.ID, b.ID))
	require.Equal(t, 0, scheduleCount(t, st, sc.ID))

	// 取消后可以重订
	b2, err := svc.CreateBooking(ctx, trainee.ID, sc.ID)
	require.NoError(t, err)
	require.NotEqual(t, b.ID, b2.ID)
	require.Equal(t, 1, scheduleCount(t, st, sc.ID))
}

func TestCreateBookingScheduleNotFound(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	trainee := mustUser(t, st, "Alice", "alice@x.com", domain.RoleTrainee)

	_, err := svc.CreateBooking(context.Background(), trainee.ID, 999)
	requireKind(t, err, apperr.KindNotFound, "Schedule not found")
}

func TestCreateBookingCapacity(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	ctx := context.Background()

	trainer := mustUser(t, st, "Coach", "coach@x.com", domain.RoleTrainer)
	sc := mustSchedule(t, st, trainer.ID, "2099-09-01", 10)

	for i := 0; i < domain.MaxClassCapacity; i++ {
		u := mustUser(t, st, fmt.Sprintf("T%d", i), fmt.Sprintf("t%d@x.com", i), domain.RoleTrainee)
		_, err := svc.CreateBooking(ctx, u.ID, sc.ID)
		require.NoError(t, err)
	}
	require.Equal(t, domain.MaxClassCapacity, scheduleCount(t, st, sc.ID))

	late := mustUser(t, st, "Late", "late@x.com", domain.RoleTrainee)
	_, err := svc.CreateBooking(ctx, late.ID, sc.ID)
	requireKind(t, err, apperr.KindCapacity, "Class schedule is full. Maximum 10 trainees allowed")
	require.Equal(t, domain.MaxClassCapacity, scheduleCount(t, st, sc.ID))
}

func TestCreateBookingTimeOverlap(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	ctx := context.Background()

	trainer := mustUser(t, st, "Coach", "coach@x.com", domain.RoleTrainer)
	trainee := mustUser(t, st, "Alice", "alice@x.com", domain.RoleTrainee)

	booked := mustSchedule(t, st, trainer.ID, "2099-09-01", 10)   // 10:00-12:00
	adjacent := mustSchedule(t, st, trainer.ID, "2099-09-01", 12) // 12:00-14:00 边界相接
	apart := mustSchedule(t, st, trainer.ID, "2099-09-01", 15)    // 15:00-17:00

	_, err := svc.CreateBooking(ctx, trainee.ID, booked.ID)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, trainee.ID, adjacent.ID)
	requireKind(t, err, apperr.KindConflict, "You have another class scheduled during this time")

	_, err = svc.CreateBooking(ctx, trainee.ID, apart.ID)
	require.NoError(t, err)
}

func TestCancelBookingOwnership(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	ctx := context.Background()

	trainer := mustUser(t, st, "Coach", "coach@x.com", domain.RoleTrainer)
	alice := mustUser(t, st, "Alice", "alice@x.com", domain.RoleTrainee)
	bob := mustUser(t, st, "Bob", "bob@x.com", domain.RoleTrainee)
	sc := mustSchedule(t, st, trainer.ID, "2099-09-01", 10)

	b, err := svc.CreateBooking(ctx, alice.ID, sc.ID)
	require.NoError(t, err)

	// 别人的预约对我不可见，与不存在同样报 404
	err = svc.CancelBooking(ctx, bob.ID, b.ID)
	requireKind(t, err, apperr.KindNotFound, "Booking not found")
	require.Equal(t, 1, scheduleCount(t, st, sc.ID))

	err = svc.CancelBooking(ctx, alice.ID, 999)
	requireKind(t, err, apperr.KindNotFound, "Booking not found")
}

// 两个并发请求抢最后一个名额，只能放行一个
func TestConcurrentBookingLastSlot(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	ctx := context.Background()

	trainer := mustUser(t, st, "Coach", "coach@x.com", domain.RoleTrainer)
	sc := mustSchedule(t, st, trainer.ID, "2099-09-01", 10)

	for i := 0; i < domain.MaxClassCapacity-1; i++ {
		u := mustUser(t, st, fmt.Sprintf("T%d", i), fmt.Sprintf("t%d@x.com", i), domain.RoleTrainee)
		_, err := svc.CreateBooking(ctx, u.ID, sc.ID)
		require.NoError(t, err)
	}

	a := mustUser(t, st, "Racer A", "ra@x.com", domain.RoleTrainee)
	b := mustUser(t, st, "Racer B", "rb@x.com", domain.RoleTrainee)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, uid := range []uint64{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, uid uint64) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(ctx, uid, sc.ID)
		}(i, uid)
	}
	wg.Wait()

	var okCount int
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			requireKind(t, err, apperr.KindCapacity, "Class schedule is full. Maximum 10 trainees allowed")
		}
	}
	require.Equal(t, 1, okCount)
	require.Equal(t, domain.MaxClassCapacity, scheduleCount(t, st, sc.ID))
}

func TestUpdateProfile(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	ctx := context.Background()

	alice := mustUser(t, st, "Alice", "alice@x.com", domain.RoleTrainee)
	mustUser(t, st, "Bob", "bob@x.com", domain.RoleTrainee)

	u, err := svc.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Name: "Alice Smith"})
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", u.Name)
	require.Equal(t, "alice@x.com", u.Email)

	_, err = svc.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Email: "bob@x.com"})
	requireKind(t, err, apperr.KindConflict, "Email already in use")

	u, err = svc.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Email: "alice2@x.com", Password: "newpass1"})
	require.NoError(t, err)
	require.Equal(t, "alice2@x.com", u.Email)

	authSvc := NewAuthService(st, testJWTer())
	_, err = authSvc.Login(ctx, "alice2@x.com", "newpass1")
	require.NoError(t, err)
	_, err = authSvc.Login(ctx, "alice2@x.com", "secret1")
	requireKind(t, err, apperr.KindUnauthorized, "Invalid credentials")

	_, err = svc.UpdateProfile(ctx, 999, UpdateProfileInput{Name: "Ghost"})
	requireKind(t, err, apperr.KindUnauthorized, "Unauthorized access")
}

func TestListAvailableSchedules(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	svc.now = func() time.Time { return day(t, "2099-08-31") }
	ctx := context.Background()

	trainer := mustUser(t, st, "Coach", "coach@x.com", domain.RoleTrainer)
	open := mustSchedule(t, st, trainer.ID, "2099-09-02", 10)
	full := mustSchedule(t, st, trainer.ID, "2099-09-03", 10)
	past := mustSchedule(t, st, trainer.ID, "2099-08-01", 10)
	_ = past
	require.NoError(t, st.Schedules().AddTrainees(ctx, full.ID, domain.MaxClassCapacity))

	got, err := svc.ListAvailableSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, open.ID, got[0].ID)
	require.NotNil(t, got[0].Trainer)
}

func TestListOwnBookings(t *testing.T) {
	st := memory.NewStore()
	svc := NewTraineeService(st, nil)
	ctx := context.Background()

	trainer := mustUser(t, st, "Coach", "coach@x.com", domain.RoleTrainer)
	alice := mustUser(t, st, "Alice", "alice@x.com", domain.RoleTrainee)
	bob := mustUser(t, st, "Bob", "bob@x.com", domain.RoleTrainee)
	s1 := mustSchedule(t, st, trainer.ID, "2099-09-01", 10)
	s2 := mustSchedule(t, st, trainer.ID, "2099-09-02", 10)

	_, err := svc.CreateBooking(ctx, alice.ID, s1.ID)
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, alice.ID, s2.ID)
	require.NoError(t, err)
	_, err = svc.CreateBooking(ctx, bob.ID, s1.ID)
	require.NoError(t, err)

	bs, err := svc.ListOwnBookings(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, bs, 2)
	for _, b := range bs {
		require.Equal(t, alice.ID, b.TraineeID)
		require.NotNil(t, b.Schedule)
	}
}
