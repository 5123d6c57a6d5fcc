package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/repo/memory"
)

func TestListOwnSchedules(t *testing.T) {
	st := memory.NewStore()
	svc := NewTrainerService(st)
	traineeSvc := NewTraineeService(st, nil)
	ctx := context.Background()

	mine := mustUser(t, st, "Coach A", "a@x.com", domain.RoleTrainer)
	other := mustUser(t, st, "Coach B", "b@x.com", domain.RoleTrainer)
	alice := mustUser(t, st, "Alice", "alice@x.com", domain.RoleTrainee)

	late := mustSchedule(t, st, mine.ID, "2099-09-05", 10)
	early := mustSchedule(t, st, mine.ID, "2099-09-01", 10)
	mustSchedule(t, st, other.ID, "2099-09-03", 10)

	_, err := traineeSvc.CreateBooking(ctx, alice.ID, early.ID)
	require.NoError(t, err)

	got, err := svc.ListOwnSchedules(ctx, mine.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// 日期升序，预约带学员信息
	require.Equal(t, early.ID, got[0].ID)
	require.Equal(t, late.ID, got[1].ID)
	require.Len(t, got[0].Bookings, 1)
	require.NotNil(t, got[0].Bookings[0].Trainee)
	require.Equal(t, alice.ID, got[0].Bookings[0].Trainee.ID)

	got, err = svc.ListOwnSchedules(ctx, 999)
	require.NoError(t, err)
	require.Empty(t, got)
}
