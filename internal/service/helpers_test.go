package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gym-class-booking/internal/apperr"
	"gym-class-booking/internal/core/auth"
	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/repo/memory"
	"gym-class-booking/pkg/utils"
)

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "gym-test"}
}

func mustUser(t *testing.T, st *memory.Store, name, email string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := utils.HashPassword("secret1")
	require.NoError(t, err)
	u := &domain.User{Name: name, Email: email, Password: hash, Role: role}
	require.NoError(t, st.Users().Create(context.Background(), u))
	return u
}

// mustSchedule 直接入库一节 2 小时的课，day 形如 2099-09-01
func mustSchedule(t *testing.T, st *memory.Store, trainerID uint64, day string, startHour int) *domain.ClassSchedule {
	t.Helper()
	d, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	start := d.Add(time.Duration(startHour) * time.Hour)
	sc := &domain.ClassSchedule{
		TrainerID: trainerID,
		Date:      start,
		StartTime: start,
		EndTime:   start.Add(domain.ClassDuration),
	}
	require.NoError(t, st.Schedules().Create(context.Background(), sc))
	return sc
}

func requireKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, kind, ae.Kind)
	require.Equal(t, msg, ae.Error())
}

func scheduleCount(t *testing.T, st *memory.Store, id uint64) int {
	t.Helper()
	sc, err := st.Schedules().FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, sc)
	return sc.TraineeCount
}
