package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gym-class-booking/internal/apperr"
	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/repo/memory"
)

func TestRegisterIssuesTraineeToken(t *testing.T) {
	st := memory.NewStore()
	j := testJWTer()
	svc := NewAuthService(st, j)

	res, err := svc.Register(context.Background(), "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleTrainee, res.Role)
	require.Equal(t, "alice@x.com", res.Email)
	require.NotZero(t, res.ID)

	claims, err := j.Parse(res.Token)
	require.NoError(t, err)
	require.Equal(t, res.ID, claims.UID)
	require.Equal(t, domain.RoleTrainee, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	st := memory.NewStore()
	svc := NewAuthService(st, testJWTer())

	_, err := svc.Register(context.Background(), "Alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Alice Two", "alice@x.com", "secret2")
	requireKind(t, err, apperr.KindConflict, "Email already in use")
}

// 邮箱不存在与密码错误必须返回同一句话
func TestLoginInvalidCredentials(t *testing.T) {
	st := memory.NewStore()
	svc := NewAuthService(st, testJWTer())
	mustUser(t, st, "Bob", "bob@x.com", domain.RoleTrainee)

	_, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	requireKind(t, err, apperr.KindUnauthorized, "Invalid credentials")

	_, err = svc.Login(context.Background(), "bob@x.com", "wrong-password")
	requireKind(t, err, apperr.KindUnauthorized, "Invalid credentials")
}

func TestLoginSuccess(t *testing.T) {
	st := memory.NewStore()
	j := testJWTer()
	svc := NewAuthService(st, j)
	u := mustUser(t, st, "Bob", "bob@x.com", domain.RoleTrainer)

	res, err := svc.Login(context.Background(), "bob@x.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, u.ID, res.ID)
	require.Equal(t, domain.RoleTrainer, res.Role)

	claims, err := j.Parse(res.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleTrainer, claims.Role)
}
