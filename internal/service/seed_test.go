package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/repo/memory"
	"gym-class-booking/pkg/utils"
)

func TestEnsureAdminIdempotent(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	log := zap.NewNop()

	require.NoError(t, EnsureAdmin(ctx, st, "Admin User", "admin@admin.admin", "000000", log))
	require.NoError(t, EnsureAdmin(ctx, st, "Admin User", "admin@admin.admin", "000000", log))

	admins, err := st.Users().ListByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, "admin@admin.admin", admins[0].Email)
	require.True(t, utils.CheckPassword("000000", admins[0].Password))
}

func TestEnsureAdminSkipsWhenAdminExists(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	mustUser(t, st, "Boss", "boss@x.com", domain.RoleAdmin)

	require.NoError(t, EnsureAdmin(ctx, st, "Admin User", "admin@admin.admin", "000000", zap.NewNop()))

	admins, err := st.Users().ListByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, "boss@x.com", admins[0].Email)
}
