package service

import (
	"context"

	"go.uber.org/zap"

	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/repo"
	"gym-class-booking/pkg/utils"
)

// EnsureAdmin 启动时保证存在一个 ADMIN；已有则什么都不做
func EnsureAdmin(ctx context.Context, store domain.Store, name, email, password string, log *zap.Logger) error {
	existing, err := store.Users().FirstByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     domain.RoleAdmin,
	}
	if err := store.Users().Create(ctx, admin); err != nil {
		// 多实例同时启动：另一个实例先建好了，视为成功
		if repo.IsDupKey(err) {
			return nil
		}
		return err
	}
	log.Info("admin user created", zap.String("email", email))
	return nil
}
