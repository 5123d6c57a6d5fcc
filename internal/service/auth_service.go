package service

import (
	"context"
	"strings"

	"gym-class-booking/internal/apperr"
	"gym-class-booking/internal/core/auth"
	"gym-class-booking/internal/domain"
	"gym-class-booking/internal/repo"
	"gym-class-booking/pkg/utils"
)

type AuthService struct {
	store domain.Store
	jwter *auth.JWTer
}

func NewAuthService(store domain.Store, jwter *auth.JWTer) *AuthService {
	return &AuthService{store: store, jwter: jwter}
}

// AuthResult 注册/登录统一返回：用户信息 + 签发的 token
type AuthResult struct {
	ID    uint64      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Token string      `json:"token"`
}

// Register 开放注册只产生 TRAINEE，传入的 role 一律忽略
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)

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
		Role:     domain.RoleTrainee,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		// 并发注册输掉唯一索引竞争 → 同样按冲突返回
		if repo.IsDupKey(err) {
			return nil, apperr.Conflict("Email already in use")
		}
		return nil, apperr.Internal("create user failed", err)
	}

	token, err := s.jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperr.Internal("issue token failed", err)
	}
	return &AuthResult{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token}, nil
}

// Login 统一返回 Invalid credentials，不暴露哪个因素出错
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.store.Users().FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, apperr.Internal("find user failed", err)
	}
	if u == nil || !utils.CheckPassword(password, u.Password) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := s.jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperr.Internal("issue token failed", err)
	}
	return &AuthResult{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Token: token}, nil
}
