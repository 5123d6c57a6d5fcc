package domain

import (
	"context"
	"time"
)

// Role 用户角色（路由按 allow-list 校验）
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTrainer Role = "TRAINER"
	RoleTrainee Role = "TRAINEE"
)

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      Role      `gorm:"size:16;not null;default:TRAINEE" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserRepository 查不到时返回 (nil, nil)
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDAndRole(ctx context.Context, id uint64, role Role) (*User, error)
	FirstByRole(ctx context.Context, role Role) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	// EmailTaken 检查邮箱是否被其他用户占用（excludeID=0 表示不排除）
	EmailTaken(ctx context.Context, email string, excludeID uint64) (bool, error)
	Update(ctx context.Context, u *User) error
}
