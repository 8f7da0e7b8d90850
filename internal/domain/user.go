package domain

import (
	"context"
	"time"
)

// User 唯一的持久化实体。PasswordHash 永不参与 JSON 序列化。
// Email 用指针：可选邮箱档位下存 NULL，避免空串撞唯一索引
// （mysql/postgres 的唯一索引都把 NULL 视为互不相等）。
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email        *string   `gorm:"uniqueIndex;size:191" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserRepository 查不到记录时返回 (nil, nil)，错误只用于存储故障
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint) (int64, error)
}
