// Package service 实现凭证网关：唯一碰持久层的组件，哈希/校验算法也归它管。
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-user-registry/internal/apperr"
	"go-user-registry/internal/domain"
	"go-user-registry/internal/repo"
	"go-user-registry/internal/validate"
	"go-user-registry/pkg/utils"
)

// PublicUser 对外可见字段，哈希永远不在其中
type PublicUser struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DeletedUser 删除响应只带身份字段
type DeletedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserService struct {
	users  domain.UserRepository
	hasher *utils.Hasher
	policy validate.Policy
	log    *zap.Logger
}

func NewUserService(users domain.UserRepository, hasher *utils.Hasher, policy validate.Policy, log *zap.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, policy: policy, log: log}
}

// Register 校验 → 消毒 → 查重（快速失败）→ 哈希 → 入库。
// 哈希一定发生在落库之前；并发撞库由唯一索引兜底，插入时的
// duplicate key 同样映射为 409。
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*PublicUser, error) {
	username, err := s.policy.Username(in.Username)
	if err != nil {
		return nil, err
	}
	if _, err = s.policy.Password(in.Password); err != nil {
		return nil, err
	}
	email, err := s.policy.Email(in.Email)
	if err != nil {
		return nil, err
	}
	username = validate.Sanitize(username)
	email = validate.Sanitize(email)

	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return nil, apperr.Internal("lookup failed", err)
	} else if existing != nil {
		return nil, apperr.Conflict("username already exists")
	}
	if email != "" {
		if existing, err := s.users.FindByEmail(ctx, email); err != nil {
			return nil, apperr.Internal("lookup failed", err)
		} else if existing != nil {
			return nil, apperr.Conflict("email already exists")
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal("hash password failed", err)
	}

	u := &domain.User{Username: username, PasswordHash: hash}
	if email != "" {
		u.Email = &email
	}
	if err := s.users.Create(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return nil, apperr.Conflict("username or email already exists")
		}
		return nil, apperr.Internal("create user failed", err)
	}
	s.log.Info("user registered", zap.Uint("id", u.ID), zap.String("username", u.Username))
	return s.public(u), nil
}

// Login 用户名不存在与密码错误必须不可区分：同一个 401、同一条消息
func (s *UserService) Login(ctx context.Context, username, password string) (*PublicUser, error) {
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if password == "" {
		return nil, apperr.Validation("password is required")
	}
	u, err := s.users.FindByUsername(ctx, validate.Sanitize(username))
	if err != nil {
		return nil, apperr.Internal("lookup failed", err)
	}
	if u == nil || !s.hasher.Check(password, u.PasswordHash) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return s.public(u), nil
}

// List 全量列表，按创建时间倒序，哈希字段从不出现在元素里
func (s *UserService) List(ctx context.Context) ([]PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Internal("list users failed", err)
	}
	out := make([]PublicUser, 0, len(users))
	for i := range users {
		out = append(out, *s.public(&users[i]))
	}
	return out, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) (*DeletedUser, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("lookup failed", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	affected, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, apperr.Internal("delete user failed", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("user not found")
	}
	s.log.Info("user deleted", zap.Uint("id", u.ID), zap.String("username", u.Username))
	return &DeletedUser{ID: u.ID, Username: u.Username}, nil
}

// ChangePassword 唯一的 present→present 迁移：换密码必须重新哈希后再落库，
// 不存在保留明文的更新路径。
func (s *UserService) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	if _, err := s.policy.Password(newPassword); err != nil {
		return err
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("lookup failed", err)
	}
	if u == nil {
		return apperr.NotFound("user not found")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal("hash password failed", err)
	}
	u.PasswordHash = hash
	if err := s.users.Update(ctx, u); err != nil {
		return apperr.Internal("update user failed", err)
	}
	return nil
}

func (s *UserService) public(u *domain.User) *PublicUser {
	p := &PublicUser{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
	if u.Email != nil {
		p.Email = *u.Email
	}
	return p
}
