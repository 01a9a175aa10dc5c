package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"leasehub/internal/core/auth"
	"leasehub/internal/domain"
	"leasehub/internal/policy"
	"leasehub/pkg/utils"
)

// AuthService 账号凭证 + 无状态 token，服务端不保存会话
type AuthService struct {
	users domain.UserStore
	jwt   *auth.JWTer
	log   *zap.Logger
}

func NewAuthService(users domain.UserStore, jwt *auth.JWTer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, log: log}
}

// Register 自助注册并直接登录；只接受 policy.SelfRegistrable 允许的角色
func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (sess *domain.Session, err error) {
	defer func() { countAuth("register", err) }()
	if err := policy.Authorize(domain.Anonymous(), policy.Register); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = domain.RoleVisitor
	}
	if in.Role.IsValid() && !policy.SelfRegistrable(in.Role) {
		return nil, domain.Validation("role %s cannot be self-registered", in.Role)
	}
	u, err := s.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.session(*u)
}

// CreateUser 特权建号（admin 命令行、演示数据），任何角色都可以
func (s *AuthService) CreateUser(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Phone != nil && strings.TrimSpace(*in.Phone) == "" {
		in.Phone = nil
	}
	if in.Role == "" {
		in.Role = domain.RoleVisitor
	}
	if err := check(in); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Internal("hash password", err)
	}
	u := &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Email:        in.Email,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         in.Role,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Authenticate 校验账号密码并签发新 token；用户不存在和密码错误对外不可区分
func (s *AuthService) Authenticate(ctx context.Context, in domain.LoginInput) (sess *domain.Session, err error) {
	defer func() { countAuth("login", err) }()
	in.Username = strings.TrimSpace(in.Username)
	if err := check(in); err != nil {
		return nil, err
	}
	u, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, domain.InvalidCredentials()
	}
	return s.session(*u)
}

// Verify token → 仍然存在的用户
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.Unauthenticated("missing token", nil)
	}
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, domain.Unauthenticated("invalid or expired token", err)
	}
	u, err := s.users.GetUser(ctx, claims.UID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Unauthenticated("user no longer exists", nil)
	}
	return u, nil
}

// Profile 当前用户自己的信息
func (s *AuthService) Profile(ctx context.Context, id domain.Identity) (*domain.User, error) {
	if err := policy.Authorize(id, policy.Profile); err != nil {
		return nil, err
	}
	u, err := s.users.GetUser(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User")
	}
	return u, nil
}

// Logout 只做确认，由客户端丢弃 token
func (s *AuthService) Logout(id domain.Identity) {
	countAuth("logout", nil)
	if id.Authenticated() {
		s.log.Debug("logout", zap.String("user_id", id.UserID))
	}
}

func (s *AuthService) session(u domain.User) (*domain.Session, error) {
	tok, err := s.jwt.Issue(u)
	if err != nil {
		return nil, domain.Internal("issue token", err)
	}
	return &domain.Session{User: u, Token: tok}, nil
}
