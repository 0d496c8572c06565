package service

import (
	"time"

	"cms/config"
	"cms/dao"
	"cms/internal/apperr"
	"cms/internal/auth"
	"cms/model"
	"cms/utils"

	"github.com/go-redis/redis/v8"
)

// UserService bundles the DAO, session storage and authentication helpers.
type UserService struct {
	dao     *dao.UserDAO
	Session *auth.SessionManager
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(dao *dao.UserDAO, rdb *redis.Client) *UserService {
	return &UserService{
		dao:     dao,
		Session: auth.NewSessionManager(rdb),
	}
}

// RegisterInput carries the fields accepted at registration. Role defaults
// to author; elevation past author is an administrative act and the public
// register endpoint never passes anything else through.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     model.Role
}

// Register persists a freshly created user after hashing the password.
func (s *UserService) Register(in RegisterInput) (*model.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.New(apperr.KindValidation, "username, email and password are required")
	}
	role := in.Role
	if role == "" {
		role = model.RoleAuthor
	}
	if !role.Valid() {
		return nil, apperr.Newf(apperr.KindValidation, "unknown role %q", in.Role)
	}

	// 预检查重复，保证错误信息能区分用户名/邮箱
	if _, err := s.dao.GetByUsername(in.Username); err == nil {
		return nil, apperr.New(apperr.KindDuplicate, "username already exists")
	} else if !isNotFoundErr(err) {
		return nil, apperr.Storage(err)
	}
	if _, err := s.dao.GetByEmail(in.Email); err == nil {
		return nil, apperr.New(apperr.KindDuplicate, "email already exists")
	} else if !isNotFoundErr(err) {
		return nil, apperr.Storage(err)
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         role,
		FullName:     in.FullName,
		IsActive:     true,
	}
	if err := s.dao.CreateUser(user); err != nil {
		if isDuplicateErr(err) { // 并发注册兜底
			return nil, apperr.New(apperr.KindDuplicate, "username or email already exists")
		}
		return nil, apperr.Storage(err)
	}
	return user, nil
}

// Authenticate verifies username/password and the active flag. Unknown user
// and wrong password return the identical failure.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.dao.GetByUsername(username)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperr.New(apperr.KindInvalidCredentials, "invalid username or password")
		}
		return nil, apperr.Storage(err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.New(apperr.KindInvalidCredentials, "invalid username or password")
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.KindInactive, "account is deactivated")
	}
	return user, nil
}

// Login handles username/password authentication and issues a token pair.
func (s *UserService) Login(username, password, device string) (string, string, error) {
	user, err := s.Authenticate(username, password)
	if err != nil {
		return "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(user, device)
	if err != nil {
		return "", "", apperr.Storage(err)
	}

	// 保存 Refresh Token 到 Redis
	ttl := time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Second
	if err := s.Session.SaveRefreshToken(user.ID, device, refreshToken, ttl); err != nil {
		return "", "", apperr.Storage(err)
	}

	return accessToken, refreshToken, nil
}

// RotateRefreshToken 校验 refresh token、执行黑名单写入，并颁发新的 token 对。
func (s *UserService) RotateRefreshToken(refreshToken, headerDevice string) (string, string, error) {
	if refreshToken == "" {
		return "", "", apperr.New(apperr.KindValidation, "missing refresh token")
	}

	claims, err := auth.ParseToken(refreshToken)
	if err != nil {
		return "", "", apperr.New(apperr.KindInvalidCredentials, "refresh token invalid")
	}

	// 可选：若客户端提供 X-Device，需与 Token claims 匹配。
	if headerDevice != "" && headerDevice != claims.Device {
		return "", "", apperr.New(apperr.KindInvalidCredentials, "device mismatch")
	}

	stored, err := s.Session.GetRefreshToken(claims.UserID, claims.Device)
	if err != nil || stored != refreshToken {
		return "", "", apperr.New(apperr.KindInvalidCredentials, "refresh token expired or rotated")
	}

	// 重新加载用户，保证 role/active 变更立即生效
	user, err := s.dao.GetByID(claims.UserID)
	if err != nil {
		return "", "", apperr.New(apperr.KindInvalidCredentials, "user no longer exists")
	}
	if !user.IsActive {
		return "", "", apperr.New(apperr.KindInactive, "account is deactivated")
	}

	accessToken, newRefresh, err := auth.GenerateTokens(user, claims.Device)
	if err != nil {
		return "", "", apperr.Storage(err)
	}

	ttl := time.Duration(config.GlobalConfig.JWT.RefreshExpire) * time.Second
	if err := s.Session.SaveRefreshToken(user.ID, claims.Device, newRefresh, ttl); err != nil {
		return "", "", apperr.Storage(err)
	}

	// 将旧 refresh token 加入黑名单，防止被重放。
	_ = s.Session.AddBlackList(refreshToken, ttl)

	return accessToken, newRefresh, nil
}

// GetByID loads a user record, used by the auth middleware as the actor
// resolver.
func (s *UserService) GetByID(id uint64) (*model.User, error) {
	user, err := s.dao.GetByID(id)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, apperr.Storage(err)
	}
	return user, nil
}

// List returns all users; restricted to admin at the API layer.
func (s *UserService) List(actor *model.User) ([]model.User, error) {
	if actor.Role != model.RoleAdmin {
		return nil, apperr.New(apperr.KindForbidden, "admin only")
	}
	users, err := s.dao.List()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return users, nil
}
