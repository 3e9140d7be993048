package service

import (
	"context"
	"errors"

	"github.com/haierkeys/note-board-sync-service/internal/dao"
	"github.com/haierkeys/note-board-sync-service/internal/dto"
	"github.com/haierkeys/note-board-sync-service/pkg/app"
	"github.com/haierkeys/note-board-sync-service/pkg/code"
	"github.com/haierkeys/note-board-sync-service/pkg/util"

	"go.uber.org/zap"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest, clientIP string) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

type userService struct {
	d            *dao.Dao
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(d *dao.Dao, tokenManager app.TokenManager, logger *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		d:            d,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
	}
}

func (s *userService) toDTO(user *dao.User, token string) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Username:  user.Username,
		Token:     token,
		CreatedAt: user.CreatedAt,
	}
}

// Register 用户注册
// 密码以 bcrypt 哈希入库，注册成功直接返回带令牌的用户信息
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest, clientIP string) (*dto.UserDTO, error) {
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterDisabled
	}

	_, err := s.d.WithContext(ctx).UserGetByEmail(params.Email)
	if err == nil {
		return nil, code.ErrorUserAlreadyExists
	}
	if !errors.Is(err, dao.ErrUserNotFound) {
		s.logger.Error("userService.Register query err", zap.Error(err))
		return nil, code.ErrorDBQuery
	}

	hash, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorServerInternal
	}

	user, err := s.d.WithContext(ctx).UserCreate(&dao.UserSet{
		Email:    params.Email,
		Username: params.Username,
		Password: hash,
	})
	if err != nil {
		s.logger.Error("userService.Register create err", zap.Error(err))
		return nil, code.ErrorDBQuery
	}

	token, err := s.tokenManager.Generate(user.UID, user.Email, clientIP)
	if err != nil {
		return nil, code.ErrorServerInternal
	}

	return s.toDTO(user, token), nil
}

// Login 用户登录
// 不区分「用户不存在」与「密码错误」，统一返回登录失败
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	user, err := s.d.WithContext(ctx).UserGetByEmail(params.Email)
	if err != nil {
		if errors.Is(err, dao.ErrUserNotFound) {
			return nil, code.ErrorUserLoginFailed
		}
		s.logger.Error("userService.Login query err", zap.Error(err))
		return nil, code.ErrorDBQuery
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginFailed
	}

	token, err := s.tokenManager.Generate(user.UID, user.Email, clientIP)
	if err != nil {
		return nil, code.ErrorServerInternal
	}

	return s.toDTO(user, token), nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.d.WithContext(ctx).UserGetByUID(uid)
	if err != nil {
		if errors.Is(err, dao.ErrUserNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery
	}
	return s.toDTO(user, ""), nil
}
