package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/haierkeys/note-board-sync-service/internal/dao"
	"github.com/haierkeys/note-board-sync-service/internal/dto"
	"github.com/haierkeys/note-board-sync-service/pkg/code"

	"go.uber.org/zap"
)

// 视口状态在 setting 表中的键名
const SettingKeyViewport = "viewport"

// SettingService 定义用户配置业务服务接口
type SettingService interface {
	// ViewportGet 获取用户保存的视口状态，未保存过返回 nil
	ViewportGet(ctx context.Context, uid int64) (*dto.ViewportDTO, error)

	// ViewportSave 保存用户的视口状态
	ViewportSave(ctx context.Context, uid int64, params *dto.ViewportDTO) error
}

type settingService struct {
	d      *dao.Dao
	logger *zap.Logger
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(d *dao.Dao, lg *zap.Logger) SettingService {
	return &settingService{d: d, logger: lg}
}

// ViewportGet 获取用户保存的视口状态
// 存量数据损坏时视为未保存，客户端回落到默认视口
func (s *settingService) ViewportGet(ctx context.Context, uid int64) (*dto.ViewportDTO, error) {
	value, err := s.d.WithContext(ctx).SettingGet(uid, SettingKeyViewport)
	if err != nil {
		if errors.Is(err, dao.ErrSettingNotFound) {
			return nil, nil
		}
		return nil, code.ErrorDBQuery
	}

	vp := &dto.ViewportDTO{}
	if err := json.Unmarshal([]byte(value), vp); err != nil {
		s.logger.Warn("stored viewport is malformed, ignoring", zap.Error(err))
		return nil, nil
	}
	return vp, nil
}

// ViewportSave 保存用户的视口状态
func (s *settingService) ViewportSave(ctx context.Context, uid int64, params *dto.ViewportDTO) error {
	value, err := json.Marshal(params)
	if err != nil {
		return code.ErrorViewportSaveFailed
	}

	if err := s.d.WithContext(ctx).SettingSet(uid, SettingKeyViewport, string(value)); err != nil {
		s.logger.Error("settingService.ViewportSave err", zap.Error(err))
		return code.ErrorViewportSaveFailed
	}
	return nil
}
