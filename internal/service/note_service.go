package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/haierkeys/note-board-sync-service/internal/dao"
	"github.com/haierkeys/note-board-sync-service/internal/dto"
	"github.com/haierkeys/note-board-sync-service/pkg/code"
	"github.com/haierkeys/note-board-sync-service/pkg/convert"
	"github.com/haierkeys/note-board-sync-service/pkg/logger"
	"github.com/haierkeys/note-board-sync-service/pkg/util"

	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// List 获取用户全部笔记，按创建时间升序
	List(ctx context.Context, uid int64) ([]*dto.NoteDTO, error)

	// Create 创建笔记
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Update 部分更新笔记
	Update(ctx context.Context, uid int64, noteID string, params *dto.NoteUpdateRequest) error

	// Delete 软删除笔记
	Delete(ctx context.Context, uid int64, noteID string) error

	// Cleanup 物理清理超出保留期的软删除笔记
	Cleanup(ctx context.Context) (int64, error)
}

type noteService struct {
	d      *dao.Dao
	logger *zap.Logger
	config *ServiceConfig
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(d *dao.Dao, lg *zap.Logger, config *ServiceConfig) NoteService {
	return &noteService{
		d:      d,
		logger: lg,
		config: config,
	}
}

// List 获取用户全部笔记
func (s *noteService) List(ctx context.Context, uid int64) ([]*dto.NoteDTO, error) {
	records, err := s.d.WithContext(ctx).NoteList(uid)
	if err != nil {
		s.logger.Error("noteService.List err", zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return nil, code.ErrorNoteListFailed
	}

	list := make([]*dto.NoteDTO, 0, len(records))
	for _, n := range records {
		out := &dto.NoteDTO{}
		convert.StructAssign(n, out)
		list = append(list, out)
	}
	return list, nil
}

// Create 创建笔记
// 客户端时间戳缺省时由服务端补当前时间
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	set := &dao.NoteSet{}
	convert.StructAssign(params, set)

	now := time.Now().UnixMilli()
	if set.Ctime == 0 {
		set.Ctime = now
	}
	if set.Mtime == 0 {
		set.Mtime = now
	}

	note, err := s.d.WithContext(ctx).NoteCreate(set, uid)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "Duplicate") {
			return nil, code.ErrorNoteCreateFailed.WithDetails("noteId already exists")
		}
		s.logger.Error("noteService.Create err",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldNoteID, params.NoteID),
			zap.Error(err))
		return nil, code.ErrorNoteCreateFailed
	}

	out := &dto.NoteDTO{}
	convert.StructAssign(note, out)
	return out, nil
}

// Update 部分更新笔记
// 只下发携带的字段，修改时间缺省时由服务端补当前时间
func (s *noteService) Update(ctx context.Context, uid int64, noteID string, params *dto.NoteUpdateRequest) error {
	values := map[string]any{}
	if params.Title != nil {
		values["title"] = *params.Title
	}
	if params.Content != nil {
		values["content"] = *params.Content
	}
	if params.Color != nil {
		values["color"] = *params.Color
	}
	if params.X != nil {
		values["x"] = *params.X
	}
	if params.Y != nil {
		values["y"] = *params.Y
	}
	if params.Width != nil {
		values["width"] = *params.Width
	}
	if params.Height != nil {
		values["height"] = *params.Height
	}
	if len(values) == 0 {
		return nil
	}

	if params.Mtime != nil {
		values["mtime"] = *params.Mtime
	} else {
		values["mtime"] = time.Now().UnixMilli()
	}

	err := s.d.WithContext(ctx).NoteUpdate(noteID, uid, values)
	if err != nil {
		if errors.Is(err, dao.ErrNoteNotFound) {
			return code.ErrorNoteNotFound
		}
		s.logger.Error("noteService.Update err",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldNoteID, noteID),
			zap.Error(err))
		return code.ErrorNoteModifyFailed
	}
	return nil
}

// Delete 软删除笔记
func (s *noteService) Delete(ctx context.Context, uid int64, noteID string) error {
	err := s.d.WithContext(ctx).NoteSoftDelete(noteID, uid)
	if err != nil {
		if errors.Is(err, dao.ErrNoteNotFound) {
			return code.ErrorNoteNotFound
		}
		s.logger.Error("noteService.Delete err",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldNoteID, noteID),
			zap.Error(err))
		return code.ErrorNoteDeleteFailed
	}
	return nil
}

// Cleanup 物理清理超出保留期的软删除笔记
// 保留时间未配置或为 0 时不清理
func (s *noteService) Cleanup(ctx context.Context) (int64, error) {
	retention := ""
	if s.config != nil {
		retention = s.config.App.SoftDeleteRetentionTime
	}
	if retention == "" || retention == "0" {
		return 0, nil
	}

	duration, err := util.ParseDuration(retention)
	if err != nil || duration <= 0 {
		return 0, err
	}

	before := time.Now().Add(-duration).UnixMilli()
	purged, err := s.d.WithContext(ctx).NotePurgeDeleted(before)
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		s.logger.Info("soft deleted notes purged", zap.Int64(logger.FieldCount, purged))
	}
	return purged, nil
}
