// Package localstore 以本地数据库实现笔记与视口的持久化适配器
// 单用户离线模式：所有记录固定归属 LocalUID，credential 仅用作空判断
package localstore

import (
	"context"
	"encoding/json"

	"github.com/haierkeys/note-board-sync-service/internal/board"
	"github.com/haierkeys/note-board-sync-service/internal/dao"
	"github.com/haierkeys/note-board-sync-service/pkg/geometry"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LocalUID 本地模式固定用户
const LocalUID int64 = 1

// 视口状态存储在 setting 表中的键
const settingKeyViewport = "viewport"

// Store 本地笔记存储
type Store struct {
	dao    *dao.Dao
	logger *zap.Logger
}

// New 创建本地存储
func New(d *dao.Dao, lg *zap.Logger) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{dao: d, logger: lg}
}

// FetchAll 读取全部未删除的本地笔记
// credential 为空时返回空列表，与远端存储的启动语义一致
func (s *Store) FetchAll(ctx context.Context, credential string) ([]*board.Note, error) {
	if credential == "" {
		return nil, nil
	}

	records, err := s.dao.WithContext(ctx).NoteList(LocalUID)
	if err != nil {
		return nil, errors.Wrap(err, "local note list failed")
	}

	notes := make([]*board.Note, 0, len(records))
	for _, rec := range records {
		notes = append(notes, recordToNote(rec))
	}
	return notes, nil
}

// Create 持久化一条完整笔记
func (s *Store) Create(ctx context.Context, credential string, note *board.Note) (*board.Note, error) {
	rec, err := s.dao.WithContext(ctx).NoteCreate(&dao.NoteSet{
		NoteID:  note.ID,
		Title:   note.Title,
		Content: note.Content,
		Color:   note.Color,
		X:       note.X,
		Y:       note.Y,
		Width:   note.Width,
		Height:  note.Height,
		Ctime:   note.Ctime,
		Mtime:   note.Mtime,
	}, LocalUID)
	if err != nil {
		return nil, errors.Wrap(err, "local note create failed")
	}
	return recordToNote(rec), nil
}

// Update 持久化一条笔记的部分字段
func (s *Store) Update(ctx context.Context, credential string, id string, fields board.NoteFields) error {
	values := map[string]any{}
	if fields.Title != nil {
		values["title"] = *fields.Title
	}
	if fields.Content != nil {
		values["content"] = *fields.Content
	}
	if fields.Color != nil {
		values["color"] = *fields.Color
	}
	if fields.X != nil {
		values["x"] = *fields.X
	}
	if fields.Y != nil {
		values["y"] = *fields.Y
	}
	if fields.Width != nil {
		values["width"] = *fields.Width
	}
	if fields.Height != nil {
		values["height"] = *fields.Height
	}

	if err := s.dao.WithContext(ctx).NoteUpdate(id, LocalUID, values); err != nil {
		return errors.Wrap(err, "local note update failed")
	}
	return nil
}

// Delete 软删除一条笔记
func (s *Store) Delete(ctx context.Context, credential string, id string) error {
	if err := s.dao.WithContext(ctx).NoteSoftDelete(id, LocalUID); err != nil {
		return errors.Wrap(err, "local note delete failed")
	}
	return nil
}

// LoadViewport 从 setting 表恢复视口，未保存或内容损坏时返回默认视口
func (s *Store) LoadViewport() (geometry.Viewport, error) {
	value, err := s.dao.SettingGet(LocalUID, settingKeyViewport)
	if err != nil {
		if errors.Is(err, dao.ErrSettingNotFound) {
			return geometry.DefaultViewport(), nil
		}
		return geometry.DefaultViewport(), err
	}

	var vp geometry.Viewport
	if err := json.Unmarshal([]byte(value), &vp); err != nil {
		s.logger.Warn("stored viewport is malformed, using default", zap.Error(err))
		return geometry.DefaultViewport(), nil
	}
	return vp, nil
}

// SaveViewport 将视口状态写入 setting 表
func (s *Store) SaveViewport(vp geometry.Viewport) error {
	value, err := json.Marshal(vp)
	if err != nil {
		return errors.Wrap(err, "encode viewport failed")
	}
	return s.dao.SettingSet(LocalUID, settingKeyViewport, string(value))
}

func recordToNote(rec *dao.Note) *board.Note {
	return &board.Note{
		ID:      rec.NoteID,
		Title:   rec.Title,
		Content: rec.Content,
		Color:   rec.Color,
		X:       rec.X,
		Y:       rec.Y,
		Width:   rec.Width,
		Height:  rec.Height,
		Ctime:   rec.Ctime,
		Mtime:   rec.Mtime,
	}
}
