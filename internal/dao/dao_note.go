package dao

import (
	"errors"
	"time"

	"github.com/haierkeys/note-board-sync-service/internal/model"
	"github.com/haierkeys/note-board-sync-service/pkg/convert"

	"gorm.io/gorm"
)

// ErrNoteNotFound 笔记不存在
var ErrNoteNotFound = errors.New("note not found")

// Note 笔记数据（dao 层返回结构）
type Note struct {
	ID      int64   `json:"id"`      // 自增 ID
	NoteID  string  `json:"noteId"`  // 笔记标识
	Title   string  `json:"title"`   // 标题
	Content string  `json:"content"` // 内容
	Color   string  `json:"color"`   // 颜色
	X       float64 `json:"x"`       // 世界坐标 X
	Y       float64 `json:"y"`       // 世界坐标 Y
	Width   float64 `json:"width"`   // 宽度
	Height  float64 `json:"height"`  // 高度
	Ctime   int64   `json:"ctime"`   // 创建时间戳（毫秒）
	Mtime   int64   `json:"mtime"`   // 修改时间戳（毫秒）
}

// NoteSet 笔记写入参数
type NoteSet struct {
	NoteID  string  `json:"noteId"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Color   string  `json:"color"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Ctime   int64   `json:"ctime"`
	Mtime   int64   `json:"mtime"`
}

// NoteList 获取用户的全部未删除笔记，按创建时间升序
func (d *Dao) NoteList(uid int64) ([]*Note, error) {
	var records []*model.Note
	err := d.db.WithContext(d.ctx).
		Where("uid = ? AND is_deleted = 0", uid).
		Order("ctime ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	list := make([]*Note, 0, len(records))
	for _, m := range records {
		n := &Note{}
		convert.StructAssign(m, n)
		list = append(list, n)
	}
	return list, nil
}

// NoteGet 获取用户的单条笔记
func (d *Dao) NoteGet(noteID string, uid int64) (*Note, error) {
	var m model.Note
	err := d.db.WithContext(d.ctx).
		Where("uid = ? AND note_id = ? AND is_deleted = 0", uid, noteID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	n := &Note{}
	convert.StructAssign(&m, n)
	return n, nil
}

// NoteCreate 创建笔记，NoteID 冲突时返回错误
func (d *Dao) NoteCreate(params *NoteSet, uid int64) (*Note, error) {
	m := &model.Note{UID: uid}
	convert.StructAssign(params, m)

	if err := d.db.WithContext(d.ctx).Create(m).Error; err != nil {
		return nil, err
	}

	n := &Note{}
	convert.StructAssign(m, n)
	return n, nil
}

// NoteUpdate 部分更新笔记，values 的键为列名
// 不存在（或已删除）的笔记返回 ErrNoteNotFound
func (d *Dao) NoteUpdate(noteID string, uid int64, values map[string]any) error {
	if len(values) == 0 {
		return nil
	}

	result := d.db.WithContext(d.ctx).
		Model(&model.Note{}).
		Where("uid = ? AND note_id = ? AND is_deleted = 0", uid, noteID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// NoteSoftDelete 软删除笔记，记录删除时间供后台清理任务回收
func (d *Dao) NoteSoftDelete(noteID string, uid int64) error {
	result := d.db.WithContext(d.ctx).
		Model(&model.Note{}).
		Where("uid = ? AND note_id = ? AND is_deleted = 0", uid, noteID).
		Updates(map[string]any{
			"is_deleted":        1,
			"deleted_timestamp": time.Now().UnixMilli(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// NotePurgeDeleted 物理删除 before 之前软删除的笔记，返回删除行数
func (d *Dao) NotePurgeDeleted(before int64) (int64, error) {
	result := d.db.WithContext(d.ctx).
		Where("is_deleted = 1 AND deleted_timestamp < ?", before).
		Delete(&model.Note{})
	return result.RowsAffected, result.Error
}
