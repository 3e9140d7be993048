package dao

import (
	"errors"

	"github.com/haierkeys/note-board-sync-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSettingNotFound 配置项不存在
var ErrSettingNotFound = errors.New("setting not found")

// SettingGet 获取用户配置项的值
func (d *Dao) SettingGet(uid int64, key string) (string, error) {
	var m model.Setting
	err := d.db.WithContext(d.ctx).
		Where("uid = ? AND key = ?", uid, key).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}
		return "", err
	}
	return m.Value, nil
}

// SettingSet 写入用户配置项，存在则覆盖
func (d *Dao) SettingSet(uid int64, key string, value string) error {
	m := &model.Setting{UID: uid, Key: key, Value: value}
	return d.db.WithContext(d.ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uid"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(m).Error
}
