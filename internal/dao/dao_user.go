package dao

import (
	"errors"

	"github.com/haierkeys/note-board-sync-service/internal/model"
	"github.com/haierkeys/note-board-sync-service/pkg/convert"

	"gorm.io/gorm"
)

// ErrUserNotFound 用户不存在
var ErrUserNotFound = errors.New("user not found")

// User 用户数据（dao 层返回结构）
type User struct {
	UID       int64  `json:"uid"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"-"`
	CreatedAt int64  `json:"createdAt"`
}

// UserSet 用户写入参数
type UserSet struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// UserGetByEmail 按邮箱查询用户
func (d *Dao) UserGetByEmail(email string) (*User, error) {
	var m model.User
	err := d.db.WithContext(d.ctx).
		Where("email = ? AND is_deleted = 0", email).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u := &User{}
	convert.StructAssign(&m, u)
	return u, nil
}

// UserGetByUID 按 UID 查询用户
func (d *Dao) UserGetByUID(uid int64) (*User, error) {
	var m model.User
	err := d.db.WithContext(d.ctx).
		Where("uid = ? AND is_deleted = 0", uid).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u := &User{}
	convert.StructAssign(&m, u)
	return u, nil
}

// UserCreate 创建用户，邮箱唯一索引冲突时返回错误
func (d *Dao) UserCreate(params *UserSet) (*User, error) {
	m := &model.User{}
	convert.StructAssign(params, m)

	if err := d.db.WithContext(d.ctx).Create(m).Error; err != nil {
		return nil, err
	}

	u := &User{}
	convert.StructAssign(m, u)
	return u, nil
}
