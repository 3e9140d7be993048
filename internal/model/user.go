package model

// User 用户账号
type User struct {
	UID       int64  `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Email     string `gorm:"column:email;size:128;uniqueIndex" json:"email"`
	Username  string `gorm:"column:username;size:64" json:"username"`
	Password  string `gorm:"column:password;size:128" json:"-"`
	Salt      string `gorm:"column:salt;size:32" json:"-"`
	IsDeleted int64  `gorm:"column:is_deleted;default:0" json:"isDeleted"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64  `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

// TableName 返回表名
func (*User) TableName() string {
	return "user"
}
