package model

// Setting 用户级键值配置
// 视口状态等会话配置以 JSON 文本保存在 Value 中
type Setting struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID       int64  `gorm:"column:uid;uniqueIndex:idx_uid_key" json:"uid"`
	Key       string `gorm:"column:key;size:64;uniqueIndex:idx_uid_key" json:"key"`
	Value     string `gorm:"column:value" json:"value"`
	CreatedAt int64  `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt int64  `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

// TableName 返回表名
func (*Setting) TableName() string {
	return "setting"
}
