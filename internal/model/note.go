package model

// Note 画板笔记
// NoteID 为客户端生成的笔记标识，在同一用户下唯一；
// 坐标与尺寸使用世界坐标系
type Note struct {
	ID               int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UID              int64   `gorm:"column:uid;uniqueIndex:idx_uid_note_id" json:"uid"`
	NoteID           string  `gorm:"column:note_id;size:64;uniqueIndex:idx_uid_note_id" json:"noteId"`
	Title            string  `gorm:"column:title" json:"title"`
	Content          string  `gorm:"column:content" json:"content"`
	Color            string  `gorm:"column:color;size:16" json:"color"`
	X                float64 `gorm:"column:x" json:"x"`
	Y                float64 `gorm:"column:y" json:"y"`
	Width            float64 `gorm:"column:width" json:"width"`
	Height           float64 `gorm:"column:height" json:"height"`
	Ctime            int64   `gorm:"column:ctime" json:"ctime"`
	Mtime            int64   `gorm:"column:mtime" json:"mtime"`
	IsDeleted        int64   `gorm:"column:is_deleted;default:0;index" json:"isDeleted"`
	DeletedTimestamp int64   `gorm:"column:deleted_timestamp;default:0" json:"deletedTimestamp"`
	CreatedAt        int64   `gorm:"column:created_at;autoCreateTime:milli" json:"createdAt"`
	UpdatedAt        int64   `gorm:"column:updated_at;autoUpdateTime:milli" json:"updatedAt"`
}

// TableName 返回表名
func (*Note) TableName() string {
	return "note"
}
