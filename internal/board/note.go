// Package board 提供画板核心状态：笔记模型、层叠序集合、视口与笔记交互
// 所有状态变更均通过窄接口进行，组件之间不共享环境全局变量
package board

import (
	"time"
)

// 笔记几何默认值与下限（世界单位）
const (
	DefaultNoteWidth  = 240.0
	DefaultNoteHeight = 180.0
	MinNoteWidth      = 180.0
	MinNoteHeight     = 120.0
)

// 固定颜色标签
const (
	ColorYellow = "yellow"
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorPink   = "pink"
	ColorPurple = "purple"
	ColorOrange = "orange"
)

// Palette 可用颜色标签清单
var Palette = []string{ColorYellow, ColorBlue, ColorGreen, ColorPink, ColorPurple, ColorOrange}

// IsValidColor 判断颜色标签是否在调色板中
func IsValidColor(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

// Note 画板上的一条笔记
// 几何字段为世界坐标/世界单位；Ctime 创建后不变，Mtime 随每次变更更新
type Note struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Color   string  `json:"color"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Ctime   int64   `json:"ctime"` // 创建时间戳（毫秒）
	Mtime   int64   `json:"mtime"` // 修改时间戳（毫秒）
}

// NoteFields 笔记的部分字段集合，nil 字段表示不修改
// 作为本地变更与远端部分持久化共用的载体
type NoteFields struct {
	Title   *string  `json:"title,omitempty"`
	Content *string  `json:"content,omitempty"`
	Color   *string  `json:"color,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
}

// NewNote 按默认几何和内容构造一条完整笔记
// fields 提供的字段覆盖默认值；非法颜色回退为黄色；宽高钳制到下限
func NewNote(id string, fields NoteFields) *Note {
	now := time.Now().UnixMilli()

	n := &Note{
		ID:     id,
		Color:  ColorYellow,
		Width:  DefaultNoteWidth,
		Height: DefaultNoteHeight,
		Ctime:  now,
		Mtime:  now,
	}
	n.Apply(fields)
	n.Mtime = now
	return n
}

// Apply 将部分字段合并进笔记并更新修改时间
// 宽高通过钳制保证不低于下限，不做拒绝
func (n *Note) Apply(fields NoteFields) {
	if fields.Title != nil {
		n.Title = *fields.Title
	}
	if fields.Content != nil {
		n.Content = *fields.Content
	}
	if fields.Color != nil && IsValidColor(*fields.Color) {
		n.Color = *fields.Color
	}
	if fields.X != nil {
		n.X = *fields.X
	}
	if fields.Y != nil {
		n.Y = *fields.Y
	}
	if fields.Width != nil {
		n.Width = max(MinNoteWidth, *fields.Width)
	}
	if fields.Height != nil {
		n.Height = max(MinNoteHeight, *fields.Height)
	}
	n.Mtime = time.Now().UnixMilli()
}

// Clone 返回笔记的独立副本
func (n *Note) Clone() *Note {
	c := *n
	return &c
}

// Merge 将 other 中的非 nil 字段合并进自身，other 的字段优先
func (f *NoteFields) Merge(other NoteFields) {
	if other.Title != nil {
		f.Title = other.Title
	}
	if other.Content != nil {
		f.Content = other.Content
	}
	if other.Color != nil {
		f.Color = other.Color
	}
	if other.X != nil {
		f.X = other.X
	}
	if other.Y != nil {
		f.Y = other.Y
	}
	if other.Width != nil {
		f.Width = other.Width
	}
	if other.Height != nil {
		f.Height = other.Height
	}
}

// IsEmpty 判断是否没有任何待修改字段
func (f *NoteFields) IsEmpty() bool {
	return f.Title == nil && f.Content == nil && f.Color == nil &&
		f.X == nil && f.Y == nil && f.Width == nil && f.Height == nil
}
