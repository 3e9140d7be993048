// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// NoteCreateRequest 创建笔记的请求参数
// 客户端负责生成 NoteID，服务端以 uid+noteId 去重
type NoteCreateRequest struct {
	NoteID  string  `json:"noteId" form:"noteId" binding:"required"`
	Title   string  `json:"title" form:"title"`
	Content string  `json:"content" form:"content"`
	Color   string  `json:"color" form:"color"`
	X       float64 `json:"x" form:"x"`
	Y       float64 `json:"y" form:"y"`
	Width   float64 `json:"width" form:"width"`
	Height  float64 `json:"height" form:"height"`
	Ctime   int64   `json:"ctime" form:"ctime"`
	Mtime   int64   `json:"mtime" form:"mtime"`
}

// NoteUpdateRequest 部分更新笔记的请求参数
// 指针字段缺省表示该字段不修改
type NoteUpdateRequest struct {
	Title   *string  `json:"title" form:"title"`
	Content *string  `json:"content" form:"content"`
	Color   *string  `json:"color" form:"color"`
	X       *float64 `json:"x" form:"x"`
	Y       *float64 `json:"y" form:"y"`
	Width   *float64 `json:"width" form:"width"`
	Height  *float64 `json:"height" form:"height"`
	Mtime   *int64   `json:"mtime" form:"mtime"`
}

// NoteDTO 笔记响应对象
type NoteDTO struct {
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

// NoteListResponse 笔记列表响应
type NoteListResponse struct {
	List  []*NoteDTO `json:"list"`
	Total int        `json:"total"`
}
