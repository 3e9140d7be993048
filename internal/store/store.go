// Package store 定义笔记持久化适配器的抽象
// 同步引擎只依赖这里的接口，远端 HTTP 服务与本地持久化存储可以互换
package store

import (
	"context"

	"github.com/haierkeys/note-board-sync-service/internal/board"
)

// NoteStore 笔记持久化的四个操作，均携带可选的认证凭据
// credential 为空时 FetchAll 返回零条笔记而不是错误，系统从空画板启动
// 线上表示与内存表示之间的字段名转换由实现负责，且必须往返对称
type NoteStore interface {
	// FetchAll 拉取当前主体的全部笔记
	FetchAll(ctx context.Context, credential string) ([]*board.Note, error)

	// Create 持久化一条完整笔记，返回服务端存储后的记录
	// 返回值用于察觉服务端的字段规整
	Create(ctx context.Context, credential string, note *board.Note) (*board.Note, error)

	// Update 持久化一条笔记的部分字段
	Update(ctx context.Context, credential string, id string, fields board.NoteFields) error

	// Delete 删除一条笔记
	Delete(ctx context.Context, credential string, id string) error
}
