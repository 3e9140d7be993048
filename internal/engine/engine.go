// Package engine 提供画板的乐观同步引擎
// 变更先同步作用于本地集合并立即可见，再异步转发给持久化存储：
// 创建/删除失败时回滚本地状态，更新失败仅记录日志；
// 同一笔记的连续更新按安静间隔去抖，只把突发编辑后的最终状态发往网络
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haierkeys/note-board-sync-service/internal/board"
	"github.com/haierkeys/note-board-sync-service/internal/store"
	"github.com/haierkeys/note-board-sync-service/pkg/debounce"
	"github.com/haierkeys/note-board-sync-service/pkg/logger"
)

// DefaultDebounceInterval 更新持久化的默认安静间隔
const DefaultDebounceInterval = 300 * time.Millisecond

// Engine 乐观同步引擎
// mu 保护集合与待持久化字段；异步完成回调在同一把锁下收敛，
// 实现「稍后事件」语义：本地最新状态总是优先于在途的网络确认
type Engine struct {
	mu      sync.Mutex
	notes   *board.Collection
	pending map[string]*board.NoteFields // 每笔记累积的未持久化字段

	store      store.NoteStore
	credential func() string
	sched      *debounce.Scheduler
	logger     *zap.Logger

	inflight sync.WaitGroup
}

// Option 引擎可选配置
type Option func(*options)

type options struct {
	logger     *zap.Logger
	credential func() string
	interval   time.Duration
}

// WithLogger 设置日志器
func WithLogger(lg *zap.Logger) Option {
	return func(o *options) { o.logger = lg }
}

// WithCredentialProvider 设置认证凭据提供函数
// 引擎不管理凭据本身，只在发起持久化调用时附带当前值
func WithCredentialProvider(fn func() string) Option {
	return func(o *options) { o.credential = fn }
}

// WithDebounceInterval 设置更新持久化的安静间隔
func WithDebounceInterval(d time.Duration) Option {
	return func(o *options) { o.interval = d }
}

// New 创建同步引擎
func New(st store.NoteStore, opts ...Option) *Engine {
	o := &options{
		logger:     zap.NewNop(),
		credential: func() string { return "" },
		interval:   DefaultDebounceInterval,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Engine{
		notes:      board.NewCollection(),
		pending:    make(map[string]*board.NoteFields),
		store:      st,
		credential: o.credential,
		sched:      debounce.New(&debounce.Config{Interval: o.interval}, o.logger),
		logger:     o.logger,
	}
}

// Load 从持久化存储拉取全部笔记并替换本地集合
// 无凭据时存储返回空集，画板从零开始而不是阻塞
func (e *Engine) Load(ctx context.Context) error {
	notes, err := e.store.FetchAll(ctx, e.credential())
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.notes.Replace(notes)
	e.mu.Unlock()

	e.logger.Info("board loaded", zap.Int(logger.FieldCount, len(notes)))
	return nil
}

// Notes 按层叠序返回全部笔记的副本
func (e *Engine) Notes() []*board.Note {
	e.mu.Lock()
	defer e.mu.Unlock()

	src := e.notes.Notes()
	out := make([]*board.Note, len(src))
	for i, n := range src {
		out[i] = n.Clone()
	}
	return out
}

// Len 返回当前笔记数量
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notes.Len()
}

// Get 按 ID 返回笔记副本
func (e *Engine) Get(id string) (*board.Note, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n, ok := e.notes.Get(id)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// Create 乐观创建：本地生成 ID、补全默认值并立即插入集合，
// 随后异步持久化完整笔记；失败时从集合移除（回滚）
// 返回值即插入集合的笔记副本，调用方可直接继续使用
func (e *Engine) Create(fields board.NoteFields) *board.Note {
	note := board.NewNote(uuid.NewString(), fields)

	e.mu.Lock()
	e.notes.Add(note)
	snapshot := note.Clone()
	e.mu.Unlock()

	syncOps.WithLabelValues(opCreate).Inc()

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		_, err := e.store.Create(context.Background(), e.credential(), snapshot)
		if err == nil {
			return
		}

		e.mu.Lock()
		e.notes.Remove(note.ID)
		e.mu.Unlock()

		syncFailures.WithLabelValues(opCreate).Inc()
		rollbacks.WithLabelValues(opCreate).Inc()
		e.logger.Warn("note create persistence failed, rolled back",
			zap.String(logger.FieldNoteID, note.ID), zap.Error(err))
	}()

	return snapshot
}

// Update 乐观更新：部分字段立即合并进本地笔记并刷新修改时间，
// 持久化请求按笔记去抖调度；同一笔记更早的挂起请求被取消并重排，
// 突发编辑只把最终字段集合发往网络
// 持久化失败不回滚本地变更（进行中的编辑不应被打断），仅记录日志
func (e *Engine) Update(id string, fields board.NoteFields) {
	e.mu.Lock()
	n, ok := e.notes.Get(id)
	if !ok {
		e.mu.Unlock()
		return
	}
	n.Apply(fields)

	acc, ok := e.pending[id]
	if !ok {
		acc = &board.NoteFields{}
		e.pending[id] = acc
	}
	acc.Merge(fields)
	e.mu.Unlock()

	syncOps.WithLabelValues(opUpdate).Inc()

	e.sched.Schedule(id, func() {
		e.persistUpdate(id)
	})
}

// persistUpdate 发送某笔记累积的字段变更
func (e *Engine) persistUpdate(id string) {
	e.mu.Lock()
	acc, ok := e.pending[id]
	if ok {
		delete(e.pending, id)
	}
	e.mu.Unlock()

	if !ok || acc.IsEmpty() {
		return
	}

	if err := e.store.Update(context.Background(), e.credential(), id, *acc); err != nil {
		syncFailures.WithLabelValues(opUpdate).Inc()
		e.logger.Warn("note update persistence failed, keeping local state",
			zap.String(logger.FieldNoteID, id), zap.Error(err))
	}
}

// Delete 乐观删除：捕获当前完整状态后立即从集合移除，
// 同时取消该笔记挂起的去抖持久化（过期请求永远不会发出），
// 再异步请求删除；失败时按原相对位置回插（越界则追加）
func (e *Engine) Delete(id string) {
	e.mu.Lock()
	captured, index, ok := e.notes.Remove(id)
	delete(e.pending, id)
	e.mu.Unlock()

	if !ok {
		return
	}

	e.sched.Cancel(id)
	syncOps.WithLabelValues(opDelete).Inc()

	e.inflight.Add(1)
	go func() {
		defer e.inflight.Done()

		err := e.store.Delete(context.Background(), e.credential(), id)
		if err == nil {
			return
		}

		e.mu.Lock()
		e.notes.InsertAt(index, captured)
		e.mu.Unlock()

		syncFailures.WithLabelValues(opDelete).Inc()
		rollbacks.WithLabelValues(opDelete).Inc()
		e.logger.Warn("note delete persistence failed, restored",
			zap.String(logger.FieldNoteID, id), zap.Error(err))
	}()
}

// BringToFront 将笔记移到顶层
// 纯本地操作，层叠序不持久化到远端（会话内状态）
func (e *Engine) BringToFront(id string) {
	e.mu.Lock()
	e.notes.BringToFront(id)
	e.mu.Unlock()
}

// PendingUpdate 返回笔记是否有挂起的去抖持久化
func (e *Engine) PendingUpdate(id string) bool {
	return e.sched.Pending(id)
}

// FlushPending 立即同步发出笔记挂起的持久化请求
func (e *Engine) FlushPending(id string) bool {
	return e.sched.Flush(id)
}

// Wait 等待所有在途的异步持久化完成
func (e *Engine) Wait() {
	e.inflight.Wait()
}

// Shutdown 冲刷挂起的去抖请求并等待在途持久化完成
func (e *Engine) Shutdown(ctx context.Context) error {
	if err := e.sched.Shutdown(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		e.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
