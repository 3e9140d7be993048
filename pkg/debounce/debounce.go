// Package debounce provides per-key cancelable delayed task scheduling
// Package debounce 提供按键位可取消的延迟任务调度
// Used to coalesce bursts of note edits so only the final state after a quiet
// interval is persisted
// 用于合并笔记编辑的突发写入，安静间隔结束后仅持久化最终状态
package debounce

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config scheduler configuration
// Config 调度器配置
type Config struct {
	// Interval quiet interval, default 300ms
	// Interval 安静间隔，默认 300ms
	Interval time.Duration
}

// DefaultConfig returns default configuration
// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Interval: 300 * time.Millisecond,
	}
}

// pendingTask one scheduled, not yet fired task
// pendingTask 一个已调度但尚未触发的任务
type pendingTask struct {
	timer *time.Timer
	fn    func()
}

// Scheduler schedules at most one delayed task per key; scheduling again for
// the same key cancels and replaces the pending task
// Scheduler 每个键位最多调度一个延迟任务；同键再次调度会取消并替换挂起的任务
type Scheduler struct {
	config Config
	logger *zap.Logger

	mu      sync.Mutex
	pending map[string]*pendingTask
	closed  bool
}

// New creates a scheduler
// cfg: configuration, if nil use default configuration
// logger: zap logger, if nil use nop logger
// New 创建调度器
// cfg: 配置，如果为 nil 则使用默认配置
// logger: zap 日志器，如果为 nil 则使用 nop logger
func New(cfg *Config, logger *zap.Logger) *Scheduler {
	if cfg == nil {
		defaultCfg := DefaultConfig()
		cfg = &defaultCfg
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 300 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		config:  *cfg,
		logger:  logger,
		pending: make(map[string]*pendingTask),
	}
}

// Schedule schedules fn to run after the quiet interval; a pending task for
// the same key is canceled first and never issued
// Schedule 调度 fn 在安静间隔后执行；同键已挂起的任务会先被取消且不会再触发
func (s *Scheduler) Schedule(key string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if prev, ok := s.pending[key]; ok {
		prev.timer.Stop()
		delete(s.pending, key)
	}

	task := &pendingTask{fn: fn}
	task.timer = time.AfterFunc(s.config.Interval, func() {
		s.fire(key, task)
	})
	s.pending[key] = task
}

// fire runs a task when its timer elapses, unless it was superseded
// fire 在计时器到期时执行任务，除非其已被替换
func (s *Scheduler) fire(key string, task *pendingTask) {
	s.mu.Lock()
	current, ok := s.pending[key]
	if !ok || current != task {
		// Canceled or replaced between timer fire and lock acquisition
		// 在计时器触发与取得锁之间被取消或替换
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.mu.Unlock()

	task.fn()
}

// Cancel drops the pending task for key; reports whether one was pending
// Cancel 丢弃键位上挂起的任务；返回是否存在挂起任务
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.pending[key]
	if !ok {
		return false
	}
	task.timer.Stop()
	delete(s.pending, key)
	return true
}

// Flush runs the pending task for key immediately and synchronously;
// reports whether one was pending
// Flush 立即同步执行键位上挂起的任务；返回是否存在挂起任务
func (s *Scheduler) Flush(key string) bool {
	s.mu.Lock()
	task, ok := s.pending[key]
	if !ok {
		s.mu.Unlock()
		return false
	}
	task.timer.Stop()
	delete(s.pending, key)
	s.mu.Unlock()

	task.fn()
	return true
}

// Pending reports whether key has a scheduled task
// Pending 返回键位上是否有已调度任务
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Len returns the number of pending tasks
// Len 返回挂起任务数量
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Shutdown flushes all pending tasks and stops accepting new ones
// ctx is used to control shutdown timeout
// Shutdown 冲刷所有挂起任务并停止接受新任务
// ctx 用于控制关闭超时
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	remaining := make([]*pendingTask, 0, len(s.pending))
	for key, task := range s.pending {
		task.timer.Stop()
		delete(s.pending, key)
		remaining = append(remaining, task)
	}
	s.mu.Unlock()

	if len(remaining) > 0 {
		s.logger.Info("debounce scheduler flushing on shutdown",
			zap.Int("pending", len(remaining)))
	}

	done := make(chan struct{})
	go func() {
		for _, task := range remaining {
			task.fn()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.logger.Warn("debounce scheduler shutdown timeout")
		return ctx.Err()
	}
}
