// Package safe_close coordinates graceful shutdown across goroutines
// safe_close 包在多个 goroutine 之间协调优雅关闭
package safe_close

import "sync"

// SafeClose 关闭协调器
// 子任务通过 Attach 挂载，收到关闭信号后完成清理并调用 done；
// 任意一方可用 SendCloseSignal 发起关闭，首个错误被保留
type SafeClose struct {
	m sync.Mutex

	closeSignal chan struct{}
	closeErr    error
	closed      bool

	wg sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach 挂载一个子任务
// f 必须保证 done 最终被调用，否则 WaitClosed 永远阻塞
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var doneOnce sync.Once
	done := func() {
		doneOnce.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal 发起关闭，重复调用只有第一次生效
func (s *SafeClose) SendCloseSignal(err error) {
	s.m.Lock()
	defer s.m.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.closeSignal)
}

// CloseSignal 返回关闭信号通道
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed 阻塞等待所有挂载的子任务完成，返回首个关闭错误
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()

	s.m.Lock()
	defer s.m.Unlock()
	return s.closeErr
}
