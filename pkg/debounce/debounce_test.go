package debounce

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestScheduler(interval time.Duration) *Scheduler {
	return New(&Config{Interval: interval}, nil)
}

func TestNewNormalizesConfig(t *testing.T) {
	// nil 配置使用默认安静间隔
	s := New(nil, nil)
	assert.Equal(t, 300*time.Millisecond, s.config.Interval)

	// 非法间隔回退到默认值
	s = New(&Config{Interval: -time.Second}, nil)
	assert.Equal(t, 300*time.Millisecond, s.config.Interval)

	s = New(&Config{Interval: 50 * time.Millisecond}, nil)
	assert.Equal(t, 50*time.Millisecond, s.config.Interval)
}

func TestScheduleCoalescesBurst(t *testing.T) {
	s := newTestScheduler(20 * time.Millisecond)

	var fired atomic.Int32
	var last atomic.Int32

	// 三次快速调度，只有最后一次会触发
	for i := 1; i <= 3; i++ {
		v := int32(i)
		s.Schedule("note-1", func() {
			fired.Add(1)
			last.Store(v)
		})
	}

	assert.Equal(t, 1, s.Len())

	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, int32(3), last.Load())
	assert.False(t, s.Pending("note-1"))
}

func TestCancelPreventsFire(t *testing.T) {
	s := newTestScheduler(20 * time.Millisecond)

	var fired atomic.Int32
	s.Schedule("note-1", func() { fired.Add(1) })

	assert.True(t, s.Cancel("note-1"))
	assert.False(t, s.Cancel("note-1"))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestFlushRunsSynchronously(t *testing.T) {
	s := newTestScheduler(time.Hour)

	var fired atomic.Int32
	s.Schedule("note-1", func() { fired.Add(1) })

	assert.True(t, s.Flush("note-1"))
	assert.Equal(t, int32(1), fired.Load())

	// 冲刷后不再有挂起任务
	assert.False(t, s.Flush("note-1"))
	assert.Equal(t, int32(1), fired.Load())
}

func TestIndependentKeys(t *testing.T) {
	s := newTestScheduler(time.Hour)

	s.Schedule("a", func() {})
	s.Schedule("b", func() {})
	assert.Equal(t, 2, s.Len())

	s.Cancel("a")
	assert.False(t, s.Pending("a"))
	assert.True(t, s.Pending("b"))
}

func TestShutdownFlushesRemaining(t *testing.T) {
	s := newTestScheduler(time.Hour)

	var fired atomic.Int32
	s.Schedule("a", func() { fired.Add(1) })
	s.Schedule("b", func() { fired.Add(1) })

	err := s.Shutdown(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(2), fired.Load())

	// 关闭后调度被忽略
	s.Schedule("c", func() { fired.Add(1) })
	assert.Equal(t, 0, s.Len())
}
