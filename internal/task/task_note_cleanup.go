package task

import (
	"context"
	"time"

	"github.com/haierkeys/note-board-sync-service/internal/app"
	"github.com/haierkeys/note-board-sync-service/pkg/util"

	"go.uber.org/zap"
)

// NoteCleanupTask 软删除笔记清理任务
// 定期物理删除超过保留期的软删除记录
type NoteCleanupTask struct {
	app      *app.App
	interval time.Duration
	firstRun bool
}

// NewNoteCleanupTask 创建清理任务
// 保留时间未配置或为零时返回 nil，任务被禁用
func NewNoteCleanupTask(a *app.App) (Task, error) {
	retentionTimeStr := a.Config().App.SoftDeleteRetentionTime
	if retentionTimeStr == "" {
		return nil, nil
	}
	duration, err := util.ParseDuration(retentionTimeStr)
	if err != nil {
		return nil, err
	}

	if duration <= 0 {
		return nil, nil
	}

	return &NoteCleanupTask{
		app:      a,
		interval: 10 * time.Minute,
		firstRun: true,
	}, nil
}

// Name 返回任务名称
func (t *NoteCleanupTask) Name() string {
	return "NoteCleanupTask"
}

// Run 执行清理任务
func (t *NoteCleanupTask) Run(ctx context.Context) error {
	status := "scheduled"
	if t.firstRun {
		status = "first-run"
		t.firstRun = false
	}

	purged, err := t.app.NoteService.Cleanup(ctx)

	if err != nil {
		t.app.Logger().Error(t.Name()+" failed ["+status+"]: ", zap.Error(err))
	} else {
		t.app.Logger().Info(t.Name()+" completed successfully ["+status+"]", zap.Int64("purged", purged))
	}

	return err
}

// LoopInterval 返回执行间隔
func (t *NoteCleanupTask) LoopInterval() time.Duration {
	return t.interval
}

// IsStartupRun 是否立即执行一次
func (t *NoteCleanupTask) IsStartupRun() bool {
	return true
}
