package localstore

import (
	"context"
	"testing"

	"github.com/haierkeys/note-board-sync-service/internal/board"
	"github.com/haierkeys/note-board-sync-service/internal/dao"
	"github.com/haierkeys/note-board-sync-service/internal/model"
	"github.com/haierkeys/note-board-sync-service/pkg/geometry"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	require.NoError(t, err)

	// 内存 SQLite 固定单连接，避免连接轮换丢失已迁移的表结构
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, model.AutoMigrateAll(db))

	return New(dao.New(db, context.Background()), nil)
}

func TestLocalNoteLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	note := &board.Note{
		ID: "n1", Title: "groceries", Content: "milk", Color: "green",
		X: 40, Y: 60, Width: 240, Height: 180, Ctime: 100, Mtime: 100,
	}
	stored, err := s.Create(ctx, "local", note)
	require.NoError(t, err)
	assert.Equal(t, "n1", stored.ID)
	assert.Equal(t, "groceries", stored.Title)

	title := "errands"
	x := 99.5
	require.NoError(t, s.Update(ctx, "local", "n1", board.NoteFields{Title: &title, X: &x}))

	notes, err := s.FetchAll(ctx, "local")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "errands", notes[0].Title)
	assert.Equal(t, 99.5, notes[0].X)
	assert.Equal(t, "milk", notes[0].Content, "untouched fields survive a partial update")

	require.NoError(t, s.Delete(ctx, "local", "n1"))
	notes, err = s.FetchAll(ctx, "local")
	require.NoError(t, err)
	assert.Empty(t, notes)

	// 已删除的笔记再次删除
	require.Error(t, s.Delete(ctx, "local", "n1"))
}

func TestLocalFetchAllEmptyCredential(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "local", &board.Note{ID: "n1", Color: "yellow", Width: 240, Height: 180, Ctime: 1, Mtime: 1})
	require.NoError(t, err)

	notes, err := s.FetchAll(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestLocalViewportRoundTrip(t *testing.T) {
	s := newTestStore(t)

	// 未保存过返回默认视口
	vp, err := s.LoadViewport()
	require.NoError(t, err)
	assert.Equal(t, geometry.DefaultViewport(), vp)

	want := geometry.Viewport{OffsetX: -32, OffsetY: 480, Scale: 0.75}
	require.NoError(t, s.SaveViewport(want))

	got, err := s.LoadViewport()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// 覆盖保存
	want = geometry.Viewport{OffsetX: 10, OffsetY: 20, Scale: 1.5}
	require.NoError(t, s.SaveViewport(want))
	got, err = s.LoadViewport()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
