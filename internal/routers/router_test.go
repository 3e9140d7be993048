package routers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	internalApp "github.com/haierkeys/note-board-sync-service/internal/app"
	"github.com/haierkeys/note-board-sync-service/internal/board"
	"github.com/haierkeys/note-board-sync-service/internal/engine"
	"github.com/haierkeys/note-board-sync-service/internal/model"
	"github.com/haierkeys/note-board-sync-service/internal/store/httpstore"
	"github.com/haierkeys/note-board-sync-service/pkg/geometry"

	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestServer 启动完整的 API 服务：内存数据库 + App 容器 + 路由
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := new(internalApp.AppConfig)
	require.NoError(t, defaults.Set(cfg))

	a, err := internalApp.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(NewRouter(a))
	t.Cleanup(srv.Close)
	return srv
}

// registerUser 注册用户并返回认证 Token
func registerUser(t *testing.T, baseURL string) string {
	t.Helper()

	body := `{"email":"sync@example.com","username":"sync","password":"secret66","confirmPassword":"secret66"}`
	resp, err := http.Post(baseURL+"/api/user/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Code   int  `json:"code"`
		Status bool `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Equal(t, 0, envelope.Code)
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

func TestEngineSyncsThroughAPI(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL)

	client := httpstore.NewClient(httpstore.Config{BaseURL: srv.URL})
	eng := engine.New(client,
		engine.WithCredentialProvider(func() string { return token }),
		engine.WithDebounceInterval(500*time.Millisecond),
	)
	defer eng.Shutdown(context.Background())

	require.NoError(t, eng.Load(context.Background()))
	assert.Equal(t, 0, eng.Len())

	// 创建两条笔记并等待异步持久化完成
	title := "plan"
	n1 := eng.Create(board.NoteFields{Title: &title})
	n2 := eng.Create(board.NoteFields{})
	eng.Wait()

	remote, err := client.FetchAll(context.Background(), token)
	require.NoError(t, err)
	require.Len(t, remote, 2)

	// 拖动后的去抖更新最终落盘
	x, y := 320.0, 240.0
	eng.Update(n1.ID, board.NoteFields{X: &x, Y: &y})
	require.True(t, eng.PendingUpdate(n1.ID))
	eng.FlushPending(n1.ID)
	eng.Wait()

	remote, err = client.FetchAll(context.Background(), token)
	require.NoError(t, err)
	byID := map[string]*board.Note{}
	for _, n := range remote {
		byID[n.ID] = n
	}
	require.Contains(t, byID, n1.ID)
	assert.Equal(t, 320.0, byID[n1.ID].X)
	assert.Equal(t, 240.0, byID[n1.ID].Y)

	// 删除一条，远端同步移除
	eng.Delete(n2.ID)
	eng.Wait()

	remote, err = client.FetchAll(context.Background(), token)
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, n1.ID, remote[0].ID)

	// 新引擎重新加载，状态从远端恢复
	eng2 := engine.New(client, engine.WithCredentialProvider(func() string { return token }))
	defer eng2.Shutdown(context.Background())
	require.NoError(t, eng2.Load(context.Background()))
	require.Equal(t, 1, eng2.Len())
	got, ok := eng2.Get(n1.ID)
	require.True(t, ok)
	assert.Equal(t, "plan", got.Title)
	assert.Equal(t, 320.0, got.X)
}

func TestViewportPersistsThroughAPI(t *testing.T) {
	srv := newTestServer(t)
	token := registerUser(t, srv.URL)

	vs := httpstore.NewViewportStore(httpstore.NewClient(httpstore.Config{BaseURL: srv.URL}), token)

	vp := board.NewViewport(vs, nil)
	require.Equal(t, geometry.DefaultViewport(), vp.State())

	// 缩放与平移后的状态写入远端
	vp.Zoom(geometry.MaxScale*2, geometry.Point{X: 400, Y: 300})
	assert.Equal(t, geometry.MaxScale, vp.State().Scale)

	restored := board.NewViewport(vs, nil)
	assert.Equal(t, vp.State(), restored.State())
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/notes")
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Code   int  `json:"code"`
		Status bool `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.NotZero(t, envelope.Code)
	assert.False(t, envelope.Status)
}
