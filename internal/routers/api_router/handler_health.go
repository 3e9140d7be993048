package api_router

import (
	"time"

	"github.com/haierkeys/note-board-sync-service/internal/app"
	pkgapp "github.com/haierkeys/note-board-sync-service/pkg/app"
	"github.com/haierkeys/note-board-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查路由处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建 HealthHandler 实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     int64  `json:"time"`
}

// Health 健康检查
// 数据库不可达时整体状态降级但仍返回 200
func (h *HealthHandler) Health(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	status := healthStatus{
		Status:   "ok",
		Database: "ok",
		Time:     time.Now().UnixMilli(),
	}

	sqlDB, err := h.App.DB.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
	}

	response.ToResponse(code.Success.WithData(status))
}

// Version 返回服务端版本信息
func (h *HealthHandler) Version(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	response.ToResponse(code.Success.WithData(h.App.Version()))
}
