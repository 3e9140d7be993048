package api_router

import (
	"github.com/haierkeys/note-board-sync-service/internal/app"
	"github.com/haierkeys/note-board-sync-service/internal/dto"
	pkgapp "github.com/haierkeys/note-board-sync-service/pkg/app"
	"github.com/haierkeys/note-board-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingHandler 用户配置 API 路由处理器
type SettingHandler struct {
	*Handler
}

// NewSettingHandler 创建 SettingHandler 实例
func NewSettingHandler(a *app.App) *SettingHandler {
	return &SettingHandler{Handler: NewHandler(a)}
}

// ViewportGet 获取保存的视口状态
// 未保存过返回空 data，客户端使用默认视口
func (h *SettingHandler) ViewportGet(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	vp, err := h.App.SettingService.ViewportGet(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	if vp == nil {
		response.ToResponse(code.Success)
		return
	}
	response.ToResponse(code.Success.WithData(vp))
}

// ViewportSave 保存视口状态
func (h *SettingHandler) ViewportSave(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ViewportDTO{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("SettingHandler.ViewportSave.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.SettingService.ViewportSave(c.Request.Context(), uid, params); err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success)
}
