package api_router

import (
	"errors"

	"github.com/haierkeys/note-board-sync-service/internal/app"
	"github.com/haierkeys/note-board-sync-service/internal/dto"
	pkgapp "github.com/haierkeys/note-board-sync-service/pkg/app"
	"github.com/haierkeys/note-board-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NoteHandler 笔记 API 路由处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// List 获取当前用户的全部笔记
// 按创建时间升序返回，客户端以此顺序作为初始层叠序
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	list, err := h.App.NoteService.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.NoteListResponse{
		List:  list,
		Total: len(list),
	}))
}

// Create 创建笔记
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	note, err := h.App.NoteService.Create(c.Request.Context(), uid, params)
	if err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Update 部分更新笔记
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	noteID := c.Param("id")
	if noteID == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("missing note id"))
		return
	}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.NoteService.Update(c.Request.Context(), uid, noteID, params); err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Delete 删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	noteID := c.Param("id")
	if noteID == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("missing note id"))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	if err := h.App.NoteService.Delete(c.Request.Context(), uid, noteID); err != nil {
		respondError(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// respondError 将服务层错误转换为统一响应
// 服务层约定返回 *code.Code，其他错误归为内部错误
func respondError(c *gin.Context, err error) {
	response := pkgapp.NewResponse(c)

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		response.ToResponse(codeErr)
		return
	}
	response.ToResponse(code.ErrorServerInternal)
}
