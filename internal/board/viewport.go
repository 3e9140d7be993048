package board

import (
	"go.uber.org/zap"

	"github.com/haierkeys/note-board-sync-service/pkg/geometry"
	"github.com/haierkeys/note-board-sync-service/pkg/logger"
)

// 每个离散滚轮事件的缩放步进
const (
	ZoomInStep  = 1.1
	ZoomOutStep = 0.9
)

// PointerButton 指针按键
type PointerButton int

const (
	ButtonPrimary PointerButton = iota
	ButtonSecondary
)

// ViewportStore 视口状态的持久化存储
// 读取失败时调用方回退到默认视口，写入失败可以忽略（视口不是关键数据）
type ViewportStore interface {
	LoadViewport() (geometry.Viewport, error)
	SaveViewport(vp geometry.Viewport) error
}

// Viewport 视口控制器：持有平移/缩放状态并处理指针、滚轮与平移键输入
// 所有输入在单一事件线程上处理，不加锁
type Viewport struct {
	state   geometry.Viewport
	panning bool
	panKey  bool
	last    geometry.Point

	store  ViewportStore
	logger *zap.Logger
}

// NewViewport 创建视口控制器并从存储恢复上次状态
// store 为 nil 或读取失败时使用默认视口 {0,0,1}
func NewViewport(store ViewportStore, lg *zap.Logger) *Viewport {
	if lg == nil {
		lg = zap.NewNop()
	}

	v := &Viewport{
		state:  geometry.DefaultViewport(),
		store:  store,
		logger: lg,
	}

	if store != nil {
		vp, err := store.LoadViewport()
		if err != nil {
			lg.Debug("viewport restore failed, using default", zap.Error(err))
		} else if vp.Scale >= geometry.MinScale && vp.Scale <= geometry.MaxScale {
			v.state = vp
		}
	}
	return v
}

// State 返回当前视口状态
func (v *Viewport) State() geometry.Viewport {
	return v.state
}

// Panning 返回是否处于平移中
func (v *Viewport) Panning() bool {
	return v.panning
}

// HandleWheel 处理一次离散滚轮事件，以指针位置为轴心缩放
// deltaY < 0 放大一档，否则缩小一档
func (v *Viewport) HandleWheel(deltaY float64, pointer geometry.Point) {
	step := ZoomOutStep
	if deltaY < 0 {
		step = ZoomInStep
	}
	v.Zoom(step, pointer)
}

// Zoom 以 pivot 为轴心按乘法步进缩放，缩放系数钳制到 [0.25, 2.0]
// 偏移量始终用钳制后的缩放值重算，避免二次调整
func (v *Viewport) Zoom(step float64, pivot geometry.Point) {
	oldScale := v.state.Scale
	newScale := geometry.ClampScale(oldScale * step)

	offset := geometry.ZoomAroundPoint(oldScale, newScale,
		pivot, geometry.Point{X: v.state.OffsetX, Y: v.state.OffsetY})

	v.state = geometry.Viewport{OffsetX: offset.X, OffsetY: offset.Y, Scale: newScale}
	v.persist()
}

// SetPanKey 设置平移键按下状态
// 松开平移键会强制结束进行中的平移，即使指针按键仍按下
func (v *Viewport) SetPanKey(held bool) {
	v.panKey = held
	if !held && v.panning {
		v.panning = false
	}
}

// PointerDown 指针按下：按住平移键或使用副键时进入平移
func (v *Viewport) PointerDown(button PointerButton, pointer geometry.Point) {
	if v.panKey || button == ButtonSecondary {
		v.panning = true
		v.last = pointer
	}
}

// PointerMove 指针移动：平移中把原始屏幕位移直接累加到偏移量
// 平移移动的是屏幕窗口而非世界内容，不做缩放换算
func (v *Viewport) PointerMove(pointer geometry.Point) {
	if !v.panning {
		return
	}
	v.state.OffsetX += pointer.X - v.last.X
	v.state.OffsetY += pointer.Y - v.last.Y
	v.last = pointer
	v.persist()
}

// PointerUp 指针抬起，结束平移
func (v *Viewport) PointerUp() {
	v.panning = false
}

// PointerLeave 指针离开画板表面，结束平移
func (v *Viewport) PointerLeave() {
	v.panning = false
}

// Reset 无条件恢复默认视口 {0,0,1}
func (v *Viewport) Reset() {
	v.state = geometry.DefaultViewport()
	v.persist()
}

// persist 将视口状态写入存储，失败仅记录日志
func (v *Viewport) persist() {
	if v.store == nil {
		return
	}
	if err := v.store.SaveViewport(v.state); err != nil {
		v.logger.Debug("viewport persist failed",
			zap.String(logger.FieldAction, "viewport.save"), zap.Error(err))
	}
}
