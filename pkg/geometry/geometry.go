// Package geometry provides pure coordinate transforms for the infinite board
// Package geometry 提供无限画板的纯坐标变换函数
// Screen coordinates are pixels on the rendering surface; world coordinates
// are the fixed space in which notes keep stable positions.
// 屏幕坐标为渲染表面上的像素；世界坐标为笔记位置所在的固定坐标系。
package geometry

// Zoom factor bounds
// 缩放系数边界
const (
	MinScale = 0.25
	MaxScale = 2.0
)

// Point a 2D point, in screen or world coordinates depending on context
// Point 二维坐标点，依据上下文表示屏幕或世界坐标
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size a 2D extent in world units
// Size 以世界单位表示的宽高
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport the visible window onto the board
// Viewport 画板的可见窗口
// OffsetX/OffsetY is the screen-pixel translation of the world origin,
// Scale is the zoom factor.
// OffsetX/OffsetY 为世界原点在屏幕像素下的平移量，Scale 为缩放系数。
type Viewport struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Scale   float64 `json:"scale"`
}

// DefaultViewport returns the initial viewport {0, 0, 1}
// DefaultViewport 返回初始视口 {0, 0, 1}
func DefaultViewport() Viewport {
	return Viewport{OffsetX: 0, OffsetY: 0, Scale: 1.0}
}

// ScreenToWorld converts a screen point to world coordinates under vp
// ScreenToWorld 将屏幕坐标点换算为 vp 下的世界坐标
func ScreenToWorld(screen Point, vp Viewport) Point {
	return Point{
		X: (screen.X - vp.OffsetX) / vp.Scale,
		Y: (screen.Y - vp.OffsetY) / vp.Scale,
	}
}

// WorldToScreen converts a world point back to screen coordinates under vp
// WorldToScreen 将世界坐标点换算回 vp 下的屏幕坐标
func WorldToScreen(world Point, vp Viewport) Point {
	return Point{
		X: world.X*vp.Scale + vp.OffsetX,
		Y: world.Y*vp.Scale + vp.OffsetY,
	}
}

// WorldDelta converts a screen-space displacement to world units at scale,
// so dragging feels identical at any zoom level
// WorldDelta 将屏幕位移换算为 scale 下的世界位移，保证任意缩放级别下拖拽手感一致
func WorldDelta(screenDelta Point, scale float64) Point {
	return Point{
		X: screenDelta.X / scale,
		Y: screenDelta.Y / scale,
	}
}

// ZoomAroundPoint computes the offset that keeps the world point under
// pivot (a screen point) stationary while scale changes from oldScale to
// newScale
// ZoomAroundPoint 计算新的偏移量，使缩放由 oldScale 变为 newScale 时
// pivot（屏幕坐标）下方的世界点保持不动
func ZoomAroundPoint(oldScale float64, newScale float64, pivot Point, oldOffset Point) Point {
	ratio := (newScale - oldScale) / oldScale
	return Point{
		X: oldOffset.X - (pivot.X-oldOffset.X)*ratio,
		Y: oldOffset.Y - (pivot.Y-oldOffset.Y)*ratio,
	}
}

// ClampScale clamps a zoom factor to [MinScale, MaxScale]
// ClampScale 将缩放系数钳制到 [MinScale, MaxScale]
func ClampScale(scale float64) float64 {
	if scale < MinScale {
		return MinScale
	}
	if scale > MaxScale {
		return MaxScale
	}
	return scale
}
