package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScreenToWorldRoundTrip(t *testing.T) {
	vp := Viewport{OffsetX: 120, OffsetY: -40, Scale: 1.5}

	world := ScreenToWorld(Point{X: 400, Y: 300}, vp)
	screen := WorldToScreen(world, vp)

	assert.InDelta(t, 400, screen.X, 1e-9)
	assert.InDelta(t, 300, screen.Y, 1e-9)
}

func TestScreenToWorldIdentityViewport(t *testing.T) {
	// 单位视口下屏幕坐标即世界坐标
	world := ScreenToWorld(Point{X: 50, Y: 50}, DefaultViewport())
	assert.Equal(t, Point{X: 50, Y: 50}, world)
}

func TestWorldDelta(t *testing.T) {
	d := WorldDelta(Point{X: 30, Y: -12}, 2.0)
	assert.Equal(t, Point{X: 15, Y: -6}, d)

	// 缩小时位移被放大
	d = WorldDelta(Point{X: 10, Y: 10}, 0.25)
	assert.Equal(t, Point{X: 40, Y: 40}, d)
}

func TestZoomAroundPointKeepsPivotStationary(t *testing.T) {
	pivot := Point{X: 400, Y: 300}
	vp := Viewport{OffsetX: 37, OffsetY: -81, Scale: 0.8}

	before := ScreenToWorld(pivot, vp)

	for _, newScale := range []float64{0.25, 0.5, 1.0, 1.1, 2.0} {
		offset := ZoomAroundPoint(vp.Scale, newScale, pivot, Point{X: vp.OffsetX, Y: vp.OffsetY})
		next := Viewport{OffsetX: offset.X, OffsetY: offset.Y, Scale: newScale}
		after := ScreenToWorld(pivot, next)

		assert.InDelta(t, before.X, after.X, 1e-9, "scale %v", newScale)
		assert.InDelta(t, before.Y, after.Y, 1e-9, "scale %v", newScale)
	}
}

func TestZoomAroundPointScenario(t *testing.T) {
	// 视口 {0,0,1}，指针 (400,300) 处放大一档 ×1.1
	offset := ZoomAroundPoint(1.0, 1.1, Point{X: 400, Y: 300}, Point{})
	assert.InDelta(t, -40, offset.X, 1e-9)
	assert.InDelta(t, -30, offset.Y, 1e-9)
}

func TestClampScale(t *testing.T) {
	assert.Equal(t, MinScale, ClampScale(0.01))
	assert.Equal(t, MaxScale, ClampScale(9.0))
	assert.Equal(t, 1.3, ClampScale(1.3))
}
