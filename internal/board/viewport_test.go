package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haierkeys/note-board-sync-service/pkg/geometry"
)

// memViewportStore 内存视口存储，可注入读写错误
type memViewportStore struct {
	vp      geometry.Viewport
	saved   int
	loadErr error
	saveErr error
}

func (s *memViewportStore) LoadViewport() (geometry.Viewport, error) {
	return s.vp, s.loadErr
}

func (s *memViewportStore) SaveViewport(vp geometry.Viewport) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.vp = vp
	s.saved++
	return nil
}

func TestViewportRestoreFromStore(t *testing.T) {
	st := &memViewportStore{vp: geometry.Viewport{OffsetX: 10, OffsetY: 20, Scale: 1.5}}
	v := NewViewport(st, nil)
	assert.Equal(t, st.vp, v.State())
}

func TestViewportRestoreFailureYieldsDefault(t *testing.T) {
	st := &memViewportStore{loadErr: errors.New("corrupt record")}
	v := NewViewport(st, nil)
	assert.Equal(t, geometry.DefaultViewport(), v.State())
}

func TestViewportRestoreRejectsOutOfRangeScale(t *testing.T) {
	st := &memViewportStore{vp: geometry.Viewport{Scale: 99}}
	v := NewViewport(st, nil)
	assert.Equal(t, geometry.DefaultViewport(), v.State())
}

func TestZoomScenario(t *testing.T) {
	v := NewViewport(nil, nil)

	// 视口 {0,0,1}，指针 (400,300) 处放大
	v.HandleWheel(-1, geometry.Point{X: 400, Y: 300})

	st := v.State()
	assert.InDelta(t, 1.1, st.Scale, 1e-9)
	assert.InDelta(t, -40, st.OffsetX, 1e-9)
	assert.InDelta(t, -30, st.OffsetY, 1e-9)

	v.Reset()
	assert.Equal(t, geometry.DefaultViewport(), v.State())
}

func TestZoomScaleAlwaysWithinBounds(t *testing.T) {
	v := NewViewport(nil, nil)
	pivot := geometry.Point{X: 100, Y: 100}

	for i := 0; i < 50; i++ {
		v.HandleWheel(-1, pivot)
		assert.LessOrEqual(t, v.State().Scale, geometry.MaxScale)
	}
	assert.InDelta(t, geometry.MaxScale, v.State().Scale, 1e-9)

	for i := 0; i < 100; i++ {
		v.HandleWheel(1, pivot)
		assert.GreaterOrEqual(t, v.State().Scale, geometry.MinScale)
	}
	assert.InDelta(t, geometry.MinScale, v.State().Scale, 1e-9)
}

func TestZoomKeepsPivotWorldPointAtClampBoundary(t *testing.T) {
	v := NewViewport(nil, nil)
	pivot := geometry.Point{X: 400, Y: 300}

	// 推到上界后继续放大：缩放不变，轴心下的世界点也不变
	for i := 0; i < 20; i++ {
		v.HandleWheel(-1, pivot)
	}
	before := geometry.ScreenToWorld(pivot, v.State())
	v.HandleWheel(-1, pivot)
	after := geometry.ScreenToWorld(pivot, v.State())

	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestPanAddsRawScreenDelta(t *testing.T) {
	v := NewViewport(nil, nil)
	v.Zoom(ZoomOutStep, geometry.Point{})
	scale := v.State().Scale

	v.SetPanKey(true)
	v.PointerDown(ButtonPrimary, geometry.Point{X: 100, Y: 100})
	assert.True(t, v.Panning())

	v.PointerMove(geometry.Point{X: 130, Y: 90})
	v.PointerMove(geometry.Point{X: 150, Y: 80})
	v.PointerUp()

	st := v.State()
	// 平移不随缩放换算，直接累加屏幕位移
	assert.InDelta(t, 50, st.OffsetX-0, 1e-9)
	assert.InDelta(t, -20, st.OffsetY-0, 1e-9)
	assert.Equal(t, scale, st.Scale)
	assert.False(t, v.Panning())
}

func TestPanWithSecondaryButton(t *testing.T) {
	v := NewViewport(nil, nil)

	v.PointerDown(ButtonSecondary, geometry.Point{X: 0, Y: 0})
	assert.True(t, v.Panning())

	v.PointerLeave()
	assert.False(t, v.Panning())
}

func TestPrimaryButtonWithoutPanKeyDoesNotPan(t *testing.T) {
	v := NewViewport(nil, nil)

	v.PointerDown(ButtonPrimary, geometry.Point{X: 0, Y: 0})
	assert.False(t, v.Panning())

	v.PointerMove(geometry.Point{X: 50, Y: 50})
	assert.Equal(t, geometry.DefaultViewport(), v.State())
}

func TestPanKeyReleaseForceEndsPan(t *testing.T) {
	v := NewViewport(nil, nil)

	v.SetPanKey(true)
	v.PointerDown(ButtonPrimary, geometry.Point{X: 10, Y: 10})
	assert.True(t, v.Panning())

	// 指针仍按下，松开平移键也要强制结束
	v.SetPanKey(false)
	assert.False(t, v.Panning())

	v.PointerMove(geometry.Point{X: 60, Y: 60})
	assert.Equal(t, geometry.DefaultViewport(), v.State())
}

func TestViewportPersistedOnChange(t *testing.T) {
	st := &memViewportStore{vp: geometry.DefaultViewport()}
	v := NewViewport(st, nil)

	v.HandleWheel(-1, geometry.Point{X: 10, Y: 10})
	assert.Equal(t, 1, st.saved)
	assert.Equal(t, v.State(), st.vp)

	v.Reset()
	assert.Equal(t, 2, st.saved)
}

func TestViewportPersistFailureIgnored(t *testing.T) {
	st := &memViewportStore{saveErr: errors.New("disk gone")}
	v := NewViewport(st, nil)

	// 写入失败不影响内存状态
	v.HandleWheel(-1, geometry.Point{})
	assert.InDelta(t, 1.1, v.State().Scale, 1e-9)
}
