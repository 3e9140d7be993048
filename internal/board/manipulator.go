package board

import (
	"github.com/haierkeys/note-board-sync-service/pkg/geometry"
)

// ClickThreshold 判定点击与拖拽的位移阈值（屏幕像素）
// 位移从未超过阈值的交互按「选中」处理；一旦超过即视为拖拽，
// 之后即使指针回到起点也不再是选中
const ClickThreshold = 3.0

// Mode 笔记交互模式
type Mode int

const (
	// ModeDrag 按住笔记主体拖动位置
	ModeDrag Mode = iota
	// ModeResize 按住右下角手柄调整尺寸
	ModeResize
)

// Mutator 笔记变更的窄接口，由同步引擎实现
type Mutator interface {
	Get(id string) (*Note, bool)
	Update(id string, fields NoteFields)
	BringToFront(id string)
}

// interaction 一次进行中的拖拽或调整交互
type interaction struct {
	noteID  string
	mode    Mode
	start   geometry.Point // 起始指针屏幕坐标
	startX  float64
	startY  float64
	startW  float64
	startH  float64
	moved   bool
}

// Manipulator 单笔记交互控制器：拖拽、调整尺寸与选中判定
// Move/End 在文档层面捕获，指针离开笔记范围后交互仍然有效
type Manipulator struct {
	mutator  Mutator
	viewport *Viewport
	onSelect func(id string)

	active *interaction
}

// NewManipulator 创建交互控制器
// onSelect 在一次未构成拖拽的交互结束时回调，可以为 nil
func NewManipulator(m Mutator, vp *Viewport, onSelect func(id string)) *Manipulator {
	return &Manipulator{
		mutator:  m,
		viewport: vp,
		onSelect: onSelect,
	}
}

// Active 返回是否存在进行中的交互
func (m *Manipulator) Active() bool {
	return m.active != nil
}

// Begin 在指针按下时开始一次交互
// 记录起始指针位置与笔记起始几何，并把笔记移到顶层
// 笔记不存在时返回 false
func (m *Manipulator) Begin(id string, mode Mode, pointer geometry.Point) bool {
	note, ok := m.mutator.Get(id)
	if !ok {
		return false
	}

	m.mutator.BringToFront(id)

	m.active = &interaction{
		noteID: id,
		mode:   mode,
		start:  pointer,
		startX: note.X,
		startY: note.Y,
		startW: note.Width,
		startH: note.Height,
	}
	return true
}

// Move 处理交互中的指针移动
// 位移按起点以来的累计屏幕位移换算为世界位移后作用到起始几何上
func (m *Manipulator) Move(pointer geometry.Point) {
	if m.active == nil {
		return
	}
	a := m.active

	screenDelta := geometry.Point{X: pointer.X - a.start.X, Y: pointer.Y - a.start.Y}
	if !a.moved {
		if screenDelta.X > -ClickThreshold && screenDelta.X < ClickThreshold &&
			screenDelta.Y > -ClickThreshold && screenDelta.Y < ClickThreshold {
			return
		}
		a.moved = true
	}

	delta := geometry.WorldDelta(screenDelta, m.viewport.State().Scale)

	switch a.mode {
	case ModeDrag:
		x := a.startX + delta.X
		y := a.startY + delta.Y
		m.mutator.Update(a.noteID, NoteFields{X: &x, Y: &y})
	case ModeResize:
		w := max(MinNoteWidth, a.startW+delta.X)
		h := max(MinNoteHeight, a.startH+delta.Y)
		m.mutator.Update(a.noteID, NoteFields{Width: &w, Height: &h})
	}
}

// End 在指针抬起时结束交互
// 从未越过位移阈值的交互触发选中回调；拖回起点的交互不算选中
func (m *Manipulator) End() {
	if m.active == nil {
		return
	}
	a := m.active
	m.active = nil

	if !a.moved && m.onSelect != nil {
		m.onSelect(a.noteID)
	}
}

// Cancel 放弃进行中的交互，不触发选中
func (m *Manipulator) Cancel() {
	m.active = nil
}
