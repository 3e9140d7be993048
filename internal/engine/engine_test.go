package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haierkeys/note-board-sync-service/internal/board"
)

// fakeStore 记录持久化调用并可按操作注入失败
type fakeStore struct {
	mu sync.Mutex

	notes []*board.Note

	createErr error
	updateErr error
	deleteErr error

	createCalls int
	updateCalls int
	deleteCalls int

	lastUpdateID     string
	lastUpdateFields board.NoteFields
	credentials      []string
}

func (s *fakeStore) FetchAll(ctx context.Context, credential string) ([]*board.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = append(s.credentials, credential)
	if credential == "" {
		return nil, nil
	}
	return s.notes, nil
}

func (s *fakeStore) Create(ctx context.Context, credential string, note *board.Note) (*board.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	s.credentials = append(s.credentials, credential)
	if s.createErr != nil {
		return nil, s.createErr
	}
	return note.Clone(), nil
}

func (s *fakeStore) Update(ctx context.Context, credential string, id string, fields board.NoteFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	s.lastUpdateID = id
	s.lastUpdateFields = fields
	return s.updateErr
}

func (s *fakeStore) Delete(ctx context.Context, credential string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	return s.deleteErr
}

func (s *fakeStore) updates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCalls
}

func newTestEngine(st *fakeStore) *Engine {
	return New(st,
		WithCredentialProvider(func() string { return "test-token" }),
		WithDebounceInterval(20*time.Millisecond))
}

func TestCreateAppliesImmediately(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	x, y := 50.0, 50.0
	n := e.Create(board.NoteFields{X: &x, Y: &y})

	// 返回值即已进入集合的笔记，UI 可当作创建已成功
	require.NotNil(t, n)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, 240.0, n.Width)
	assert.Equal(t, 180.0, n.Height)
	assert.Equal(t, board.ColorYellow, n.Color)
	assert.Equal(t, 1, e.Len())

	e.Wait()
	assert.Equal(t, 1, st.createCalls)
	assert.Equal(t, 1, e.Len())
}

func TestCreateFailureRollsBack(t *testing.T) {
	st := &fakeStore{createErr: errors.New("network down")}
	e := newTestEngine(st)

	before := e.Len()
	n := e.Create(board.NoteFields{})
	assert.Equal(t, before+1, e.Len())

	e.Wait()

	// 回滚后集合长度恢复到创建前
	assert.Equal(t, before, e.Len())
	_, ok := e.Get(n.ID)
	assert.False(t, ok)
}

func TestDeleteFailureRestoresIdentical(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	title := "keep me"
	blue := board.ColorBlue
	e.Create(board.NoteFields{})
	n := e.Create(board.NoteFields{Title: &title, Color: &blue})
	e.Create(board.NoteFields{})
	e.Wait()

	captured, _ := e.Get(n.ID)
	index := 1

	st.deleteErr = errors.New("network down")
	e.Delete(n.ID)
	assert.Equal(t, 2, e.Len())

	e.Wait()

	// 恢复后字段值与删除前完全一致，且回到原相对位置
	restored, ok := e.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, captured, restored)
	assert.Equal(t, 3, e.Len())

	for i, note := range e.Notes() {
		if note.ID == n.ID {
			assert.Equal(t, index, i)
		}
	}
}

func TestDeleteSuccess(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	n := e.Create(board.NoteFields{})
	e.Wait()

	e.Delete(n.ID)
	e.Wait()

	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 1, st.deleteCalls)
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	e.Delete("ghost")
	e.Wait()
	assert.Equal(t, 0, st.deleteCalls)
}

func TestUpdateAppliesImmediately(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	n := e.Create(board.NoteFields{})
	e.Wait()
	before := n.Mtime

	title := "hello"
	e.Update(n.ID, board.NoteFields{Title: &title})

	got, _ := e.Get(n.ID)
	assert.Equal(t, "hello", got.Title)
	assert.GreaterOrEqual(t, got.Mtime, before)
}

func TestRapidUpdatesCoalesceToOneCall(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	n := e.Create(board.NoteFields{})
	e.Wait()

	// 去抖窗口内三次快速更新
	for i := 1; i <= 3; i++ {
		title := fmt.Sprintf("draft %d", i)
		e.Update(n.ID, board.NoteFields{Title: &title})
	}

	assert.True(t, e.PendingUpdate(n.ID))
	assert.True(t, e.FlushPending(n.ID))

	// 恰好一次持久化调用，携带最后一次的值
	assert.Equal(t, 1, st.updates())
	assert.Equal(t, n.ID, st.lastUpdateID)
	require.NotNil(t, st.lastUpdateFields.Title)
	assert.Equal(t, "draft 3", *st.lastUpdateFields.Title)
}

func TestDebouncedUpdateFiresAfterQuietInterval(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	n := e.Create(board.NoteFields{})
	e.Wait()

	title := "typed"
	e.Update(n.ID, board.NoteFields{Title: &title})

	assert.Eventually(t, func() bool { return st.updates() == 1 },
		time.Second, 5*time.Millisecond)
	assert.False(t, e.PendingUpdate(n.ID))
}

func TestUpdateFailureKeepsLocalState(t *testing.T) {
	st := &fakeStore{updateErr: errors.New("network down")}
	e := newTestEngine(st)

	n := e.Create(board.NoteFields{})
	e.Wait()

	title := "still here"
	e.Update(n.ID, board.NoteFields{Title: &title})
	e.FlushPending(n.ID)

	// 更新失败不回滚，进行中的编辑不被打断
	got, _ := e.Get(n.ID)
	assert.Equal(t, "still here", got.Title)
}

func TestDeleteCancelsPendingUpdate(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	n := e.Create(board.NoteFields{})
	e.Wait()

	title := "never sent"
	e.Update(n.ID, board.NoteFields{Title: &title})
	assert.True(t, e.PendingUpdate(n.ID))

	e.Delete(n.ID)
	assert.False(t, e.PendingUpdate(n.ID))

	e.Wait()
	time.Sleep(60 * time.Millisecond)

	// 挂起的过期持久化请求永远不会发出
	assert.Equal(t, 0, st.updates())
	assert.Equal(t, 1, st.deleteCalls)
}

func TestUpdateUnknownNoteIsNoop(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	title := "nobody"
	e.Update("ghost", board.NoteFields{Title: &title})
	assert.False(t, e.PendingUpdate("ghost"))
}

func TestLoadWithoutCredentialYieldsEmptyBoard(t *testing.T) {
	st := &fakeStore{notes: []*board.Note{board.NewNote("n1", board.NoteFields{})}}
	e := New(st) // 默认无凭据

	require.NoError(t, e.Load(context.Background()))
	assert.Equal(t, 0, e.Len())
}

func TestLoadReplacesCollection(t *testing.T) {
	st := &fakeStore{notes: []*board.Note{
		board.NewNote("n1", board.NoteFields{}),
		board.NewNote("n2", board.NoteFields{}),
	}}
	e := newTestEngine(st)

	require.NoError(t, e.Load(context.Background()))
	assert.Equal(t, 2, e.Len())
}

func TestBringToFrontIsLocalOnly(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	a := e.Create(board.NoteFields{})
	b := e.Create(board.NoteFields{})
	e.Wait()
	created := st.createCalls

	e.BringToFront(a.ID)

	notes := e.Notes()
	assert.Equal(t, b.ID, notes[0].ID)
	assert.Equal(t, a.ID, notes[1].ID)

	// 层叠序不触发任何持久化调用
	e.Wait()
	assert.Equal(t, created, st.createCalls)
	assert.Equal(t, 0, st.updates())
}

func TestConcurrentMutationsOnDistinctNotes(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n := e.Create(board.NoteFields{})
			title := fmt.Sprintf("worker %d", i)
			e.Update(n.ID, board.NoteFields{Title: &title})
			if i%2 == 0 {
				e.Delete(n.ID)
			}
		}(i)
	}
	wg.Wait()
	e.Wait()

	assert.Equal(t, 8, e.Len())
}

func TestShutdownFlushesPendingUpdates(t *testing.T) {
	st := &fakeStore{}
	e := New(st, WithDebounceInterval(time.Hour),
		WithCredentialProvider(func() string { return "t" }))

	n := e.Create(board.NoteFields{})
	e.Wait()

	title := "flushed on shutdown"
	e.Update(n.ID, board.NoteFields{Title: &title})

	require.NoError(t, e.Shutdown(context.Background()))
	assert.Equal(t, 1, st.updates())
}
