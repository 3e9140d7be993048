package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(c *Collection) []string {
	out := make([]string, 0, c.Len())
	for _, n := range c.Notes() {
		out = append(out, n.ID)
	}
	return out
}

func newTestCollection(noteIDs ...string) *Collection {
	c := NewCollection()
	for _, id := range noteIDs {
		c.Add(NewNote(id, NoteFields{}))
	}
	return c
}

func TestBringToFront(t *testing.T) {
	c := newTestCollection("a", "b", "c", "d")

	assert.True(t, c.BringToFront("b"))

	// 其余笔记相对顺序不变
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(c))
}

func TestBringToFrontIdempotent(t *testing.T) {
	c := newTestCollection("a", "b", "c")

	c.BringToFront("a")
	first := ids(c)
	c.BringToFront("a")

	assert.Equal(t, first, ids(c))
}

func TestBringToFrontMissingIsNoop(t *testing.T) {
	c := newTestCollection("a", "b")

	assert.False(t, c.BringToFront("zzz"))
	assert.Equal(t, []string{"a", "b"}, ids(c))
}

func TestRemoveReturnsIndex(t *testing.T) {
	c := newTestCollection("a", "b", "c")

	n, i, ok := c.Remove("b")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "b", n.ID)
	assert.Equal(t, []string{"a", "c"}, ids(c))

	_, _, ok = c.Remove("b")
	assert.False(t, ok)
}

func TestInsertAtRestoresPosition(t *testing.T) {
	c := newTestCollection("a", "b", "c")

	n, i, _ := c.Remove("b")
	c.InsertAt(i, n)
	assert.Equal(t, []string{"a", "b", "c"}, ids(c))

	// 越界位置退化为追加
	n, _, _ = c.Remove("a")
	c.InsertAt(99, n)
	assert.Equal(t, []string{"b", "c", "a"}, ids(c))
}

func TestNewNoteDefaults(t *testing.T) {
	x, y := 50.0, 50.0
	n := NewNote("n1", NoteFields{X: &x, Y: &y})

	assert.Equal(t, 240.0, n.Width)
	assert.Equal(t, 180.0, n.Height)
	assert.Equal(t, ColorYellow, n.Color)
	assert.Equal(t, 50.0, n.X)
	assert.Equal(t, "", n.Title)
	assert.Equal(t, n.Ctime, n.Mtime)
}

func TestNewNoteInvalidColorFallsBack(t *testing.T) {
	bad := "magenta"
	n := NewNote("n1", NoteFields{Color: &bad})
	assert.Equal(t, ColorYellow, n.Color)
}

func TestApplyClampsSize(t *testing.T) {
	n := NewNote("n1", NoteFields{})

	w, h := 10.0, -500.0
	n.Apply(NoteFields{Width: &w, Height: &h})

	assert.Equal(t, MinNoteWidth, n.Width)
	assert.Equal(t, MinNoteHeight, n.Height)
}
