package board

// Collection 有序笔记集合，顺序即层叠序（越靠后渲染越靠上）
// 不存储独立的 z-index 字段；集合自身不加锁，由持有方串行化访问
type Collection struct {
	notes []*Note
}

// NewCollection 创建空集合
func NewCollection() *Collection {
	return &Collection{}
}

// Len 返回笔记数量
func (c *Collection) Len() int {
	return len(c.notes)
}

// Notes 按层叠序返回内部笔记切片的副本
func (c *Collection) Notes() []*Note {
	out := make([]*Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Get 按 ID 查找笔记
func (c *Collection) Get(id string) (*Note, bool) {
	for _, n := range c.notes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// IndexOf 返回笔记所在位置，不存在时返回 -1
func (c *Collection) IndexOf(id string) int {
	for i, n := range c.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Add 追加一条笔记到顶层
func (c *Collection) Add(n *Note) {
	c.notes = append(c.notes, n)
}

// InsertAt 在指定位置插入笔记，i 越界时追加到末尾
func (c *Collection) InsertAt(i int, n *Note) {
	if i < 0 || i >= len(c.notes) {
		c.notes = append(c.notes, n)
		return
	}
	c.notes = append(c.notes, nil)
	copy(c.notes[i+1:], c.notes[i:])
	c.notes[i] = n
}

// Remove 删除笔记并返回被删笔记及其原位置
func (c *Collection) Remove(id string) (*Note, int, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return nil, -1, false
	}
	n := c.notes[i]
	c.notes = append(c.notes[:i], c.notes[i+1:]...)
	return n, i, true
}

// BringToFront 将笔记移到末尾（顶层），其余笔记相对顺序不变
// id 不存在时为空操作
func (c *Collection) BringToFront(id string) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	if i == len(c.notes)-1 {
		return true
	}
	n := c.notes[i]
	c.notes = append(c.notes[:i], c.notes[i+1:]...)
	c.notes = append(c.notes, n)
	return true
}

// Replace 用给定切片整体替换集合内容
func (c *Collection) Replace(notes []*Note) {
	c.notes = make([]*Note, len(notes))
	copy(c.notes, notes)
}
