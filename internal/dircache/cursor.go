package dircache

import "io"

// Cursor 是单个调用方在一份快照上的迭代状态。Cursor 归属单一持有者，
// 不做内部加锁：多 goroutine 共用同一 Cursor 属于契约之外的调用错误。
// 不同 Cursor 之间互不影响，即使指向同一快照。
type Cursor struct {
	snap   *snapshot
	pos    int
	closed bool
}

func newCursor(snap *snapshot) *Cursor {
	snap.retain()
	return &Cursor{snap: snap}
}

// Read 返回当前位置的目录项并前移。迭代到尾部返回 io.EOF，
// 这是正常的终止条件而非故障。
func (c *Cursor) Read() (Entry, error) {
	if c.closed {
		return Entry{}, ErrCursorClosed
	}
	if c.pos >= len(c.snap.entries) {
		return Entry{}, io.EOF
	}
	entry := c.snap.entries[c.pos]
	c.pos++
	return entry, nil
}

// Rewind 将位置重置到第一条目录项。
func (c *Cursor) Rewind() error {
	if c.closed {
		return ErrCursorClosed
	}
	c.pos = 0
	return nil
}

// Tell 返回当前位置。语义上是一枚可保存、可回放的不透明令牌，
// 这里直接用整数偏移表示。
func (c *Cursor) Tell() (int, error) {
	if c.closed {
		return 0, ErrCursorClosed
	}
	return c.pos, nil
}

// Seek 将位置移动到 pos。越界请求不做钳制，原地忽略，
// 避免后续 Read 悄悄绕回。
func (c *Cursor) Seek(pos int) error {
	if c.closed {
		return ErrCursorClosed
	}
	if pos < 0 || pos > len(c.snap.entries) {
		return nil
	}
	c.pos = pos
	return nil
}

// Len 返回所引用快照中的目录项总数。
func (c *Cursor) Len() (int, error) {
	if c.closed {
		return 0, ErrCursorClosed
	}
	return len(c.snap.entries), nil
}

// Close 释放对快照的引用，恰好一次。关闭后的任何操作都会返回
// ErrCursorClosed。
func (c *Cursor) Close() error {
	if c.closed {
		return ErrCursorClosed
	}
	c.closed = true
	c.snap.release()
	c.snap = nil
	return nil
}
