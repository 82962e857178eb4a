package dircache

import (
	"sync/atomic"
	"time"
)

// snapshot 是一次目录列举的不可变结果。发布进 store 之后 entries 与
// createdAt 永不修改，只有引用计数随 Cursor 的开关变化；最后一个引用
// 释放且表中不可达时由 GC 回收。
type snapshot struct {
	entries   []Entry
	createdAt time.Time
	refs      atomic.Int64
}

func newSnapshot(entries []Entry, now time.Time) *snapshot {
	return &snapshot{
		entries:   entries,
		createdAt: now,
	}
}

// retain 为一个新的持有者增加引用。
func (s *snapshot) retain() {
	s.refs.Add(1)
}

// release 归还一个引用；返回归还后的计数，便于调用方断言不变量。
func (s *snapshot) release() int64 {
	return s.refs.Add(-1)
}

// refCount 返回当前引用数，仅用于淘汰判断与测试观测。
func (s *snapshot) refCount() int64 {
	return s.refs.Load()
}

// age 返回快照距 now 的存活时长。
func (s *snapshot) age(now time.Time) time.Duration {
	return now.Sub(s.createdAt)
}
