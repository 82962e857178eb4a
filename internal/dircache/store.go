package dircache

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// store 维护路径到快照的映射。查找走读锁并发进行；表变更（发布新快照、
// 清空、淘汰）短暂持有写锁。慢速的文件系统列举永远发生在表锁之外，
// 由 popLock 按路径串行化，保证同一目录并发未命中只触发一次列举。
type store struct {
	lister Lister
	now    func() time.Time

	mu    sync.RWMutex
	table map[string]*snapshot

	popMu    sync.Mutex
	popLocks map[string]*popLock

	populations atomic.Int64
	hits        atomic.Int64
}

type popLock struct {
	mu   sync.Mutex
	refs int
}

func newStore(lister Lister, now func() time.Time) *store {
	if now == nil {
		now = time.Now
	}
	return &store{
		lister:   lister,
		now:      now,
		table:    make(map[string]*snapshot),
		popLocks: make(map[string]*popLock),
	}
}

// canonicalKey 统一表键：同一目录的不同写法（尾部斜杠、./ 前缀）共享快照。
func canonicalKey(path string) string {
	return filepath.Clean(path)
}

// findOrCreate 返回路径对应的快照；缓存未命中时在表锁之外调用文件系统
// 协作方构建新快照。写锁下仍会再次检查并让位给先发布的一方。
// 第二个返回值表示本次调用是否真正触发了填充。
func (s *store) findOrCreate(path string) (*snapshot, bool, error) {
	key := canonicalKey(path)

	if snap, ok := s.lookup(key); ok {
		return snap, false, nil
	}

	unlock := s.lockPopulation(key)
	defer unlock()

	// 拿到填充锁后重查：竞争者可能在等锁期间已完成填充。
	if snap, ok := s.lookup(key); ok {
		return snap, false, nil
	}

	// 表锁之外列举：读目录可能很慢，不能阻塞其他路径的查找。
	entries, err := s.lister.ListDirectory(path)
	if err != nil {
		// 失败不入表，下一次 open 自然重试。
		return nil, false, err
	}
	built := newSnapshot(entries, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, raced := s.table[key]; raced {
		// 双重检查保底，丢弃本次构建的快照。
		s.hits.Add(1)
		return existing, false, nil
	}
	s.table[key] = built
	s.populations.Add(1)
	return built, true, nil
}

func (s *store) lookup(key string) (*snapshot, bool) {
	s.mu.RLock()
	snap, ok := s.table[key]
	s.mu.RUnlock()
	if ok {
		s.hits.Add(1)
	}
	return snap, ok
}

// lockPopulation 返回 key 对应填充锁的释放函数，锁表项在无人等待时回收。
func (s *store) lockPopulation(key string) func() {
	s.popMu.Lock()
	lock := s.popLocks[key]
	if lock == nil {
		lock = &popLock{}
		s.popLocks[key] = lock
	}
	lock.refs++
	s.popMu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		s.popMu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.popLocks, key)
		}
		s.popMu.Unlock()
	}
}

// clear 清空整张表。仍被 Cursor 引用的快照只是从表中不可达，
// 等最后一个引用释放后由 GC 回收。
func (s *store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = make(map[string]*snapshot)
}

// removeStale 淘汰创建时间早于 maxAge 且当前无引用的表项，返回淘汰数量。
// 过期但仍被引用的表项留待下一轮，绝不回收仍有读者的内存。
func (s *store) removeStale(maxAge time.Duration) int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, snap := range s.table {
		if snap.age(now) > maxAge && snap.refCount() == 0 {
			delete(s.table, key)
			removed++
		}
	}
	return removed
}

// len 返回当前表项数量。
func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.table)
}
