package dircache

import (
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Options 控制 Cache 的构造。Lister 为空时使用 os.ReadDir 实现；
// Logger 为空时丢弃日志；Now 供测试注入假时钟。
type Options struct {
	Lister Lister
	Logger *logrus.Logger
	Now    func() time.Time
}

// Cache 是目录列举缓存的公共入口，进程内构造一份并显式传递，
// 不依赖隐式全局单例。
type Cache struct {
	store  *store
	logger *logrus.Logger
}

// Stats 汇总缓存当前的观测指标。
type Stats struct {
	CachedDirs  int   `json:"cached_dirs"`
	Populations int64 `json:"populations"`
	Hits        int64 `json:"hits"`
}

// New 构造 Cache 实例。
func New(opts Options) *Cache {
	lister := opts.Lister
	if lister == nil {
		lister = NewOSLister()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Cache{
		store:  newStore(lister, opts.Now),
		logger: logger,
	}
}

// Open 返回一个从头开始迭代 path 目录项的 Cursor。缓存未命中时
// 先向文件系统协作方填充快照。读取失败返回 ErrNotFound 等哨兵错误。
func (c *Cache) Open(path string) (*Cursor, error) {
	snap, populated, err := c.store.findOrCreate(path)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"action":    "open",
		"path":      path,
		"cache_hit": !populated,
		"entries":   len(snap.entries),
	}).Debug("目录已打开")

	return newCursor(snap), nil
}

// ListAll 一次性返回 path 的全部目录项，等价于 scandir：先按 Open 的规则
// 取得快照，再把通过 filter 的条目拷贝进新切片并用 less 排序。过滤与排序
// 只作用于拷贝，缓存内的规范序列绝不被改动，并发迭代者不受影响。
// 本调用只持有一个瞬时引用，不产生长生命周期 Cursor。
func (c *Cache) ListAll(path string, filter FilterFunc, less CompareFunc) ([]Entry, error) {
	snap, populated, err := c.store.findOrCreate(path)
	if err != nil {
		return nil, err
	}
	snap.retain()
	defer snap.release()

	result := make([]Entry, 0, len(snap.entries))
	for _, entry := range snap.entries {
		if filter != nil && !filter(entry) {
			continue
		}
		result = append(result, entry)
	}

	if less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(result[i], result[j])
		})
	}

	c.logger.WithFields(logrus.Fields{
		"action":    "list_all",
		"path":      path,
		"cache_hit": !populated,
		"entries":   len(result),
	}).Debug("目录已列举")

	return result, nil
}

// Invalidate 清空整个缓存。已打开的 Cursor 不受影响，继续迭代各自的
// 快照直至关闭；之后任意路径的 Open 都会重新从文件系统填充。
func (c *Cache) Invalidate() {
	c.store.clear()
	c.logger.WithField("action", "invalidate").Info("缓存已清空")
}

// EvictStale 淘汰存活超过 maxAge 且无引用的快照，返回淘汰数量。
// 策略由配置驱动，详见 CacheTTL / EvictInterval。
func (c *Cache) EvictStale(maxAge time.Duration) int {
	removed := c.store.removeStale(maxAge)
	if removed > 0 {
		c.logger.WithFields(logrus.Fields{
			"action":  "evict_stale",
			"removed": removed,
			"max_age": maxAge.String(),
		}).Info("过期快照已淘汰")
	}
	return removed
}

// Stats 返回当前缓存指标快照。
func (c *Cache) Stats() Stats {
	return Stats{
		CachedDirs:  c.store.len(),
		Populations: c.store.populations.Load(),
		Hits:        c.store.hits.Load(),
	}
}
