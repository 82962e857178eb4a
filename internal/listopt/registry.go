// Package listopt 维护 ListAll 可用的具名过滤器与比较器注册表，
// HTTP 层通过键值解析调用方想要的列举选项。
package listopt

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dircache/dircache/internal/dircache"
)

// FilterMetadata 记录一个具名过滤器的静态信息。
type FilterMetadata struct {
	Key         string
	Description string
	Filter      dircache.FilterFunc
}

// ComparatorMetadata 记录一个具名比较器的静态信息。
type ComparatorMetadata struct {
	Key         string
	Description string
	Less        dircache.CompareFunc
}

var globalRegistry = newRegistry()

type registry struct {
	mu          sync.RWMutex
	filters     map[string]FilterMetadata
	comparators map[string]ComparatorMetadata
}

func newRegistry() *registry {
	return &registry{
		filters:     make(map[string]FilterMetadata),
		comparators: make(map[string]ComparatorMetadata),
	}
}

// RegisterFilter 将过滤器加入全局注册表，重复键会返回错误。
func RegisterFilter(meta FilterMetadata) error {
	return globalRegistry.registerFilter(meta)
}

// RegisterComparator 将比较器加入全局注册表，重复键会返回错误。
func RegisterComparator(meta ComparatorMetadata) error {
	return globalRegistry.registerComparator(meta)
}

// MustRegisterFilter 在注册失败时 panic，适合 init() 中调用。
func MustRegisterFilter(meta FilterMetadata) {
	if err := RegisterFilter(meta); err != nil {
		panic(err)
	}
}

// MustRegisterComparator 在注册失败时 panic，适合 init() 中调用。
func MustRegisterComparator(meta ComparatorMetadata) {
	if err := RegisterComparator(meta); err != nil {
		panic(err)
	}
}

// ResolveFilter 返回指定键的过滤器。
func ResolveFilter(key string) (FilterMetadata, bool) {
	return globalRegistry.resolveFilter(key)
}

// ResolveComparator 返回指定键的比较器。
func ResolveComparator(key string) (ComparatorMetadata, bool) {
	return globalRegistry.resolveComparator(key)
}

// FilterKeys 返回按字典序排序的过滤器键值，供诊断端使用。
func FilterKeys() []string {
	return globalRegistry.filterKeys()
}

// ComparatorKeys 返回按字典序排序的比较器键值，供诊断端使用。
func ComparatorKeys() []string {
	return globalRegistry.comparatorKeys()
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (r *registry) registerFilter(meta FilterMetadata) error {
	key := normalizeKey(meta.Key)
	if key == "" {
		return fmt.Errorf("filter key is required")
	}
	if meta.Filter == nil {
		return fmt.Errorf("filter %s: func is required", key)
	}
	meta.Key = key

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.filters[key]; exists {
		return fmt.Errorf("filter %s already registered", key)
	}
	r.filters[key] = meta
	return nil
}

func (r *registry) registerComparator(meta ComparatorMetadata) error {
	key := normalizeKey(meta.Key)
	if key == "" {
		return fmt.Errorf("comparator key is required")
	}
	if meta.Less == nil {
		return fmt.Errorf("comparator %s: func is required", key)
	}
	meta.Key = key

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.comparators[key]; exists {
		return fmt.Errorf("comparator %s already registered", key)
	}
	r.comparators[key] = meta
	return nil
}

func (r *registry) resolveFilter(key string) (FilterMetadata, bool) {
	if key == "" {
		return FilterMetadata{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.filters[normalizeKey(key)]
	return meta, ok
}

func (r *registry) resolveComparator(key string) (ComparatorMetadata, bool) {
	if key == "" {
		return ComparatorMetadata{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.comparators[normalizeKey(key)]
	return meta, ok
}

func (r *registry) filterKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.filters))
	for key := range r.filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (r *registry) comparatorKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.comparators))
	for key := range r.comparators {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
