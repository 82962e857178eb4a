package dircache

import (
	"io/fs"
	"time"
)

// Entry 描述一条目录项：名称加上采集自文件系统的元数据。
// 快照发布后 Entry 不再变化，按值传递即可安全共享。
type Entry struct {
	Name    string      `json:"name"`
	IsDir   bool        `json:"is_dir"`
	Mode    fs.FileMode `json:"mode"`
	Size    int64       `json:"size"`
	ModTime time.Time   `json:"mod_time"`
}

// FilterFunc 决定 ListAll 结果是否保留某条目录项；返回 false 即丢弃。
type FilterFunc func(Entry) bool

// CompareFunc 决定 ListAll 结果的排序，语义与 sort.Slice 的 less 一致。
type CompareFunc func(a, b Entry) bool
