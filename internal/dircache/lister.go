package dircache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
)

// Lister 是文件系统协作方：给定路径，要么失败，要么返回一批有序目录项。
// 缓存层把它视为不透明的 syscall 边界，方便测试注入假实现。
type Lister interface {
	ListDirectory(path string) ([]Entry, error)
}

// ListerFunc 将函数适配为 Lister 接口。
type ListerFunc func(path string) ([]Entry, error)

// ListDirectory 使 ListerFunc 满足 Lister。
func (f ListerFunc) ListDirectory(path string) ([]Entry, error) {
	return f(path)
}

// NewOSLister 返回基于 os.ReadDir 的生产实现，目录项顺序原样保留。
func NewOSLister() Lister {
	return osLister{}
}

type osLister struct{}

func (osLister) ListDirectory(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, classifyListError(path, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, dent := range dirents {
		entry := Entry{
			Name:  dent.Name(),
			IsDir: dent.IsDir(),
			Mode:  dent.Type(),
		}
		// Info 失败（例如条目在遍历间隙被删除）时仍保留名称本身。
		if info, infoErr := dent.Info(); infoErr == nil {
			entry.Mode = info.Mode()
			entry.Size = info.Size()
			entry.ModTime = info.ModTime()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// classifyListError 将 os 层错误映射到缓存层的哨兵错误。
func classifyListError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("list %s: %w", path, ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("list %s: %w", path, ErrPermission)
	case errors.Is(err, syscall.ENOTDIR):
		return fmt.Errorf("list %s: %w", path, ErrNotDirectory)
	default:
		return fmt.Errorf("list %s: %w", path, err)
	}
}
