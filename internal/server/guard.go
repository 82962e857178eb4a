package server

import (
	"path/filepath"
	"strings"
)

// PathGuard 限定 HTTP 层只能列举配置根目录之下的路径，
// 防止把任意文件系统位置暴露给调用方。
type PathGuard struct {
	roots []string
}

// NewPathGuard 以一组绝对路径构造守卫，路径在判定前统一 Clean。
func NewPathGuard(roots []string) *PathGuard {
	cleaned := make([]string, 0, len(roots))
	for _, root := range roots {
		if root == "" {
			continue
		}
		cleaned = append(cleaned, filepath.Clean(root))
	}
	return &PathGuard{roots: cleaned}
}

// Allowed 判断 path 是否等于某个根目录或位于其之下。
// 相对路径一律拒绝，判定不依赖进程工作目录。
func (g *PathGuard) Allowed(path string) bool {
	if !filepath.IsAbs(path) {
		return false
	}
	clean := filepath.Clean(path)
	for _, root := range g.roots {
		if clean == root || strings.HasPrefix(clean, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Roots 返回守卫内的根目录列表，供诊断端展示。
func (g *PathGuard) Roots() []string {
	return append([]string(nil), g.roots...)
}
