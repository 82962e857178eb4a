package config

import (
	"errors"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "必须在 1-65535")
	}
	if _, err := logrus.ParseLevel(g.LogLevel); err != nil {
		return newFieldError("Global.LogLevel", "无法识别的日志级别")
	}
	if g.LogMaxSize < 0 {
		return newFieldError("Global.LogMaxSize", "不能为负数")
	}
	if g.LogMaxBackups < 0 {
		return newFieldError("Global.LogMaxBackups", "不能为负数")
	}
	if g.CacheTTL.DurationValue() < 0 {
		return newFieldError("Global.CacheTTL", "不能为负数")
	}
	if g.EvictionEnabled() && g.EvictInterval.DurationValue() <= 0 {
		return newFieldError("Global.EvictInterval", "启用 CacheTTL 时必须大于 0")
	}

	if len(c.Roots) == 0 {
		return errors.New("至少需要配置一个 Root")
	}

	seenNames := map[string]struct{}{}
	seenPaths := map[string]struct{}{}
	for i := range c.Roots {
		root := &c.Roots[i]
		if root.Name == "" {
			return newFieldError("Root[].Name", "不能为空")
		}
		if _, exists := seenNames[root.Name]; exists {
			return newFieldError(rootField(root.Name, "Name"), "重复")
		}
		seenNames[root.Name] = struct{}{}

		if root.Path == "" {
			return newFieldError(rootField(root.Name, "Path"), "不能为空")
		}
		if !filepath.IsAbs(root.Path) {
			return newFieldError(rootField(root.Name, "Path"), "必须是绝对路径")
		}
		if _, exists := seenPaths[root.Path]; exists {
			return newFieldError(rootField(root.Name, "Path"), "重复")
		}
		seenPaths[root.Path] = struct{}{}
	}

	return nil
}
