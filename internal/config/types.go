package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := parseInt(raw); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// parseInt 支持十进制或 0x 前缀的十六进制字符串解析。
func parseInt(value string) (int64, error) {
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		return strconv.ParseInt(value, 0, 64)
	}
	return strconv.ParseInt(value, 10, 64)
}

// GlobalConfig 描述全局运行时行为。
type GlobalConfig struct {
	ListenPort    int      `mapstructure:"ListenPort"`
	LogLevel      string   `mapstructure:"LogLevel"`
	LogFilePath   string   `mapstructure:"LogFilePath"`
	LogMaxSize    int      `mapstructure:"LogMaxSize"`
	LogMaxBackups int      `mapstructure:"LogMaxBackups"`
	LogCompress   bool     `mapstructure:"LogCompress"`
	CacheTTL      Duration `mapstructure:"CacheTTL"`
	EvictInterval Duration `mapstructure:"EvictInterval"`
}

// RootConfig 声明一个允许对外列举的目录根。
type RootConfig struct {
	Name string `mapstructure:"Name"`
	Path string `mapstructure:"Path"`
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	Global GlobalConfig `mapstructure:",squash"`
	Roots  []RootConfig `mapstructure:"Root"`
}

// EvictionEnabled 表示是否启用基于 TTL 的过期淘汰；CacheTTL 为 0 时
// 退化为仅手动 invalidate。
func (g GlobalConfig) EvictionEnabled() bool {
	return g.CacheTTL.DurationValue() > 0
}

// RootPaths 返回全部根目录路径，供启动日志与路径守卫使用。
func RootPaths(roots []RootConfig) []string {
	if len(roots) == 0 {
		return nil
	}
	result := make([]string, len(roots))
	for i, root := range roots {
		result[i] = root.Path
	}
	return result
}
