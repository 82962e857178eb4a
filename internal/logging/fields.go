package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// ListFields 提供路径/命中状态等字段，供列举请求日志复用。
func ListFields(requestID, path string, entries int) logrus.Fields {
	return logrus.Fields{
		"request_id": requestID,
		"path":       path,
		"entries":    entries,
	}
}
