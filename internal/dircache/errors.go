package dircache

import "errors"

// ErrNotFound 表示路径不存在或无法作为目录读取，调用方不应重试。
var ErrNotFound = errors.New("directory not found")

// ErrNotDirectory 表示路径存在但并非目录。
var ErrNotDirectory = errors.New("path is not a directory")

// ErrPermission 表示读取目录时权限不足。
var ErrPermission = errors.New("permission denied")

// ErrCursorClosed 表示游标已关闭仍被使用，属于调用方编程错误，立即失败。
var ErrCursorClosed = errors.New("cursor already closed")
