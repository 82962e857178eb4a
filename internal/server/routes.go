package server

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/dircache/dircache/internal/dircache"
	"github.com/dircache/dircache/internal/listopt"
	"github.com/dircache/dircache/internal/version"
)

// entryPayload 是目录项的对外 JSON 形态。
type entryPayload struct {
	Name    string `json:"name"`
	IsDir   bool   `json:"is_dir"`
	Size    int64  `json:"size"`
	ModTime string `json:"mod_time,omitempty"`
}

// registerRoutes 挂载列举接口与 /-/ 诊断接口。
func registerRoutes(app *fiber.App, opts AppOptions) {
	app.Get("/api/list", func(c fiber.Ctx) error {
		return handleList(c, opts)
	})

	app.Post("/api/invalidate", func(c fiber.Ctx) error {
		opts.Cache.Invalidate()
		opts.Logger.WithFields(logrus.Fields{
			"action":     "invalidate",
			"request_id": RequestID(c),
		}).Info("缓存已清空")
		return c.JSON(fiber.Map{"result": "ok"})
	})

	app.Get("/-/stats", func(c fiber.Ctx) error {
		stats := opts.Cache.Stats()
		return c.JSON(fiber.Map{
			"cached_dirs": stats.CachedDirs,
			"populations": stats.Populations,
			"hits":        stats.Hits,
			"roots":       opts.Guard.Roots(),
		})
	})

	app.Get("/-/version", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"version": version.Version,
			"commit":  version.Commit,
			"full":    version.Full(),
		})
	})

	app.Get("/-/listopt", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"filters":     listopt.FilterKeys(),
			"comparators": listopt.ComparatorKeys(),
		})
	})
}

func handleList(c fiber.Ctx, opts AppOptions) error {
	path := strings.TrimSpace(c.Query("path"))
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path_required"})
	}
	if !opts.Guard.Allowed(path) {
		opts.Logger.WithFields(logrus.Fields{
			"action":     "list_denied",
			"request_id": RequestID(c),
			"path":       path,
		}).Warn("路径不在允许的根目录之下")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "path_not_allowed"})
	}

	var filter dircache.FilterFunc
	if key := strings.TrimSpace(c.Query("filter")); key != "" {
		meta, ok := listopt.ResolveFilter(key)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_filter"})
		}
		filter = meta.Filter
	}

	var less dircache.CompareFunc
	if key := strings.TrimSpace(c.Query("sort")); key != "" {
		meta, ok := listopt.ResolveComparator(key)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown_sort"})
		}
		less = meta.Less
	}

	entries, err := opts.Cache.ListAll(path, filter, less)
	if err != nil {
		if errors.Is(err, dircache.ErrNotFound) || errors.Is(err, dircache.ErrNotDirectory) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "directory_not_found"})
		}
		if errors.Is(err, dircache.ErrPermission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission_denied"})
		}
		opts.Logger.WithFields(logrus.Fields{
			"action":     "list_error",
			"request_id": RequestID(c),
			"path":       path,
		}).Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error"})
	}

	payload := make([]entryPayload, 0, len(entries))
	for _, entry := range entries {
		item := entryPayload{
			Name:  entry.Name,
			IsDir: entry.IsDir,
			Size:  entry.Size,
		}
		if !entry.ModTime.IsZero() {
			item.ModTime = entry.ModTime.UTC().Format(time.RFC3339)
		}
		payload = append(payload, item)
	}

	opts.Logger.WithFields(logrus.Fields{
		"action":     "list",
		"request_id": RequestID(c),
		"path":       path,
		"entries":    len(payload),
	}).Info("目录已列举")

	return c.JSON(fiber.Map{
		"path":    path,
		"count":   len(payload),
		"entries": payload,
	})
}
