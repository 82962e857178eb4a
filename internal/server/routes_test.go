package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/dircache/dircache/internal/dircache"
)

// fixtureLister 返回预置目录项，避免测试依赖真实文件系统。
type fixtureLister map[string][]dircache.Entry

func (l fixtureLister) ListDirectory(path string) ([]dircache.Entry, error) {
	entries, ok := l[path]
	if !ok {
		return nil, dircache.ErrNotFound
	}
	return entries, nil
}

func newTestApp(t *testing.T, lister dircache.Lister, roots []string) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cache := dircache.New(dircache.Options{Lister: lister, Logger: logger})
	app, err := NewApp(AppOptions{
		Logger:     logger,
		Cache:      cache,
		Guard:      NewPathGuard(roots),
		ListenPort: 5000,
	})
	if err != nil {
		t.Fatalf("构建应用失败: %v", err)
	}
	return app
}

func TestListEndpoint(t *testing.T) {
	lister := fixtureLister{"/srv/data": {
		{Name: "b", Size: 2},
		{Name: "a", Size: 1},
	}}
	app := newTestApp(t, lister, []string{"/srv"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/list?path=/srv/data", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if reqID := resp.Header.Get("X-Request-ID"); reqID == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var payload struct {
		Path    string `json:"path"`
		Count   int    `json:"count"`
		Entries []struct {
			Name string `json:"name"`
		} `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Count != 2 || len(payload.Entries) != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	// 未指定排序时保持插入序。
	if payload.Entries[0].Name != "b" || payload.Entries[1].Name != "a" {
		t.Fatalf("insertion order should be preserved: %+v", payload.Entries)
	}
}

func TestListEndpointSortAndFilter(t *testing.T) {
	lister := fixtureLister{"/srv/data": {
		{Name: "b"},
		{Name: ".git"},
		{Name: "a"},
		{Name: "c"},
	}}
	app := newTestApp(t, lister, []string{"/srv"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/list?path=/srv/data&filter=visible&sort=name-desc", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Entries []struct {
			Name string `json:"name"`
		} `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	var names []string
	for _, e := range payload.Entries {
		names = append(names, e.Name)
	}
	if len(names) != 3 || names[0] != "c" || names[1] != "b" || names[2] != "a" {
		t.Fatalf("expected c,b,a, got %v", names)
	}
}

func TestListEndpointRejectsUnknownOptions(t *testing.T) {
	app := newTestApp(t, fixtureLister{}, []string{"/srv"})

	for _, target := range []string{
		"/api/list?path=/srv/data&filter=nope",
		"/api/list?path=/srv/data&sort=nope",
		"/api/list",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil))
		if err != nil {
			t.Fatalf("app.Test failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, resp.StatusCode)
		}
	}
}

func TestListEndpointDeniesOutsideRoots(t *testing.T) {
	app := newTestApp(t, fixtureLister{}, []string{"/srv"})

	for _, path := range []string{"/etc", "/srv/../etc", "relative/path"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/list?path="+path, nil))
		if err != nil {
			t.Fatalf("app.Test failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", path, resp.StatusCode)
		}
	}
}

func TestListEndpointNotFound(t *testing.T) {
	app := newTestApp(t, fixtureLister{}, []string{"/srv"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/list?path=/srv/absent", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte(`"directory_not_found"`)) {
		t.Fatalf("expected directory_not_found error, got %s", string(body))
	}
}

func TestInvalidateEndpoint(t *testing.T) {
	lister := fixtureLister{"/srv/data": {{Name: "a"}}}
	app := newTestApp(t, lister, []string{"/srv"})

	if _, err := app.Test(httptest.NewRequest("GET", "/api/list?path=/srv/data", nil)); err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/api/invalidate", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	statsResp, err := app.Test(httptest.NewRequest("GET", "/-/stats", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	var stats struct {
		CachedDirs int `json:"cached_dirs"`
	}
	if err := json.NewDecoder(statsResp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if stats.CachedDirs != 0 {
		t.Fatalf("invalidate 后缓存目录数应为 0, got %d", stats.CachedDirs)
	}
}

func TestDiagnosticsEndpoints(t *testing.T) {
	app := newTestApp(t, fixtureLister{}, []string{"/srv"})

	versionResp, err := app.Test(httptest.NewRequest("GET", "/-/version", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	body, _ := io.ReadAll(versionResp.Body)
	if !bytes.Contains(body, []byte("dircache")) {
		t.Fatalf("version payload should mention dircache: %s", string(body))
	}

	optResp, err := app.Test(httptest.NewRequest("GET", "/-/listopt", nil))
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	var payload struct {
		Filters     []string `json:"filters"`
		Comparators []string `json:"comparators"`
	}
	if err := json.NewDecoder(optResp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(payload.Filters) == 0 || len(payload.Comparators) == 0 {
		t.Fatalf("listopt payload should expose builtin keys: %+v", payload)
	}
}
