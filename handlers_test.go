package previewcard

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// newWikiStub serves a compound title for every page except /missing.
func newWikiStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`<div id="page-title">SCP-1048-JP - The Clockwork Heart</div>`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeTestAssets(t *testing.T, dir string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 60, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 60; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 0xee, G: 0xe8, B: 0xdc, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	files := map[string][]byte{
		"fonts/display-bold.ttf":  goregular.TTF,
		"fonts/serif-bold.ttf":    goregular.TTF,
		"backgrounds/normal.png":  buf.Bytes(),
		"backgrounds/dark.png":    buf.Bytes(),
		"backgrounds/classic.png": buf.Bytes(),
	}
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	wiki := newWikiStub(t)
	assetsDir := t.TempDir()
	writeTestAssets(t, assetsDir)

	app := New(SiteConfig{
		CacheDatabasePath: filepath.Join(t.TempDir(), "cache.db"),
		AssetsDir:         assetsDir,
		WikiBaseURL:       wiki.URL,
	})
	if err := app.setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func doRequest(app *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func TestImageMissingPageIsBadRequest(t *testing.T) {
	app := newTestApp(t)

	rec := doRequest(app, "/image")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	// Validation happens before any cache traffic.
	stats, err := app.Store.StatsPrefix(context.Background(), renderCachePrefix)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 {
		t.Errorf("cache entries = %d, want 0", stats.Entries)
	}
}

func TestImageUnknownVariantIsNotFound(t *testing.T) {
	app := newTestApp(t)
	rec := doRequest(app, "/image?page=SCP-1048-JP&variant=doesnotexist")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestImageMissThenHit(t *testing.T) {
	app := newTestApp(t)

	first := doRequest(app, "/image?page=SCP-1048-JP&variant=normal")
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", first.Code, first.Body.String())
	}
	if got := first.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", got)
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(first.Body.Bytes())); err != nil {
		t.Errorf("body is not a decodable image: %v", err)
	} else if cfg.Width != CanvasWidth || cfg.Height != CanvasHeight {
		t.Errorf("image = %dx%d, want %dx%d", cfg.Width, cfg.Height, CanvasWidth, CanvasHeight)
	}

	second := doRequest(app, "/image?page=SCP-1048-JP&variant=normal")
	if second.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", second.Code)
	}
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache = %q, want HIT", got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cache hit served different bytes than the original render")
	}
}

func TestImageNocacheAlwaysMissesAndWrites(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		rec := doRequest(app, "/image?page=SCP-1048-JP&variant=normal&nocache=true")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if got := rec.Header().Get("X-Cache"); got != "MISS" {
			t.Errorf("request %d X-Cache = %q, want MISS", i, got)
		}
	}

	stats, err := app.Store.StatsPrefix(context.Background(), renderCachePrefix)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 1 {
		t.Errorf("cache entries = %d, want 1 (bypass writes back to its key)", stats.Entries)
	}
}

func TestImageQueryOrderIsCacheDistinct(t *testing.T) {
	app := newTestApp(t)

	doRequest(app, "/image?page=SCP-1048-JP&variant=normal")
	rec := doRequest(app, "/image?variant=normal&page=SCP-1048-JP")
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache = %q, want MISS for a reordered query string", got)
	}
}

func TestImageUpstreamStatusPropagates(t *testing.T) {
	app := newTestApp(t)
	rec := doRequest(app, "/image?page=missing")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want the upstream 404 propagated", rec.Code)
	}
}

func TestShareEmbedsImageMetadata(t *testing.T) {
	app := newTestApp(t)

	rec := doRequest(app, "/share?page=Foo")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()

	wantImage := `content="http://example.com/image?page=Foo&amp;variant=normal"`
	if !strings.Contains(body, wantImage) {
		t.Errorf("share page missing og:image URL %s in:\n%s", wantImage, body)
	}
	if !strings.Contains(body, `property="og:image"`) {
		t.Error("share page missing og:image tag")
	}
	if !strings.Contains(body, "twitter:card") {
		t.Error("share page missing twitter card tag")
	}
	if !strings.Contains(body, "/Foo") {
		t.Error("share page missing redirect target derived from the page")
	}
	if !strings.Contains(body, "window.location.replace") {
		t.Error("share page missing script redirect")
	}
	if !strings.Contains(body, "noscript") {
		t.Error("share page missing noscript redirect")
	}
}

func TestShareMissingPageIsBadRequest(t *testing.T) {
	app := newTestApp(t)
	rec := doRequest(app, "/share")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUnmappedPathIsNotFound(t *testing.T) {
	app := newTestApp(t)
	rec := doRequest(app, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestAdminRoutesAbsentWhenDisabled(t *testing.T) {
	app := newTestApp(t)
	rec := doRequest(app, "/admin/")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no admin password is configured", rec.Code)
	}
}
