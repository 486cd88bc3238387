package previewcard

import (
	"net/http"
	"time"
)

// SiteConfig holds all configuration for a previewcard deployment.
type SiteConfig struct {
	Name string // Site name shown on the share page (default "previewcard")
	URL  string // Canonical URL (default "http://localhost:3000")

	Addr              string // Listen address (default ":3000")
	CacheDatabasePath string // SQLite path for the render cache (default "data/cache.db")
	AssetsDir         string // Directory holding fonts and backgrounds (default "assets")
	VariantsPath      string // Optional TOML file adding/overriding variants

	WikiBaseURL  string        // Title source base URL (default "http://scp-jp.wikidot.com")
	FetchTimeout time.Duration // Title fetch timeout (default 10s)

	AdminPassword string // Enables the /admin/ surface when set
	SessionSecret string // Required when AdminPassword is set
	CookieSecure  bool   // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "previewcard"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.CacheDatabasePath == "" {
		c.CacheDatabasePath = "data/cache.db"
	}
	if c.AssetsDir == "" {
		c.AssetsDir = "assets"
	}
	if c.WikiBaseURL == "" {
		c.WikiBaseURL = "http://scp-jp.wikidot.com"
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 10 * time.Second
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithTitleSource replaces the wiki HTTP client, mainly for tests.
func WithTitleSource(src TitleSource) Option {
	return func(a *App) {
		a.titleSource = src
	}
}

// WithRenderer replaces the image compositor.
func WithRenderer(r Renderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// WithAssetStore replaces the filesystem asset store.
func WithAssetStore(s AssetStore) Option {
	return func(a *App) {
		a.assetStore = s
	}
}

// WithHTTPClient sets the client used for title fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(a *App) {
		a.httpClient = c
	}
}
