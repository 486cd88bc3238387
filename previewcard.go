// Package previewcard serves composited social-preview images for wiki
// pages: a title (and, for compound SCP titles, a subtitle) rendered over
// a variant-specific background at 1200×630, fronted by a durable
// content-addressed render cache, plus a share page carrying the matching
// OpenGraph metadata.
package previewcard

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/previewcard/render"
)

// App is the central previewcard application. It wires together the blob
// store, caches, pipeline, middleware, and routes.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Variants *Registry
	Assets   *AssetCache
	Pipeline *Pipeline

	loginLimiter *LoginLimiter
	titleSource  TitleSource
	renderer     Renderer
	assetStore   AssetStore
	httpClient   *http.Client
}

// New creates a previewcard App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, caches, pipeline, middleware, and routes,
// then starts the server.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// setup wires everything short of binding the listen address, so tests can
// drive the app through Echo.ServeHTTP.
func (a *App) setup() error {
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("previewcard: SessionSecret is required when AdminPassword is set")
	}

	store, err := NewStore(a.Config.CacheDatabasePath)
	if err != nil {
		return fmt.Errorf("previewcard: init store: %w", err)
	}
	a.Store = store

	if a.Config.VariantsPath != "" {
		a.Variants, err = LoadRegistry(a.Config.VariantsPath)
		if err != nil {
			return fmt.Errorf("previewcard: %w", err)
		}
	} else {
		a.Variants = NewRegistry()
	}

	if a.assetStore == nil {
		a.assetStore = NewDirAssetStore(a.Config.AssetsDir)
	}
	a.Assets = NewAssetCache(a.assetStore)

	if a.titleSource == nil {
		client := a.httpClient
		if client == nil {
			client = &http.Client{Timeout: a.Config.FetchTimeout}
		}
		a.titleSource = NewWikiClient(a.Config.WikiBaseURL, client)
	}
	if a.renderer == nil {
		a.renderer = render.NewCompositor()
	}

	a.Pipeline = NewPipeline(
		NewRenderCache(a.Store),
		a.Assets,
		a.Variants,
		a.titleSource,
		a.renderer,
		a.Echo.Logger,
	)

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/image", a.handleImage)
	e.GET("/share", a.handleShare)

	if a.adminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.POST("/admin/purge/", a.handleAdminPurge)
	}
}

func (a *App) adminEnabled() bool {
	return a.Config.AdminPassword != ""
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("previewcard: required environment variable %s is not set", key)
	}
	return v
}
