package main

import (
	"log"
	"os"

	"github.com/eringen/previewcard"
)

func main() {
	cfg := previewcard.SiteConfig{
		Name:              previewcard.EnvOr("SITE_NAME", "previewcard"),
		URL:               previewcard.EnvOr("SITE_URL", "http://localhost:3000"),
		Addr:              previewcard.EnvOr("ADDR", ":3000"),
		CacheDatabasePath: previewcard.EnvOr("CACHE_DB_PATH", "data/cache.db"),
		AssetsDir:         previewcard.EnvOr("ASSETS_DIR", "assets"),
		VariantsPath:      os.Getenv("VARIANTS_PATH"),
		WikiBaseURL:       previewcard.EnvOr("WIKI_BASE_URL", "http://scp-jp.wikidot.com"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		CookieSecure:      os.Getenv("COOKIE_SECURE") == "true",
	}

	app := previewcard.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatalf("previewcard: %v", err)
	}
}
