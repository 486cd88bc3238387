// Package views renders the HTML surfaces of previewcard: the share page
// with its social-preview metadata, error pages, and the admin screens.
// Components implement templ.Component so handlers can render them through
// the shared Render helpers.
package views

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// ShareData carries everything the share page needs.
type ShareData struct {
	SiteName  string
	Page      string // raw page slug, used as the preview title
	ImageURL  string // absolute URL of the /image endpoint for this page
	ShareURL  string // canonical URL of this share page
	TargetURL string // wiki page the visitor is redirected to
}

// AdminStats summarizes the render cache for the dashboard.
type AdminStats struct {
	Entries    int
	TotalBytes int64
	Variants   []string
}

func component(build func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		build(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// jsString encodes s as a JavaScript string literal.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

// SharePage embeds the social-preview metadata for a page and redirects
// the visitor to the wiki, via script and via noscript meta refresh.
func SharePage(d ShareData) templ.Component {
	return component(func(b *strings.Builder) {
		page := html.EscapeString(d.Page)
		imageURL := html.EscapeString(d.ImageURL)
		shareURL := html.EscapeString(d.ShareURL)
		targetURL := html.EscapeString(d.TargetURL)

		b.WriteString("<!DOCTYPE html>\n<html lang=\"ja\">\n<head>\n<meta charset=\"utf-8\">\n")
		fmt.Fprintf(b, "<title>%s - %s</title>\n", page, html.EscapeString(d.SiteName))
		fmt.Fprintf(b, "<meta property=\"og:title\" content=%q>\n", page)
		b.WriteString("<meta property=\"og:type\" content=\"website\">\n")
		fmt.Fprintf(b, "<meta property=\"og:url\" content=%q>\n", shareURL)
		fmt.Fprintf(b, "<meta property=\"og:image\" content=%q>\n", imageURL)
		b.WriteString("<meta property=\"og:image:width\" content=\"1200\">\n")
		b.WriteString("<meta property=\"og:image:height\" content=\"630\">\n")
		b.WriteString("<meta name=\"twitter:card\" content=\"summary_large_image\">\n")
		fmt.Fprintf(b, "<meta name=\"twitter:image\" content=%q>\n", imageURL)
		fmt.Fprintf(b, "<noscript><meta http-equiv=\"refresh\" content=\"0; url=%s\"></noscript>\n", targetURL)
		b.WriteString("</head>\n<body>\n")
		fmt.Fprintf(b, "<p>Redirecting to <a href=%q>%s</a>…</p>\n", targetURL, targetURL)
		fmt.Fprintf(b, "<script>window.location.replace(%s);</script>\n", jsString(d.TargetURL))
		b.WriteString("</body>\n</html>\n")
	})
}

// NotFound is the 404 page.
func NotFound() templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>Not Found</title></head>\n")
		b.WriteString("<body>\n<h1>404</h1>\n<p>There is nothing here.</p>\n</body>\n</html>\n")
	})
}

// ServerError is the 500 page.
func ServerError() templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>Server Error</title></head>\n")
		b.WriteString("<body>\n<h1>500</h1>\n<p>Something went wrong generating this page.</p>\n</body>\n</html>\n")
	})
}

// AdminLogin renders the admin password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>Admin</title></head>\n<body>\n<h1>Admin login</h1>\n")
		if showError {
			b.WriteString("<p>Wrong password.</p>\n")
		}
		b.WriteString("<form method=\"post\" action=\"/admin/login/\">\n")
		fmt.Fprintf(b, "<input type=\"hidden\" name=\"_csrf\" value=%q>\n", html.EscapeString(csrfToken))
		b.WriteString("<input type=\"password\" name=\"password\" autofocus>\n<button type=\"submit\">Log in</button>\n</form>\n</body>\n</html>\n")
	})
}

// AdminDashboard shows render-cache stats and the purge control.
func AdminDashboard(stats AdminStats, message, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head><meta charset=\"utf-8\"><title>Admin</title></head>\n<body>\n<h1>Render cache</h1>\n")
		if message != "" {
			fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(message))
		}
		fmt.Fprintf(b, "<p>%d cached images, %d bytes.</p>\n", stats.Entries, stats.TotalBytes)
		fmt.Fprintf(b, "<p>Variants: %s</p>\n", html.EscapeString(strings.Join(stats.Variants, ", ")))
		b.WriteString("<form method=\"post\" action=\"/admin/purge/\">\n")
		fmt.Fprintf(b, "<input type=\"hidden\" name=\"_csrf\" value=%q>\n", html.EscapeString(csrfToken))
		b.WriteString("<button type=\"submit\">Purge all cached images</button>\n</form>\n")
		b.WriteString("<form method=\"post\" action=\"/admin/logout/\">\n")
		fmt.Fprintf(b, "<input type=\"hidden\" name=\"_csrf\" value=%q>\n", html.EscapeString(csrfToken))
		b.WriteString("<button type=\"submit\">Log out</button>\n</form>\n</body>\n</html>\n")
	})
}
