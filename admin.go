package previewcard

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/previewcard/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminPurge(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	n, err := a.Store.PurgePrefix(c.Request().Context(), renderCachePrefix)
	if err != nil {
		return WrapError(ErrCodeCacheStoreUnavailable, err, "purge render cache")
	}
	c.Logger().Infof("purged %d cached images", n)
	return a.renderAdminDashboard(c, "purged")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	stats, err := a.Store.StatsPrefix(c.Request().Context(), renderCachePrefix)
	if err != nil {
		return WrapError(ErrCodeCacheStoreUnavailable, err, "render cache stats")
	}
	return Render(c, views.AdminDashboard(views.AdminStats{
		Entries:    stats.Entries,
		TotalBytes: stats.TotalBytes,
		Variants:   a.Variants.Names(),
	}, msg, CsrfToken(c)))
}
