package previewcard

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/previewcard/views"
)

func (a *App) handleImage(c echo.Context) error {
	page := c.QueryParam("page")
	if page == "" {
		return NewError(ErrCodeMissingParameter, "page parameter is required")
	}
	variant := c.QueryParam("variant")
	if variant == "" {
		variant = "normal"
	}
	bypass, _ := strconv.ParseBool(c.QueryParam("nocache"))

	req := RenderRequest{
		Page:        page,
		Variant:     variant,
		Subtitle:    c.QueryParam("subtitle"),
		BypassCache: bypass,
	}

	// The cache key fingerprints the URL exactly as received, raw query
	// string included.
	fullURL := c.Scheme() + "://" + c.Request().Host + c.Request().RequestURI

	res, err := a.Pipeline.Generate(c.Request().Context(), req, fullURL)
	if err != nil {
		return err
	}

	cacheStatus := "MISS"
	if res.CacheHit {
		cacheStatus = "HIT"
	}
	c.Response().Header().Set("X-Cache", cacheStatus)
	contentType := res.ContentType
	if contentType == "" {
		contentType = "image/png"
	}
	return c.Blob(http.StatusOK, contentType, res.Data)
}

func (a *App) handleShare(c echo.Context) error {
	page := c.QueryParam("page")
	if page == "" {
		return NewError(ErrCodeMissingParameter, "page parameter is required")
	}
	variant := c.QueryParam("variant")
	if variant == "" {
		variant = "normal"
	}

	origin := c.Scheme() + "://" + c.Request().Host
	return Render(c, views.SharePage(views.ShareData{
		SiteName:  a.Config.Name,
		Page:      page,
		ImageURL:  origin + "/image?page=" + url.QueryEscape(page) + "&variant=" + url.QueryEscape(variant),
		ShareURL:  origin + "/share?page=" + url.QueryEscape(page),
		TargetURL: strings.TrimRight(a.Config.WikiBaseURL, "/") + "/" + url.PathEscape(page),
	}))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var appErr *Error
	if errors.As(err, &appErr) {
		code = HTTPStatus(appErr)
		if code >= 500 {
			c.Logger().Errorf("request failed: %v", err)
		}
		_ = c.String(code, appErr.Message)
		return
	}

	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound())
		return
	}
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
