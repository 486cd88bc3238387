package previewcard

import (
	"context"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// TitleSource fetches the raw document text for a wiki page.
type TitleSource interface {
	FetchPage(ctx context.Context, page string) (string, error)
}

// WikiClient fetches page documents from the wiki over HTTP. There is no
// retry or backoff: a failed fetch is terminal for the request observing it.
type WikiClient struct {
	baseURL string
	client  *http.Client
}

// NewWikiClient creates a client for the wiki at baseURL.
func NewWikiClient(baseURL string, client *http.Client) *WikiClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &WikiClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// FetchPage performs a GET for the page and returns the document body.
// A non-2xx response fails with the upstream status attached, so the
// handler propagates it verbatim.
func (w *WikiClient) FetchPage(ctx context.Context, page string) (string, error) {
	pageURL := w.baseURL + "/" + url.PathEscape(page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", WrapError(ErrCodeUpstreamFetchFailed, err, "build request for %s", pageURL)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return "", WrapError(ErrCodeUpstreamFetchFailed, err, "fetch %s", pageURL)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := NewError(ErrCodeUpstreamFetchFailed, "fetch %s: upstream status %d", pageURL, resp.StatusCode)
		e.Status = resp.StatusCode
		return "", e
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", WrapError(ErrCodeUpstreamFetchFailed, err, "read %s", pageURL)
	}
	return string(body), nil
}

var (
	// pageTitleRe locates the single title container in a wiki document.
	pageTitleRe = regexp.MustCompile(`(?s)<div\s+id="page-title"[^>]*>\s*(.*?)\s*</div>`)

	// compoundTitleRe recognizes the two-part "SCP-XXXX - Free Text" title
	// shape. The code keeps its fixed SCP- prefix; everything after the
	// separator becomes the subtitle.
	compoundTitleRe = regexp.MustCompile(`^(SCP-[0-9A-Za-z-]+) - (.+)$`)
)

// ExtractTitle pulls the raw page title out of a fetched wiki document.
func ExtractTitle(doc string) (string, error) {
	m := pageTitleRe.FindStringSubmatch(doc)
	if m == nil {
		return "", NewError(ErrCodeTitleExtractionFailed, "no page-title container in document")
	}
	return m[1], nil
}

// ClassifyTitle splits an extracted title into a (title, subtitle) pair.
// The raw title is HTML-escaped unconditionally before matching, since it
// may be echoed into HTML elsewhere. A compound "SCP-XXXX - Name" title is
// split at the separator; otherwise the whole title is kept and the
// caller-supplied subtitle (possibly empty) is used as-is.
func ClassifyTitle(raw, fallbackSubtitle string) TitleParts {
	escaped := html.EscapeString(raw)
	if m := compoundTitleRe.FindStringSubmatch(escaped); m != nil {
		return TitleParts{Title: m[1], Subtitle: m[2]}
	}
	return TitleParts{Title: escaped, Subtitle: fallbackSubtitle}
}

// ParseTitle combines extraction and classification for a fetched document.
func ParseTitle(doc, fallbackSubtitle string) (TitleParts, error) {
	raw, err := ExtractTitle(doc)
	if err != nil {
		return TitleParts{}, err
	}
	return ClassifyTitle(raw, fallbackSubtitle), nil
}
