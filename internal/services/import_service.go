package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "cookbook/internal/errors"
	"cookbook/internal/logger"
	"cookbook/internal/models"
	"cookbook/internal/schemaorg"
)

const fetchUserAgent = "Mozilla/5.0 (compatible; CookbookBot/1.0)"

// Fetcher retrieves the HTML body of a URL. The import service depends on
// this interface so tests can substitute transport.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// httpFetcher fetches pages over HTTP with a browser-ish user agent; many
// recipe sites reject the Go default.
type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates the production Fetcher. Per-request deadlines come
// from the caller's context rather than a client-level timeout.
func NewHTTPFetcher() Fetcher {
	return &httpFetcher{client: &http.Client{}}
}

// Fetch retrieves the HTML content of the given URL.
func (f *httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

// importService runs the fetch -> extract -> normalize pipeline. It never
// touches the store: the resulting draft is persisted only when the caller
// explicitly creates or updates a recipe with it, so a slow, failed, or
// cancelled import cannot leave a partial write behind.
type importService struct {
	fetcher Fetcher
	timeout time.Duration
}

// NewImportService creates a new ImportServicer with the given transport and
// per-import timeout.
func NewImportService(fetcher Fetcher, timeout time.Duration) ImportServicer {
	return &importService{fetcher: fetcher, timeout: timeout}
}

// ImportFromURL fetches the page and extracts a normalized recipe draft.
// The whole pipeline is bounded by the configured timeout on top of
// whatever deadline the caller's context already carries.
func (s *importService) ImportFromURL(ctx context.Context, url string) (*models.RecipeDraft, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, apperrors.ErrImportURL
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logger.Get().Infow("importing recipe", "url", url)

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportFetch, err)
	}

	node, err := schemaorg.ExtractRecipe(html)
	if err != nil {
		if errors.Is(err, schemaorg.ErrNoRecipe) {
			return nil, apperrors.ErrSiteIncompatible
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	draft := schemaorg.Normalize(node, url)
	logger.Get().Infow("recipe imported", "url", url, "title", draft.Title, "ingredients", len(draft.Ingredients))
	return &draft, nil
}
