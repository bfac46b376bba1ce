package fragcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// maxFragmentBytes caps the size of a fragment body.
const maxFragmentBytes = 1 << 20

// ErrFragmentTooLarge is returned when a body exceeds maxFragmentBytes.
var ErrFragmentTooLarge = errors.New("fragcache: fragment too large")

// StatusError is returned when a fragment server answers with a non-2xx
// status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Status)
}

// FSFetcher serves fragments from a file system, usually the embedded set.
// The query part of a key is ignored.
type FSFetcher struct {
	FS fs.FS
}

// Fetch reads the file named by key.
func (f FSFetcher) Fetch(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := path.Clean(strings.TrimPrefix(StripQuery(key), "/"))
	raw, err := fs.ReadFile(f.FS, name)
	if err != nil {
		return "", fmt.Errorf("read fragment %s: %w", name, err)
	}
	if len(raw) > maxFragmentBytes {
		return "", fmt.Errorf("read fragment %s: %w", name, ErrFragmentTooLarge)
	}
	return string(raw), nil
}

// HTTPFetcher fetches fragments from a base URL.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher returns an HTTPFetcher with a bounded client.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch issues GET BaseURL/key.
func (f *HTTPFetcher) Fetch(ctx context.Context, key string) (string, error) {
	u := f.BaseURL + "/" + strings.TrimPrefix(key, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: u, Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFragmentBytes+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", u, err)
	}
	if len(body) > maxFragmentBytes {
		return "", fmt.Errorf("read %s: %w", u, ErrFragmentTooLarge)
	}
	return string(body), nil
}

// StripQuery returns key without its query string.
func StripQuery(key string) string {
	if i := strings.IndexByte(key, '?'); i >= 0 {
		return key[:i]
	}
	return key
}

// Version returns the cache-busting token carried in key's "v" query
// parameter, or "" when there is none.
func Version(key string) string {
	i := strings.IndexByte(key, '?')
	if i < 0 {
		return ""
	}
	q, err := url.ParseQuery(key[i+1:])
	if err != nil {
		return ""
	}
	return q.Get("v")
}

// Bust appends a "v" token to p so a changed resource gets a new key.
func Bust(p, token string) string {
	if token == "" {
		return p
	}
	sep := "?"
	if strings.Contains(p, "?") {
		sep = "&"
	}
	return p + sep + "v=" + url.QueryEscape(token)
}
