// Package assets loads built widget HTML bundles from disk.
//
// Built bundles reference their scripts and styles with "./" relative paths.
// Hosts inject widget HTML into iframes via srcdoc, where relative paths do
// not resolve, so the loader rewrites them to absolute URLs rooted at the
// configured base URL. Results are cached per component and invalidated when
// the file's modification time changes, so a rebuild takes effect without a
// restart.
package assets

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000/assets"

type cacheEntry struct {
	html    string
	modTime time.Time
}

// Loader resolves component names to rewritten HTML.
type Loader struct {
	dir     string
	baseURL string

	mu    sync.Mutex
	cache map[string]cacheEntry

	// readFile is swapped in tests to count disk reads.
	readFile func(string) ([]byte, error)
}

// NewLoader creates a loader for the given assets directory. An empty baseURL
// falls back to DefaultBaseURL; a trailing slash is trimmed.
func NewLoader(dir, baseURL string) *Loader {
	return &Loader{
		dir:      dir,
		baseURL:  NormalizeBaseURL(baseURL),
		cache:    make(map[string]cacheEntry, 16),
		readFile: os.ReadFile,
	}
}

// NormalizeBaseURL applies the default and trims the trailing slash.
func NormalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return strings.TrimRight(baseURL, "/")
}

// Dir returns the assets directory.
func (l *Loader) Dir() string {
	return l.dir
}

// BaseURL returns the normalized base URL used for rewriting.
func (l *Loader) BaseURL() string {
	return l.baseURL
}

// Resolve finds the HTML file for a component: "<name>.html" first, then the
// lexicographically last "<name>-*.html" (content-hashed build output).
func (l *Loader) Resolve(component string) (string, error) {
	exact := filepath.Join(l.dir, component+".html")
	if info, err := os.Stat(exact); err == nil && !info.IsDir() {
		return exact, nil
	}

	// Glob returns matches in lexical order.
	candidates, err := filepath.Glob(filepath.Join(l.dir, component+"-*.html"))
	if err == nil && len(candidates) > 0 {
		return candidates[len(candidates)-1], nil
	}

	return "", &apperrors.AssetNotFoundError{Component: component, Dir: l.dir}
}

// Load returns the component's HTML with "./" script and style references
// rewritten to absolute URLs.
func (l *Loader) Load(component string) (string, error) {
	path, err := l.Resolve(component)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	modTime := info.ModTime()

	l.mu.Lock()
	entry, ok := l.cache[component]
	l.mu.Unlock()

	if ok && entry.modTime.Equal(modTime) {
		return entry.html, nil
	}

	data, err := l.readFile(path)
	if err != nil {
		return "", err
	}

	html := l.rewrite(string(data))

	// Concurrent first loads compute the same result; last writer wins.
	l.mu.Lock()
	l.cache[component] = cacheEntry{html: html, modTime: modTime}
	l.mu.Unlock()

	return html, nil
}

// ClearCache drops every cached entry.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.cache)
}

func (l *Loader) rewrite(html string) string {
	return strings.NewReplacer(
		`src="./`, `src="`+l.baseURL+`/`,
		`href="./`, `href="`+l.baseURL+`/`,
	).Replace(html)
}
