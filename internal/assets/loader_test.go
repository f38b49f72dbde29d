package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/wagiedev/mcp-apps-go/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_ExactFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "boilerplate.html", "<html>card</html>")

	loader := NewLoader(dir, "")

	html, err := loader.Load("boilerplate")
	require.NoError(t, err)
	require.Equal(t, "<html>card</html>", html)
}

func TestLoad_FallsBackToHashedFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "carousel-abc123.html", "<html>hashed</html>")

	html, err := NewLoader(dir, "").Load("carousel")
	require.NoError(t, err)
	require.Equal(t, "<html>hashed</html>", html)
}

func TestLoad_UsesLastHashedFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "list-aaa.html", "<html>old</html>")
	writeFile(t, dir, "list-zzz.html", "<html>new</html>")
	writeFile(t, dir, "list-mmm.html", "<html>mid</html>")

	html, err := NewLoader(dir, "").Load("list")
	require.NoError(t, err)
	require.Equal(t, "<html>new</html>", html)
}

func TestLoad_ExactWinsOverHashed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "qr.html", "<html>exact</html>")
	writeFile(t, dir, "qr-zzz.html", "<html>hashed</html>")

	html, err := NewLoader(dir, "").Load("qr")
	require.NoError(t, err)
	require.Equal(t, "<html>exact</html>", html)
}

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := NewLoader(dir, "").Load("missing")
	require.ErrorIs(t, err, apperrors.ErrNoAssets)

	notFound, ok := errors.AsType[*apperrors.AssetNotFoundError](err)
	require.True(t, ok)
	require.Equal(t, "missing", notFound.Component)
	require.Equal(t, dir, notFound.Dir)
	require.Contains(t, err.Error(), `"missing"`)
	require.Contains(t, err.Error(), dir)
}

func TestLoad_RewritesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "map.html",
		`<script type="module" src="./map-1.js"></script><link rel="stylesheet" href="./map-1.css"><a href="https://x">x</a>`)

	html, err := NewLoader(dir, "https://example.com/static/").Load("map")
	require.NoError(t, err)
	require.Equal(t,
		`<script type="module" src="https://example.com/static/map-1.js"></script>`+
			`<link rel="stylesheet" href="https://example.com/static/map-1.css"><a href="https://x">x</a>`,
		html)
}

func TestLoad_DefaultBaseURL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "todo.html", `<script src="./todo.js"></script>`)

	html, err := NewLoader(dir, "").Load("todo")
	require.NoError(t, err)
	require.Equal(t, `<script src="http://localhost:8000/assets/todo.js"></script>`, html)
}

func TestLoad_CachesUntilModified(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "boilerplate.html", "<html>v1</html>")

	loader := NewLoader(dir, "")

	reads := 0
	loader.readFile = func(name string) ([]byte, error) {
		reads++

		return os.ReadFile(name)
	}

	first, err := loader.Load("boilerplate")
	require.NoError(t, err)

	second, err := loader.Load("boilerplate")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, reads, "unchanged file must be served from cache")

	require.NoError(t, os.WriteFile(path, []byte("<html>v2</html>"), 0o600))

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	third, err := loader.Load("boilerplate")
	require.NoError(t, err)
	require.Equal(t, "<html>v2</html>", third)
	require.Equal(t, 2, reads)
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shop.html", "<html>shop</html>")

	loader := NewLoader(dir, "")

	reads := 0
	loader.readFile = func(name string) ([]byte, error) {
		reads++

		return os.ReadFile(name)
	}

	_, err := loader.Load("shop")
	require.NoError(t, err)

	loader.ClearCache()

	_, err = loader.Load("shop")
	require.NoError(t, err)
	require.Equal(t, 2, reads)
}

func TestNormalizeBaseURL(t *testing.T) {
	require.Equal(t, DefaultBaseURL, NormalizeBaseURL(""))
	require.Equal(t, "https://cdn.example.com/assets", NormalizeBaseURL("https://cdn.example.com/assets//"))
}
