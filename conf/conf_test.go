package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyakata/blockpack/appctx"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestConfLookup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "store.toml", "path = \"/var/lib/pack\"\nlevel = 6\nsync = false\n")

	s := New(dir)
	m, err := s.Conf("store")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pack", m["path"])
	assert.Equal(t, int64(6), m["level"])
	assert.Equal(t, false, m["sync"])
}

func TestConfMissingFile(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Conf("nope")
	assert.Error(t, err)
}

func TestConfParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.toml", "= not toml at all\n")

	s := New(dir)
	_, err := s.Conf("bad")
	assert.Error(t, err)
}

func TestConfCachesFirstLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.toml", "mpm = \"thread\"\n")

	s := New(dir)
	m, err := s.Conf("app")
	require.NoError(t, err)
	assert.Equal(t, "thread", m["mpm"])

	// Later edits are not observed.
	writeFile(t, dir, "app.toml", "mpm = \"loop\"\n")
	m, err = s.Conf("app")
	require.NoError(t, err)
	assert.Equal(t, "thread", m["mpm"])
}

func TestTypedAccessors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "store.toml", "path = \"data\"\nlevel = 9\n")

	s := New(dir)
	assert.Equal(t, "data", s.String("store", "path", "fallback"))
	assert.Equal(t, "fallback", s.String("store", "missing", "fallback"))
	assert.Equal(t, "fallback", s.String("ghost", "path", "fallback"))
	assert.Equal(t, 9, s.Int("store", "level", 1))
	assert.Equal(t, 1, s.Int("store", "missing", 1))
	// Wrong-typed value falls back too.
	assert.Equal(t, 1, s.Int("store", "path", 1))
}

func TestMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.toml", "mpm = \"epoll\"\n")

	s := New(dir)
	m, err := s.Mode()
	require.NoError(t, err)
	assert.Equal(t, appctx.ModeLoop, m)
}

func TestModeDefaultsToThread(t *testing.T) {
	s := New(t.TempDir())
	m, err := s.Mode()
	require.NoError(t, err)
	assert.Equal(t, appctx.ModeThread, m)
}

func TestModeRejectsUnknown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.toml", "mpm = \"fork\"\n")

	s := New(dir)
	_, err := s.Mode()
	assert.ErrorIs(t, err, appctx.ErrUnknownMode)
}
