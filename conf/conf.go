// Package conf loads named application settings files. A Settings
// resolves <dir>/<name>.toml into a key/value map, caching each file after
// the first successful load.
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/oyakata/blockpack/appctx"
)

// AppFile is the settings file consulted for application-level keys such
// as the multiprocessing mode.
const AppFile = "app"

// Settings resolves configuration maps by file name from one directory.
// It is safe for concurrent use.
type Settings struct {
	dir   string
	files *xsync.Map[string, map[string]any]
}

// New creates a Settings rooted at dir. The directory is not touched
// until the first lookup.
func New(dir string) *Settings {
	return &Settings{
		dir:   dir,
		files: xsync.NewMap[string, map[string]any](),
	}
}

// Conf returns the key/value map parsed from <dir>/<name>.toml. The first
// successful load is cached; later edits to the file are not observed.
func (s *Settings) Conf(name string) (map[string]any, error) {
	if m, ok := s.files.Load(name); ok {
		return m, nil
	}

	path := filepath.Join(s.dir, name+".toml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("conf: read %s: %w", path, err)
	}
	m := map[string]any{}
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("conf: parse %s: %w", path, err)
	}

	cached, _ := s.files.LoadOrStore(name, m)
	return cached, nil
}

// String returns a string-valued key from a named settings file, or def
// when the file, the key, or a string value is absent.
func (s *Settings) String(name, key, def string) string {
	m, err := s.Conf(name)
	if err != nil {
		return def
	}
	v, ok := m[key].(string)
	if !ok {
		return def
	}
	return v
}

// Int returns an integer-valued key from a named settings file, or def
// when absent. TOML integers decode as int64.
func (s *Settings) Int(name, key string, def int) int {
	m, err := s.Conf(name)
	if err != nil {
		return def
	}
	v, ok := m[key].(int64)
	if !ok {
		return def
	}
	return int(v)
}

// Mode reads the multiprocessing mode from the application settings file
// ("mpm" key, default "thread").
func (s *Settings) Mode() (appctx.Mode, error) {
	return appctx.ParseMode(s.String(AppFile, "mpm", "thread"))
}
