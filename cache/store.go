// Package cache stores compressed values in a pebble-backed key-value
// store. Values are framed with the blockpack codec on the way in and
// reconstructed on the way out. A stored frame that no longer decodes is
// surfaced as corruption, never as a missing key.
package cache

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"

	"github.com/oyakata/blockpack"
	"github.com/oyakata/blockpack/appctx"
)

var (
	// ErrNotFound indicates the key has no stored value.
	ErrNotFound = errors.New("cache: key not found")

	// ErrCorrupt indicates a non-empty stored frame failed to decode.
	ErrCorrupt = errors.New("cache: stored frame is corrupt")
)

// Store is a compressing key-value store. It satisfies both capability
// interfaces of appctx and is safe for concurrent use.
type Store struct {
	db    *pebble.DB
	level blockpack.Level
	log   zerolog.Logger
}

var (
	_ appctx.Cache    = (*Store)(nil)
	_ appctx.Database = (*Store)(nil)
)

// Options configure a Store.
type Options struct {
	// Level is the compression level applied on Set. Zero selects
	// blockpack.LevelFast.
	Level blockpack.Level

	// Logger receives corruption reports. Nil disables logging.
	Logger *zerolog.Logger
}

// Open opens (creating if necessary) a store at path.
func Open(path string, opts *Options) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	s := &Store{db: db, level: blockpack.LevelFast, log: zerolog.Nop()}
	if opts != nil {
		if opts.Level != 0 {
			s.level = opts.Level
		}
		if opts.Logger != nil {
			s.log = *opts.Logger
		}
	}
	return s, nil
}

// Set compresses value and writes it under key.
func (s *Store) Set(key, value []byte) error {
	frame, err := blockpack.EncodeFrame(value, s.level)
	if err != nil {
		return fmt.Errorf("cache: encode value for %q: %w", key, err)
	}
	if err := s.db.Set(key, frame, pebble.NoSync); err != nil {
		return fmt.Errorf("cache: set %q: %w", key, err)
	}
	return nil
}

// Get reads and decompresses the value stored under key. A decode failure
// of a non-empty frame reports ErrCorrupt: the key exists, its data is
// gone.
func (s *Store) Get(key []byte) ([]byte, error) {
	frame, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cache: get %q: %w", key, err)
	}
	defer closer.Close()

	value, err := blockpack.DecodeFrame(frame)
	if err != nil {
		s.log.Error().Err(err).Bytes("key", key).Msg("stored frame failed to decode")
		return nil, fmt.Errorf("%w: key %q: %v", ErrCorrupt, key, err)
	}
	return value, nil
}

// Delete removes the value stored under key. Deleting a missing key is
// not an error.
func (s *Store) Delete(key []byte) error {
	if err := s.db.Delete(key, pebble.NoSync); err != nil {
		return fmt.Errorf("cache: delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
