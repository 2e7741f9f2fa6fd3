package draft

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-changewizard/pkg/changes"
)

// Store saves and restores a changes.Draft under changes.DraftStorageKey.
type Store struct {
	storage Storage
	key     string
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore wraps storage.
func NewStore(storage Storage, options ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     changes.DraftStorageKey,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Save overwrites the stored draft.
func (s *Store) Save(d changes.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: encode: %w", err)
	}
	if err := s.storage.SetItem(s.key, string(payload)); err != nil {
		return fmt.Errorf("draft: save: %w", err)
	}
	s.logger.Debug("draft saved", zap.String("key", s.key), zap.Int("bytes", len(payload)))
	return nil
}

// Load returns the stored draft. found is false when nothing usable is
// stored. A payload that does not decode into a draft object is removed and
// reported as not found.
func (s *Store) Load() (changes.Draft, bool, error) {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		return changes.Draft{}, false, fmt.Errorf("draft: load: %w", err)
	}
	if !ok || raw == "" {
		return changes.Draft{}, false, nil
	}

	d, err := decode(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable draft", zap.String("key", s.key), zap.Error(err))
		if rmErr := s.storage.RemoveItem(s.key); rmErr != nil {
			return changes.Draft{}, false, fmt.Errorf("draft: remove corrupt draft: %w", rmErr)
		}
		return changes.Draft{}, false, nil
	}
	return d, true, nil
}

// Clear removes the stored draft.
func (s *Store) Clear() error {
	if err := s.storage.RemoveItem(s.key); err != nil {
		return fmt.Errorf("draft: clear: %w", err)
	}
	s.logger.Debug("draft cleared", zap.String("key", s.key))
	return nil
}

var errNotObject = errors.New("draft payload is not an object")

func decode(raw string) (changes.Draft, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return changes.Draft{}, err
	}
	if fields == nil {
		return changes.Draft{}, errNotObject
	}
	var d changes.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return changes.Draft{}, err
	}
	return d, nil
}
