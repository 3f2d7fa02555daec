// Package ledger owns the user's transactions and categories: it enforces
// their invariants, persists them to a blob store after every change and
// computes balances and statements from them.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/tallybook/tally/internal/blobstore"
	"github.com/tallybook/tally/internal/id"
	"github.com/tallybook/tally/internal/model"
)

// DefaultKey is the blob key the ledger is stored under.
const DefaultKey = "meu_financeiro_db"

// corruptSuffix is appended to the key to keep a copy of a blob that could not be parsed.
const corruptSuffix = ".corrupt"

// LoadStatus tells how Load obtained the ledger.
type LoadStatus int

const (
	// Loaded means the stored ledger was read and parsed.
	Loaded LoadStatus = iota
	// Seeded means nothing was stored; the default categories were written.
	Seeded
	// Recovered means the stored ledger was malformed; it was backed up
	// under <key>.corrupt and replaced by the seed.
	Recovered
	// Fallback means the store could not be read. The session runs on the
	// seed, nothing is written and every change fails with ErrStorageUnavailable.
	Fallback
)

func (s LoadStatus) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Seeded:
		return "seeded"
	case Recovered:
		return "recovered"
	case Fallback:
		return "fallback"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// Store is the single owner of a Ledger. It is not safe for concurrent use.
type Store struct {
	blobs  blobstore.Store
	key    string
	seed   []model.Category
	now    func() time.Time
	ids    *id.Generator
	log    *slog.Logger
	ledger model.Ledger

	// detached is set when the stored ledger could not be read. The session
	// runs on the seed and refuses to write over data it never saw.
	detached bool
}

// Option configures a Store.
type Option func(*Store)

// WithKey stores the ledger under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithClock sets the source of "today" and of generated ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithSeed replaces the categories a fresh ledger starts with.
func WithSeed(categories []model.Category) Option {
	return func(s *Store) { s.seed = slices.Clone(categories) }
}

// NewStore returns a Store backed by blobs. Call Load before using it.
func NewStore(blobs blobstore.Store, opts ...Option) *Store {
	s := &Store{
		blobs: blobs,
		key:   DefaultKey,
		seed:  DefaultCategories(),
		now:   time.Now,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = id.NewGenerator(s.now)
	return s
}

// Load reads the ledger from the blob store. It never fails: a missing,
// unreadable or malformed blob leaves the store on the seed categories,
// and the returned status says which case applied.
func (s *Store) Load() LoadStatus {
	s.detached = false
	data, err := s.blobs.Get(s.key)
	if errors.Is(err, blobstore.ErrNotFound) {
		s.log.Info("no stored ledger, seeding defaults", "key", s.key)
		s.reseed()
		return Seeded
	}
	if err != nil {
		s.log.Warn("ledger storage unavailable, using defaults without saving", "key", s.key, "error", err)
		s.adopt(model.Ledger{Categories: slices.Clone(s.seed)})
		s.detached = true
		return Fallback
	}

	l, skipped, err := Decode(data)
	if err != nil {
		backup := s.key + corruptSuffix
		s.log.Warn("stored ledger is malformed, resetting to defaults",
			"key", s.key, "backup_key", backup, "error", err)
		if err := s.blobs.Set(backup, data); err != nil {
			s.log.Warn("backing up malformed ledger failed", "backup_key", backup, "error", err)
		}
		s.reseed()
		return Recovered
	}

	if len(skipped) > 0 {
		backup := s.key + corruptSuffix
		s.log.Warn("dropped stored transactions without an amount",
			"key", s.key, "ids", skipped, "backup_key", backup)
		if err := s.blobs.Set(backup, data); err != nil {
			s.log.Warn("backing up stored ledger failed", "backup_key", backup, "error", err)
		}
	}

	s.adopt(l)
	s.log.Debug("ledger loaded", "key", s.key,
		"transactions", len(l.Transactions), "categories", len(l.Categories))
	return Loaded
}

// Save writes the whole ledger under the store's key.
func (s *Store) Save() error {
	return s.persist(s.ledger)
}

// Ledger returns a copy of the current ledger.
func (s *Store) Ledger() model.Ledger {
	return s.ledger.Clone()
}

func (s *Store) reseed() {
	s.adopt(model.Ledger{Categories: slices.Clone(s.seed)})
	if err := s.Save(); err != nil {
		s.log.Warn("persisting default ledger failed", "key", s.key, "error", err)
	}
}

func (s *Store) adopt(l model.Ledger) {
	for _, t := range l.Transactions {
		s.ids.Observe(t.ID)
	}
	for _, c := range l.Categories {
		s.ids.Observe(c.ID)
	}
	s.ledger = l
}

func (s *Store) persist(l model.Ledger) error {
	if s.detached {
		return fmt.Errorf("%w: stored ledger was never read, refusing to overwrite it", ErrStorageUnavailable)
	}
	data, err := Encode(l)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := s.blobs.Set(s.key, data); err != nil {
		return fmt.Errorf("%w: saving ledger: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// commit saves next and makes it current only once the write succeeded.
func (s *Store) commit(next model.Ledger) error {
	if err := s.persist(next); err != nil {
		return err
	}
	s.ledger = next
	return nil
}

func (s *Store) today() time.Time {
	return day(s.now())
}
