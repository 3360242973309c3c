// Package memory is an in-process content store seeded from a fixture file.
// It backs local development and tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/classroom-viewer/internal/adapters/store"
	"github.com/jsamuelsen/classroom-viewer/internal/domain"
	"github.com/jsamuelsen/classroom-viewer/internal/ports"
)

var (
	_ ports.ContentStore  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Fixture is the on-disk layout: collection name to its records.
//
//	collections:
//	  slaytKategoriAdlari:
//	    - name: Kesirler
//	  Kesirler:
//	    - {name: Kesirlere Giriş, type: slayt, grade: 5, link: https://...}
//
// JSON fixtures work too since YAML is a superset.
type Fixture struct {
	Collections map[string][]map[string]any `yaml:"collections"`
}

// Store keeps collections as field maps guarded by a RWMutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]map[string]any
}

// New creates an empty store.
func New() *Store {
	return &Store{collections: make(map[string][]map[string]any)}
}

// Load reads a fixture file into a new store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content fixture: %w", err)
	}

	return Parse(data)
}

// Parse decodes fixture data into a new store.
func Parse(data []byte) (*Store, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing content fixture: %w", err)
	}

	s := New()
	for name, records := range fx.Collections {
		s.Put(name, records...)
	}

	return s, nil
}

// Put appends records to a collection.
func (s *Store) Put(collection string, records ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		s.collections[collection] = append(s.collections[collection], maps.Clone(r))
	}
}

// CategoryNames implements ports.ContentStore.
func (s *Store) CategoryNames(ctx context.Context, collection string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string

	for _, r := range s.collections[collection] {
		if name, ok := store.CategoryName(r); ok {
			names = append(names, name)
		}
	}

	return names, nil
}

// DocumentsByGrade implements ports.ContentStore.
func (s *Store) DocumentsByGrade(ctx context.Context, collection string, grade domain.Grade) ([]domain.ContentDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []domain.ContentDocument

	for _, r := range s.collections[collection] {
		if store.MatchesGrade(r, grade) {
			docs = append(docs, store.DocumentFromFields(r))
		}
	}

	return docs, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return store.HealthName
}

// Check implements ports.HealthChecker; an in-process store is always up.
func (s *Store) Check(context.Context) error {
	return nil
}
