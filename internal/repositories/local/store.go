package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a single-file JSON store for the device-local state the
// directory keeps outside any backend: favorite listing IDs and
// already-rated marks. It stands in for the browser's local storage.
type Store struct {
	path string

	mu    sync.Mutex
	state state
}

type state struct {
	FavoriteMesses []string       `json:"favorite_messes"`
	RatedMesses    map[string]int `json:"rated_messes"`
}

func NewStore(path string) (*Store, error) {
	s := &Store{path: path, state: state{RatedMesses: map[string]int{}}}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read local store: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return fmt.Errorf("decode local store: %w", err)
	}
	if s.state.RatedMesses == nil {
		s.state.RatedMesses = map[string]int{}
	}
	return nil
}

// save is called with s.mu held.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local store dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	return nil
}

// Favorites exposes the store as a FavoritesRepository.
func (s *Store) Favorites() *Favorites { return &Favorites{store: s} }

// RatedMarks exposes the store as a RatedMarksRepository.
func (s *Store) RatedMarks() *RatedMarks { return &RatedMarks{store: s} }

type Favorites struct {
	store *Store
}

func (f *Favorites) GetAll(context.Context) (map[string]struct{}, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	set := make(map[string]struct{}, len(f.store.state.FavoriteMesses))
	for _, id := range f.store.state.FavoriteMesses {
		set[id] = struct{}{}
	}
	return set, nil
}

func (f *Favorites) Toggle(_ context.Context, listingID string) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()

	ids := f.store.state.FavoriteMesses
	for i, id := range ids {
		if id == listingID {
			f.store.state.FavoriteMesses = append(ids[:i], ids[i+1:]...)
			return false, f.store.save()
		}
	}
	f.store.state.FavoriteMesses = append(ids, listingID)
	return true, f.store.save()
}

func (f *Favorites) Count(context.Context) (int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return len(f.store.state.FavoriteMesses), nil
}

type RatedMarks struct {
	store *Store
}

func (r *RatedMarks) HasRated(_ context.Context, listingID string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.state.RatedMesses[listingID]
	return ok, nil
}

func (r *RatedMarks) Rating(_ context.Context, listingID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.state.RatedMesses[listingID], nil
}

func (r *RatedMarks) Mark(_ context.Context, listingID string, stars int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.state.RatedMesses[listingID] = stars
	return r.store.save()
}
