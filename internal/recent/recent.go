package recent

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

const (
	// StorageKey is the key holding the JSON array of recent cities.
	StorageKey = "cities"
	// MaxCities caps the list length.
	MaxCities = 5
	// Placeholder is the leading, non-selectable dropdown entry.
	Placeholder = "Select city"
)

// KV is the per-browser key/value persistence boundary.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Store keeps the most-recent-first, deduplicated list of searched cities.
type Store struct {
	mu sync.Mutex // serializes Record's read-modify-write
	kv KV
}

// NewStore creates a recent-cities store over kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted list. Absent or corrupt data yields an empty list.
func (s *Store) Load(ctx context.Context) []string {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		log.Printf("recent: read failed: %v", err)
		return []string{}
	}
	if !ok || raw == "" {
		return []string{}
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		log.Printf("recent: ignoring corrupt list: %v", err)
		return []string{}
	}
	if cities == nil {
		cities = []string{}
	}
	if len(cities) > MaxCities {
		cities = cities[:MaxCities]
	}
	return cities
}

// Record promotes city to the front of the list, drops any earlier
// occurrence (exact match), truncates to MaxCities and persists the result.
// The updated list is returned even if the write fails.
func (s *Store) Record(ctx context.Context, city string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cities := Promote(s.Load(ctx), city)

	data, err := json.Marshal(cities)
	if err != nil {
		log.Printf("recent: encode failed: %v", err)
		return cities
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		log.Printf("recent: write failed: %v", err)
	}
	return cities
}

// Promote returns a new list with city first and no other copy of it.
func Promote(cities []string, city string) []string {
	out := make([]string, 0, MaxCities)
	out = append(out, city)
	for _, c := range cities {
		if len(out) >= MaxCities {
			break
		}
		if c != city {
			out = append(out, c)
		}
	}
	return out
}

// Dropdown is the recent-searches selector as displayed.
type Dropdown struct {
	Visible     bool     `json:"visible"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options"`
}

// Render builds the selector for cities; an empty list stays hidden.
func Render(cities []string) Dropdown {
	if len(cities) == 0 {
		return Dropdown{Options: []string{}}
	}
	options := make([]string, len(cities))
	copy(options, cities)
	return Dropdown{
		Visible:     true,
		Placeholder: Placeholder,
		Options:     options,
	}
}

// MemoryKV is an in-process KV used when no database is available.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
