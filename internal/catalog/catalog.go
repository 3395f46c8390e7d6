package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKitNotFound is returned when a kit identifier is not part of the catalog.
var ErrKitNotFound = errors.New("catalog: kit not found")

// Kit is a pre-built gift box offered on the site.
type Kit struct {
	ID        string
	Name      string
	Short     string
	Price     int64 // minor units (cents)
	HeroImage string
	Items     []string
	Colors    []string
}

// DefaultColor returns the first customization color of the kit.
func (k Kit) DefaultColor() string {
	if len(k.Colors) == 0 {
		return ""
	}
	return k.Colors[0]
}

// HasColor reports whether c is one of the kit's customization colors.
func (k Kit) HasColor(c string) bool {
	for _, opt := range k.Colors {
		if opt == c {
			return true
		}
	}
	return false
}

// Anchor is the in-page fragment used to deep link the kit detail view.
func (k Kit) Anchor() string {
	return "kits-" + k.ID
}

// Store is an immutable, ordered set of kits.
type Store struct {
	kits []Kit
	byID map[string]int
}

// New validates kits and builds a Store. The slice is copied.
func New(kits []Kit) (*Store, error) {
	if len(kits) == 0 {
		return nil, errors.New("catalog: no kits")
	}
	s := &Store{
		kits: make([]Kit, 0, len(kits)),
		byID: make(map[string]int, len(kits)),
	}
	for i, k := range kits {
		id := strings.TrimSpace(k.ID)
		switch {
		case id == "" || id != k.ID:
			return nil, fmt.Errorf("catalog: kit %d: invalid id %q", i, k.ID)
		case k.Price < 0:
			return nil, fmt.Errorf("catalog: kit %s: negative price", k.ID)
		case len(k.Items) == 0:
			return nil, fmt.Errorf("catalog: kit %s: no items", k.ID)
		case len(k.Colors) == 0:
			return nil, fmt.Errorf("catalog: kit %s: no colors", k.ID)
		}
		if _, dup := s.byID[k.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate kit id %s", k.ID)
		}
		s.byID[k.ID] = len(s.kits)
		s.kits = append(s.kits, cloneKit(k))
	}
	return s, nil
}

// Kits returns the kits in catalog order.
func (s *Store) Kits() []Kit {
	out := make([]Kit, len(s.kits))
	for i, k := range s.kits {
		out[i] = cloneKit(k)
	}
	return out
}

// Lookup finds a kit by identifier.
func (s *Store) Lookup(id string) (Kit, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Kit{}, false
	}
	return cloneKit(s.kits[i]), true
}

// Get is Lookup with an error for callers that propagate failures.
func (s *Store) Get(id string) (Kit, error) {
	k, ok := s.Lookup(id)
	if !ok {
		return Kit{}, fmt.Errorf("%w: %q", ErrKitNotFound, id)
	}
	return k, nil
}

// First returns the first kit in catalog order.
func (s *Store) First() Kit {
	return cloneKit(s.kits[0])
}

// ResolveKitOrDefault returns the kit for id, or the first kit when id is unknown.
func (s *Store) ResolveKitOrDefault(id string) Kit {
	if k, ok := s.Lookup(id); ok {
		return k
	}
	return s.First()
}

func cloneKit(k Kit) Kit {
	k.Items = append([]string(nil), k.Items...)
	k.Colors = append([]string(nil), k.Colors...)
	return k
}
