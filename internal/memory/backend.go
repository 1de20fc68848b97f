// Package memory implements the flat-slice Directory backend. Profiles are
// kept in insertion order and every lookup is a linear scan. Stored
// pointers are handed out directly, so a caller holding a Profile from
// Create or a search sees later updates to it.
package memory

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Compile-time interface check: Backend must implement Directory.
var _ types.Directory = (*Backend)(nil)

// Backend implements types.Directory over a slice.
type Backend struct {
	mu       sync.RWMutex
	closed   bool
	profiles []*types.Profile
	logger   *slog.Logger
}

// NewBackend returns an empty, open Backend. A nil logger discards output.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		profiles: []*types.Profile{},
		logger:   logger.With("backend", types.BackendMemory),
	}
}

// Create appends p and returns its ID.
func (b *Backend) Create(p *types.Profile) (string, error) {
	if p == nil {
		return "", types.ErrInvalidData
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return "", types.ErrClosed
	}

	if p.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating UUID v7: %w", err)
		}
		p.ID = id.String()
	} else if b.indexOf(p.ID) >= 0 {
		return "", types.ErrDuplicateID
	}
	if p.PhoneNumbers == nil {
		p.PhoneNumbers = []string{}
	}

	b.profiles = append(b.profiles, p)
	b.logger.Debug("profile created", "profile_id", p.ID, "count", len(b.profiles))
	return p.ID, nil
}

// Get returns the stored profile with the given ID.
func (b *Backend) Get(id string) (*types.Profile, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, types.ErrClosed
	}
	i := b.indexOf(id)
	if i < 0 {
		return nil, types.ErrNotFound
	}
	return b.profiles[i], nil
}

// List returns every profile in insertion order.
func (b *Backend) List() ([]*types.Profile, error) {
	return b.scan(func(*types.Profile) bool { return true })
}

// SearchByLastName returns profiles whose last name equals lastName ignoring case.
func (b *Backend) SearchByLastName(lastName string) ([]*types.Profile, error) {
	return b.scan(func(p *types.Profile) bool {
		return strings.EqualFold(p.LastName, lastName)
	})
}

// SearchByFirstName returns profiles whose first name equals firstName ignoring case.
func (b *Backend) SearchByFirstName(firstName string) ([]*types.Profile, error) {
	return b.scan(func(p *types.Profile) bool {
		return strings.EqualFold(p.FirstName, firstName)
	})
}

// SearchByAddress returns profiles whose street name equals streetName ignoring case.
func (b *Backend) SearchByAddress(streetName string) ([]*types.Profile, error) {
	return b.scan(func(p *types.Profile) bool {
		return strings.EqualFold(p.Address.StreetName, streetName)
	})
}

// FreeSearch returns profiles matching term on any free-search field.
func (b *Backend) FreeSearch(term string) ([]*types.Profile, error) {
	return b.scan(func(p *types.Profile) bool {
		return p.MatchesFreeTerm(term)
	})
}

// Update replaces the contact info on p without checking that p is stored.
// If the entry stored under p.ID is a different pointer it is updated too.
func (b *Backend) Update(p *types.Profile, info types.ContactInfo) error {
	if p == nil {
		return types.ErrInvalidData
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return types.ErrClosed
	}

	p.SetContactInfo(info)
	if p.ID == "" {
		return nil
	}
	if i := b.indexOf(p.ID); i >= 0 {
		b.profiles[i].SetContactInfo(info)
		b.logger.Debug("profile updated", "profile_id", p.ID)
	}
	return nil
}

// Delete removes the first profile stored under id when isAdmin is true.
func (b *Backend) Delete(id string, isAdmin bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return types.ErrClosed
	}
	if !isAdmin {
		b.logger.Warn("delete refused", "profile_id", id)
		return types.ErrPermissionDenied
	}
	if id == "" {
		return types.ErrInvalidID
	}

	i := b.indexOf(id)
	if i < 0 {
		return types.ErrNotFound
	}
	b.profiles = slices.Delete(b.profiles, i, i+1)
	b.logger.Debug("profile deleted", "profile_id", id, "count", len(b.profiles))
	return nil
}

// Len returns the number of stored profiles.
func (b *Backend) Len() (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return 0, types.ErrClosed
	}
	return len(b.profiles), nil
}

// Close drops the collection. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.profiles = nil
	return nil
}

// scan collects, in order, every profile for which match returns true.
func (b *Backend) scan(match func(*types.Profile) bool) ([]*types.Profile, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, types.ErrClosed
	}
	result := []*types.Profile{}
	for _, p := range b.profiles {
		if match(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

// indexOf returns the position of the first profile with the given ID, or -1.
// The caller must hold b.mu.
func (b *Backend) indexOf(id string) int {
	return slices.IndexFunc(b.profiles, func(p *types.Profile) bool {
		return p.ID == id
	})
}
