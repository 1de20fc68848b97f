package types

import "errors"

// Directory is the phonebook: an ordered collection of profiles with
// create, search, update and admin-gated delete. Every search is a full
// scan in insertion order and returns a new, non-nil slice; no matches is
// an empty slice, never an error.
type Directory interface {
	// Create appends p. An empty p.ID is replaced by a new UUID v7; a
	// non-empty ID already in the directory returns ErrDuplicateID. Profiles
	// with identical content are distinct entries. Returns the ID used.
	Create(p *Profile) (string, error)

	// Get returns the profile with the given ID.
	// Returns ErrInvalidID for an empty id and ErrNotFound if absent.
	Get(id string) (*Profile, error)

	// List returns every stored profile in insertion order.
	List() ([]*Profile, error)

	// SearchByLastName returns profiles whose last name equals lastName
	// ignoring case.
	SearchByLastName(lastName string) ([]*Profile, error)

	// SearchByFirstName returns profiles whose first name equals firstName
	// ignoring case.
	SearchByFirstName(firstName string) ([]*Profile, error)

	// SearchByAddress returns profiles whose street name equals streetName
	// ignoring case.
	SearchByAddress(streetName string) ([]*Profile, error)

	// FreeSearch returns profiles for which Profile.MatchesFreeTerm(term)
	// holds.
	FreeSearch(term string) ([]*Profile, error)

	// Update replaces the contact info of p. There is no existence check:
	// a profile that is not in the directory is still updated and no error
	// is returned. When p.ID names a stored profile that entry is updated
	// as well.
	Update(p *Profile, info ContactInfo) error

	// Delete removes the profile with the given ID. A non-admin caller
	// gets ErrPermissionDenied and nothing is removed, whether or not the
	// profile exists. An admin deleting an absent ID gets ErrNotFound (or
	// ErrInvalidID for "") and the directory is unchanged.
	Delete(id string, isAdmin bool) error

	// Len returns the number of stored profiles.
	Len() (int, error)

	// Close releases backend resources. Idempotent. After Close every other
	// operation returns ErrClosed.
	Close() error
}

// Directory operation errors.
var (
	ErrNotFound         = errors.New("profile not found")
	ErrInvalidID        = errors.New("invalid profile ID")
	ErrInvalidData      = errors.New("invalid profile data")
	ErrDuplicateID      = errors.New("profile ID already in directory")
	ErrPermissionDenied = errors.New("you do not have permission to delete profiles")
	ErrClosed           = errors.New("directory is closed")
)

// PermissionDeniedMessage is the notice shown to a non-admin caller whose
// delete was refused.
const PermissionDeniedMessage = "You do not have permission to delete profiles."
