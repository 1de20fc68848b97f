package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Compile-time interface check: Backend must implement Directory.
var _ types.Directory = (*Backend)(nil)

// Backend implements types.Directory on an in-memory SQLite database.
// Profiles returned by Get and the searches are hydrated copies.
type Backend struct {
	mu     sync.RWMutex
	closed bool
	db     *sql.DB
	logger *slog.Logger
}

// NewBackend opens a fresh in-memory database and creates the schema.
// A nil logger discards output.
func NewBackend(logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database; pin to one
	// connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &Backend{
		db:     db,
		logger: logger.With("backend", types.BackendSQLite),
	}, nil
}

// Create inserts p and its phone numbers in one transaction.
func (b *Backend) Create(p *types.Profile) (string, error) {
	if p == nil {
		return "", types.ErrInvalidData
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return "", types.ErrClosed
	}

	id := p.ID
	if id == "" {
		newID, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating UUID v7: %w", err)
		}
		id = newID.String()
	} else {
		exists, err := b.exists(id)
		if err != nil {
			return "", err
		}
		if exists {
			return "", types.ErrDuplicateID
		}
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO profiles (profile_id, first_name, first_name_key, last_name, last_name_key, age,
    city, city_key, postcode, postcode_key, street_name, street_name_key, gate_number, email, contact_phone)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		p.FirstName, types.FoldKey(p.FirstName),
		p.LastName, types.FoldKey(p.LastName),
		p.Age,
		p.Address.City, types.FoldKey(p.Address.City),
		p.Address.Postcode, types.FoldKey(p.Address.Postcode),
		p.Address.StreetName, types.FoldKey(p.Address.StreetName),
		p.Address.GateNumber,
		p.ContactInfo.Email, p.ContactInfo.PhoneNumber,
	)
	if err != nil {
		return "", fmt.Errorf("inserting profile: %w", err)
	}

	for i, number := range p.PhoneNumbers {
		if _, err := tx.Exec(
			"INSERT INTO phone_numbers (profile_id, position, number) VALUES (?, ?, ?)",
			id, i, number,
		); err != nil {
			return "", fmt.Errorf("inserting phone number: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing profile: %w", err)
	}

	p.ID = id
	if p.PhoneNumbers == nil {
		p.PhoneNumbers = []string{}
	}
	b.logger.Debug("profile created", "profile_id", id)
	return id, nil
}

// Get returns a copy of the profile with the given ID.
func (b *Backend) Get(id string) (*types.Profile, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, types.ErrClosed
	}

	row := b.db.QueryRow("SELECT "+profileColumns+" FROM profiles WHERE profile_id = ?", id)
	p, err := hydrateProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting profile %s: %w", id, err)
	}
	if err := b.hydratePhoneNumbers(p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every profile in insertion order.
func (b *Backend) List() ([]*types.Profile, error) {
	return b.query(whereAll)
}

// SearchByLastName returns profiles whose last name equals lastName ignoring case.
func (b *Backend) SearchByLastName(lastName string) ([]*types.Profile, error) {
	return b.query(whereLastName, types.FoldKey(lastName))
}

// SearchByFirstName returns profiles whose first name equals firstName ignoring case.
func (b *Backend) SearchByFirstName(firstName string) ([]*types.Profile, error) {
	return b.query(whereFirstName, types.FoldKey(firstName))
}

// SearchByAddress returns profiles whose street name equals streetName ignoring case.
func (b *Backend) SearchByAddress(streetName string) ([]*types.Profile, error) {
	return b.query(whereStreet, types.FoldKey(streetName))
}

// FreeSearch returns profiles matching term on any free-search field.
func (b *Backend) FreeSearch(term string) ([]*types.Profile, error) {
	key := types.FoldKey(term)
	return b.query(whereFree, key, key, key, key, key, term)
}

// Update sets the contact info on p and writes it to the row stored under
// p.ID, if there is one. A missing row is not an error.
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
	res, err := b.db.Exec(
		"UPDATE profiles SET email = ?, contact_phone = ? WHERE profile_id = ?",
		info.Email, info.PhoneNumber, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating profile %s: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		b.logger.Debug("profile updated", "profile_id", p.ID)
	}
	return nil
}

// Delete removes the profile and its phone numbers when isAdmin is true.
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

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM phone_numbers WHERE profile_id = ?", id); err != nil {
		return fmt.Errorf("deleting phone numbers for %s: %w", id, err)
	}
	res, err := tx.Exec("DELETE FROM profiles WHERE profile_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting profile %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	b.logger.Debug("profile deleted", "profile_id", id)
	return nil
}

// Len returns the number of stored profiles.
func (b *Backend) Len() (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return 0, types.ErrClosed
	}
	var n int
	if err := b.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting profiles: %w", err)
	}
	return n, nil
}

// Close closes the database, discarding all profiles. Idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// query runs a profile SELECT with the given WHERE clause in insertion
// order and hydrates phone numbers. Rows are drained before the phone
// queries run because the pool holds a single connection.
func (b *Backend) query(where string, args ...any) ([]*types.Profile, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, types.ErrClosed
	}

	rows, err := b.db.Query("SELECT "+profileColumns+" FROM profiles WHERE "+where+" ORDER BY seq", args...)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	result := []*types.Profile{}
	for rows.Next() {
		p, err := hydrateProfile(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	rows.Close()

	for _, p := range result {
		if err := b.hydratePhoneNumbers(p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// exists reports whether a profile is stored under id. The caller must hold b.mu.
func (b *Backend) exists(id string) (bool, error) {
	var one int
	err := b.db.QueryRow("SELECT 1 FROM profiles WHERE profile_id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking profile existence: %w", err)
	}
	return true, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateProfile scans profileColumns into a Profile. Phone numbers are
// loaded separately.
func hydrateProfile(row scanner) (*types.Profile, error) {
	p := &types.Profile{PhoneNumbers: []string{}}
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Age,
		&p.Address.City, &p.Address.Postcode, &p.Address.StreetName, &p.Address.GateNumber,
		&p.ContactInfo.Email, &p.ContactInfo.PhoneNumber,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// hydratePhoneNumbers loads p's phone numbers in their original order.
func (b *Backend) hydratePhoneNumbers(p *types.Profile) error {
	rows, err := b.db.Query("SELECT number FROM phone_numbers WHERE profile_id = ? ORDER BY position", p.ID)
	if err != nil {
		return fmt.Errorf("querying phone numbers for %s: %w", p.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return fmt.Errorf("scanning phone number: %w", err)
		}
		p.PhoneNumbers = append(p.PhoneNumbers, number)
	}
	return rows.Err()
}
