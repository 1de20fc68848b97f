// Package sqlite implements a Directory backed by a private in-memory
// SQLite database. SQLite is the query engine only: nothing is written to
// disk and the data is gone after Close.
package sqlite

// Schema DDL. Each searchable text column has a *_key twin holding
// types.FoldKey of the value, so case-insensitive equality is a plain
// comparison with the same semantics as strings.EqualFold.
const (
	createProfiles = `CREATE TABLE profiles (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    profile_id TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    first_name_key TEXT NOT NULL,
    last_name TEXT NOT NULL,
    last_name_key TEXT NOT NULL,
    age INTEGER NOT NULL,
    city TEXT NOT NULL,
    city_key TEXT NOT NULL,
    postcode TEXT NOT NULL,
    postcode_key TEXT NOT NULL,
    street_name TEXT NOT NULL,
    street_name_key TEXT NOT NULL,
    gate_number INTEGER NOT NULL,
    email TEXT NOT NULL,
    contact_phone TEXT NOT NULL
);`

	createPhoneNumbers = `CREATE TABLE phone_numbers (
    profile_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    number TEXT NOT NULL,
    PRIMARY KEY (profile_id, position),
    FOREIGN KEY (profile_id) REFERENCES profiles(profile_id) ON DELETE CASCADE
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createProfiles,
	createPhoneNumbers,
}

// profileColumns is the column list hydrateProfile scans, in order.
const profileColumns = `profile_id, first_name, last_name, age, city, postcode, street_name, gate_number, email, contact_phone`

// Per-search WHERE clauses. Every search orders by seq, the insertion order.
const (
	whereAll       = `1 = 1`
	whereLastName  = `last_name_key = ?`
	whereFirstName = `first_name_key = ?`
	whereStreet    = `street_name_key = ?`

	// Phone numbers compare with SQLite's default BINARY collation: exact
	// and case-sensitive, unlike the folded scalar fields.
	whereFree = `first_name_key = ? OR last_name_key = ? OR street_name_key = ?
    OR city_key = ? OR postcode_key = ?
    OR EXISTS (SELECT 1 FROM phone_numbers pn WHERE pn.profile_id = profiles.profile_id AND pn.number = ?)`
)
