// Package types defines the Directory interface, the profile entity types,
// and the standard error types for the phonebook.
//
// A Directory holds Profiles in insertion order. Address and ContactInfo are
// plain values copied into the Profile that owns them.
package types
