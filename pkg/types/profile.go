package types

import (
	"slices"
	"strings"
	"unicode"
)

// Address is where a profile lives. It is a value: a Profile holds its own
// copy and nothing in the package mutates it after construction.
type Address struct {
	City       string `json:"city" yaml:"city"`
	Postcode   string `json:"postcode" yaml:"postcode"`
	StreetName string `json:"street_name" yaml:"street_name"`
	GateNumber int    `json:"gate_number" yaml:"gate_number"`
}

// NewAddress returns an Address. No field is validated.
func NewAddress(city, postcode, streetName string, gateNumber int) Address {
	return Address{
		City:       city,
		Postcode:   postcode,
		StreetName: streetName,
		GateNumber: gateNumber,
	}
}

// ContactInfo is the replaceable contact part of a profile.
type ContactInfo struct {
	Email       string `json:"email" yaml:"email"`
	PhoneNumber string `json:"phone_number" yaml:"phone_number"`
}

// NewContactInfo returns a ContactInfo. Neither field is validated.
func NewContactInfo(email, phoneNumber string) ContactInfo {
	return ContactInfo{Email: email, PhoneNumber: phoneNumber}
}

// Profile is one directory entry.
type Profile struct {
	ID           string      `json:"id" yaml:"id,omitempty"` // UUID v7, assigned by Directory.Create.
	FirstName    string      `json:"first_name" yaml:"first_name"`
	LastName     string      `json:"last_name" yaml:"last_name"`
	Age          int         `json:"age" yaml:"age"`
	Address      Address     `json:"address" yaml:"address"`
	PhoneNumbers []string    `json:"phone_numbers" yaml:"phone_numbers"`
	ContactInfo  ContactInfo `json:"contact_info" yaml:"contact_info"`
}

// NewProfile returns a Profile that owns a copy of phoneNumbers. The ID is
// left empty; Directory.Create assigns one.
func NewProfile(firstName, lastName string, age int, address Address, phoneNumbers []string, contactInfo ContactInfo) *Profile {
	phones := make([]string, len(phoneNumbers))
	copy(phones, phoneNumbers)
	return &Profile{
		FirstName:    firstName,
		LastName:     lastName,
		Age:          age,
		Address:      address,
		PhoneNumbers: phones,
		ContactInfo:  contactInfo,
	}
}

// SetContactInfo replaces the contact info. It is the only mutation a
// Profile supports after creation.
func (p *Profile) SetContactInfo(info ContactInfo) {
	p.ContactInfo = info
}

// Clone returns a deep copy of the profile, including its ID.
func (p *Profile) Clone() *Profile {
	c := *p
	c.PhoneNumbers = slices.Clone(p.PhoneNumbers)
	if c.PhoneNumbers == nil {
		c.PhoneNumbers = []string{}
	}
	return &c
}

// MatchesFreeTerm reports whether term matches the profile under free
// search rules. Names, street, city and postcode compare with
// strings.EqualFold; phone numbers must contain term as an exact,
// case-sensitive element. Contact info is not searched.
func (p *Profile) MatchesFreeTerm(term string) bool {
	return strings.EqualFold(p.FirstName, term) ||
		strings.EqualFold(p.LastName, term) ||
		strings.EqualFold(p.Address.StreetName, term) ||
		strings.EqualFold(p.Address.City, term) ||
		strings.EqualFold(p.Address.Postcode, term) ||
		slices.Contains(p.PhoneNumbers, term)
}

// FoldKey maps s to a canonical form such that FoldKey(a) == FoldKey(b)
// exactly when strings.EqualFold(a, b). Each rune is replaced by the
// smallest rune of its simple case-folding orbit. Backends that compare in
// a query engine store this key instead of calling EqualFold.
func FoldKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

func foldRune(r rune) rune {
	lowest := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < lowest {
			lowest = f
		}
	}
	return lowest
}
