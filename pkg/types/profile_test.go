package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *Profile {
	return NewProfile(
		"Ann", "Lee", 34,
		NewAddress("Springfield", "SP-1001", "Main", 12),
		[]string{"555-1234", "555-9999"},
		NewContactInfo("ann@example.com", "555-0000"),
	)
}

func TestNewProfileOwnsPhoneNumbers(t *testing.T) {
	phones := []string{"555-1234"}
	p := NewProfile("Ann", "Lee", 34, Address{}, phones, ContactInfo{})

	phones[0] = "changed"
	assert.Equal(t, []string{"555-1234"}, p.PhoneNumbers)
	assert.Empty(t, p.ID, "ID is assigned by the directory")
}

func TestNewProfileAcceptsAnyInput(t *testing.T) {
	p := NewProfile("", "", -5, NewAddress("", "not a postcode", "", -1), nil, NewContactInfo("nope", ""))

	assert.Equal(t, -5, p.Age)
	assert.Equal(t, "not a postcode", p.Address.Postcode)
	assert.NotNil(t, p.PhoneNumbers)
	assert.Empty(t, p.PhoneNumbers)
}

func TestProfileSetContactInfo(t *testing.T) {
	p := sampleProfile()
	p.SetContactInfo(NewContactInfo("new@example.com", "555-7777"))

	assert.Equal(t, ContactInfo{Email: "new@example.com", PhoneNumber: "555-7777"}, p.ContactInfo)
}

func TestProfileClone(t *testing.T) {
	p := sampleProfile()
	p.ID = "some-id"

	c := p.Clone()
	require.Equal(t, p, c)

	c.PhoneNumbers[0] = "changed"
	c.Address.City = "Shelbyville"
	assert.Equal(t, "555-1234", p.PhoneNumbers[0])
	assert.Equal(t, "Springfield", p.Address.City)
}

func TestProfileMatchesFreeTerm(t *testing.T) {
	tests := []struct {
		name string
		term string
		want bool
	}{
		{"first name ignores case", "ANN", true},
		{"last name ignores case", "lee", true},
		{"street name ignores case", "main", true},
		{"city ignores case", "springfield", true},
		{"postcode ignores case", "sp-1001", true},
		{"phone number exact element", "555-1234", true},
		{"second phone number", "555-9999", true},
		{"phone number substring does not match", "555-12", false},
		{"phone number with extra space does not match", " 555-1234", false},
		{"name substring does not match", "An", false},
		{"street substring does not match", "Mai", false},
		{"contact info email is not searched", "ann@example.com", false},
		{"contact info phone is not searched", "555-0000", false},
		{"gate number is not searched", "12", false},
		{"empty term does not match", "", false},
	}

	p := sampleProfile()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.MatchesFreeTerm(tt.term))
		})
	}
}

// Phone numbers are compared case-sensitively while every other field
// ignores case. This mirrors the long-standing behavior and is kept on
// purpose.
func TestProfileMatchesFreeTermPhoneIsCaseSensitive(t *testing.T) {
	p := NewProfile("Ann", "Lee", 34, Address{}, []string{"555-CALL"}, ContactInfo{})

	assert.True(t, p.MatchesFreeTerm("555-CALL"))
	assert.False(t, p.MatchesFreeTerm("555-call"))
}

func TestFoldKeyAgreesWithEqualFold(t *testing.T) {
	pairs := [][2]string{
		{"Lee", "lee"},
		{"LEE", "lEe"},
		{"Main", "main"},
		{"Lee", "Li"},
		{"Åsa", "åsa"},
		{"Σίσυφος", "ΣΊΣΥΦΟΣ"},
		{"K", "K"}, // Kelvin sign folds to K.
		{"straße", "STRASSE"},
		{"", ""},
		{"a", ""},
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		assert.Equal(t, strings.EqualFold(a, b), FoldKey(a) == FoldKey(b), "%q vs %q", a, b)
	}
}
