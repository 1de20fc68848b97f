package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/internal/memory"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

const twoProfiles = `profiles:
  - first_name: Ann
    last_name: Lee
    age: 34
    address:
      city: Springfield
      postcode: SP-1001
      street_name: Main
      gate_number: 12
    phone_numbers:
      - 555-1234
      - 555-9999
    contact_info:
      email: ann@example.com
      phone_number: 555-0000
  - id: bob-lee
    first_name: Bob
    last_name: Lee
`

func TestDecode(t *testing.T) {
	profiles, err := Decode(strings.NewReader(twoProfiles))
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	want := types.NewProfile("Ann", "Lee", 34,
		types.NewAddress("Springfield", "SP-1001", "Main", 12),
		[]string{"555-1234", "555-9999"},
		types.NewContactInfo("ann@example.com", "555-0000"),
	)
	assert.Equal(t, want, profiles[0])

	assert.Equal(t, "bob-lee", profiles[1].ID)
	assert.Zero(t, profiles[1].Age)
	assert.NotNil(t, profiles[1].PhoneNumbers)
	assert.Empty(t, profiles[1].PhoneNumbers)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "unknown field", content: "profiles:\n  - first_name: Ann\n    nickname: A\n"},
		{name: "unknown top-level key", content: "people: []\n"},
		{name: "wrong type", content: "profiles:\n  - age: old\n"},
		{name: "null entry", content: "profiles:\n  - null\n", wantErr: types.ErrInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.content))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	profiles, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoProfiles), 0o644))

	profiles, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	dir := memory.NewBackend(nil)
	profiles, err := Decode(strings.NewReader(twoProfiles))
	require.NoError(t, err)

	n, err := Apply(dir, profiles)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := dir.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ann", all[0].FirstName)
	assert.NotEmpty(t, all[0].ID)
	assert.Equal(t, "bob-lee", all[1].ID)
}

func TestApplyStopsOnDuplicateID(t *testing.T) {
	dir := memory.NewBackend(nil)
	content := "profiles:\n  - id: x\n    first_name: A\n  - id: x\n    first_name: B\n  - first_name: C\n"
	profiles, err := Decode(strings.NewReader(content))
	require.NoError(t, err)

	n, err := Apply(dir, profiles)
	assert.ErrorIs(t, err, types.ErrDuplicateID)
	assert.Equal(t, 1, n)
}
