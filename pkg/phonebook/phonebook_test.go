package phonebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

const seedYAML = `profiles:
  - first_name: Ann
    last_name: Lee
    age: 34
    address:
      city: Springfield
      postcode: SP-1001
      street_name: Main
      gate_number: 12
    phone_numbers: ["555-1234"]
    contact_info:
      email: ann@example.com
      phone_number: 555-0000
  - first_name: Bob
    last_name: Lee
    age: 41
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOpen(t *testing.T) {
	for _, backend := range []string{types.BackendMemory, types.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir, err := Open(types.Config{Backend: backend}, nil)
			require.NoError(t, err)
			defer dir.Close()

			n, err := dir.Len()
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestOpenWithSeed(t *testing.T) {
	path := writeSeed(t, seedYAML)

	for _, backend := range []string{types.BackendMemory, types.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir, err := Open(types.Config{Backend: backend, SeedFile: path}, nil)
			require.NoError(t, err)
			defer dir.Close()

			found, err := dir.SearchByLastName("lee")
			require.NoError(t, err)
			require.Len(t, found, 2)
			assert.Equal(t, "Ann", found[0].FirstName)
			assert.Equal(t, "Bob", found[1].FirstName)
			assert.Equal(t, []string{"555-1234"}, found[0].PhoneNumbers)
		})
	}
}

func TestOpenErrors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := Open(types.Config{Backend: "postgres"}, nil)
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})

	t.Run("missing seed file", func(t *testing.T) {
		_, err := Open(types.Config{Backend: types.BackendMemory, SeedFile: filepath.Join(t.TempDir(), "nope.yaml")}, nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed seed file", func(t *testing.T) {
		path := writeSeed(t, "profiles: [")
		_, err := Open(types.Config{Backend: types.BackendMemory, SeedFile: path}, nil)
		assert.Error(t, err)
	})
}
