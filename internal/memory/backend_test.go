package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/internal/directorytest"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func newTestBackend(t *testing.T) types.Directory {
	t.Helper()
	b := NewBackend(nil)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBackendDirectory(t *testing.T) {
	directorytest.Run(t, newTestBackend)
}

// The memory backend hands out the stored pointers, so callers observe
// later changes through the reference they already hold.
func TestBackendSharesStoredProfiles(t *testing.T) {
	b := NewBackend(nil)
	p := directorytest.NewProfile("Ann", "Lee")
	id, err := b.Create(p)
	require.NoError(t, err)

	got, err := b.Get(id)
	require.NoError(t, err)
	assert.Same(t, p, got)

	found, err := b.SearchByLastName("lee")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Same(t, p, found[0])

	info := types.NewContactInfo("new@example.com", "555-7777")
	require.NoError(t, b.Update(found[0], info))
	assert.Equal(t, info, p.ContactInfo)
}

func TestBackendSearchReturnsNewSlice(t *testing.T) {
	b := NewBackend(nil)
	directorytest.MustCreate(t, b,
		directorytest.NewProfile("Ann", "Lee"),
		directorytest.NewProfile("Bob", "Lee"),
	)

	first, err := b.List()
	require.NoError(t, err)
	first[0] = nil

	second, err := b.List()
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.NotNil(t, second[0], "modifying a result must not affect the directory")
}

func TestBackendDeleteLeavesOrder(t *testing.T) {
	b := NewBackend(nil)
	ids := directorytest.MustCreate(t, b,
		directorytest.NewProfile("Ann", "Lee"),
		directorytest.NewProfile("Bob", "Lee"),
		directorytest.NewProfile("Cid", "Lee"),
		directorytest.NewProfile("Dee", "Lee"),
	)

	require.NoError(t, b.Delete(ids[1], true))
	require.NoError(t, b.Delete(ids[3], true))

	all, err := b.List()
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[2]}, directorytest.IDs(all))
}
