// Package directorytest provides a behavior suite that every
// types.Directory backend must pass. Backend packages call Run from their
// own tests with a constructor for a fresh, empty directory.
package directorytest

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Factory returns a new, empty Directory. Implementations should register
// cleanup with t.
type Factory func(t *testing.T) types.Directory

// Run executes the full suite against directories built by newDir.
func Run(t *testing.T, newDir Factory) {
	t.Run("Create", func(t *testing.T) { testCreate(t, newDir) })
	t.Run("Get", func(t *testing.T) { testGet(t, newDir) })
	t.Run("SearchByLastName", func(t *testing.T) { testSearchByLastName(t, newDir) })
	t.Run("SearchByFirstName", func(t *testing.T) { testSearchByFirstName(t, newDir) })
	t.Run("SearchByAddress", func(t *testing.T) { testSearchByAddress(t, newDir) })
	t.Run("FreeSearch", func(t *testing.T) { testFreeSearch(t, newDir) })
	t.Run("Update", func(t *testing.T) { testUpdate(t, newDir) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newDir) })
	t.Run("Close", func(t *testing.T) { testClose(t, newDir) })
	t.Run("Concurrent", func(t *testing.T) { testConcurrent(t, newDir) })
}

// NewProfile builds a profile with a fixed address and contact info, for
// tests that only care about names and phones.
func NewProfile(first, last string, phones ...string) *types.Profile {
	return types.NewProfile(first, last, 30,
		types.NewAddress("Springfield", "SP-1001", "Main", 1),
		phones,
		types.NewContactInfo(first+"@example.com", "555-0000"),
	)
}

// MustCreate adds each profile to dir and returns their IDs in order.
func MustCreate(t *testing.T, dir types.Directory, profiles ...*types.Profile) []string {
	t.Helper()
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		id, err := dir.Create(p)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// IDs returns the IDs of profiles in order.
func IDs(profiles []*types.Profile) []string {
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	return ids
}

func testCreate(t *testing.T, newDir Factory) {
	t.Run("assigns an ID and keeps insertion order", func(t *testing.T) {
		dir := newDir(t)
		ids := MustCreate(t, dir,
			NewProfile("Ann", "Lee"),
			NewProfile("Bob", "Lee"),
			NewProfile("Cid", "Moe"),
		)
		for _, id := range ids {
			assert.NotEmpty(t, id)
		}

		all, err := dir.List()
		require.NoError(t, err)
		assert.Equal(t, ids, IDs(all))

		n, err := dir.Len()
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("writes the ID back to the profile", func(t *testing.T) {
		dir := newDir(t)
		p := NewProfile("Ann", "Lee")
		id, err := dir.Create(p)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
	})

	t.Run("identical content gives distinct entries", func(t *testing.T) {
		dir := newDir(t)
		ids := MustCreate(t, dir, NewProfile("Ann", "Lee"), NewProfile("Ann", "Lee"))
		assert.NotEqual(t, ids[0], ids[1])

		found, err := dir.SearchByLastName("Lee")
		require.NoError(t, err)
		assert.Equal(t, ids, IDs(found))
	})

	t.Run("keeps a caller supplied ID", func(t *testing.T) {
		dir := newDir(t)
		p := NewProfile("Ann", "Lee")
		p.ID = "ann-lee"
		id, err := dir.Create(p)
		require.NoError(t, err)
		assert.Equal(t, "ann-lee", id)
	})

	t.Run("rejects an ID already stored", func(t *testing.T) {
		dir := newDir(t)
		p := NewProfile("Ann", "Lee")
		MustCreate(t, dir, p)

		_, err := dir.Create(p)
		assert.ErrorIs(t, err, types.ErrDuplicateID)

		n, err := dir.Len()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("rejects nil", func(t *testing.T) {
		dir := newDir(t)
		_, err := dir.Create(nil)
		assert.ErrorIs(t, err, types.ErrInvalidData)
	})

	t.Run("accepts unvalidated fields", func(t *testing.T) {
		dir := newDir(t)
		p := types.NewProfile("", "", -1, types.NewAddress("", "??", "", -7), nil, types.ContactInfo{Email: "not-an-email"})
		id, err := dir.Create(p)
		require.NoError(t, err)

		got, err := dir.Get(id)
		require.NoError(t, err)
		assert.Equal(t, -1, got.Age)
		assert.Equal(t, "??", got.Address.Postcode)
		assert.Equal(t, -7, got.Address.GateNumber)
		assert.Empty(t, got.PhoneNumbers)
	})
}

func testGet(t *testing.T, newDir Factory) {
	dir := newDir(t)
	p := types.NewProfile("Ann", "Lee", 34,
		types.NewAddress("Springfield", "SP-1001", "Main", 12),
		[]string{"555-1234", "555-9999"},
		types.NewContactInfo("ann@example.com", "555-0000"),
	)
	id := MustCreate(t, dir, p)[0]

	got, err := dir.Get(id)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = dir.Get("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = dir.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func testSearchByLastName(t *testing.T, newDir Factory) {
	t.Run("empty directory returns empty result", func(t *testing.T) {
		dir := newDir(t)
		found, err := dir.SearchByLastName("Lee")
		require.NoError(t, err)
		assert.NotNil(t, found)
		assert.Empty(t, found)
	})

	dir := newDir(t)
	ids := MustCreate(t, dir,
		NewProfile("Ann", "Lee"),
		NewProfile("Cid", "Moe"),
		NewProfile("Bob", "Lee"),
		NewProfile("Dee", "Leeds"),
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"lower case query matches both in insertion order", "lee", []string{ids[0], ids[2]}},
		{"mixed case query matches the same profiles", "Lee", []string{ids[0], ids[2]}},
		{"upper case query", "LEE", []string{ids[0], ids[2]}},
		{"prefix does not match", "Le", []string{}},
		{"no match", "Zed", []string{}},
		{"empty query", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := dir.SearchByLastName(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, IDs(found))
		})
	}
}

func testSearchByFirstName(t *testing.T, newDir Factory) {
	dir := newDir(t)
	ids := MustCreate(t, dir,
		NewProfile("Ann", "Lee"),
		NewProfile("ann", "Moe"),
		NewProfile("Anne", "Roe"),
	)

	found, err := dir.SearchByFirstName("ANN")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[1]}, IDs(found))

	found, err = dir.SearchByFirstName("Lee")
	require.NoError(t, err)
	assert.Empty(t, found, "last names are not searched")
}

func testSearchByAddress(t *testing.T, newDir Factory) {
	dir := newDir(t)
	onMain := types.NewProfile("Ann", "Lee", 30, types.NewAddress("Springfield", "SP-1", "main", 4), nil, types.ContactInfo{})
	onElm := types.NewProfile("Bob", "Lee", 30, types.NewAddress("Main", "SP-2", "Elm", 5), nil, types.ContactInfo{})
	ids := MustCreate(t, dir, onMain, onElm)

	found, err := dir.SearchByAddress("Main")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0]}, IDs(found), "only the street name is compared")

	found, err = dir.SearchByAddress("elm")
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1]}, IDs(found))

	found, err = dir.SearchByAddress("Main Street")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func testFreeSearch(t *testing.T, newDir Factory) {
	dir := newDir(t)
	ann := types.NewProfile("Ann", "Lee", 34,
		types.NewAddress("Springfield", "SP-1001", "main", 12),
		[]string{"555-1234"},
		types.NewContactInfo("ann@example.com", "555-0000"),
	)
	bob := types.NewProfile("Bob", "Stone", 41,
		types.NewAddress("Shelbyville", "SH-2002", "Elm", 3),
		[]string{"555-CALL", "555-9999"},
		types.NewContactInfo("bob@example.com", "555-1111"),
	)
	ids := MustCreate(t, dir, ann, bob)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"street ignores case", "Main", []string{ids[0]}},
		{"first name", "bob", []string{ids[1]}},
		{"last name", "LEE", []string{ids[0]}},
		{"city", "SHELBYVILLE", []string{ids[1]}},
		{"postcode", "sp-1001", []string{ids[0]}},
		{"phone verbatim", "555-1234", []string{ids[0]}},
		{"second phone", "555-9999", []string{ids[1]}},
		{"phone is case sensitive", "555-call", []string{}},
		{"phone exact case", "555-CALL", []string{ids[1]}},
		{"phone substring", "555-12", []string{}},
		{"name substring", "Stoneware", []string{}},
		{"contact email not searched", "ann@example.com", []string{}},
		{"contact phone not searched", "555-1111", []string{}},
		{"empty term matches nothing", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := dir.FreeSearch(tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, IDs(found))
		})
	}

	t.Run("term matching several profiles keeps order", func(t *testing.T) {
		dir := newDir(t)
		ids := MustCreate(t, dir,
			NewProfile("Ann", "Lee"),
			NewProfile("Bob", "Roe"),
			NewProfile("Cid", "Moe"),
		)
		found, err := dir.FreeSearch("springfield")
		require.NoError(t, err)
		assert.Equal(t, ids, IDs(found))
	})
}

func testUpdate(t *testing.T, newDir Factory) {
	info := types.NewContactInfo("new@example.com", "555-7777")

	t.Run("replaces stored contact info", func(t *testing.T) {
		dir := newDir(t)
		p := NewProfile("Ann", "Lee")
		id := MustCreate(t, dir, p)[0]

		require.NoError(t, dir.Update(p, info))
		assert.Equal(t, info, p.ContactInfo)

		got, err := dir.Get(id)
		require.NoError(t, err)
		assert.Equal(t, info, got.ContactInfo)
		assert.Equal(t, "Ann", got.FirstName, "only contact info changes")
	})

	t.Run("updates through a copy of a stored profile", func(t *testing.T) {
		dir := newDir(t)
		id := MustCreate(t, dir, NewProfile("Ann", "Lee"))[0]
		got, err := dir.Get(id)
		require.NoError(t, err)

		require.NoError(t, dir.Update(got.Clone(), info))

		got, err = dir.Get(id)
		require.NoError(t, err)
		assert.Equal(t, info, got.ContactInfo)
	})

	t.Run("updates a profile that was never added", func(t *testing.T) {
		dir := newDir(t)
		p := NewProfile("Ann", "Lee")

		require.NoError(t, dir.Update(p, info))
		assert.Equal(t, info, p.ContactInfo)

		n, err := dir.Len()
		require.NoError(t, err)
		assert.Zero(t, n, "update does not add")
	})

	t.Run("updates a profile after it was deleted", func(t *testing.T) {
		dir := newDir(t)
		p := NewProfile("Ann", "Lee")
		id := MustCreate(t, dir, p)[0]
		require.NoError(t, dir.Delete(id, true))

		require.NoError(t, dir.Update(p, info))
		assert.Equal(t, info, p.ContactInfo)
	})

	t.Run("does not touch other entries", func(t *testing.T) {
		dir := newDir(t)
		ann, bob := NewProfile("Ann", "Lee"), NewProfile("Bob", "Lee")
		ids := MustCreate(t, dir, ann, bob)

		require.NoError(t, dir.Update(ann, info))

		got, err := dir.Get(ids[1])
		require.NoError(t, err)
		assert.Equal(t, "Bob@example.com", got.ContactInfo.Email)
	})

	t.Run("rejects nil", func(t *testing.T) {
		dir := newDir(t)
		assert.ErrorIs(t, dir.Update(nil, info), types.ErrInvalidData)
	})
}

func testDelete(t *testing.T, newDir Factory) {
	t.Run("non-admin never removes", func(t *testing.T) {
		dir := newDir(t)
		id := MustCreate(t, dir, NewProfile("Ann", "Lee"))[0]

		for range 3 {
			assert.ErrorIs(t, dir.Delete(id, false), types.ErrPermissionDenied)
		}

		got, err := dir.Get(id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("non-admin is refused before existence is checked", func(t *testing.T) {
		dir := newDir(t)
		assert.ErrorIs(t, dir.Delete("missing", false), types.ErrPermissionDenied)
	})

	t.Run("admin removes on first call and is a no-op on the second", func(t *testing.T) {
		dir := newDir(t)
		ids := MustCreate(t, dir, NewProfile("Ann", "Lee"), NewProfile("Bob", "Lee"))

		require.NoError(t, dir.Delete(ids[0], true))
		_, err := dir.Get(ids[0])
		assert.ErrorIs(t, err, types.ErrNotFound)

		assert.ErrorIs(t, dir.Delete(ids[0], true), types.ErrNotFound)

		all, err := dir.List()
		require.NoError(t, err)
		assert.Equal(t, []string{ids[1]}, IDs(all))
	})

	t.Run("removes only the named entry among look-alikes", func(t *testing.T) {
		dir := newDir(t)
		ids := MustCreate(t, dir, NewProfile("Ann", "Lee"), NewProfile("Ann", "Lee"), NewProfile("Ann", "Lee"))

		require.NoError(t, dir.Delete(ids[1], true))

		found, err := dir.SearchByFirstName("ann")
		require.NoError(t, err)
		assert.Equal(t, []string{ids[0], ids[2]}, IDs(found))
	})

	t.Run("empty id", func(t *testing.T) {
		dir := newDir(t)
		assert.ErrorIs(t, dir.Delete("", true), types.ErrInvalidID)
	})

	t.Run("removed profile can be added again", func(t *testing.T) {
		dir := newDir(t)
		p := NewProfile("Ann", "Lee")
		id := MustCreate(t, dir, p)[0]
		require.NoError(t, dir.Delete(id, true))

		again, err := dir.Create(p)
		require.NoError(t, err)
		assert.Equal(t, id, again)
	})
}

func testClose(t *testing.T, newDir Factory) {
	dir := newDir(t)
	p := NewProfile("Ann", "Lee")
	id := MustCreate(t, dir, p)[0]

	require.NoError(t, dir.Close())
	require.NoError(t, dir.Close(), "Close is idempotent")

	_, err := dir.Create(NewProfile("Bob", "Lee"))
	assert.ErrorIs(t, err, types.ErrClosed)
	_, err = dir.Get(id)
	assert.ErrorIs(t, err, types.ErrClosed)
	_, err = dir.List()
	assert.ErrorIs(t, err, types.ErrClosed)
	_, err = dir.FreeSearch("Lee")
	assert.ErrorIs(t, err, types.ErrClosed)
	assert.ErrorIs(t, dir.Update(p, types.ContactInfo{}), types.ErrClosed)
	assert.ErrorIs(t, dir.Delete(id, true), types.ErrClosed)
	_, err = dir.Len()
	assert.ErrorIs(t, err, types.ErrClosed)
}

// testConcurrent runs mixed operations from several goroutines. Run it
// with -race; the counts at the end check that no write was lost.
func testConcurrent(t *testing.T, newDir Factory) {
	const (
		workers   = 8
		perWorker = 20
	)
	dir := newDir(t)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := fmt.Sprintf("Worker%d", w)
			for i := range perWorker {
				p := NewProfile("Ann", last, fmt.Sprintf("555-%d-%d", w, i))
				id, err := dir.Create(p)
				if !assert.NoError(t, err) {
					return
				}

				_, err = dir.FreeSearch(last)
				assert.NoError(t, err)
				assert.NoError(t, dir.Update(p, types.NewContactInfo(last+"@example.com", "555-0100")))
				assert.ErrorIs(t, dir.Delete(id, false), types.ErrPermissionDenied)
				if i%2 == 0 {
					assert.NoError(t, dir.Delete(id, true))
				}
			}
		}()
	}
	wg.Wait()

	n, err := dir.Len()
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker/2, n)

	for w := range workers {
		last := fmt.Sprintf("Worker%d", w)
		got, err := dir.SearchByLastName(last)
		require.NoError(t, err)
		require.Len(t, got, perWorker/2)
		for _, p := range got {
			assert.Equal(t, last+"@example.com", p.ContactInfo.Email)
		}
	}
}
