// Package seed reads the YAML file of starting profiles and loads it into a
// Directory. The file is only read; the directory never writes it back.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// File is the document layout of a seed file.
type File struct {
	Profiles []*types.Profile `yaml:"profiles"`
}

// Load parses the seed file at path. Unknown keys are rejected so that a
// misspelled field does not silently drop data. An empty file yields no
// profiles.
func Load(path string) ([]*types.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a seed document from r.
func Decode(r io.Reader) ([]*types.Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc File
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []*types.Profile{}, nil
		}
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	profiles := make([]*types.Profile, 0, len(doc.Profiles))
	for i, p := range doc.Profiles {
		if p == nil {
			return nil, fmt.Errorf("parsing seed file: profile %d is empty: %w", i, types.ErrInvalidData)
		}
		if p.PhoneNumbers == nil {
			p.PhoneNumbers = []string{}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Apply creates each profile in dir in file order and returns how many were
// added. It stops at the first failure.
func Apply(dir types.Directory, profiles []*types.Profile) (int, error) {
	for i, p := range profiles {
		if _, err := dir.Create(p); err != nil {
			return i, fmt.Errorf("seeding profile %d (%s %s): %w", i, p.FirstName, p.LastName, err)
		}
	}
	return len(profiles), nil
}
