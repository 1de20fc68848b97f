// Package phonebook is the public entry point: it opens a types.Directory
// for the backend named in a Config while keeping the backends internal.
package phonebook

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/phonebook/internal/memory"
	"github.com/mesh-intelligence/phonebook/internal/seed"
	"github.com/mesh-intelligence/phonebook/internal/sqlite"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Version is the phonebook release version.
const Version = "0.3.0"

// Open validates cfg, creates the selected backend and, when cfg.SeedFile
// is set, loads the profiles it lists. The caller must Close the result.
// A nil logger discards output.
//
// Example:
//
//	dir, err := phonebook.Open(types.Config{Backend: types.BackendMemory}, nil)
//	if err != nil {
//	    return err
//	}
//	defer dir.Close()
func Open(cfg types.Config, logger *slog.Logger) (types.Directory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var dir types.Directory
	switch cfg.Backend {
	case types.BackendSQLite:
		b, err := sqlite.NewBackend(logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		dir = b
	default:
		dir = memory.NewBackend(logger)
	}

	if cfg.SeedFile == "" {
		return dir, nil
	}

	profiles, err := seed.Load(cfg.SeedFile)
	if err != nil {
		dir.Close()
		return nil, err
	}
	n, err := seed.Apply(dir, profiles)
	if err != nil {
		dir.Close()
		return nil, err
	}
	logger.Info("seed loaded", "file", cfg.SeedFile, "profiles", n)
	return dir, nil
}
