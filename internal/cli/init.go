package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/phonebook/internal/paths"
	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend  string `yaml:"backend"`
	SeedFile string `yaml:"seed_file,omitempty"`
	LogLevel string `yaml:"log_level"`
}

func newInitCmd(s *session) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.yaml from the current flags",
		Long: "Create the configuration directory and write config.yaml using --backend,\n" +
			"--seed and --log-level. An existing file is kept unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, s.flags, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.yaml")
	return cmd
}

func runInit(cmd *cobra.Command, flags rootFlags, force bool) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}

	cfg := configFile{
		Backend:  flags.backend,
		LogLevel: flags.logLevel,
	}
	if cfg.Backend == "" {
		cfg.Backend = defaultBackend
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if err := (types.Config{Backend: cfg.Backend}).Validate(); err != nil {
		return userError("backend %q: %w", cfg.Backend, err)
	}
	if flags.seedFile != "" {
		seedFile, err := filepath.Abs(flags.seedFile)
		if err != nil {
			return sysError("resolve seed file: %w", err)
		}
		cfg.SeedFile = seedFile
	}

	if err := ensureConfigDir(configDir); err != nil {
		return sysError("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists: %s\n", path)
		return nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return sysError("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return sysError("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
