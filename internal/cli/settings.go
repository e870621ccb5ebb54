package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Settings holds the CLI-level configuration shared by all commands.
type Settings struct {
	ProjectDir string `koanf:"project_dir"`
	Target     string `koanf:"target"`
	Verbose    bool   `koanf:"verbose"`
}

// LoadSettings loads CLI settings.
// Precedence (highest to lowest): flags > env vars > defaults.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"project_dir": ".",
		"target":      "",
		"verbose":     false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// DBT_ACADEMY_PROJECT_DIR -> project_dir
	if err := k.Load(env.Provider("DBT_ACADEMY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DBT_ACADEMY_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}

	if abs, err := filepath.Abs(s.ProjectDir); err == nil {
		s.ProjectDir = abs
	}
	return &s, nil
}
