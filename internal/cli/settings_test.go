package cli

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project-dir", ".", "")
	flags.StringP("target", "t", "", "")
	flags.BoolP("verbose", "v", false, "")
	return flags
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(newSettingsFlags())
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(s.ProjectDir))
	assert.Empty(t, s.Target)
	assert.False(t, s.Verbose)
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	t.Setenv("DBT_ACADEMY_TARGET", "prod")
	t.Setenv("DBT_ACADEMY_VERBOSE", "true")

	s, err := LoadSettings(newSettingsFlags())
	require.NoError(t, err)

	assert.Equal(t, "prod", s.Target)
	assert.True(t, s.Verbose)
}

func TestLoadSettingsFlagsBeatEnv(t *testing.T) {
	t.Setenv("DBT_ACADEMY_TARGET", "prod")

	flags := newSettingsFlags()
	require.NoError(t, flags.Parse([]string{"--target", "dev", "--project-dir", "/tmp/proj"}))

	s, err := LoadSettings(flags)
	require.NoError(t, err)

	assert.Equal(t, "dev", s.Target)
	assert.Equal(t, "/tmp/proj", s.ProjectDir)
}

func TestLoadSettingsUnchangedFlagsIgnored(t *testing.T) {
	t.Setenv("DBT_ACADEMY_TARGET", "prod")

	s, err := LoadSettings(newSettingsFlags())
	require.NoError(t, err)

	// An unset flag must not shadow the environment value.
	assert.Equal(t, "prod", s.Target)
}
