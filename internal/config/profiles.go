package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ProfilesFileName is the name of the profiles descriptor file.
const ProfilesFileName = "profiles.yml"

// Output is one named target's raw connection-detail mapping. Values may
// contain {{ env_var(...) }} placeholders that are rendered by the secret
// store before use.
type Output map[string]any

// Profile is one named profile: a default target plus its outputs.
type Profile struct {
	Target  string            `koanf:"target"`
	Outputs map[string]Output `koanf:"outputs"`
}

// Profiles maps profile name (usually the project name) to its profile.
type Profiles map[string]Profile

// LoadProfiles loads profiles.yml from the project home directory.
// A missing descriptor is a configuration error.
func LoadProfiles(home string) (Profiles, error) {
	path := filepath.Join(home, ProfilesFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("could not find metadata file: %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	var p Profiles
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", path, err)
	}
	return p, nil
}

// TargetOutput resolves the active output for a profile. An empty
// targetOverride selects the profile's default target.
func (p Profiles) TargetOutput(profileName, targetOverride string) (string, Output, error) {
	profile, ok := p[profileName]
	if !ok {
		return "", nil, fmt.Errorf("profile %q not found in %s", profileName, ProfilesFileName)
	}

	targetName := targetOverride
	if targetName == "" {
		targetName = profile.Target
	}

	output, ok := profile.Outputs[targetName]
	if !ok {
		return "", nil, fmt.Errorf("target %q not found in profile %q", targetName, profileName)
	}
	return targetName, output, nil
}
