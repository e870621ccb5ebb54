// Package config loads the dbt project descriptors: dbt_project.yml and
// profiles.yml. It is decoupled from CLI concerns so other tools can reuse
// it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ProjectFileName is the name of the project descriptor file.
const ProjectFileName = "dbt_project.yml"

// Project holds the parsed dbt_project.yml plus the project home path.
type Project struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`

	ModelPaths    []string `koanf:"model-paths"`
	MacroPaths    []string `koanf:"macro-paths"`
	SeedPaths     []string `koanf:"seed-paths"`
	TestPaths     []string `koanf:"test-paths"`
	SnapshotPaths []string `koanf:"snapshot-paths"`
	AnalysisPaths []string `koanf:"analysis-paths"`
	AssetPaths    []string `koanf:"asset-paths"`

	LogPath             string   `koanf:"log-path"`
	CleanTargets        []string `koanf:"clean-targets"`
	PackagesInstallPath string   `koanf:"packages-install-path"`

	Models    map[string]any `koanf:"models"`
	Snapshots map[string]any `koanf:"snapshots"`
	Vars      map[string]any `koanf:"vars"`

	Home string `koanf:"-"`
}

// projectDefaults mirror dbt's defaults for optional descriptor keys.
var projectDefaults = map[string]interface{}{
	"model-paths":           []string{"models"},
	"macro-paths":           []string{"macros"},
	"seed-paths":            []string{"seeds"},
	"test-paths":            []string{"tests"},
	"snapshot-paths":        []string{"snapshots"},
	"analysis-paths":        []string{"analysis"},
	"asset-paths":           []string{"assets"},
	"log-path":              "logs",
	"clean-targets":         []string{"target"},
	"packages-install-path": "dbt_packages",
}

// LoadProject loads dbt_project.yml from the project home directory.
// A missing descriptor is a configuration error.
func LoadProject(home string) (*Project, error) {
	path := filepath.Join(home, ProjectFileName)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("could not find metadata file: %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(projectDefaults, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load project defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	var p Project
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", path, err)
	}
	p.Home = home
	return &p, nil
}

// ModelsDir returns the resolved models directory. Models always have a
// location even before the directory is created on disk.
func (p *Project) ModelsDir() string {
	return filepath.Join(p.Home, last(p.ModelPaths, "models"))
}

// MacrosDir returns the resolved macros directory, or "" if it does not
// exist on disk.
func (p *Project) MacrosDir() string {
	return p.optionalDir(last(p.MacroPaths, "macros"))
}

// SeedsDir returns the resolved seeds directory, or "" if absent.
func (p *Project) SeedsDir() string {
	return p.optionalDir(last(p.SeedPaths, "seeds"))
}

// TestsDir returns the resolved tests directory, or "" if absent.
func (p *Project) TestsDir() string {
	return p.optionalDir(last(p.TestPaths, "tests"))
}

// SnapshotsDir returns the resolved snapshots directory, or "" if absent.
func (p *Project) SnapshotsDir() string {
	return p.optionalDir(last(p.SnapshotPaths, "snapshots"))
}

// AnalysisDir returns the resolved analysis directory, or "" if absent.
func (p *Project) AnalysisDir() string {
	return p.optionalDir(last(p.AnalysisPaths, "analysis"))
}

// AssetsDir returns the resolved assets directory, or "" if absent.
func (p *Project) AssetsDir() string {
	return p.optionalDir(last(p.AssetPaths, "assets"))
}

// LogsDir returns the resolved log directory.
func (p *Project) LogsDir() string {
	return filepath.Join(p.Home, p.LogPath)
}

func (p *Project) optionalDir(name string) string {
	dir := filepath.Join(p.Home, name)
	if _, err := os.Stat(dir); err != nil {
		return ""
	}
	return dir
}

// last returns the final element of paths, or fallback when empty. dbt
// accepts a list of paths per concern; the last entry wins here.
func last(paths []string, fallback string) string {
	if len(paths) == 0 {
		return fallback
	}
	return paths[len(paths)-1]
}
