// Package dbt ties the project descriptors together: it resolves the active
// target profile and regenerates source-definition files.
package dbt

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jimvekemans/dbt-academy/internal/config"
	"github.com/jimvekemans/dbt-academy/internal/connection"
	"github.com/jimvekemans/dbt-academy/internal/sources"
)

// Manager holds a loaded dbt project plus its resolved target profile.
type Manager struct {
	Project      *config.Project
	Profiles     config.Profiles
	TargetName   string
	TargetOutput config.Output
	logger       *slog.Logger
}

// NewManager loads dbt_project.yml and profiles.yml from the project home
// and resolves the target profile. An empty target selects the profile's
// default.
func NewManager(home, target string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	project, err := config.LoadProject(home)
	if err != nil {
		logger.Error(err.Error())
		return nil, err
	}
	logger.Debug("retrieved content of " + config.ProjectFileName)

	profiles, err := config.LoadProfiles(home)
	if err != nil {
		logger.Error(err.Error())
		return nil, err
	}
	logger.Debug("retrieved content of " + config.ProfilesFileName)

	targetName, output, err := profiles.TargetOutput(project.Name, target)
	if err != nil {
		logger.Error(err.Error())
		return nil, err
	}

	logger.Info(fmt.Sprintf("Initialized dbt manager for project '%s'", project.Name))
	return &Manager{
		Project:      project,
		Profiles:     profiles,
		TargetName:   targetName,
		TargetOutput: output,
		logger:       logger,
	}, nil
}

// SourcesDir returns the directory source-definition files are written to.
func (m *Manager) SourcesDir() string {
	return filepath.Join(m.Project.ModelsDir(), "sources")
}

// RefreshSource regenerates the source-definition file for sourceName from
// a metadata query result, fully replacing the prior file.
func (m *Manager) RefreshSource(result *connection.Result, sourceName string) error {
	return sources.Generate(result, sourceName, m.SourcesDir(), m.logger)
}
