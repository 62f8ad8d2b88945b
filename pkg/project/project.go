/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: project.go
Description: Project persistence for the Akaylee Mapper. A project bundles the
example source configuration with saved analysis artifacts so a mapping can be
revisited, re-filtered, and regenerated without re-supplying examples.
*/

package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectExists   = errors.New("project already exists")
	ErrEmptyName       = errors.New("project name must not be empty")
)

// Project is the root persisted document
type Project struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`

	// Source configuration, enough to reload the example set
	SourceKind string            `yaml:"source_kind"` // json, csv, web, browser
	SourceArgs map[string]string `yaml:"source_args,omitempty"`

	Threshold float64           `yaml:"threshold"`
	Artifact  *AnalysisArtifact `yaml:"artifact,omitempty"`
}

// AnalysisArtifact is the persisted snapshot of one analysis. Pattern type
// spellings are stored verbatim so older artifacts stay readable.
type AnalysisArtifact struct {
	AnalyzedAt    time.Time          `yaml:"analyzed_at"`
	ExamplesCount int                `yaml:"examples_count"`
	Patterns      []patterns.Pattern `yaml:"patterns"`
	Unresolved    []string           `yaml:"unresolved_targets,omitempty"`
	Threshold     float64            `yaml:"threshold"`
}

// New creates an unsaved project with a fresh identifier
func New(name, sourceKind string, sourceArgs map[string]string, threshold float64) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	now := time.Now().UTC()
	return &Project{
		ID:         uuid.New().String(),
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
		SourceKind: sourceKind,
		SourceArgs: sourceArgs,
		Threshold:  threshold,
	}, nil
}

// RecordAnalysis snapshots a parse result into the project
func (p *Project) RecordAnalysis(parsed *patterns.ParsedExamples, threshold float64) {
	p.Artifact = &AnalysisArtifact{
		AnalyzedAt:    time.Now().UTC(),
		ExamplesCount: parsed.ExamplesCount,
		Patterns:      parsed.Patterns,
		Unresolved:    parsed.Unresolved,
		Threshold:     threshold,
	}
	p.Threshold = threshold
	p.UpdatedAt = time.Now().UTC()
}

// Store persists projects as YAML files in one directory, named by
// project name
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// path maps a project name to its file
func (s *Store) path(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return filepath.Join(s.dir, safe+".yaml")
}

// Save writes a project, failing if a different project already uses the
// name
func (s *Store) Save(p *Project) error {
	if existing, err := s.Load(p.Name); err == nil && existing.ID != p.ID {
		return fmt.Errorf("%w: %s", ErrProjectExists, p.Name)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(s.path(p.Name), data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project by name
func (s *Store) Load(name string) (*Project, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
		}
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	return &p, nil
}

// Delete removes a project by name
func (s *Store) Delete(name string) error {
	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return err
}

// List returns the names of all saved projects, sorted by filename
func (s *Store) List() ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		p, err := s.loadFile(e)
		if err != nil {
			continue
		}
		names = append(names, p.Name)
	}
	return names, nil
}

func (s *Store) loadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
