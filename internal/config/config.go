// Package config owns the persisted payctl project document: a single JSON
// file holding every named project (credential bundle) and the optional
// default-project pointer. All operations load the full document, mutate an
// in-memory copy, and write the full document back. There is no locking;
// the tool assumes a single operator and the last writer wins.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/groblegark/payctl/internal/idgen"
	"github.com/groblegark/payctl/internal/model"
)

// SchemaVersion is written into the document on every save.
const SchemaVersion = "1"

// ConfigError is the error kind for every store failure: unreadable or
// invalid documents, duplicate names on add, and missing projects or
// default pointers on lookup.
type ConfigError struct {
	Msg string
	Err error
}

// Error returns the message, with the wrapped cause appended when present.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigError) Unwrap() error { return e.Err }

func errf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// Store reads and writes the project document at a fixed path. Construct
// one with NewStore and pass it to every caller; there is no package-level
// default instance.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore returns a store backed by the document at path. The file does
// not need to exist yet; it is created on first save.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the document path the store was constructed with.
func (s *Store) Path() string { return s.path }

// DefaultPath returns the conventional per-user document location,
// ~/.config/payctl/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "payctl", "config.json"), nil
}

// Load reads the backing document. A missing file is not an error: it
// yields an empty document with the schema version set and no projects.
// Invalid or off-schema JSON and any other read failure return a
// *ConfigError.
func (s *Store) Load() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &model.Document{Version: SchemaVersion}, nil
	}
	if err != nil {
		return nil, &ConfigError{Msg: "reading config " + s.path, Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc model.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &ConfigError{Msg: "invalid config " + s.path, Err: err}
	}
	return &doc, nil
}

// Save writes the full document back to disk, creating the enclosing
// directory (0700) if needed and restricting the file to owner read/write
// (0600). The document's version is stamped on every save.
func (s *Store) Save(doc *model.Document) error {
	doc.Version = SchemaVersion
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return &ConfigError{Msg: "creating config directory", Err: err}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &ConfigError{Msg: "encoding config", Err: err}
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return &ConfigError{Msg: "writing config " + s.path, Err: err}
	}
	// WriteFile only applies the mode on create; clamp pre-existing files too.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return &ConfigError{Msg: "restricting config " + s.path, Err: err}
	}
	return nil
}

// AddProject stores a new project. The candidate's ID and timestamps are
// assigned here; anything the caller set in those fields is overwritten.
// The first project ever added becomes the default. Adding a name that
// already exists fails without touching the document.
func (s *Store) AddProject(p model.Project) (*model.Project, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Projects {
		if doc.Projects[i].Name == p.Name {
			return nil, errf("project %q already exists", p.Name)
		}
	}

	id, err := idgen.NewProjectID()
	if err != nil {
		return nil, &ConfigError{Msg: "generating project id", Err: err}
	}
	now := s.now().UTC().Truncate(time.Second)
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now

	first := len(doc.Projects) == 0
	doc.Projects = append(doc.Projects, p)
	if first {
		doc.DefaultProject = p.Name
	}
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProject returns the project with the given name.
func (s *Store) GetProject(name string) (*model.Project, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Projects {
		if doc.Projects[i].Name == name {
			p := doc.Projects[i]
			return &p, nil
		}
	}
	return nil, errf("project %q not found", name)
}

// ListProjects returns all projects in stored order.
func (s *Store) ListProjects() ([]model.Project, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

// UpdateProject merges the supplied partial field set over the named
// project and refreshes its UpdatedAt. ID, Name, and CreatedAt are
// untouchable. The updated project is returned.
func (s *Store) UpdateProject(name string, u model.ProjectUpdate) (*model.Project, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Projects {
		if doc.Projects[i].Name != name {
			continue
		}
		p := &doc.Projects[i]
		if u.Environment != nil {
			p.Environment = *u.Environment
		}
		if u.PublishableKey != nil {
			p.PublishableKey = *u.PublishableKey
		}
		if u.SecretKey != nil {
			p.SecretKey = *u.SecretKey
		}
		if u.WebhookSecret != nil {
			p.WebhookSecret = *u.WebhookSecret
		}
		if u.DefaultCurrency != nil {
			p.DefaultCurrency = *u.DefaultCurrency
		}
		if u.OrgID != nil {
			p.OrgID = *u.OrgID
		}
		p.UpdatedAt = s.now().UTC().Truncate(time.Second)
		if err := s.Save(doc); err != nil {
			return nil, err
		}
		out := *p
		return &out, nil
	}
	return nil, errf("project %q not found", name)
}

// DeleteProject removes the named project. If it was the default, the
// default pointer is cleared; no other project is promoted.
func (s *Store) DeleteProject(name string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	for i := range doc.Projects {
		if doc.Projects[i].Name != name {
			continue
		}
		doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
		if doc.DefaultProject == name {
			doc.DefaultProject = ""
		}
		return s.Save(doc)
	}
	return errf("project %q not found", name)
}

// SetDefaultProject points the default at the named project, which must exist.
func (s *Store) SetDefaultProject(name string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	found := false
	for i := range doc.Projects {
		if doc.Projects[i].Name == name {
			found = true
			break
		}
	}
	if !found {
		return errf("project %q not found", name)
	}
	doc.DefaultProject = name
	return s.Save(doc)
}

// GetDefaultProject resolves and returns the default project. It fails if
// no default is set, or if the pointer names a project that no longer
// exists (possible only in hand-edited documents).
func (s *Store) GetDefaultProject() (*model.Project, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	if doc.DefaultProject == "" {
		return nil, errf("no default project set")
	}
	for i := range doc.Projects {
		if doc.Projects[i].Name == doc.DefaultProject {
			p := doc.Projects[i]
			return &p, nil
		}
	}
	return nil, errf("default project %q not found", doc.DefaultProject)
}
