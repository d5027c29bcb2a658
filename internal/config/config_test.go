package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/groblegark/payctl/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "payctl", "config.json"))
}

func testProject(name string) model.Project {
	return model.Project{
		Name:            name,
		Environment:     model.EnvTest,
		PublishableKey:  "pk_test_x",
		SecretKey:       "sk_test_x",
		DefaultCurrency: "usd",
	}
}

func asConfigError(t *testing.T, err error) *ConfigError {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v (%T), want *ConfigError", err, err)
	}
	return ce
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != SchemaVersion {
		t.Errorf("Version = %q, want %q", doc.Version, SchemaVersion)
	}
	if len(doc.Projects) != 0 || doc.DefaultProject != "" {
		t.Errorf("expected empty document, got %+v", doc)
	}
	// Load of a missing file must not create it.
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load created the config file")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := s.Load()
	ce := asConfigError(t, err)
	if !strings.Contains(ce.Error(), s.Path()) {
		t.Errorf("error %q does not name the document path", ce.Error())
	}
}

func TestLoad_UnknownFields(t *testing.T) {
	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o700); err != nil {
		t.Fatal(err)
	}
	off := `{"version":"1","projects":[],"defaultWorkspace":"x"}`
	if err := os.WriteFile(s.Path(), []byte(off), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := s.Load()
	asConfigError(t, err)
}

func TestSave_Permissions(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(&model.Document{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	check := func(p string, want os.FileMode) {
		t.Helper()
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if got := info.Mode().Perm(); got != want {
			t.Errorf("%s permissions = %04o, want %04o", p, got, want)
		}
	}
	check(filepath.Dir(s.Path()), 0o700)
	check(s.Path(), 0o600)
}

func TestSave_StampsVersion(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(&model.Document{Version: "stale"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != SchemaVersion {
		t.Errorf("Version = %q, want %q", doc.Version, SchemaVersion)
	}
}

func TestAddProject(t *testing.T) {
	s := newTestStore(t)

	p, err := s.AddProject(testProject("acme"))
	if err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	if p.ID == "" {
		t.Error("ID not assigned")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps not assigned")
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("CreatedAt = %v, UpdatedAt = %v, want equal", p.CreatedAt, p.UpdatedAt)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	var matches int
	for _, got := range projects {
		if got.Name == "acme" {
			matches++
		}
	}
	if matches != 1 {
		t.Errorf("projects named acme = %d, want 1", matches)
	}
}

func TestAddProject_OverwritesCallerSetFields(t *testing.T) {
	s := newTestStore(t)

	in := testProject("acme")
	in.ID = "proj_forged"
	in.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	p, err := s.AddProject(in)
	if err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	if p.ID == "proj_forged" {
		t.Error("caller-supplied ID was kept")
	}
	if p.CreatedAt.Year() == 1999 {
		t.Error("caller-supplied CreatedAt was kept")
	}
}

func TestAddProject_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddProject(testProject("acme")); err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.AddProject(testProject("acme"))
	asConfigError(t, err)

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("failed add modified the stored document")
	}
}

func TestAddProject_FirstBecomesDefault(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddProject(testProject("first")); err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	def, err := s.GetDefaultProject()
	if err != nil {
		t.Fatalf("GetDefaultProject: %v", err)
	}
	if def.Name != "first" {
		t.Errorf("default = %q, want %q", def.Name, "first")
	}

	if _, err := s.AddProject(testProject("second")); err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	def, err = s.GetDefaultProject()
	if err != nil {
		t.Fatalf("GetDefaultProject: %v", err)
	}
	if def.Name != "first" {
		t.Errorf("default after second add = %q, want %q", def.Name, "first")
	}
}

func TestGetProject(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddProject(testProject("acme")); err != nil {
		t.Fatalf("AddProject: %v", err)
	}

	p, err := s.GetProject("acme")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p.Name != "acme" || p.PublishableKey != "pk_test_x" {
		t.Errorf("unexpected project %+v", p)
	}

	if _, err := s.GetProject("ACME"); err == nil {
		t.Error("name matching must be case-sensitive")
	}

	_, err = s.GetProject("ghost")
	asConfigError(t, err)
}

func TestUpdateProject(t *testing.T) {
	s := newTestStore(t)
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return t0 }

	created, err := s.AddProject(testProject("acme"))
	if err != nil {
		t.Fatalf("AddProject: %v", err)
	}

	s.now = func() time.Time { return t0.Add(time.Hour) }
	currency := "eur"
	whsec := "whsec_abc"
	env := model.EnvLive
	updated, err := s.UpdateProject("acme", model.ProjectUpdate{
		DefaultCurrency: &currency,
		WebhookSecret:   &whsec,
		Environment:     &env,
	})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("ID changed: %q -> %q", created.ID, updated.ID)
	}
	if updated.Name != "acme" {
		t.Errorf("Name changed: %q", updated.Name)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if updated.DefaultCurrency != "eur" || updated.WebhookSecret != "whsec_abc" || updated.Environment != model.EnvLive {
		t.Errorf("merge not applied: %+v", updated)
	}
	// Untouched fields survive the merge.
	if updated.PublishableKey != "pk_test_x" || updated.SecretKey != "sk_test_x" {
		t.Errorf("unrelated fields changed: %+v", updated)
	}

	// The merge is persisted, not just returned.
	got, err := s.GetProject("acme")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.DefaultCurrency != "eur" {
		t.Errorf("persisted DefaultCurrency = %q, want %q", got.DefaultCurrency, "eur")
	}
}

func TestUpdateProject_Missing(t *testing.T) {
	s := newTestStore(t)
	currency := "eur"
	_, err := s.UpdateProject("ghost", model.ProjectUpdate{DefaultCurrency: &currency})
	asConfigError(t, err)
}

func TestDeleteProject(t *testing.T) {
	t.Run("DefaultClearsPointer", func(t *testing.T) {
		s := newTestStore(t)
		if _, err := s.AddProject(testProject("acme")); err != nil {
			t.Fatal(err)
		}
		if err := s.DeleteProject("acme"); err != nil {
			t.Fatalf("DeleteProject: %v", err)
		}
		_, err := s.GetDefaultProject()
		asConfigError(t, err)
	})

	t.Run("NonDefaultKeepsPointer", func(t *testing.T) {
		s := newTestStore(t)
		if _, err := s.AddProject(testProject("first")); err != nil {
			t.Fatal(err)
		}
		if _, err := s.AddProject(testProject("second")); err != nil {
			t.Fatal(err)
		}
		if err := s.DeleteProject("second"); err != nil {
			t.Fatalf("DeleteProject: %v", err)
		}
		def, err := s.GetDefaultProject()
		if err != nil {
			t.Fatalf("GetDefaultProject: %v", err)
		}
		if def.Name != "first" {
			t.Errorf("default = %q, want %q", def.Name, "first")
		}
	})

	t.Run("NoPromotion", func(t *testing.T) {
		s := newTestStore(t)
		if _, err := s.AddProject(testProject("first")); err != nil {
			t.Fatal(err)
		}
		if _, err := s.AddProject(testProject("second")); err != nil {
			t.Fatal(err)
		}
		if err := s.DeleteProject("first"); err != nil {
			t.Fatalf("DeleteProject: %v", err)
		}
		_, err := s.GetDefaultProject()
		asConfigError(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		s := newTestStore(t)
		asConfigError(t, s.DeleteProject("ghost"))
	})
}

func TestSetDefaultProject(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddProject(testProject("first")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddProject(testProject("second")); err != nil {
		t.Fatal(err)
	}

	if err := s.SetDefaultProject("second"); err != nil {
		t.Fatalf("SetDefaultProject: %v", err)
	}
	def, err := s.GetDefaultProject()
	if err != nil {
		t.Fatalf("GetDefaultProject: %v", err)
	}
	if def.Name != "second" {
		t.Errorf("default = %q, want %q", def.Name, "second")
	}
}

func TestSetDefaultProject_Missing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddProject(testProject("first")); err != nil {
		t.Fatal(err)
	}

	asConfigError(t, s.SetDefaultProject("ghost"))

	// The pointer must be untouched by the failed set.
	def, err := s.GetDefaultProject()
	if err != nil {
		t.Fatalf("GetDefaultProject: %v", err)
	}
	if def.Name != "first" {
		t.Errorf("default = %q, want %q", def.Name, "first")
	}
}

func TestGetDefaultProject_Dangling(t *testing.T) {
	s := newTestStore(t)
	// The store never writes this state, but hand-edited documents can.
	doc := &model.Document{
		Projects:       []model.Project{{Name: "acme"}},
		DefaultProject: "ghost",
	}
	if err := s.Save(doc); err != nil {
		t.Fatal(err)
	}

	_, err := s.GetDefaultProject()
	asConfigError(t, err)
}

func TestRoundTrip_Idempotent(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddProject(testProject("acme")); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("save(load()) changed the persisted bytes:\n%s\n---\n%s", first, second)
	}
}

func TestDocumentShape(t *testing.T) {
	s := newTestStore(t)
	in := testProject("acme")
	in.WebhookSecret = "whsec_x"
	in.OrgID = "org_x"
	if _, err := s.AddProject(in); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var raw struct {
		Version  string           `json:"version"`
		Projects []map[string]any `json:"projects"`
		Default  string           `json:"defaultProject"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw.Version != SchemaVersion {
		t.Errorf("version = %q, want %q", raw.Version, SchemaVersion)
	}
	if raw.Default != "acme" {
		t.Errorf("defaultProject = %q, want %q", raw.Default, "acme")
	}
	if len(raw.Projects) != 1 {
		t.Fatalf("projects = %d, want 1", len(raw.Projects))
	}
	for _, key := range []string{
		"id", "name", "environment", "publishableKey", "secretKey",
		"webhookSecret", "defaultCurrency", "orgId", "createdAt", "updatedAt",
	} {
		if _, ok := raw.Projects[0][key]; !ok {
			t.Errorf("persisted project missing key %q", key)
		}
	}
}

// TestScenario walks the full lifecycle: add, list, resolve default,
// update, read back, delete, and observe the cleared default.
func TestScenario(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddProject(testProject("acme")); err != nil {
		t.Fatalf("AddProject: %v", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "acme" {
		t.Fatalf("ListProjects = %+v, want one project named acme", projects)
	}

	def, err := s.GetDefaultProject()
	if err != nil {
		t.Fatalf("GetDefaultProject: %v", err)
	}
	if def.Name != "acme" {
		t.Fatalf("default = %q, want acme", def.Name)
	}

	currency := "eur"
	if _, err := s.UpdateProject("acme", model.ProjectUpdate{DefaultCurrency: &currency}); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	got, err := s.GetProject("acme")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.DefaultCurrency != "eur" {
		t.Fatalf("DefaultCurrency = %q, want eur", got.DefaultCurrency)
	}

	if err := s.DeleteProject("acme"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	projects, err = s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("ListProjects after delete = %+v, want empty", projects)
	}
	_, err = s.GetDefaultProject()
	asConfigError(t, err)
}

func TestConfigError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &ConfigError{Msg: "reading config", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not see the wrapped cause")
	}
	if err.Error() != "reading config: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	bare := &ConfigError{Msg: "no default project set"}
	if bare.Error() != "no default project set" {
		t.Errorf("Error() = %q", bare.Error())
	}
}
