package model

import "time"

// Environment selects which Stripe key mode a project operates in.
type Environment string

const (
	EnvTest Environment = "test"
	EnvLive Environment = "live"
)

// String returns the string representation of the environment.
func (e Environment) String() string {
	return string(e)
}

// IsValid checks whether the environment is a known value.
func (e Environment) IsValid() bool {
	switch e {
	case EnvTest, EnvLive:
		return true
	}
	return false
}

// Project is one named credential bundle for the Stripe platform.
// ID, Name, and CreatedAt are immutable once the project is stored.
type Project struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Environment     Environment `json:"environment"`
	PublishableKey  string      `json:"publishableKey"`
	SecretKey       string      `json:"secretKey"`
	WebhookSecret   string      `json:"webhookSecret,omitempty"`
	DefaultCurrency string      `json:"defaultCurrency"`
	OrgID           string      `json:"orgId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Document is the root structure persisted to the config file. Projects
// keep insertion order; names are unique. DefaultProject, when set, names
// one of the entries in Projects.
type Document struct {
	Version        string    `json:"version"`
	Projects       []Project `json:"projects"`
	DefaultProject string    `json:"defaultProject,omitempty"`
}

// ProjectUpdate is a partial field set for updating a stored project.
// Nil fields are left unchanged. ID, Name, and CreatedAt cannot be updated.
type ProjectUpdate struct {
	Environment     *Environment
	PublishableKey  *string
	SecretKey       *string
	WebhookSecret   *string
	DefaultCurrency *string
	OrgID           *string
}

// IsZero reports whether the update carries no changes.
func (u ProjectUpdate) IsZero() bool {
	return u.Environment == nil && u.PublishableKey == nil && u.SecretKey == nil &&
		u.WebhookSecret == nil && u.DefaultCurrency == nil && u.OrgID == nil
}
