package forge

import (
	"context"
	"fmt"
	"strings"
)

// CreateParams contains parameters for creating a repository from a template
type CreateParams struct {
	Name        string // repository name, or owner/name
	Template    string // owner/name of the template repository
	Public      bool
	Description string
}

// Forge represents a git hosting service
type Forge interface {
	// Name returns the forge name ("github")
	Name() string

	// Check verifies the CLI is installed and authenticated
	Check(ctx context.Context) error

	// CurrentUser returns the login of the authenticated user
	CurrentUser(ctx context.Context) (string, error)

	// CreateFromTemplate creates a new remote repository from a template
	CreateFromTemplate(ctx context.Context, params CreateParams) error

	// Clone clones repoSpec into dest, which must not exist yet
	Clone(ctx context.Context, repoSpec, dest string) error

	// Delete removes the remote repository without asking for confirmation
	Delete(ctx context.Context, repoSpec string) error

	// TemplateExists reports whether repoSpec is reachable and marked as a template
	TemplateExists(ctx context.Context, repoSpec string) (bool, error)
}

// ByName returns a Forge implementation by name.
// Supported names: "github" (also the default for an empty name)
func ByName(name string) (Forge, error) {
	switch strings.ToLower(name) {
	case "", "github":
		return &GitHub{}, nil
	default:
		return nil, fmt.Errorf("unsupported forge %q: only \"github\" is supported", name)
	}
}

// RepoSpec joins owner and name into owner/name.
// Returns name unchanged when owner is empty.
func RepoSpec(owner, name string) string {
	if owner == "" {
		return name
	}
	return owner + "/" + name
}

// WebURL returns the browser URL of a GitHub repository.
func WebURL(repoSpec string) string {
	return "https://github.com/" + repoSpec
}
