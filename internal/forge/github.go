package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/raphi011/newrepo/internal/cmd"
)

// GitHub implements Forge for GitHub repositories using the gh CLI.
type GitHub struct{}

// Name returns "github"
func (g *GitHub) Name() string {
	return "github"
}

// Check verifies that gh CLI is available and authenticated
func (g *GitHub) Check(ctx context.Context) error {
	if _, err := exec.LookPath("gh"); err != nil {
		return ErrGHNotFound
	}

	if err := cmd.RunContext(ctx, "", "gh", "auth", "status"); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return classifyAuthError(err.Error())
	}
	return nil
}

// CurrentUser returns the login of the authenticated gh user
func (g *GitHub) CurrentUser(ctx context.Context) (string, error) {
	out, err := cmd.OutputContext(ctx, "", "gh", "api", "user", "--jq", ".login")
	if err != nil {
		return "", fmt.Errorf("failed to get current gh user: %w", err)
	}
	login := strings.TrimSpace(string(out))
	if login == "" {
		return "", fmt.Errorf("failed to get current gh user: empty login")
	}
	return login, nil
}

// CreateFromTemplate creates the repository with gh repo create --template
func (g *GitHub) CreateFromTemplate(ctx context.Context, params CreateParams) error {
	return cmd.StreamContext(ctx, "", "gh", createArgs(params)...)
}

// Clone clones a GitHub repo using gh CLI
func (g *GitHub) Clone(ctx context.Context, repoSpec, dest string) error {
	return cmd.StreamContext(ctx, "", "gh", "repo", "clone", repoSpec, dest)
}

// Delete deletes a GitHub repo. Requires the delete_repo scope on the gh token.
func (g *GitHub) Delete(ctx context.Context, repoSpec string) error {
	return cmd.StreamContext(ctx, "", "gh", "repo", "delete", repoSpec, "--yes")
}

// TemplateExists checks that repoSpec is visible to the user and is a template repository
func (g *GitHub) TemplateExists(ctx context.Context, repoSpec string) (bool, error) {
	out, err := cmd.OutputContext(ctx, "", "gh", "repo", "view", repoSpec, "--json", "isTemplate")
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if strings.Contains(err.Error(), "Could not resolve") {
			return false, nil
		}
		return false, fmt.Errorf("gh repo view failed: %w", err)
	}
	return parseIsTemplate(out)
}

func parseIsTemplate(out []byte) (bool, error) {
	var view struct {
		IsTemplate bool `json:"isTemplate"`
	}
	if err := json.Unmarshal(out, &view); err != nil {
		return false, fmt.Errorf("failed to parse gh output: %w", err)
	}
	return view.IsTemplate, nil
}

// createArgs builds the gh arguments for creating a repository from a template.
func createArgs(p CreateParams) []string {
	visibility := "--private"
	if p.Public {
		visibility = "--public"
	}
	args := []string{"repo", "create", p.Name, "--template", p.Template, visibility}
	if p.Description != "" {
		args = append(args, "--description", p.Description)
	}
	return args
}
