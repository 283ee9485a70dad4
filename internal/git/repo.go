package git

import (
	"context"
	"fmt"
)

// Init creates an empty repository in dir whose unborn branch is branch.
func Init(ctx context.Context, dir, branch string) error {
	args := []string{"init"}
	if branch != "" {
		args = append(args, "--initial-branch="+branch)
	}
	if err := streamGit(ctx, dir, args...); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// AddRemote registers url under name.
func AddRemote(ctx context.Context, dir, name, url string) error {
	if err := streamGit(ctx, dir, "remote", "add", name, url); err != nil {
		return fmt.Errorf("git remote add %s: %w", name, err)
	}
	return nil
}

// AddAll stages every file in the working tree.
func AddAll(ctx context.Context, dir string) error {
	if err := streamGit(ctx, dir, "add", "."); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	return nil
}

// Commit records the staged changes with message.
func Commit(ctx context.Context, dir, message string) error {
	if err := streamGit(ctx, dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

// Push pushes branch to remote and sets it as upstream.
func Push(ctx context.Context, dir, remote, branch string) error {
	if err := streamGit(ctx, dir, "push", "-u", remote, branch); err != nil {
		return fmt.Errorf("git push %s %s: %w", remote, branch, err)
	}
	return nil
}

// CLI runs the repository operations through the git binary.
type CLI struct{}

// Init implements the version-control collaborator of the scaffolder.
func (CLI) Init(ctx context.Context, dir, branch string) error { return Init(ctx, dir, branch) }

func (CLI) AddRemote(ctx context.Context, dir, name, url string) error {
	return AddRemote(ctx, dir, name, url)
}

func (CLI) AddAll(ctx context.Context, dir string) error { return AddAll(ctx, dir) }

func (CLI) Commit(ctx context.Context, dir, message string) error {
	return Commit(ctx, dir, message)
}

func (CLI) Push(ctx context.Context, dir, remote, branch string) error {
	return Push(ctx, dir, remote, branch)
}

// Head returns the commit hash HEAD points to in dir.
func (CLI) Head(dir string) (string, error) {
	info, err := Describe(dir)
	if err != nil {
		return "", err
	}
	return info.Head, nil
}
