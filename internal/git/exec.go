package git

import (
	"context"

	"github.com/raphi011/newrepo/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with captured stderr.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command and returns stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}

// streamGit executes a git command with inherited standard streams so the
// user sees git's own progress output.
func streamGit(ctx context.Context, dir string, args ...string) error {
	return cmd.StreamContext(ctx, "", "git", gitArgs(dir, args)...)
}
