//go:build integration

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/newrepo/internal/config"
)

// fakeGHScript emulates the gh subcommands newrepo uses on top of local bare
// repositories under $FAKE_GH_ROOT. A created repository starts empty so the
// initial push is accepted; cloning it serves the content of the template it
// was created from.
const fakeGHScript = `#!/bin/sh
echo "$*" >> "$FAKE_GH_ROOT/calls.log"
case "$1 $2" in
"auth status")
	exit 0 ;;
"api user")
	echo octo ;;
"repo create")
	name="$3"; tpl="$5"
	mkdir -p "$(dirname "$FAKE_GH_ROOT/$name")"
	git init -q --bare "$FAKE_GH_ROOT/$name.git" || exit 1
	echo "$tpl" > "$FAKE_GH_ROOT/$name.template" ;;
"repo clone")
	tpl=$(cat "$FAKE_GH_ROOT/$3.template") || exit 1
	git clone -q "$FAKE_GH_ROOT/$tpl.git" "$4" ;;
"repo delete")
	rm -rf "$FAKE_GH_ROOT/$3.git" "$FAKE_GH_ROOT/$3.template" ;;
"repo view")
	if [ -d "$FAKE_GH_ROOT/$3.git" ]; then
		echo '{"isTemplate":true}'
	else
		echo "GraphQL: Could not resolve to a Repository with the name '$3'." >&2
		exit 1
	fi ;;
*)
	echo "fake gh: unexpected $*" >&2
	exit 1 ;;
esac
`

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runGit runs git in dir and fails the test on error.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// setupFakeGH installs the fake gh on PATH, sets a git identity and returns
// the root holding the fake remotes.
func setupFakeGH(t *testing.T) string {
	t.Helper()

	root := resolvePath(t, t.TempDir())
	bin := filepath.Join(root, "bin")
	if err := os.MkdirAll(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(bin, "gh"), []byte(fakeGHScript), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("FAKE_GH_ROOT", root)
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@test.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@test.com")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(root, "gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")

	return root
}

// setupTemplate creates the bare template repository tpl/<name> with files
// committed on main.
func setupTemplate(t *testing.T, root, name string, files map[string]string) {
	t.Helper()

	work := filepath.Join(root, "tpl-work-"+name)
	for rel, content := range files {
		path := filepath.Join(work, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	bare := filepath.Join(root, "tpl", name+".git")
	if err := os.MkdirAll(filepath.Dir(bare), 0o755); err != nil {
		t.Fatal(err)
	}
	runGit(t, root, "init", "-q", "--bare", "--initial-branch=main", bare)
	runGit(t, work, "init", "-q", "--initial-branch=main")
	runGit(t, work, "add", ".")
	runGit(t, work, "commit", "-q", "-m", "template")
	runGit(t, work, "push", "-q", bare, "main")
}

// integrationConfig returns a config that points remotes at the fake root.
func integrationConfig(root string) config.Config {
	cfg := config.Default()
	cfg.Template = "tpl/template"
	cfg.RemoteURL = filepath.Join(root, "{owner}", "{repo}.git")
	return cfg
}

// readCalls returns the gh invocations recorded by the fake.
func readCalls(t *testing.T, root string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, "calls.log"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
