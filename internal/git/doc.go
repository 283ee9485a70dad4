// Package git wraps the git CLI for the local half of the scaffold pipeline.
//
// Mutating operations shell out to git with an explicit -C <dir> so that no
// process-wide working directory change is needed:
//
//   - [Init]: create the repository with an initial branch
//   - [AddRemote]: register the freshly created remote
//   - [AddAll], [Commit]: stage and commit the copied template
//   - [Push]: push the initial branch and set its upstream
//
// [CLI] bundles these into a value usable wherever a version-control
// collaborator is injected.
//
// # Inspection
//
// [Describe] reads HEAD, the current branch and the origin URL with go-git.
// It never spawns a process, which makes it cheap to call for the success
// summary and convenient in tests.
package git
