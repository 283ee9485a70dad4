// Package doctor checks the environment newrepo depends on.
//
// Each check yields a [Result]:
//
//   - git: the git binary is on PATH and reports a version.
//   - gh: the GitHub CLI is installed and authenticated.
//   - config: the config file parses (a missing file only warns).
//   - template: the configured template exists and is marked as a template.
//
// The template check is skipped when gh is unusable.
package doctor
