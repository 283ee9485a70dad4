// Package config handles loading and validation of newrepo configuration.
//
// Configuration is read from ~/.config/newrepo/config.toml (or the file
// named by NEWREPO_CONFIG) with environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (--template, --owner, --public, ...)
//   - NEWREPO_TEMPLATE / NEWREPO_OWNER env vars
//   - Template manifest (.newrepo.toml in the template repository)
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - template: owner/name of the template repository
//   - owner: owner of new repositories (empty = authenticated gh user)
//   - visibility: "private" (default) or "public"
//   - remote_url: origin URL format with {owner} and {repo}
//   - files: which files get which placeholder tokens replaced
//
// # Hooks Configuration
//
// Hooks are defined in [hooks.NAME] sections:
//
//	[hooks.code]
//	command = "code {path}"
//	description = "Open VS Code"
//	on = ["create"]
//
// Hooks with "on" run automatically after the initial push.
// Hooks without "on" only run via explicit --hook=name flag.
//
// # Template Manifest
//
// A template repository may ship a .newrepo.toml declaring extra placeholder
// files and hooks. It is read from the scratch clone and merged over the
// global config with [MergeLocal].
package config
