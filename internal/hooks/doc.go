// Package hooks provides post-create hook execution with placeholder substitution.
//
// Hooks are shell commands defined in config (or in a template's
// .newrepo.toml) that run after the initial push. They enable workflow
// automation such as opening an editor, installing dependencies or enabling
// repository settings through further gh calls.
//
// # Hook Selection
//
// Hooks can run automatically or manually:
//
//   - Automatic: Hooks with "on" config matching the command type run automatically
//   - Manual: Use --hook=name to run a specific hook, --no-hook to skip all
//
// Example config:
//
//	[hooks.vscode]
//	command = "code {path}"
//	on = ["create"]
//
//	[hooks.protect]
//	command = "gh api -X PUT repos/{owner:raw}/{repo:raw}/branches/main/protection --input -"
//	# no "on" - only runs via --hook=protect
//
// # Placeholder Substitution
//
// Static placeholders available in all hooks:
//
//   - {path}: Absolute project path
//   - {repo}: Repository name
//   - {title}: Project title
//   - {owner}: Repository owner
//   - {url}: Remote URL
//   - {trigger}: Command that triggered the hook
//
// Custom variables via --arg key=value:
//
//   - {key}: Value from --arg key=value
//   - {key:-default}: Value with fallback if not provided
//
// All values are shell-quoted unless the :raw suffix is used.
//
// # Execution Context
//
// Hooks run through sh -c with the project directory as working directory.
// The first failing hook stops the remaining ones.
//
// # Stdin Support
//
// Use --arg key=- to read stdin content into a variable:
//
//	echo "my content" | newrepo my-app --hook notify --arg body=-
package hooks
