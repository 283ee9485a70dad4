// Package prompt provides simple interactive prompts.
//
// Prompts render to stderr so stdout stays clean for scripted use.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input with an editable default
package prompt
