// Package cmd provides helpers for executing external commands.
//
// Two flavours exist:
//
//   - [StreamContext] inherits stdin, stdout and stderr so the user sees the
//     external tool's own progress and errors. Used for every pipeline step
//     that talks to gh or git.
//   - [RunContext] and [OutputContext] capture stderr and return it as the
//     error message. Used for probes (auth status, current user) whose output
//     is consumed by newrepo itself.
//
// Every invocation is traced through the context logger in verbose mode.
//
// # Design Notes
//
// newrepo shells out to the git and gh CLIs rather than using Go libraries
// for mutating operations. This keeps the user's SSH keys, credential helpers
// and gh authentication in play without any extra configuration.
package cmd
