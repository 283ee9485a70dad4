package forge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGHNotFound indicates gh CLI is not installed or not in PATH
var ErrGHNotFound = errors.New("gh not found: please install GitHub CLI (https://cli.github.com)")

// ErrGHNotAuthenticated indicates gh CLI is installed but not authenticated
var ErrGHNotAuthenticated = errors.New("gh not authenticated: please run 'gh auth login'")

// classifyAuthError maps the stderr of a failed `gh auth status` to an error.
func classifyAuthError(errMsg string) error {
	errMsg = strings.TrimSpace(errMsg)
	if strings.Contains(errMsg, "not logged") || strings.Contains(errMsg, "no accounts") {
		return ErrGHNotAuthenticated
	}
	if errMsg != "" {
		return fmt.Errorf("gh auth check failed: %s", errMsg)
	}
	return ErrGHNotAuthenticated
}
