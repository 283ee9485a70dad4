package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Info summarizes the state of a local repository.
type Info struct {
	Head      string // full commit hash, empty on an unborn branch
	Branch    string // branch HEAD points to, empty when detached
	OriginURL string // first URL of the origin remote, empty if none
}

// ShortHead returns the abbreviated HEAD hash.
func (i Info) ShortHead() string {
	if len(i.Head) > 7 {
		return i.Head[:7]
	}
	return i.Head
}

// Describe reads HEAD, branch and origin URL of the repository at dir.
func Describe(dir string) (Info, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return Info{}, fmt.Errorf("failed to open repository %s: %w", dir, err)
	}

	var info Info

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		info.Branch = head.Target().Short()
	}

	resolved, err := repo.Head()
	switch {
	case err == nil:
		info.Head = resolved.Hash().String()
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// unborn branch
	default:
		return Info{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	remote, err := repo.Remote("origin")
	switch {
	case err == nil:
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.OriginURL = urls[0]
		}
	case errors.Is(err, gogit.ErrRemoteNotFound):
	default:
		return Info{}, fmt.Errorf("failed to read origin remote: %w", err)
	}

	return info, nil
}
