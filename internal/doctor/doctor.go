package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/forge"
	"github.com/raphi011/newrepo/internal/git"
	"github.com/raphi011/newrepo/internal/ui/static"
	"github.com/raphi011/newrepo/internal/ui/styles"
)

// Doctor runs environment checks.
type Doctor struct {
	Forge      forge.Forge
	ConfigPath string
	Template   string

	// GitVersion reports the installed git version. Defaults to git.Version.
	GitVersion func(ctx context.Context) (string, error)
}

// Run performs all checks in order.
func (d *Doctor) Run(ctx context.Context) []Result {
	results := []Result{
		d.checkGit(ctx),
		d.checkForge(ctx),
		d.checkConfig(),
	}

	if results[1].Status != StatusOK {
		results = append(results, Result{
			Name:   "template",
			Status: StatusSkip,
			Detail: d.Template,
			Hint:   "requires " + d.Forge.Name(),
		})
		return results
	}
	return append(results, d.checkTemplate(ctx))
}

func (d *Doctor) checkGit(ctx context.Context) Result {
	r := Result{Name: "git"}
	if err := git.CheckGit(); err != nil {
		r.Status = StatusFail
		r.Detail = "not found"
		r.Hint = "install git (https://git-scm.com)"
		return r
	}
	versionFn := d.GitVersion
	if versionFn == nil {
		versionFn = git.Version
	}
	v, err := versionFn(ctx)
	if err != nil {
		r.Status = StatusFail
		r.Detail = err.Error()
		return r
	}
	r.Status = StatusOK
	r.Detail = v
	return r
}

func (d *Doctor) checkForge(ctx context.Context) Result {
	r := Result{Name: d.Forge.Name()}
	err := d.Forge.Check(ctx)
	switch {
	case err == nil:
		r.Status = StatusOK
		r.Detail = "authenticated"
	case errors.Is(err, forge.ErrGHNotFound):
		r.Status = StatusFail
		r.Detail = "not found"
		r.Hint = "install gh (https://cli.github.com)"
	case errors.Is(err, forge.ErrGHNotAuthenticated):
		r.Status = StatusFail
		r.Detail = "not authenticated"
		r.Hint = "run 'gh auth login'"
	default:
		r.Status = StatusFail
		r.Detail = err.Error()
	}
	return r
}

func (d *Doctor) checkConfig() Result {
	r := Result{Name: "config", Detail: d.ConfigPath}
	if _, err := os.Stat(d.ConfigPath); errors.Is(err, os.ErrNotExist) {
		r.Status = StatusWarn
		r.Hint = "not found, using defaults; run 'newrepo config init'"
		return r
	}
	if _, err := config.LoadFile(d.ConfigPath); err != nil {
		r.Status = StatusFail
		r.Hint = err.Error()
		return r
	}
	r.Status = StatusOK
	return r
}

func (d *Doctor) checkTemplate(ctx context.Context) Result {
	r := Result{Name: "template", Detail: d.Template}
	ok, err := d.Forge.TemplateExists(ctx, d.Template)
	switch {
	case err != nil:
		r.Status = StatusFail
		r.Hint = err.Error()
	case !ok:
		r.Status = StatusFail
		r.Hint = "not found or not marked as a template repository"
	default:
		r.Status = StatusOK
	}
	return r
}

// Failed reports whether any check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// Render formats results as a table.
func Render(results []Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{statusSymbol(r.Status), r.Name, r.Detail, styles.MutedStyle.Render(r.Hint)})
	}
	return static.RenderTable([]string{"", "CHECK", "DETAIL", "HINT"}, rows)
}

func statusSymbol(s Status) string {
	switch s {
	case StatusOK:
		return styles.SuccessStyle.Render(styles.SymbolOK)
	case StatusWarn:
		return styles.WarningStyle.Render(styles.SymbolWarn)
	case StatusFail:
		return styles.ErrorStyle.Render(styles.SymbolFail)
	default:
		return styles.MutedStyle.Render("-")
	}
}

// Summary returns a one-line summary of the results.
func Summary(results []Result) string {
	var failed, warned int
	for _, r := range results {
		switch r.Status {
		case StatusFail:
			failed++
		case StatusWarn:
			warned++
		}
	}
	if failed == 0 && warned == 0 {
		return styles.SuccessStyle.Render(styles.SymbolOK + " All checks passed")
	}
	return fmt.Sprintf("%d failed, %d warnings", failed, warned)
}
