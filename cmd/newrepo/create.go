package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/forge"
	"github.com/raphi011/newrepo/internal/git"
	"github.com/raphi011/newrepo/internal/history"
	"github.com/raphi011/newrepo/internal/hooks"
	"github.com/raphi011/newrepo/internal/log"
	"github.com/raphi011/newrepo/internal/output"
	"github.com/raphi011/newrepo/internal/scaffold"
	"github.com/raphi011/newrepo/internal/ui/prompt"
	"github.com/raphi011/newrepo/internal/ui/static"
	"github.com/raphi011/newrepo/internal/ui/styles"
)

// createFlags holds the flags of the root (create) command.
type createFlags struct {
	public      bool
	private     bool
	template    string
	owner       string
	branch      string
	message     string
	description string
	title       string
	dryRun      bool
	cleanup     bool
	interactive bool
	yes         bool
	hooks       []string
	noHook      bool
	args        []string
	copyURL     bool
}

func (f *createFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVar(&f.public, "public", false, "Create a public repository (default: private)")
	fl.BoolVar(&f.private, "private", false, "Create a private repository, overriding visibility in the config")
	fl.StringVarP(&f.template, "template", "t", "", "Template repository (owner/name)")
	fl.StringVar(&f.owner, "owner", "", "Repository owner (default: the authenticated gh user)")
	fl.StringVarP(&f.branch, "branch", "b", "", "Initial branch")
	fl.StringVarP(&f.message, "message", "m", "", "Initial commit message")
	fl.StringVarP(&f.description, "description", "d", "", "Repository description")
	fl.StringVar(&f.title, "title", "", "Project title (default: derived from the directory name)")
	fl.BoolVarP(&f.dryRun, "dry-run", "n", false, "Print the plan without running anything")
	fl.BoolVar(&f.cleanup, "cleanup-on-failure", false, "Undo completed steps when a step fails")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "Prompt for the project title")
	fl.BoolVarP(&f.yes, "yes", "y", false, "Do not ask for confirmation")
	fl.StringSliceVar(&f.hooks, "hook", nil, "Run the named hook instead of the configured ones")
	fl.BoolVar(&f.noHook, "no-hook", false, "Skip post-create hooks")
	fl.StringArrayVarP(&f.args, "arg", "a", nil, "Hook variable as key=value (value - reads stdin)")
	fl.BoolVar(&f.copyURL, "copy", false, "Copy the repository URL to the clipboard")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hook")
	cmd.MarkFlagsMutuallyExclusive("public", "private")
}

// options builds scaffold options from config overridden by flags.
func (f *createFlags) options(cfg *config.Config, workDir, dir string) scaffold.Options {
	opts := scaffold.Options{
		Dir:              dir,
		WorkDir:          workDir,
		Public:           (cfg.IsPublic() || f.public) && !f.private,
		Template:         cfg.Template,
		Owner:            cfg.Owner,
		Description:      f.description,
		Branch:           cfg.Branch,
		CommitMessage:    cfg.CommitMessage,
		Title:            f.title,
		RemoteURLFormat:  cfg.RemoteURL,
		Files:            cfg.Files,
		CleanupOnFailure: cfg.CleanupOnFailure || f.cleanup,
		DryRun:           f.dryRun,
	}
	if f.template != "" {
		opts.Template = f.template
	}
	if f.owner != "" {
		opts.Owner = f.owner
	}
	if f.branch != "" {
		opts.Branch = f.branch
	}
	if f.message != "" {
		opts.CommitMessage = f.message
	}
	return opts
}

func (a *app) runCreate(ctx context.Context, f createFlags, args []string) error {
	cfg := config.FromContext(ctx)
	workDir := config.WorkDirFromContext(ctx)
	l := log.FromContext(ctx)

	dirArg := "."
	if len(args) == 1 {
		expanded, err := config.ExpandPath(args[0])
		if err != nil {
			return fmt.Errorf("invalid dir %q: %w", args[0], err)
		}
		dirArg = expanded
	}

	if f.template != "" {
		if err := config.ValidateRepoSpec(f.template); err != nil {
			return fmt.Errorf("--template: %w", err)
		}
	}
	if f.interactive && !a.isTerminal() {
		return errors.New("--interactive requires a terminal")
	}

	hookArgs, err := hooks.ParseArgs(f.args)
	if err != nil {
		return err
	}

	opts := f.options(cfg, workDir, dirArg)
	opts.Now = a.now()

	dir := scaffold.ResolveDir(workDir, dirArg)
	if err := scaffold.CheckTarget(workDir, dir); err != nil {
		return err
	}

	fg, err := a.forge()
	if err != nil {
		return err
	}
	if !f.dryRun {
		if err := git.CheckGit(); err != nil {
			return err
		}
		if err := fg.Check(ctx); err != nil {
			return err
		}
	}

	if f.interactive {
		if err := promptTitle(&opts, dir); err != nil {
			return err
		}
	}
	if opts.Public && !f.yes && !f.dryRun && a.isTerminal() {
		if err := confirmPublic(dir); err != nil {
			return err
		}
	}

	res, err := scaffold.New(fg, git.CLI{}).Run(ctx, opts)
	if err != nil {
		if res != nil && len(res.Completed) > 0 {
			l.Debug("pipeline stopped", "completed", strings.Join(res.Completed, ", "))
		}
		return err
	}

	if !a.quiet {
		a.printResult(output.FromContext(ctx), res, f.dryRun)
	}

	if !f.dryRun {
		a.recordHistory(ctx, res)
	}

	if f.copyURL && !f.dryRun {
		if err := clipboard.WriteAll(forge.WebURL(forge.RepoSpec(res.Owner, res.RepoName))); err != nil {
			l.Warn("failed to copy URL to clipboard: %v", err)
		}
	}

	effective := config.MergeLocal(cfg, res.Manifest)
	matches, err := hooks.SelectHooks(effective.Hooks, f.hooks, f.noHook, hooks.CommandCreate)
	if err != nil {
		return err
	}
	return hooks.RunAll(ctx, matches, hooks.Context{
		Path:    res.Dir,
		Repo:    res.RepoName,
		Title:   res.Title,
		Owner:   res.Owner,
		URL:     res.RemoteURL,
		Trigger: string(hooks.CommandCreate),
		Env:     hookArgs,
		DryRun:  f.dryRun,
	})
}

func promptTitle(opts *scaffold.Options, dir string) error {
	initial := opts.Title
	if initial == "" {
		name, err := scaffold.RepoName(dir)
		if err != nil {
			return err
		}
		initial = scaffold.Title(name)
	}
	res, err := prompt.TextInput("Project title", initial)
	if err != nil {
		return err
	}
	if res.Cancelled {
		return errAborted
	}
	opts.Title = res.Value
	return nil
}

func publicPrompt(name string) string {
	return fmt.Sprintf("Create public repository %q?", name)
}

func confirmPublic(dir string) error {
	name, err := scaffold.RepoName(dir)
	if err != nil {
		return err
	}
	res, err := prompt.Confirm(publicPrompt(name))
	if err != nil {
		return err
	}
	if !res.Confirmed {
		return errAborted
	}
	return nil
}

func (a *app) printResult(out *output.Printer, res *scaffold.Result, dryRun bool) {
	visibility := "private"
	if res.Public {
		visibility = "public"
	}
	spec := forge.RepoSpec(res.Owner, res.RepoName)

	summary := [][2]string{
		{"path", res.Dir},
		{"title", res.Title},
		{"template", res.Template},
		{"remote", res.RemoteURL},
	}

	if dryRun {
		out.Printf("%s %s (%s)\n\n", styles.MutedStyle.Render("[dry-run]"), styles.FormatRepoRef(spec, ""), visibility)
		out.Print(static.RenderSummary(summary))
		out.Println()
		out.Print(static.RenderPlan(res.Plan))
		return
	}

	ref := styles.FormatRepoRef(spec, forge.WebURL(spec))
	out.Printf("%s Created %s (%s)\n\n", styles.SuccessStyle.Render(styles.SymbolOK), ref, visibility)
	if head := (git.Info{Head: res.Head}).ShortHead(); head != "" {
		summary = append(summary, [2]string{"commit", head})
	}
	out.Print(static.RenderSummary(summary))
}

func (a *app) recordHistory(ctx context.Context, res *scaffold.Result) {
	l := log.FromContext(ctx)
	path, err := a.historyPath()
	if err == nil {
		err = history.Record(path, history.Entry{
			Repo:      res.RepoName,
			Owner:     res.Owner,
			Path:      res.Dir,
			URL:       res.RemoteURL,
			Template:  res.Template,
			Public:    res.Public,
			CreatedAt: a.now(),
		})
	}
	if err != nil {
		l.Warn("failed to record history: %v", err)
	}
}
