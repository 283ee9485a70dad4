package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/forge"
	"github.com/raphi011/newrepo/internal/log"
)

// remoteName is the name the new remote is registered under.
const remoteName = "origin"

// VCS runs the local version-control operations.
type VCS interface {
	Init(ctx context.Context, dir, branch string) error
	AddRemote(ctx context.Context, dir, name, url string) error
	AddAll(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir, message string) error
	Push(ctx context.Context, dir, remote, branch string) error
	Head(dir string) (string, error)
}

// Options configures a single scaffold run.
type Options struct {
	Dir              string // target directory; relative paths resolve against WorkDir
	WorkDir          string // directory newrepo was started in (default: os.Getwd)
	Public           bool
	Template         string // owner/name of the template repository
	Owner            string // empty asks the forge for the authenticated user
	Description      string
	Branch           string
	CommitMessage    string
	Title            string // overrides the title derived from the name
	RemoteURLFormat  string // {owner} and {repo} are expanded
	Files            []config.FileRule
	CleanupOnFailure bool
	DryRun           bool
	Now              time.Time
}

// withDefaults fills unset options from the config defaults.
func (o Options) withDefaults() (Options, error) {
	if o.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return o, err
		}
		o.WorkDir = wd
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Template == "" {
		o.Template = config.DefaultTemplate
	}
	if o.Branch == "" {
		o.Branch = config.DefaultBranch
	}
	if o.CommitMessage == "" {
		o.CommitMessage = config.DefaultCommitMessage
	}
	if o.Files == nil {
		o.Files = config.DefaultFiles()
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o, nil
}

// Result describes a scaffolded (or, for dry runs, planned) project.
type Result struct {
	RepoName  string
	Title     string
	Owner     string // empty on a dry run without a configured owner
	RemoteURL string
	Dir       string // absolute target directory
	Template  string
	Public    bool
	Head      string              // pushed commit, empty on dry run
	Plan      []string            // step names in execution order
	Completed []string            // steps that finished
	Manifest  *config.LocalConfig // template manifest, nil if the template has none
}

// Scaffolder creates projects from a template using a forge and a local VCS.
type Scaffolder struct {
	Forge forge.Forge
	Git   VCS
}

// New creates a Scaffolder.
func New(f forge.Forge, g VCS) *Scaffolder {
	return &Scaffolder{Forge: f, Git: g}
}

// Run checks the precondition, derives the names and executes the pipeline.
// With DryRun set it stops after planning and runs no external command.
// On failure the returned Result still carries the names and the completed
// steps.
func (s *Scaffolder) Run(ctx context.Context, opts Options) (*Result, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	dir := ResolveDir(opts.WorkDir, opts.Dir)
	if err := CheckTarget(opts.WorkDir, dir); err != nil {
		return nil, err
	}

	name, err := RepoName(dir)
	if err != nil {
		return nil, err
	}
	title := opts.Title
	if title == "" {
		title = Title(name)
	}

	owner := opts.Owner
	if owner == "" && !opts.DryRun {
		owner, err = s.Forge.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		RepoName: name,
		Title:    title,
		Owner:    owner,
		Dir:      dir,
		Template: opts.Template,
		Public:   opts.Public,
	}
	if owner != "" {
		res.RemoteURL = config.ExpandRemoteURL(opts.RemoteURLFormat, owner, name)
	}

	r := &run{
		s:    s,
		opts: opts,
		dir:  dir,
		spec: forge.RepoSpec(owner, name),
		url:  res.RemoteURL,
		values: Values{
			RepoName: name,
			Title:    title,
			Year:     Year(opts.Now),
		},
	}
	p := r.pipeline()
	res.Plan = p.Plan()

	if opts.DryRun {
		return res, nil
	}

	defer r.removeScratch(ctx)

	err = p.Run(ctx)
	res.Completed = p.Completed()
	res.Manifest = r.manifest
	if err != nil {
		return res, err
	}

	if head, err := s.Git.Head(dir); err != nil {
		log.FromContext(ctx).Debug("failed to read HEAD", "dir", dir, "err", err)
	} else {
		res.Head = head
	}
	return res, nil
}

// run holds the state shared by the steps of one pipeline.
type run struct {
	s      *Scaffolder
	opts   Options
	dir    string
	spec   string // owner/name of the new remote repository
	url    string
	values Values

	scratch    string
	clone      string
	manifest   *config.LocalConfig
	dirCreated bool
	copied     []string
	gitCreated bool
}

func (r *run) pipeline() *Pipeline {
	steps := []Step{
		{Name: "create remote", Run: r.createRemote, Undo: r.deleteRemote},
		{Name: "clone template", Run: r.cloneScratch},
		{Name: "read template manifest", Run: r.readManifest},
		{Name: "copy into target", Run: r.copyIntoTarget, Undo: r.removeCopied, UndoPartial: true},
		{Name: "remove scratch clone", Run: r.removeScratchStep},
	}
	for _, f := range r.opts.Files {
		steps = append(steps, Step{
			Name: "replace placeholders in " + f.Path,
			Run:  r.replaceConfigured(f.Path),
		})
	}
	steps = append(steps,
		Step{Name: "replace placeholders in template files", Run: r.replaceManifestFiles},
		Step{Name: "git init", Run: r.initRepo, Undo: r.removeGitDir},
		Step{Name: "add remote " + remoteName, Run: r.addRemote},
		Step{Name: "stage all", Run: r.stageAll},
		Step{Name: "commit", Run: r.commit},
		Step{Name: "push " + r.opts.Branch, Run: r.push},
	)
	return &Pipeline{Steps: steps, CleanupOnFailure: r.opts.CleanupOnFailure}
}

func (r *run) createRemote(ctx context.Context) error {
	return r.s.Forge.CreateFromTemplate(ctx, forge.CreateParams{
		Name:        r.spec,
		Template:    r.opts.Template,
		Public:      r.opts.Public,
		Description: r.opts.Description,
	})
}

func (r *run) deleteRemote(ctx context.Context) error {
	return r.s.Forge.Delete(ctx, r.spec)
}

func (r *run) cloneScratch(ctx context.Context) error {
	scratch, err := os.MkdirTemp("", r.values.RepoName+"_template_clone-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	r.scratch = scratch
	r.clone = filepath.Join(scratch, r.values.RepoName)
	return r.s.Forge.Clone(ctx, r.spec, r.clone)
}

func (r *run) readManifest(ctx context.Context) error {
	local, err := config.LoadLocal(r.clone)
	if err != nil {
		return err
	}
	if local != nil {
		log.FromContext(ctx).Debug("template manifest found", "files", len(local.Files), "hooks", len(local.Hooks.Hooks))
	}
	r.manifest = local
	return nil
}

func (r *run) copyIntoTarget(context.Context) error {
	if _, err := os.Stat(r.dir); errors.Is(err, fs.ErrNotExist) {
		r.dirCreated = true
	}
	copied, err := CopyTemplate(r.clone, r.dir)
	r.copied = copied
	return err
}

func (r *run) removeCopied(context.Context) error {
	if r.dirCreated {
		return os.RemoveAll(r.dir)
	}
	var errs []error
	for _, name := range r.copied {
		if err := os.RemoveAll(filepath.Join(r.dir, name)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *run) removeScratchStep(context.Context) error {
	if r.scratch == "" {
		return nil
	}
	if err := os.RemoveAll(r.scratch); err != nil {
		return err
	}
	r.scratch = ""
	return nil
}

// removeScratch is deferred by Run so the clone never outlives the process.
func (r *run) removeScratch(ctx context.Context) {
	if err := r.removeScratchStep(ctx); err != nil {
		log.FromContext(ctx).Warn("failed to remove scratch directory %s: %v", r.scratch, err)
	}
}

// effectiveFiles returns the configured file rules merged with the template
// manifest.
func (r *run) effectiveFiles() []config.FileRule {
	merged := config.MergeLocal(&config.Config{Files: r.opts.Files}, r.manifest)
	return merged.Files
}

func (r *run) replaceConfigured(path string) func(context.Context) error {
	return func(ctx context.Context) error {
		files := r.effectiveFiles()
		i := slices.IndexFunc(files, func(f config.FileRule) bool { return f.Path == path })
		if i < 0 {
			return nil
		}
		return r.replaceFile(ctx, files[i])
	}
}

func (r *run) replaceManifestFiles(ctx context.Context) error {
	if r.manifest == nil {
		return nil
	}
	for _, f := range r.effectiveFiles() {
		if slices.ContainsFunc(r.opts.Files, func(c config.FileRule) bool { return c.Path == f.Path }) {
			continue
		}
		if err := r.replaceFile(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) replaceFile(ctx context.Context, f config.FileRule) error {
	path := filepath.Join(r.dir, f.Path)
	found, err := ReplaceInFile(path, Replacements(f.Tokens, r.values))
	if err != nil {
		return fmt.Errorf("failed to replace placeholders in %s: %w", f.Path, err)
	}
	if !found {
		l := log.FromContext(ctx)
		if s := Suggest(filepath.Dir(path), f.Path); len(s) > 0 {
			l.Warn("file not found: %s (did you mean %s?)", f.Path, strings.Join(s, ", "))
		} else {
			l.Warn("file not found: %s", f.Path)
		}
	}
	return nil
}

func (r *run) initRepo(ctx context.Context) error {
	if err := r.s.Git.Init(ctx, r.dir, r.opts.Branch); err != nil {
		return err
	}
	r.gitCreated = true
	return nil
}

func (r *run) removeGitDir(context.Context) error {
	if !r.gitCreated || r.dirCreated {
		// removeCopied drops the whole directory
		return nil
	}
	return os.RemoveAll(filepath.Join(r.dir, ".git"))
}

func (r *run) addRemote(ctx context.Context) error {
	return r.s.Git.AddRemote(ctx, r.dir, remoteName, r.url)
}

func (r *run) stageAll(ctx context.Context) error {
	return r.s.Git.AddAll(ctx, r.dir)
}

func (r *run) commit(ctx context.Context) error {
	return r.s.Git.Commit(ctx, r.dir, r.opts.CommitMessage)
}

func (r *run) push(ctx context.Context) error {
	return r.s.Git.Push(ctx, r.dir, remoteName, r.opts.Branch)
}
