package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/log"
	"github.com/raphi011/newrepo/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage newrepo configuration.

User config:      ~/.config/newrepo/config.toml (NEWREPO_CONFIG overrides)
Template manifest: .newrepo.toml (in the template repository root)`,
		Example: `  newrepo config init           # Create default user config
  newrepo config init --local   # Create a template manifest in the current dir
  newrepo config show           # Show effective config
  newrepo config path           # Print the config file path`,
	}

	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigPathCmd(a))

	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the user config at the config path.
With --local, creates a .newrepo.toml template manifest in the current
directory. Commit it to a template repository to add files and hooks for
every project created from it.`,
		Example: `  newrepo config init           # Create user config
  newrepo config init --local   # Create template manifest
  newrepo config init -f        # Overwrite existing config
  newrepo config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			content := config.DefaultConfig()
			if local {
				content = config.DefaultLocalConfig()
			}
			if stdout {
				out.Print(content)
				return nil
			}

			if local {
				path := filepath.Join(config.WorkDirFromContext(ctx), config.LocalConfigFileName)
				if !force {
					if _, err := os.Stat(path); err == nil {
						return fmt.Errorf("template manifest already exists: %s (use -f to overwrite)", path)
					}
				}
				if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
					return err
				}
				l.Printf("Created template manifest: %s\n", path)
				return nil
			}

			path, err := a.configPath()
			if err != nil {
				return err
			}
			if err := config.InitFile(path, force); err != nil {
				return fmt.Errorf("%w (use -f to overwrite)", err)
			}
			l.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create a .newrepo.toml template manifest instead")

	return cmd
}

// configView is the serialized form of the effective config.
type configView struct {
	Template         string              `toml:"template" yaml:"template" json:"template"`
	Owner            string              `toml:"owner" yaml:"owner" json:"owner"`
	Visibility       string              `toml:"visibility" yaml:"visibility" json:"visibility"`
	Branch           string              `toml:"branch" yaml:"branch" json:"branch"`
	CommitMessage    string              `toml:"commit_message" yaml:"commit_message" json:"commit_message"`
	RemoteURL        string              `toml:"remote_url" yaml:"remote_url" json:"remote_url"`
	CleanupOnFailure bool                `toml:"cleanup_on_failure" yaml:"cleanup_on_failure" json:"cleanup_on_failure"`
	Files            []fileView          `toml:"files" yaml:"files" json:"files"`
	Hooks            map[string]hookView `toml:"hooks,omitempty" yaml:"hooks,omitempty" json:"hooks,omitempty"`
	Theme            themeView           `toml:"theme" yaml:"theme" json:"theme"`
}

type fileView struct {
	Path   string   `toml:"path" yaml:"path" json:"path"`
	Tokens []string `toml:"tokens" yaml:"tokens" json:"tokens"`
}

type hookView struct {
	Command     string   `toml:"command" yaml:"command" json:"command"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	On          []string `toml:"on,omitempty" yaml:"on,omitempty" json:"on,omitempty"`
}

type themeView struct {
	Name string `toml:"name,omitempty" yaml:"name,omitempty" json:"name,omitempty"`
	Mode string `toml:"mode,omitempty" yaml:"mode,omitempty" json:"mode,omitempty"`
}

func newConfigView(cfg *config.Config) configView {
	v := configView{
		Template:         cfg.Template,
		Owner:            cfg.Owner,
		Visibility:       cfg.Visibility,
		Branch:           cfg.Branch,
		CommitMessage:    cfg.CommitMessage,
		RemoteURL:        cfg.RemoteURL,
		CleanupOnFailure: cfg.CleanupOnFailure,
		Theme:            themeView{Name: cfg.Theme.Name, Mode: cfg.Theme.Mode},
	}
	for _, f := range cfg.Files {
		v.Files = append(v.Files, fileView{Path: f.Path, Tokens: f.Tokens})
	}
	for name, h := range cfg.Hooks.Hooks {
		if !h.IsEnabled() {
			continue
		}
		if v.Hooks == nil {
			v.Hooks = make(map[string]hookView)
		}
		v.Hooks[name] = hookView{Command: h.Command, Description: h.Description, On: h.On}
	}
	return v
}

func newConfigShowCmd(a *app) *cobra.Command {
	var (
		format string
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

With --local, a .newrepo.toml in the current directory is merged on top,
the way a template manifest is merged during creation.`,
		Example: `  newrepo config show                # TOML
  newrepo config show --format yaml
  newrepo config show --format json
  newrepo config show --local        # Merge ./.newrepo.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if !slices.Contains(output.Formats, format) {
				return fmt.Errorf("invalid format %q: must be toml, yaml or json", format)
			}

			if local {
				lc, err := config.LoadLocal(config.WorkDirFromContext(ctx))
				if err != nil {
					return err
				}
				cfg = config.MergeLocal(cfg, lc)
			}

			return out.Encode(format, newConfigView(cfg))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", output.FormatTOML, "Output format: toml, yaml or json")
	cmd.Flags().BoolVar(&local, "local", false, "Merge .newrepo.toml from the current directory")

	return cmd
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configPath()
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}
}
