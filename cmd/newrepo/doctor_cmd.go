package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/newrepo/internal/config"
	"github.com/raphi011/newrepo/internal/doctor"
	"github.com/raphi011/newrepo/internal/output"
)

var errChecksFailed = errors.New("some checks failed")

func newDoctorCmd(a *app) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Check git, gh, the config file and the template",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Check the environment newrepo depends on.

Checks:
- git is installed
- gh is installed and authenticated
- the config file parses (a missing file only warns)
- the template repository exists and is marked as a template`,
		Example: `  newrepo doctor
  newrepo doctor -t org/other-template`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			if template == "" {
				template = cfg.Template
			}
			path, err := a.configPath()
			if err != nil {
				return err
			}
			fg, err := a.forge()
			if err != nil {
				return err
			}

			d := &doctor.Doctor{
				Forge:      fg,
				ConfigPath: path,
				Template:   template,
			}
			results := d.Run(ctx)

			out.Print(doctor.Render(results))
			out.Println()
			out.Println(doctor.Summary(results))

			if doctor.Failed(results) {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Template repository to check (default: from config)")

	return cmd
}
