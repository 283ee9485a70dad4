package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/newrepo/internal/git"
	"github.com/raphi011/newrepo/internal/log"
	"github.com/raphi011/newrepo/internal/output"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			out.Println(versionString())

			if log.FromContext(ctx).IsVerbose() {
				if v, err := git.Version(ctx); err == nil {
					out.Printf("git %s\n", v)
				}
			}
			return nil
		},
	}
}
