package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/newrepo/internal/history"
	"github.com/raphi011/newrepo/internal/log"
	"github.com/raphi011/newrepo/internal/output"
	"github.com/raphi011/newrepo/internal/ui/static"
	"github.com/raphi011/newrepo/internal/ui/styles"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		prune  bool
		format string
	)

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "List projects created with newrepo",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Example: `  newrepo history                # Newest first
  newrepo history --prune        # Forget projects whose directory is gone
  newrepo history --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			if format != "" && !slices.Contains(output.Formats, format) {
				return fmt.Errorf("invalid format %q: must be toml, yaml or json", format)
			}

			path, err := a.historyPath()
			if err != nil {
				return err
			}
			if prune {
				removed := 0
				err := history.Update(path, func(h *history.History) error {
					removed = h.RemoveStale()
					return nil
				})
				if err != nil {
					return err
				}
				if removed > 0 {
					l.Printf("Removed %d stale entries\n", removed)
				}
			}

			h, err := history.Load(path)
			if err != nil {
				return err
			}

			if format != "" {
				return out.Encode(format, h)
			}

			if len(h.Entries) == 0 {
				l.Println("No projects created yet")
				return nil
			}

			rows := make([][]string, 0, len(h.Entries))
			for _, e := range h.Entries {
				rows = append(rows, []string{
					e.Repo,
					e.Owner,
					e.Path,
					styles.MutedStyle.Render(e.CreatedAt.Local().Format(time.DateTime)),
				})
			}
			out.Print(static.RenderTable([]string{"REPO", "OWNER", "PATH", "CREATED"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "Remove entries whose directory no longer exists")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: toml, yaml or json (default: table)")

	return cmd
}
