package cmd

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nibzard/taskcli/internal/logging"
	"github.com/nibzard/taskcli/internal/store"
	"github.com/nibzard/taskcli/internal/tasks"
	"github.com/nibzard/taskcli/internal/ui"
)

func newTUICommand(a *app) *cobra.Command {
	var refresh time.Duration
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse tasks interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := a.viewerService()
			a.warnUnreadable(svc)
			return ui.RunTUI(cmd.Context(), svc,
				ui.WithRefreshInterval(refresh),
				ui.WithTitle("taskcli: "+a.store.Path()),
			)
		},
	}
	cmd.Flags().DurationVar(&refresh, "refresh", ui.DefaultRefreshInterval, "How often to re-read the task file")
	return cmd
}

// viewerService returns a service that logs nothing. The viewer owns the
// terminal, and its store is re-read on every refresh.
func (a *app) viewerService() *tasks.Service {
	st := store.New(a.store.Path(), store.WithLogger(logging.Discard()))
	return tasks.NewService(st, tasks.WithOutput(io.Discard), tasks.WithLogger(logging.Discard()))
}

// warnUnreadable logs once, before the viewer starts, when an existing task
// file would be shown as empty.
func (a *app) warnUnreadable(svc *tasks.Service) {
	path := a.store.Path()
	if _, err := os.Stat(path); err != nil {
		return
	}
	result, err := svc.Check(false)
	if err != nil || result.Valid {
		return
	}
	a.logger.Warn("task file is unreadable and will show as empty; run taskcli doctor", "path", path)
}
