package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nibzard/taskcli/internal/config"
)

func newConfigCommand(a *app) *cobra.Command {
	var example bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if example {
				_, err := fmt.Fprint(a.stdout, config.ExampleConfig())
				return err
			}
			return a.cfg.Print(a.stdout)
		},
	}
	cmd.Flags().BoolVar(&example, "example", false, "Print an example config file")
	return cmd
}
