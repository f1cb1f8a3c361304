package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/dotnet-layer/internal/messages"
)

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()

			if err := d.coordinator.UninstallAll(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.UninstallDone)
			return nil
		},
	}
}
