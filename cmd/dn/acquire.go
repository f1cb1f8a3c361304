package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/dotnet-layer/internal/messages"
)

func newAcquireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.AcquireUse,
		Short: messages.AcquireShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()

			cancel := d.coordinator.Events().Subscribe(consoleObserver(cmd.ErrOrStderr()))
			defer cancel()

			path, err := d.coordinator.Acquire(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
