package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/dotnet-layer/internal/messages"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = d.log.Sync() }()
			out := cmd.OutOrStdout()

			versions, err := d.tracker.ReadInstalledVersions()
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				_, _ = fmt.Fprintln(out, messages.StatusNoInstalls)
			} else {
				_, _ = fmt.Fprintln(out, messages.StatusInstalledHeader)
				for _, v := range versions {
					_, _ = fmt.Fprintf(out, messages.StatusEntryFmt+"\n", v)
				}
			}

			hasBegin, err := d.tracker.HasBeginMarker()
			if err != nil {
				return err
			}
			if hasBegin {
				// The marker content is diagnostic only; correctness
				// hinges on presence.
				interrupted, err := d.tracker.BeginVersion()
				if err != nil || interrupted == "" {
					_, _ = fmt.Fprintln(out, color.YellowString(messages.StatusInterruptedNoDetail))
				} else {
					_, _ = fmt.Fprintln(out, color.YellowString(messages.StatusInterruptedFmt, interrupted))
				}
			}
			return nil
		},
	}
}
