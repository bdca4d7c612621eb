package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"episodic/internal/library"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached catalog documents",
	}

	cacheCmd.AddCommand(newCacheInvalidateCommand(ctx))

	return cacheCmd
}

func newCacheInvalidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <series-id>",
		Short: "Drop cached documents for a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSeriesID(args[0])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *library.Service) error {
				if err := svc.InvalidateSeries(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Invalidated cached documents for series %d\n", id)
				return nil
			})
		},
	}
}
