package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the series database",
	}

	dbCmd.AddCommand(newDBCreateCommand(ctx))
	dbCmd.AddCommand(newDBImportCommand(ctx))
	dbCmd.AddCommand(newDBExportCommand(ctx))

	return dbCmd
}

func newDBCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the series database if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if store.Recovered() {
				fmt.Fprintf(out, "Existing database at %s\n", store.Path())
			} else {
				fmt.Fprintf(out, "Created database at %s\n", store.Path())
			}
			return nil
		},
	}
}

func newDBImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the series database with an exported copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.transferManager()
			if err != nil {
				return err
			}
			if err := mgr.Import(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported collection from %s\n", args[0])
			return nil
		},
	}
}

func newDBExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Copy the series database into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.transferManager()
			if err != nil {
				return err
			}
			dest, err := mgr.Export(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported collection to %s\n", dest)
			return nil
		},
	}
}
