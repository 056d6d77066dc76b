package main

import (
	"context"

	"github.com/imharvol/cienciathon-2021/config"
	"github.com/imharvol/cienciathon-2021/pkg/otel"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var shutdown func(ctx context.Context) error

	cmd := &cobra.Command{
		Use:   "parnaxus",
		Short: "Recognize scanned documents and split them into searchable paragraphs",

		Version: version,

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			fn, err := otel.Setup(cmd.Context(), "parnaxus", version)

			if err != nil {
				return err
			}

			shutdown = fn
			return nil
		},

		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if shutdown == nil {
				return nil
			}

			return shutdown(context.WithoutCancel(cmd.Context()))
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "config.yaml", "path to the configuration file")

	cmd.AddCommand(
		newServeCommand(),
		newInitDBCommand(),
		newIngestCommand(),
		newSegmentCommand(),
	)

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Parse(path)
}
