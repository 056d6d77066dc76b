package main

import (
	"log/slog"

	"github.com/imharvol/cienciathon-2021/pkg/ingest"
	"github.com/imharvol/cienciathon-2021/server"

	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the ingest workers",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(cmd)

			if err != nil {
				return err
			}

			defer cfg.Close()

			if err := cfg.Store().Init(ctx, false); err != nil {
				return err
			}

			pipeline, err := cfg.Pipeline()

			if err != nil {
				return err
			}

			queue := ingest.NewQueue(pipeline, cfg.Ingest.Queue, ingest.WithWorkers(cfg.Ingest.Workers))
			queue.Start(ctx)

			defer func() {
				slog.Info("waiting for ingest jobs")
				queue.Close()
			}()

			s, err := server.New(cfg, queue)

			if err != nil {
				return err
			}

			return s.ListenAndServe(ctx)
		},
	}
}
