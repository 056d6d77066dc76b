package main

import (
	"fmt"

	"github.com/imharvol/cienciathon-2021/pkg/store"
	"github.com/imharvol/cienciathon-2021/pkg/store/sqlite"

	"github.com/spf13/cobra"
)

func newInitDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema",
		Long: `Create the database schema of the configured database.

With --output a SQLite database is created at the given path instead, without
reading the configuration file. Existing data is kept unless --force is set.`,
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			output, _ := cmd.Flags().GetString("output")

			var s store.Provider

			if output != "" {
				p, err := sqlite.New(sqlite.WithPath(output))

				if err != nil {
					return err
				}

				s = p
			} else {
				cfg, err := loadConfig(cmd)

				if err != nil {
					return err
				}

				s = cfg.Store()
			}

			defer s.Close()

			if err := s.Init(cmd.Context(), force); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "database initialized")

			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "drop existing tables first")
	cmd.Flags().StringP("output", "o", "", "path of a SQLite database to create")

	return cmd
}
