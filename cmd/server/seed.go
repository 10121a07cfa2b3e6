package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/repository/sqlite"
	"github.com/mamadbah2/prodtracker/internal/service/auth"
)

func newSeedCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or update accounts from a username,password,role CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = a.cfg.Seed.UsersFile
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer f.Close()

			users, err := auth.ParseSeedUsers(f)
			if err != nil {
				return err
			}

			db, err := sqlite.Open(a.cfg.Database.Path, a.logger.Named("repo.sqlite"))
			if err != nil {
				return err
			}
			defer func() { _ = sqlite.Close(db) }()

			repo := sqlite.NewUserRepository(db)
			for i := range users {
				if err := repo.Upsert(cmd.Context(), &users[i]); err != nil {
					return err
				}
			}

			a.logger.Info("users seeded", zap.String("file", file), zap.Int("count", len(users)))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "seed file (defaults to SEED_USERS_FILE)")
	return cmd
}
