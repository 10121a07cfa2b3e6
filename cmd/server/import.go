package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/repository/sqlite"
	"github.com/mamadbah2/prodtracker/internal/service/csvio"
	"github.com/mamadbah2/prodtracker/internal/service/ingestion"
)

func newImportCommand(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Submit every row of an exported CSV file as a new entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				return errors.New("--file is required")
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			rows, err := csvio.ParseEntries(f)
			if err != nil {
				return err
			}

			db, err := sqlite.Open(a.cfg.Database.Path, a.logger.Named("repo.sqlite"))
			if err != nil {
				return err
			}
			defer func() { _ = sqlite.Close(db) }()

			svc := ingestion.NewService(sqlite.NewEntryRepository(db), nil, nil, a.logger.Named("svc.ingestion"))

			var imported, rejected int
			for i, row := range rows {
				_, err := svc.Submit(cmd.Context(), ingestion.Submission{Payload: csvio.Payload(row)})
				var validationErr *models.ValidationError
				switch {
				case errors.As(err, &validationErr):
					rejected++
					a.logger.Warn("row rejected", zap.Int("row", i+2), zap.Error(err))
				case err != nil:
					return fmt.Errorf("import row %d: %w", i+2, err)
				default:
					imported++
				}
			}

			a.logger.Info("entries imported", zap.String("file", file), zap.Int("imported", imported), zap.Int("rejected", rejected))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "CSV file in export format")
	return cmd
}
