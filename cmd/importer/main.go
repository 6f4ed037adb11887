// The importer is the offline half of the payments system: it reads a
// spreadsheet export from a fixed path, validates and normalizes every row,
// prints the operator report, and inserts the surviving records. Invalid
// rows degrade the batch to a partial success, they never abort it.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pay-managing/api-payments/internal/config"
	"github.com/pay-managing/api-payments/internal/importer"
	"github.com/pay-managing/api-payments/internal/logger"
	"github.com/pay-managing/api-payments/internal/notify"
	"github.com/pay-managing/api-payments/internal/payment"
	"github.com/pay-managing/api-payments/internal/platform/db"
	"github.com/pay-managing/api-payments/internal/refdata"
)

var (
	filePath string
	dryRun   bool
)

var rootCmd = &cobra.Command{
	Use:   "payments-import",
	Short: "Bulk-import payment records from a CSV or XLSX export",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&filePath, "file", "", "path to the import file (defaults to IMPORT_FILE_PATH)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and report without inserting")
}

func runImport() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	imLog := logger.WithComponent("importer")

	if filePath == "" {
		filePath = cfg.ImportFilePath
	}

	ref, err := refdata.Load(context.Background(), cfg.RefDataBaseURL, nil)
	if err != nil {
		// No degraded mode: without the code sets nothing can be validated.
		imLog.Fatal().Err(err).Msg("loading reference data")
	}

	rows, err := importer.ReadFile(filePath)
	if err != nil {
		return err
	}
	imLog.Info().Str("file", filePath).Int("rows", len(rows)).Msg("source read")

	result, err := importer.Normalize(rows, ref)
	result.Report(imLog)
	if err != nil {
		return err
	}

	if dryRun {
		imLog.Info().Msg("dry run, skipping insert")
		return nil
	}

	database, err := db.Open(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSecretID)
	if err != nil {
		return err
	}
	inserted, err := payment.NewRepository().CreateBatch(database, result.Valid)
	if err != nil {
		return err
	}
	imLog.Info().Int("inserted", inserted).Msg("records inserted")

	if cfg.ImportWebhookURL != "" {
		notify.SendImportSummary(cfg.ImportWebhookURL, inserted, len(result.Rejected))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("import failed")
		os.Exit(1)
	}
}
