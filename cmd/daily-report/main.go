package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tabsera/recitation-report/internal/repository"
	"github.com/tabsera/recitation-report/internal/service"
	"github.com/tabsera/recitation-report/pkg/config"
	"github.com/tabsera/recitation-report/pkg/database"
	apperrors "github.com/tabsera/recitation-report/pkg/errors"
	"github.com/tabsera/recitation-report/pkg/logger"
	"github.com/tabsera/recitation-report/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	code := run(cfg, logr)
	_ = logr.Sync()
	os.Exit(code)
}

// run executes one report pass. It returns the process exit code so main
// can flush the logger and the deferred disconnect always fires.
func run(cfg *config.Config, logr *zap.Logger) int {
	sugar := logr.Sugar().With("run_id", uuid.NewString())

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		sugar.Errorw("invalid report timezone", "timezone", cfg.Report.Timezone, "error", err)
		return apperrors.ErrConfig.ExitCode
	}

	window := service.ResolveWindow(time.Now(), cfg.Report.DaysAgo, loc)
	sugar.Infow("report window resolved",
		"day", window.FileDate(),
		"start", window.Start,
		"end", window.End,
		"days_ago", cfg.Report.DaysAgo,
	)

	ctx := context.Background()

	sugar.Infow("connecting to database", "database", cfg.Mongo.Database)
	client, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		sugar.Errorw("database connection failed", "error", err)
		return apperrors.ErrConnection.ExitCode
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			sugar.Warnw("disconnect failed", "error", err)
		}
	}()
	sugar.Infow("connected")

	db := client.Database(cfg.Mongo.Database)
	reportSvc := service.NewReportService(
		repository.NewRecitationRepository(db),
		repository.NewSubmissionRepository(db),
		logr,
	)

	report, err := reportSvc.Generate(ctx, window)
	if err != nil {
		sugar.Errorw("report generation failed", "error", err)
		return apperrors.FromError(err).ExitCode
	}

	store, err := storage.NewLocalStorage(cfg.Report.OutputDir)
	if err != nil {
		sugar.Errorw("report directory unavailable", "error", err)
		return apperrors.ErrWrite.ExitCode
	}
	exporter := service.NewExportService(store, logr)

	if _, err := exporter.WriteJSON(report, window); err != nil {
		sugar.Errorw("report write failed", "error", err)
		return apperrors.ErrWrite.ExitCode
	}
	if cfg.Report.ExportCSV {
		if _, err := exporter.WriteCSV(report, window); err != nil {
			sugar.Errorw("csv export failed", "error", err)
			return apperrors.ErrWrite.ExitCode
		}
	}
	if cfg.Report.ExportPDF {
		if _, err := exporter.WritePDF(report, window); err != nil {
			sugar.Errorw("pdf export failed", "error", err)
			return apperrors.ErrWrite.ExitCode
		}
	}

	sugar.Infow("run complete", "day", window.FileDate())
	return apperrors.ExitSuccess
}
