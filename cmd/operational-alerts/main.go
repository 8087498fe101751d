// operational-alerts scans the backlog fact table for documents pending past
// the SLA in one cost center, writes an Excel evidence report and emails it
// once to the configured recipients. One invocation, one decision: send or
// no action.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//	SMTP_USER=... SMTP_PASSWORD=... go run ./cmd/operational-alerts
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/acmecorp/ops_alerts/alerts"
	"github.com/acmecorp/ops_alerts/appctx"
	"github.com/acmecorp/ops_alerts/config"
	"github.com/acmecorp/ops_alerts/mailer"
	"github.com/acmecorp/ops_alerts/utils"
)

const runLockTTL = 10 * time.Minute

func main() {
	runDateArg := flag.String("run-date", "", "Override the run date (YYYY-MM-DD). Defaults to today.")
	flag.Parse()

	logger := config.GetLogger()

	runDate := time.Now()
	if *runDateArg != "" {
		parsed, err := time.Parse("2006-01-02", *runDateArg)
		if err != nil {
			exitWithError(fmt.Errorf("invalid -run-date %q: %w", *runDateArg, err))
		}
		runDate = parsed
	}

	cfg, err := config.LoadAlertConfig()
	if err != nil {
		exitWithError(err)
	}

	runId := uuid.New().String()
	ctx := context.Background()
	ctx = appctx.Set(ctx, appctx.ContextKeyRunId, runId)
	ctx = appctx.Set(ctx, appctx.ContextKeyJobName, "operational-alerts")
	ctx = appctx.Set(ctx, appctx.ContextKeyRunDate, runDate.Format("2006-01-02"))

	// Credentials are resolved once, before any data access.
	provider, err := config.NewCredentialProvider()
	if err != nil {
		exitWithError(err)
	}
	creds, err := config.ResolveSMTPCredentials(ctx, provider)
	if err != nil {
		exitWithError(err)
	}

	if err := config.ConnectDatabase(); err != nil {
		exitWithError(err)
	}
	db := config.GetDB()
	if db == nil {
		exitWithError(errors.New("database not initialized (config.GetDB returned nil)"))
	}
	if err := config.ConnectRedis(); err != nil {
		exitWithError(err)
	}

	release, err := utils.ObtainRunLock(ctx, cfg.CostCenter, runLockTTL)
	if err != nil {
		exitWithError(err)
	}
	defer release()

	pipeline := &alerts.Pipeline{
		Source:   alerts.NewDatabaseSource(db),
		Notifier: mailer.NewClient(cfg, creds, logger),
		Logger:   logger,
		Config:   cfg,
		RunDate:  runDate,
	}
	metrics, err := pipeline.Run(ctx)
	if err != nil {
		release()
		exitWithError(err)
	}

	if metrics.Status == alerts.StatusEmailSent && cfg.ArchiveBucket != "" {
		objectName := filepath.Base(metrics.ArtifactPath)
		if err := utils.ArchiveReportToGCS(ctx, cfg.ArchiveBucket, metrics.ArtifactPath, objectName); err != nil {
			release()
			exitWithError(fmt.Errorf("archive %s to gs://%s: %w", metrics.ArtifactPath, cfg.ArchiveBucket, err))
		}
	}

	out, err := json.Marshal(metrics)
	if err != nil {
		release()
		exitWithError(err)
	}
	fmt.Println(string(out))
}

func exitWithError(err error) {
	config.LogError(config.GetLogger(), "cmd", "operational-alerts", "run aborted", nil, err)
	os.Exit(1)
}
