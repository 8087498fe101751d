package alerts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/acmecorp/ops_alerts/appctx"
	"github.com/acmecorp/ops_alerts/config"
	"github.com/acmecorp/ops_alerts/reports"
)

const (
	StatusNoAction  = "no_action"
	StatusEmailSent = "email_sent"
)

// Notification is the single outbound message of a run.
type Notification struct {
	Subject        string
	Body           string
	AttachmentPath string
	AttachmentName string
}

// Notifier performs the send-and-close transaction. Implemented by
// mailer.Client; tests inject a fake.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// RunMetrics is the audit summary of one invocation. Created once at the end
// of a run and never mutated.
type RunMetrics struct {
	RunId           string `json:"run_id"`
	Status          string `json:"status"`
	FilteredRecords int    `json:"filtered_records"`
	ExportedRows    int    `json:"exported_rows,omitempty"`
	CostCenter      string `json:"cost_center"`
	SLADays         int    `json:"sla_days"`
	Date            string `json:"date"`
	ArtifactPath    string `json:"artifact_path,omitempty"`
	UnparsedDates   int    `json:"unparsed_dates,omitempty"`
}

// Pipeline wires the stages of one run: resolve, filter, build, notify.
// Strictly sequential; all collaborators are injected and nothing is shared
// across runs.
type Pipeline struct {
	Source   DocumentSource
	Notifier Notifier
	Logger   *logrus.Logger
	Config   config.AlertConfig
	RunDate  time.Time
}

// Run executes one invocation and returns its metrics. Data-quality issues
// degrade single records; any returned error is fatal to the run.
func (p *Pipeline) Run(ctx context.Context) (RunMetrics, error) {
	runId, ok := appctx.GetString(ctx, appctx.ContextKeyRunId)
	if !ok || runId == "" {
		runId = uuid.New().String()
	}
	runDateStr := dateOnly(p.RunDate).Format("2006-01-02")

	docs, err := p.Source.Backlog(ctx)
	if err != nil {
		return RunMetrics{}, err
	}
	users, err := p.Source.Directory(ctx)
	if err != nil {
		return RunMetrics{}, err
	}

	resolved := ResolveEmails(NormalizeDocuments(docs), NormalizeUsers(users))
	unparsedDates := 0
	for _, doc := range resolved {
		if doc.IssueDateParsed == nil {
			unparsedDates++
		}
	}

	rules := RuleConfig{
		SLADays:              p.Config.SLADays,
		CostCenter:           p.Config.CostCenter,
		ExcludedTasks:        p.Config.ExcludedTasks,
		RequireResolvedEmail: p.Config.RequireResolvedEmails,
	}
	qualifying := ApplyRules(resolved, rules, p.RunDate)

	p.Logger.WithFields(logrus.Fields{
		"module":         "alerts",
		"run_id":         runId,
		"raw_documents":  len(docs),
		"directory_rows": len(users),
		"qualifying":     len(qualifying),
		"unparsed_dates": unparsedDates,
	}).Info("backlog filtered")

	if len(qualifying) == 0 {
		metrics := RunMetrics{
			RunId:           runId,
			Status:          StatusNoAction,
			FilteredRecords: 0,
			CostCenter:      p.Config.CostCenter,
			SLADays:         p.Config.SLADays,
			Date:            runDateStr,
			UnparsedDates:   unparsedDates,
		}
		p.logMetrics(metrics)
		return metrics, nil
	}

	rows := BuildReportRows(qualifying, p.Config.MaxExportRows)
	if len(rows) == 0 {
		// Should not happen with a non-empty qualifying set; without rows
		// there is no evidence to attach, so nothing is sent.
		metrics := RunMetrics{
			RunId:           runId,
			Status:          StatusNoAction,
			FilteredRecords: len(qualifying),
			CostCenter:      p.Config.CostCenter,
			SLADays:         p.Config.SLADays,
			Date:            runDateStr,
			UnparsedDates:   unparsedDates,
		}
		p.logMetrics(metrics)
		return metrics, nil
	}

	fileName := ArtifactFileName(p.Config.CostCenter, p.RunDate)
	artifactPath := filepath.Join(p.Config.ArtifactDir, fileName)
	if err := reports.WriteWorkbook(artifactPath, ReportSheetName, ReportHeaders, rows); err != nil {
		return RunMetrics{}, fmt.Errorf("write report %s: %w", artifactPath, err)
	}

	notification := Notification{
		Subject:        fmt.Sprintf("[ACME] Action required — Backlog > %d days — Center %s", p.Config.SLADays, p.Config.CostCenter),
		Body:           notificationBody(p.Config.SLADays, p.Config.CostCenter),
		AttachmentPath: artifactPath,
		AttachmentName: fileName,
	}
	if err := p.Notifier.Send(ctx, notification); err != nil {
		return RunMetrics{}, fmt.Errorf("send notification (artifact=%s): %w", artifactPath, err)
	}

	metrics := RunMetrics{
		RunId:           runId,
		Status:          StatusEmailSent,
		FilteredRecords: len(qualifying),
		ExportedRows:    len(rows),
		CostCenter:      p.Config.CostCenter,
		SLADays:         p.Config.SLADays,
		Date:            runDateStr,
		ArtifactPath:    artifactPath,
		UnparsedDates:   unparsedDates,
	}
	p.logMetrics(metrics)
	return metrics, nil
}

func (p *Pipeline) logMetrics(m RunMetrics) {
	p.Logger.WithFields(logrus.Fields{
		"module":           "alerts",
		"run_id":           m.RunId,
		"status":           m.Status,
		"filtered_records": m.FilteredRecords,
		"exported_rows":    m.ExportedRows,
		"cost_center":      m.CostCenter,
		"sla_days":         m.SLADays,
		"date":             m.Date,
		"artifact_path":    m.ArtifactPath,
		"unparsed_dates":   m.UnparsedDates,
	}).Info("run summary")
}

// notificationBody is the fixed plain-text template of the alert message.
func notificationBody(slaDays int, costCenter string) string {
	return strings.TrimSpace(fmt.Sprintf(`Hello,

We identified operational documents pending processing for more than %d days, tied to center %s.
To avoid impact on deadlines and reconciliation routines, please prioritize their handling.

Guidance:
- Check for dependencies blocking the processing;
- Reroute items to the correct area where applicable;
- Update item status as soon as they are resolved.

The consolidated evidence report is attached.

Best regards,
Acme Corp - Operations`, slaDays, costCenter))
}
