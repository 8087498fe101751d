package alerts

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acmecorp/ops_alerts/models"
)

func TestBuildReportRows_CapsToFirstRows(t *testing.T) {
	docs := make([]ResolvedDocument, 0, 30)
	for i := 0; i < 30; i++ {
		docs = append(docs, ResolvedDocument{
			BacklogDocument: models.BacklogDocument{DocumentId: fmt.Sprintf("doc-%02d", i)},
		})
	}

	rows := BuildReportRows(docs, 10)
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	first := rows[0].CellValues()
	last := rows[9].CellValues()
	if first[0] != "doc-00" || last[0] != "doc-09" {
		t.Fatalf("cap must keep the first rows in order, got %v and %v", first[0], last[0])
	}

	rows = BuildReportRows(docs[:5], 10)
	if len(rows) != 5 {
		t.Fatalf("expected all 5 rows under the cap, got %d", len(rows))
	}
}

func TestCellValues_MatchesHeaderLayout(t *testing.T) {
	issue := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	doc := ResolvedDocument{
		BacklogDocument: models.BacklogDocument{
			DocumentId:     "doc-1",
			DocumentAmount: decimal.NewFromFloat(1234.5),
			IssueDate:      "2026-04-01 10:15:00",
			TaskName:       "Review",
			CostCenter:     "D010",
		},
		IssueDateParsed:   &issue,
		NotificationEmail: strPtr("jdoe@example.com"),
	}

	values := doc.CellValues()
	if len(values) != len(ReportHeaders) {
		t.Fatalf("expected %d cells, got %d", len(ReportHeaders), len(values))
	}
	if values[0] != "doc-1" {
		t.Fatalf("expected document id first, got %v", values[0])
	}
	if values[3] != 1234.5 {
		t.Fatalf("expected amount as float, got %v", values[3])
	}
	if values[4] != "2026-04-01" {
		t.Fatalf("expected parsed issue date, got %v", values[4])
	}
	if values[len(values)-1] != "jdoe@example.com" {
		t.Fatalf("expected notification email last, got %v", values[len(values)-1])
	}
}

func TestCellValues_UnresolvedFieldsFallBack(t *testing.T) {
	doc := ResolvedDocument{
		BacklogDocument: models.BacklogDocument{IssueDate: "not-a-date"},
	}

	values := doc.CellValues()
	if values[4] != "not-a-date" {
		t.Fatalf("expected raw issue date when parsing failed, got %v", values[4])
	}
	if values[len(values)-1] != "" {
		t.Fatalf("expected empty email cell, got %v", values[len(values)-1])
	}
}

func TestArtifactFileName(t *testing.T) {
	runDate := time.Date(2026, 5, 20, 15, 4, 5, 0, time.UTC)
	got := ArtifactFileName("D010", runDate)
	if got != "operational_alerts_D010_2026-05-20.xlsx" {
		t.Fatalf("unexpected artifact name %q", got)
	}
}
