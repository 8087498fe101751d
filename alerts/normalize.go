package alerts

import (
	"strings"
	"time"

	"github.com/acmecorp/ops_alerts/models"
)

// issueDateLayouts covers the formats observed in the landed fact table.
var issueDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006/01/02",
}

// ResolvedDocument is a BacklogDocument together with the fields this job
// derives from it. The embedded document is a value copy; source rows are
// never mutated.
type ResolvedDocument struct {
	models.BacklogDocument

	// OwnerKey is upper(trim(request_owner)), the directory join key.
	OwnerKey string

	// IssueDateParsed is nil when the raw issue_date did not parse. Such
	// rows are kept here and dropped later by the date-validity rule.
	IssueDateParsed *time.Time

	// NotificationEmail is nil or a non-empty address, never blank.
	NotificationEmail *string
}

func normalizeKey(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// NormalizeDocuments derives the join key and the parsed issue date for
// every fact row.
func NormalizeDocuments(docs []models.BacklogDocument) []ResolvedDocument {
	out := make([]ResolvedDocument, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ResolvedDocument{
			BacklogDocument: doc,
			OwnerKey:        normalizeKey(doc.RequestOwner),
			IssueDateParsed: parseIssueDate(doc.IssueDate),
		})
	}
	return out
}

func parseIssueDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range issueDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			d := dateOnly(parsed)
			return &d
		}
	}
	return nil
}

// NormalizeUsers builds the directory lookup keyed by upper(trim(username)).
// Blank emails are dropped here so the resolver only ever sees usable
// addresses; with duplicate handles the first usable email wins.
func NormalizeUsers(users []models.DirectoryUser) map[string]string {
	out := make(map[string]string, len(users))
	for _, u := range users {
		key := normalizeKey(u.Username)
		if key == "" {
			continue
		}
		email := strings.TrimSpace(u.Email)
		if email == "" {
			continue
		}
		if _, exists := out[key]; exists {
			continue
		}
		out[key] = email
	}
	return out
}

func dateOnly(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
