package alerts

import "time"

// RuleConfig carries the business rules of one run.
type RuleConfig struct {
	SLADays       int
	CostCenter    string
	ExcludedTasks []string

	// RequireResolvedEmail additionally drops records whose notification
	// email stayed unresolved. Off by default; see AlertConfig.
	RequireResolvedEmail bool
}

// ApplyRules keeps documents that satisfy every predicate. Pure conjunction
// over the inputs; relative input order is preserved so report snapshots are
// reproducible.
func ApplyRules(docs []ResolvedDocument, rules RuleConfig, runDate time.Time) []ResolvedDocument {
	excluded := make(map[string]struct{}, len(rules.ExcludedTasks))
	for _, task := range rules.ExcludedTasks {
		// Exact match, case-sensitive. Near-matches are kept on purpose.
		excluded[task] = struct{}{}
	}

	today := dateOnly(runDate)
	var out []ResolvedDocument
	for _, doc := range docs {
		if _, skip := excluded[doc.TaskName]; skip {
			continue
		}
		if doc.ProcessingFlag != "Pending" {
			continue
		}
		if doc.CostCenter != rules.CostCenter {
			continue
		}
		if doc.IssueDateParsed == nil {
			continue
		}
		// Strictly greater: a document exactly at the SLA is not late yet.
		if daysBetween(*doc.IssueDateParsed, today) <= rules.SLADays {
			continue
		}
		if rules.RequireResolvedEmail && doc.NotificationEmail == nil {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// daysBetween counts whole days from issue to today over date-only values.
func daysBetween(issue time.Time, today time.Time) int {
	return int(dateOnly(today).Sub(dateOnly(issue)).Hours() / 24)
}
