package alerts

import "strings"

// Fallback addresses by responsible area, used only when the directory join
// yields no usable address for the request owner.
const (
	warehouseFallbackEmail = "warehouse.team@example.com"
	supportFallbackEmail   = "support.team@example.com"
	financeFallbackEmail   = "finance.ops@example.com"
)

// ResolveEmails fills NotificationEmail for every document: the joined
// directory address when usable, otherwise the area fallback chain in strict
// order, first match wins, nil when nothing matches. Pure function; the
// input slice is not modified.
func ResolveEmails(docs []ResolvedDocument, emailByUser map[string]string) []ResolvedDocument {
	out := make([]ResolvedDocument, 0, len(docs))
	for _, doc := range docs {
		doc.NotificationEmail = resolveEmail(doc, emailByUser)
		out = append(out, doc)
	}
	return out
}

func resolveEmail(doc ResolvedDocument, emailByUser map[string]string) *string {
	// Tier 1: directory join. Whitespace-only counts as absent and falls
	// through to the area chain.
	if email, ok := emailByUser[doc.OwnerKey]; ok {
		if trimmed := strings.TrimSpace(email); trimmed != "" {
			return &trimmed
		}
	}

	switch normalizeKey(doc.ResponsibleArea) {
	case "WAREHOUSE":
		return strPtr(warehouseFallbackEmail)
	case "CUSTOMER_SUPPORT":
		return strPtr(supportFallbackEmail)
	case "FINANCE_OPS", "FINANCE":
		return strPtr(financeFallbackEmail)
	}
	return nil
}

func strPtr(v string) *string {
	return &v
}
