package alerts

import (
	"testing"

	"github.com/acmecorp/ops_alerts/models"
)

func resolvedWith(owner string, area string) ResolvedDocument {
	return ResolvedDocument{
		BacklogDocument: models.BacklogDocument{RequestOwner: owner, ResponsibleArea: area},
		OwnerKey:        normalizeKey(owner),
	}
}

func TestResolveEmails_JoinedEmailWinsOverFallback(t *testing.T) {
	directory := map[string]string{"JDOE": "jdoe@example.com"}

	// A matched owner keeps the directory address no matter the area.
	for _, area := range []string{"WAREHOUSE", "CUSTOMER_SUPPORT", "FINANCE_OPS", "FINANCE", "unknown", ""} {
		out := ResolveEmails([]ResolvedDocument{resolvedWith("jdoe", area)}, directory)
		if out[0].NotificationEmail == nil || *out[0].NotificationEmail != "jdoe@example.com" {
			t.Fatalf("area %q: expected joined email to win, got %v", area, out[0].NotificationEmail)
		}
	}
}

func TestResolveEmails_WhitespaceEmailTriggersFallback(t *testing.T) {
	directory := map[string]string{"JDOE": "   "}

	out := ResolveEmails([]ResolvedDocument{resolvedWith("jdoe", "Warehouse")}, directory)
	if out[0].NotificationEmail == nil || *out[0].NotificationEmail != "warehouse.team@example.com" {
		t.Fatalf("expected whitespace-only email to behave like absent, got %v", out[0].NotificationEmail)
	}
}

func TestResolveEmails_FallbackChain(t *testing.T) {
	cases := []struct {
		area     string
		expected string
	}{
		{"WAREHOUSE", "warehouse.team@example.com"},
		{" warehouse ", "warehouse.team@example.com"},
		{"CUSTOMER_SUPPORT", "support.team@example.com"},
		{"FINANCE_OPS", "finance.ops@example.com"},
		{"Finance", "finance.ops@example.com"},
	}
	for _, tc := range cases {
		out := ResolveEmails([]ResolvedDocument{resolvedWith("ghost", tc.area)}, nil)
		if out[0].NotificationEmail == nil || *out[0].NotificationEmail != tc.expected {
			t.Fatalf("area %q: expected %q, got %v", tc.area, tc.expected, out[0].NotificationEmail)
		}
	}
}

func TestResolveEmails_NoRuleMatchesLeavesNil(t *testing.T) {
	out := ResolveEmails([]ResolvedDocument{resolvedWith("ghost", "LEGAL")}, nil)
	if out[0].NotificationEmail != nil {
		t.Fatalf("expected nil notification email, got %q", *out[0].NotificationEmail)
	}
}
