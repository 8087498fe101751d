package alerts

import (
	"fmt"
	"time"

	"github.com/acmecorp/ops_alerts/reports"
)

// ReportSheetName is the single sheet of the evidence workbook.
const ReportSheetName = "Pending Items"

// ReportHeaders is the fixed export layout, in order. CellValues must stay
// in lockstep with this list.
var ReportHeaders = []string{
	"Document ID",
	"Document Number",
	"Document Key",
	"Amount",
	"Issue Date",
	"Due Date",
	"Client Tax ID",
	"Client Name",
	"Supplier Tax ID",
	"Supplier Name",
	"Processing Status",
	"Days Pending",
	"Document Link",
	"Category",
	"Resolution Type",
	"Responsible Area",
	"Request Owner",
	"Task",
	"Processing Flag",
	"Business Unit",
	"Cost Center",
	"Notification Email",
}

// CellValues projects the document into the export layout.
func (d ResolvedDocument) CellValues() []interface{} {
	issueDate := d.IssueDate
	if d.IssueDateParsed != nil {
		issueDate = d.IssueDateParsed.Format("2006-01-02")
	}
	email := ""
	if d.NotificationEmail != nil {
		email = *d.NotificationEmail
	}
	return []interface{}{
		d.DocumentId,
		d.DocumentNumber,
		d.DocumentKey,
		d.DocumentAmount.InexactFloat64(),
		issueDate,
		d.DueDate,
		d.ClientTaxId,
		d.ClientName,
		d.SupplierTaxId,
		d.SupplierName,
		d.ProcessingStatus,
		d.ProcessingDays,
		d.DocumentLink,
		d.DocumentCategory,
		d.ResolutionType,
		d.ResponsibleArea,
		d.RequestOwner,
		d.TaskName,
		d.ProcessingFlag,
		d.BusinessUnit,
		d.CostCenter,
		email,
	}
}

// BuildReportRows caps the qualifying set to the first maxRows in pipeline
// order. No sampling, no reordering.
func BuildReportRows(docs []ResolvedDocument, maxRows int) []reports.Exporter {
	if maxRows >= 0 && len(docs) > maxRows {
		docs = docs[:maxRows]
	}
	rows := make([]reports.Exporter, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, doc)
	}
	return rows
}

// ArtifactFileName names the workbook after the cost center and run date.
func ArtifactFileName(costCenter string, runDate time.Time) string {
	return fmt.Sprintf("operational_alerts_%s_%s.xlsx", costCenter, runDate.Format("2006-01-02"))
}
