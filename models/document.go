package models

import (
	"github.com/shopspring/decimal"
)

// BacklogDocument is one row of the analytics backlog fact table. The table
// is owned by the warehouse load, not by this job: rows are read-only
// snapshots and the job never writes them. Dates land as raw strings and are
// parsed downstream, so a bad date degrades one row instead of failing the
// scan.
type BacklogDocument struct {
	DocumentId       string          `gorm:"primaryKey;size:100" json:"document_id"`
	DocumentNumber   string          `gorm:"size:100" json:"document_number"`
	DocumentKey      string          `gorm:"index;size:100" json:"document_key"`
	DocumentAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"document_amount"`
	IssueDate        string          `gorm:"size:30" json:"issue_date"`
	DueDate          string          `gorm:"size:30" json:"due_date"`
	ClientTaxId      string          `gorm:"size:30" json:"client_tax_id"`
	ClientName       string          `gorm:"size:200" json:"client_name"`
	SupplierTaxId    string          `gorm:"size:30" json:"supplier_tax_id"`
	SupplierName     string          `gorm:"size:200" json:"supplier_name"`
	ProcessingStatus string          `gorm:"size:50" json:"processing_status"`
	ProcessingDays   int             `gorm:"default:0" json:"processing_days"`
	DocumentLink     string          `gorm:"type:text" json:"document_link"`
	DocumentCategory string          `gorm:"size:100" json:"document_category"`
	ResolutionType   string          `gorm:"size:100" json:"resolution_type"`
	ResponsibleArea  string          `gorm:"size:100" json:"responsible_area"`
	RequestOwner     string          `gorm:"size:100" json:"request_owner"`
	TaskName         string          `gorm:"size:200" json:"task_name"`
	ProcessingFlag   string          `gorm:"index;size:30" json:"processing_flag"`
	BusinessUnit     string          `gorm:"size:100" json:"business_unit"`
	CostCenter       string          `gorm:"index;size:30" json:"cost_center"`
}

func (BacklogDocument) TableName() string {
	return "fact_documents_backlog"
}
