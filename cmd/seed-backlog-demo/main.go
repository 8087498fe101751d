// seed-backlog-demo creates the two source tables and a handful of demo rows
// so the alert job can be exercised end to end against a local MySQL.
// Seeding is skipped when the fact table already has rows.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-backlog-demo
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/acmecorp/ops_alerts/config"
	"github.com/acmecorp/ops_alerts/models"
)

func main() {
	ctx := context.Background()
	if err := config.ConnectDatabase(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	if err := db.WithContext(ctx).AutoMigrate(&models.BacklogDocument{}, &models.DirectoryUser{}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate demo tables: %v\n", err)
		os.Exit(1)
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.BacklogDocument{}).Count(&count).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to count backlog rows: %v\n", err)
		os.Exit(1)
	}
	if count > 0 {
		fmt.Println("Backlog demo data already present; skipping seed.")
		return
	}

	today := time.Now()
	day := func(daysAgo int) string {
		return today.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	}

	docs := []models.BacklogDocument{
		{
			// Past SLA, matched in the directory: qualifies with jdoe's email.
			DocumentId: "DOC-1001",
			DocumentNumber: "INV-2024-1001",
			DocumentKey: "35240100000000000001",
			DocumentAmount: decimal.NewFromFloat(1250.40),
			IssueDate: day(25),
			DueDate: day(-5),
			ClientName: "Globex Ltda",
			SupplierName: "Initech Supplies",
			ProcessingStatus: "In Queue",
			ProcessingDays: 25,
			DocumentCategory: "Invoice",
			ResponsibleArea: "Finance_Ops",
			RequestOwner: "jdoe",
			TaskName: "Review",
			ProcessingFlag: "Pending",
			BusinessUnit: "BU-South",
			CostCenter: "D010",
		},
		{
			// Exactly at the SLA: must not qualify.
			DocumentId: "DOC-1002",
			DocumentNumber: "INV-2024-1002",
			DocumentAmount: decimal.NewFromFloat(310.00),
			IssueDate: day(15),
			ProcessingStatus: "In Queue",
			ProcessingDays: 15,
			ResponsibleArea: "Warehouse",
			RequestOwner: "jdoe",
			TaskName: "Review",
			ProcessingFlag: "Pending",
			CostCenter: "D010",
		},
		{
			// Past SLA but no directory match: warehouse fallback address.
			DocumentId: "DOC-1003",
			DocumentNumber: "INV-2024-1003",
			DocumentAmount: decimal.NewFromFloat(98.75),
			IssueDate: day(40),
			ProcessingStatus: "Blocked",
			ProcessingDays: 40,
			ResponsibleArea: "Warehouse",
			RequestOwner: "ghost.user",
			TaskName: "Stock Reconciliation",
			ProcessingFlag: "Pending",
			CostCenter: "D010",
		},
		{
			// Excluded automation task.
			DocumentId: "DOC-1004",
			DocumentAmount: decimal.NewFromFloat(0),
			IssueDate: day(60),
			ProcessingDays: 60,
			RequestOwner: "jdoe",
			TaskName: "Auto - Sync Metadata",
			ProcessingFlag: "Pending",
			CostCenter: "D010",
		},
		{
			// Other cost center.
			DocumentId: "DOC-1005",
			DocumentAmount: decimal.NewFromFloat(4410.00),
			IssueDate: day(30),
			ProcessingDays: 30,
			RequestOwner: "asilva",
			TaskName: "Review",
			ProcessingFlag: "Pending",
			CostCenter: "A001",
		},
		{
			// Unparseable issue date: kept by the scan, dropped by filtering.
			DocumentId: "DOC-1006",
			DocumentAmount: decimal.NewFromFloat(77.10),
			IssueDate: "not-a-date",
			RequestOwner: "asilva",
			TaskName: "Review",
			ProcessingFlag: "Pending",
			CostCenter: "D010",
		},
	}

	users := []models.DirectoryUser{
		{Username: "JDOE", Email: "jdoe@example.com"},
		{Username: "asilva", Email: "asilva@example.com"},
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&docs).Error; err != nil {
			return err
		}
		return tx.Create(&users).Error
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed demo data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d backlog documents and %d directory users\n", len(docs), len(users))
}
