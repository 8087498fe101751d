package alerts

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/acmecorp/ops_alerts/models"
)

// DocumentSource is the boundary to the table-scan engine. The production
// implementation scans the two warehouse tables through gorm; tests use an
// in-memory fake.
type DocumentSource interface {
	Backlog(ctx context.Context) ([]models.BacklogDocument, error)
	Directory(ctx context.Context) ([]models.DirectoryUser, error)
}

type databaseSource struct {
	db *gorm.DB
}

func NewDatabaseSource(db *gorm.DB) DocumentSource {
	return databaseSource{db: db}
}

// Backlog reads the full current state of the fact table. Filtering stays in
// the core so the rules remain testable without a database.
func (s databaseSource) Backlog(ctx context.Context) ([]models.BacklogDocument, error) {
	var docs []models.BacklogDocument
	if err := s.db.WithContext(ctx).Model(&models.BacklogDocument{}).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("scan fact_documents_backlog: %w", err)
	}
	return docs, nil
}

func (s databaseSource) Directory(ctx context.Context) ([]models.DirectoryUser, error) {
	var users []models.DirectoryUser
	if err := s.db.WithContext(ctx).Model(&models.DirectoryUser{}).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("scan dim_users: %w", err)
	}
	return users, nil
}
