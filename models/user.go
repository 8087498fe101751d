package models

// DirectoryUser maps a request owner handle to a mailbox. Source of truth
// for notification target resolution.
type DirectoryUser struct {
	Username string `gorm:"primaryKey;size:100" json:"username"`
	Email    string `gorm:"size:200" json:"email"`
}

func (DirectoryUser) TableName() string {
	return "dim_users"
}
