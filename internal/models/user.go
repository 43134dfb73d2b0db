package models

// User represents an account holder. Credentials and sessions are managed by
// the external auth service; this table only carries what recipes and
// favorites need to reference.
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	FullName string `json:"full_name"`

	Recipes    []Recipe   `gorm:"foreignKey:OwnerID" json:"recipes,omitempty"`
	Categories []Category `gorm:"foreignKey:OwnerID" json:"categories,omitempty"`
}
