package models

// Category groups recipes. A nil OwnerID marks a native category: seeded by
// migration, visible to every user, and never editable through the API
// (owner-scoped queries can't match a NULL owner). Name uniqueness is
// per-owner, so two users may each have a "Desserts".
type Category struct {
	Base
	Name    string  `gorm:"not null" json:"name"`
	OwnerID *string `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Icon    string  `gorm:"default:restaurant_menu" json:"icon"`

	Owner   *User    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Recipes []Recipe `gorm:"foreignKey:CategoryID" json:"recipes,omitempty"`
}

// IsNative reports whether the category is system-provided.
func (c *Category) IsNative() bool {
	return c.OwnerID == nil
}
