package models

// Budget represents a per-category spending ceiling in cents. At most one
// budget row exists per (user, category); writing a second one for the same
// category replaces the amount.
type Budget struct {
	Base
	UserID   uint   `gorm:"not null;uniqueIndex:idx_budgets_user_category" json:"user_id"`
	Category string `gorm:"not null;uniqueIndex:idx_budgets_user_category" json:"category"`
	Amount   int64  `gorm:"type:bigint;not null" json:"amount"`
}
