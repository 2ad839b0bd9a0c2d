package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single money movement. Amount is stored in cents
// and is always non-negative; the direction is carried by Type.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Description string          `gorm:"not null" json:"description"`
	Category    string          `gorm:"not null" json:"category"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"`
}

// Categories is the set of transaction categories offered by the interactive
// shell. The store does not enforce it; any category string is persisted as-is.
var Categories = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Utilities",
	"Healthcare",
	"Shopping",
	"Education",
	"Travel",
	"Investment",
	"Other",
}
