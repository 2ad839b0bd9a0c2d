package services

import (
	"time"

	"fintrack/internal/models"
)

// UserServicer defines the contract for the identity store.
type UserServicer interface {
	CreateUser(username, passwordHash string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
}

// AuthServicer defines the contract for credential verification and sign-up.
type AuthServicer interface {
	Authenticate(username, password string) (*models.User, error)
	SignUp(username, password string) (*models.User, error)
}

// TransactionServicer defines the contract for the ledger store.
type TransactionServicer interface {
	AddTransaction(userID uint, date time.Time, description, category string, amount int64, transactionType models.TransactionType) (*models.Transaction, error)
	UpdateTransaction(transactionID uint, description, category string, amount int64, transactionType models.TransactionType) (*models.Transaction, error)
	DeleteTransaction(transactionID uint) error
	GetTransactionByID(transactionID uint) (*models.Transaction, error)
	GetAllTransactions(userID uint) ([]models.Transaction, error)
	GetRecentTransactions(userID uint, limit int) ([]models.Transaction, error)
}

// BudgetServicer defines the contract for the budget store.
type BudgetServicer interface {
	UpsertBudget(userID uint, category string, amount int64) (*models.Budget, error)
	GetUserBudgets(userID uint) ([]models.Budget, error)
}

// CategoryTotal is the summed expense amount for a single category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int64  `json:"total"`
}

// MonthTotal is the summed expense amount for a calendar month (YYYY-MM).
type MonthTotal struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}

// BudgetState classifies a budget by its remaining amount.
type BudgetState string

const (
	BudgetStateOnTrack    BudgetState = "on_track"
	BudgetStateOverBudget BudgetState = "over_budget"
)

// BudgetLine contains spending vs ceiling data for one budgeted category.
type BudgetLine struct {
	Category  string      `json:"category"`
	Budgeted  int64       `json:"budgeted"`
	Spent     int64       `json:"spent"`
	Remaining int64       `json:"remaining"`
	Status    BudgetState `json:"status"`
}

// BudgetReport aggregates all budget lines for a user.
type BudgetReport struct {
	Lines          []BudgetLine `json:"lines"`
	TotalBudget    int64        `json:"total_budget"`
	TotalExpenses  int64        `json:"total_expenses"`
	PercentageUsed float64      `json:"percentage_used"`
}

// Summary contains the headline figures for a user's ledger.
type Summary struct {
	TotalIncome      int64 `json:"total_income"`
	TotalExpenses    int64 `json:"total_expenses"`
	Balance          int64 `json:"balance"`
	TransactionCount int64 `json:"transaction_count"`
}

// ReportServicer defines the contract for derived read-only queries over the
// ledger and budget stores.
type ReportServicer interface {
	TotalIncome(userID uint) (int64, error)
	TotalExpenses(userID uint) (int64, error)
	TransactionCount(userID uint) (int64, error)
	SpentInCategory(userID uint, category string) (int64, error)
	ExpensesByCategory(userID uint) ([]CategoryTotal, error)
	MonthlyExpenses(userID uint) ([]MonthTotal, error)
	BudgetStatus(userID uint) (*BudgetReport, error)
	Summary(userID uint) (*Summary, error)
}
