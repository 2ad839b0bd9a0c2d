package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// transactionService handles ledger persistence and point queries.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// AddTransaction persists a new transaction with an auto-assigned ID. A zero
// date defaults to now. The store performs no field validation beyond the
// schema constraints; shaping the input is the caller's job.
func (s *transactionService) AddTransaction(
	userID uint,
	date time.Time,
	description, category string,
	amount int64,
	transactionType models.TransactionType,
) (*models.Transaction, error) {
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: description,
		Category:    category,
		Amount:      amount,
		Type:        transactionType,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return transaction, nil
}

// UpdateTransaction updates description, category, amount, and type for the
// row with the given ID. Date and owner are never changed by this call.
func (s *transactionService) UpdateTransaction(
	transactionID uint,
	description, category string,
	amount int64,
	transactionType models.TransactionType,
) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"description": description,
		"category":    category,
		"amount":      amount,
		"type":        transactionType,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return transaction, nil
}

// DeleteTransaction removes the row with the given ID.
func (s *transactionService) DeleteTransaction(transactionID uint) error {
	result := s.db.Delete(&models.Transaction{}, transactionID)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorage, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// GetTransactionByID retrieves a single transaction by ID.
func (s *transactionService) GetTransactionByID(transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &transaction, nil
}

// GetAllTransactions retrieves every transaction for the user, most recent
// first. Equal dates are broken by descending ID so the order is stable
// within a query.
func (s *transactionService) GetAllTransactions(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return transactions, nil
}

// GetRecentTransactions retrieves the most recent transactions for the user,
// truncated to limit rows.
func (s *transactionService) GetRecentTransactions(userID uint, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return transactions, nil
}
