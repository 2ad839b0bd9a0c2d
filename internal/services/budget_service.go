package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// budgetService handles budget persistence.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// UpsertBudget sets the spending ceiling for (userID, category). If a budget
// for that pair already exists its amount is replaced in place; the insert and
// the conflict update are a single atomic statement, not a read-then-write.
func (s *budgetService) UpsertBudget(userID uint, category string, amount int64) (*models.Budget, error) {
	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": amount}),
	}).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	// On conflict the driver does not report the surviving row's ID; re-read
	// so the caller gets the authoritative snapshot.
	var saved models.Budget
	if err := s.db.Where("user_id = ? AND category = ?", userID, category).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &saved, nil
}

// GetUserBudgets returns the current set of budgets for the user. The set is
// unordered; rows come back in ID order so repeated calls agree.
func (s *budgetService) GetUserBudgets(userID uint) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return budgets, nil
}
