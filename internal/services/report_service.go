package services

import (
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// reportService computes derived read-only queries over the ledger and budget
// tables. Every write below this layer is a single atomic row, so each query
// sees a consistent snapshot without extra locking.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// TotalIncome returns the sum of all income amounts for the user, 0 if none.
func (s *reportService) TotalIncome(userID uint) (int64, error) {
	return s.sumByType(userID, models.TransactionTypeIncome)
}

// TotalExpenses returns the sum of all expense amounts for the user, 0 if none.
func (s *reportService) TotalExpenses(userID uint) (int64, error) {
	return s.sumByType(userID, models.TransactionTypeExpense)
}

func (s *reportService) sumByType(userID uint, transactionType models.TransactionType) (int64, error) {
	var total int64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, transactionType).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return total, nil
}

// TransactionCount returns the number of transactions for the user.
func (s *reportService) TransactionCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return count, nil
}

// SpentInCategory returns the sum of expense amounts for the user in the
// given category, matched exactly. 0 if none.
func (s *reportService) SpentInCategory(userID uint, category string) (int64, error) {
	var total int64
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND category = ? AND type = ?", userID, category, models.TransactionTypeExpense).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return total, nil
}

// ExpensesByCategory groups the user's expenses by category. Rows are ordered
// by category name so repeated calls against unchanged data agree.
func (s *reportService) ExpensesByCategory(userID uint) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := s.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeExpense).
		Group("category").
		Order("category").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return totals, nil
}

// MonthlyExpenses groups the user's expenses by calendar year-month of the
// transaction date, ascending by YYYY-MM key.
func (s *reportService) MonthlyExpenses(userID uint) ([]MonthTotal, error) {
	var totals []MonthTotal
	err := s.db.Model(&models.Transaction{}).
		Select("strftime('%Y-%m', date) AS month, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeExpense).
		Group("month").
		Order("month").
		Scan(&totals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return totals, nil
}

// BudgetStatus reports spending against every budget row for the user. The
// per-category sums are read-only and independent, so they run concurrently.
func (s *reportService) BudgetStatus(userID uint) (*BudgetReport, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	report := &BudgetReport{Lines: make([]BudgetLine, len(budgets))}

	var g errgroup.Group
	for i, budget := range budgets {
		i, budget := i, budget
		g.Go(func() error {
			spent, err := s.SpentInCategory(userID, budget.Category)
			if err != nil {
				return err
			}
			remaining := budget.Amount - spent
			status := BudgetStateOnTrack
			if remaining < 0 {
				status = BudgetStateOverBudget
			}
			report.Lines[i] = BudgetLine{
				Category:  budget.Category,
				Budgeted:  budget.Amount,
				Spent:     spent,
				Remaining: remaining,
				Status:    status,
			}
			return nil
		})
	}
	g.Go(func() error {
		total, err := s.TotalExpenses(userID)
		if err != nil {
			return err
		}
		report.TotalExpenses = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, line := range report.Lines {
		report.TotalBudget += line.Budgeted
	}
	if report.TotalBudget > 0 {
		report.PercentageUsed = float64(report.TotalExpenses) / float64(report.TotalBudget) * 100
	}

	return report, nil
}

// Summary returns the headline ledger figures, computed concurrently.
func (s *reportService) Summary(userID uint) (*Summary, error) {
	summary := &Summary{}

	var g errgroup.Group
	g.Go(func() error {
		income, err := s.TotalIncome(userID)
		summary.TotalIncome = income
		return err
	})
	g.Go(func() error {
		expenses, err := s.TotalExpenses(userID)
		summary.TotalExpenses = expenses
		return err
	})
	g.Go(func() error {
		count, err := s.TransactionCount(userID)
		summary.TransactionCount = count
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Balance = summary.TotalIncome - summary.TotalExpenses
	return summary, nil
}
