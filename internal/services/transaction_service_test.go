package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestAddTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		date := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
		tx, err := svc.AddTransaction(user.ID, date, "Coffee", "Food", 350, models.TransactionTypeExpense)
		testutil.AssertNoError(t, err)

		if tx.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}
		if tx.Amount != 350 {
			t.Errorf("expected amount 350, got %d", tx.Amount)
		}
		if !tx.Date.Equal(date) {
			t.Errorf("expected date %v, got %v", date, tx.Date)
		}
	})

	t.Run("zero_date_defaults_to_now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.AddTransaction(user.ID, time.Time{}, "Salary", "Other", 100000, models.TransactionTypeIncome)
		testutil.AssertNoError(t, err)

		if tx.Date.IsZero() {
			t.Error("expected date to default to now")
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("updates_mutable_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		original := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
		tx := testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food", 500, original)

		updated, err := svc.UpdateTransaction(tx.ID, "Groceries", "Shopping", 750, models.TransactionTypeExpense)
		testutil.AssertNoError(t, err)

		if updated.Description != "Groceries" {
			t.Errorf("expected description Groceries, got %s", updated.Description)
		}
		if updated.Category != "Shopping" {
			t.Errorf("expected category Shopping, got %s", updated.Category)
		}
		if updated.Amount != 750 {
			t.Errorf("expected amount 750, got %d", updated.Amount)
		}
	})

	t.Run("preserves_date_and_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		original := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
		tx := testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food", 500, original)

		_, err := svc.UpdateTransaction(tx.ID, "Edited", "Food", 500, models.TransactionTypeIncome)
		testutil.AssertNoError(t, err)

		fetched, err := svc.GetTransactionByID(tx.ID)
		testutil.AssertNoError(t, err)
		if !fetched.Date.Equal(original) {
			t.Errorf("expected date %v to be preserved, got %v", original, fetched.Date)
		}
		if fetched.UserID != user.ID {
			t.Errorf("expected user ID %d to be preserved, got %d", user.ID, fetched.UserID)
		}
		if fetched.Type != models.TransactionTypeIncome {
			t.Errorf("expected type income after update, got %s", fetched.Type)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.UpdateTransaction(999999, "Nope", "Food", 100, models.TransactionTypeExpense)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Food", 500)

		err := svc.DeleteTransaction(tx.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetTransactionByID(tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("not_found_leaves_store_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Food", 500)

		err := svc.DeleteTransaction(999999)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		remaining, err := svc.GetAllTransactions(user.ID)
		testutil.AssertNoError(t, err)
		if len(remaining) != 1 {
			t.Errorf("expected 1 transaction after failed delete, got %d", len(remaining))
		}
	})
}

func TestGetAllTransactions(t *testing.T) {
	t.Run("ordered_most_recent_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
		feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
		mar := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food", 100, feb)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food", 200, mar)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food", 300, jan)

		transactions, err := svc.GetAllTransactions(user.ID)
		testutil.AssertNoError(t, err)

		if len(transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(transactions))
		}
		if !transactions[0].Date.Equal(mar) || !transactions[1].Date.Equal(feb) || !transactions[2].Date.Equal(jan) {
			t.Errorf("expected descending date order, got %v, %v, %v",
				transactions[0].Date, transactions[1].Date, transactions[2].Date)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user1.ID, models.TransactionTypeExpense, "Food", 100)
		testutil.CreateTestTransaction(t, db, user2.ID, models.TransactionTypeExpense, "Food", 200)

		transactions, err := svc.GetAllTransactions(user1.ID)
		testutil.AssertNoError(t, err)

		if len(transactions) != 1 {
			t.Fatalf("expected 1 transaction for user1, got %d", len(transactions))
		}
		if transactions[0].UserID != user1.ID {
			t.Errorf("expected user ID %d, got %d", user1.ID, transactions[0].UserID)
		}
	})

	t.Run("stable_tie_break_on_equal_dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		same := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food", 100, same)
		}

		first, err := svc.GetAllTransactions(user.ID)
		testutil.AssertNoError(t, err)
		second, err := svc.GetAllTransactions(user.ID)
		testutil.AssertNoError(t, err)

		for i := range first {
			if first[i].ID != second[i].ID {
				t.Fatalf("expected stable order across queries, got %d vs %d at position %d",
					first[i].ID, second[i].ID, i)
			}
		}
	})
}

func TestGetRecentTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	user := testutil.CreateTestUser(t, db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food", 100, base.AddDate(0, 0, i))
	}

	recent, err := svc.GetRecentTransactions(user.ID, 5)
	testutil.AssertNoError(t, err)

	if len(recent) != 5 {
		t.Fatalf("expected 5 transactions, got %d", len(recent))
	}
	// Most recent first: day 7 down to day 3.
	if !recent[0].Date.Equal(base.AddDate(0, 0, 6)) {
		t.Errorf("expected most recent transaction first, got date %v", recent[0].Date)
	}
	if !recent[4].Date.Equal(base.AddDate(0, 0, 2)) {
		t.Errorf("expected truncation at the limit, got date %v", recent[4].Date)
	}
}
