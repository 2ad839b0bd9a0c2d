// Command fintrack is the interactive shell for the personal finance tracker.
// It is a thin front-end: every number it prints and every row it touches goes
// through the service layer in internal/services.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"fintrack/internal/config"
	"fintrack/internal/database"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	manager, err := database.NewManager(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Get().Warnf("database close error: %v", err)
		}
	}()

	if err := manager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := manager.DB()
	users := services.NewUserService(db)
	hasher := services.NewPasswordHasher(cfg.PasswordScheme)

	shell := &shell{
		in:           bufio.NewScanner(os.Stdin),
		auth:         services.NewAuthService(users, hasher),
		transactions: services.NewTransactionService(db),
		budgets:      services.NewBudgetService(db),
		reports:      services.NewReportService(db),
	}
	return shell.loop()
}

// shell holds the interactive session state: the services it calls and the
// currently signed-in user, if any.
type shell struct {
	in           *bufio.Scanner
	auth         services.AuthServicer
	transactions services.TransactionServicer
	budgets      services.BudgetServicer
	reports      services.ReportServicer
	session      *models.User
}

func (sh *shell) loop() error {
	fmt.Println("fintrack - personal finance tracker (type 'help' for commands)")

	for {
		prompt := "> "
		if sh.session != nil {
			prompt = sh.session.Username + "> "
		}
		line, ok := sh.readLine(prompt)
		if !ok {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "help":
			sh.printHelp()
		case "register":
			err = sh.register(fields[1:])
		case "login":
			err = sh.login(fields[1:])
		case "logout":
			sh.session = nil
		case "quit", "exit":
			return nil
		case "add":
			err = sh.requireLogin(sh.addTransaction)
		case "list":
			err = sh.requireLogin(sh.listTransactions)
		case "recent":
			err = sh.requireLogin(sh.recentTransactions)
		case "edit":
			err = sh.requireLoginArgs(sh.editTransaction, fields[1:])
		case "delete":
			err = sh.requireLoginArgs(sh.deleteTransaction, fields[1:])
		case "budget":
			err = sh.requireLoginArgs(sh.setBudget, fields[1:])
		case "budgets":
			err = sh.requireLogin(sh.budgetReport)
		case "summary":
			err = sh.requireLogin(sh.summary)
		case "categories":
			err = sh.requireLogin(sh.categoryReport)
		case "monthly":
			err = sh.requireLogin(sh.monthlyReport)
		default:
			fmt.Printf("Unknown command: %s (type 'help')\n", fields[0])
		}

		if err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func (sh *shell) printHelp() {
	fmt.Println(`Commands:
  register [username]     create an account
  login [username]        sign in
  logout                  sign out
  add                     add a transaction
  list                    list all transactions, most recent first
  recent                  list the 5 most recent transactions
  edit <id>               edit a transaction
  delete <id>             delete a transaction
  budget <category> <amt> set a category budget (replaces any existing one)
  budgets                 budget status report
  summary                 income, expenses, balance, transaction count
  categories              expenses grouped by category
  monthly                 expenses grouped by month
  quit                    exit`)
}

func (sh *shell) requireLogin(fn func() error) error {
	if sh.session == nil {
		return errors.New("please login first")
	}
	return fn()
}

func (sh *shell) requireLoginArgs(fn func([]string) error, args []string) error {
	if sh.session == nil {
		return errors.New("please login first")
	}
	return fn(args)
}

func (sh *shell) register(args []string) error {
	username := sh.argOrPrompt(args, "Username: ")
	password, err := sh.readPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := sh.auth.SignUp(username, password)
	if err != nil {
		return err
	}
	fmt.Printf("Account created for %s (id %d). You can now login.\n", user.Username, user.ID)
	return nil
}

func (sh *shell) login(args []string) error {
	username := sh.argOrPrompt(args, "Username: ")
	password, err := sh.readPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := sh.auth.Authenticate(username, password)
	if err != nil {
		return err
	}
	sh.session = user
	fmt.Printf("Welcome back, %s.\n", user.Username)
	return nil
}

// transactionInput carries the shell-side validation rules for ledger entries.
// The store itself persists whatever it is given; shaping happens here.
type transactionInput struct {
	Description string `validate:"required,max=255"`
	Category    string `validate:"required,max=100"`
	Amount      int64  `validate:"gte=0"`
	Type        string `validate:"required,transaction_type"`
}

func (sh *shell) addTransaction() error {
	input, err := sh.promptTransaction()
	if err != nil {
		return err
	}

	// A zero date lets the store stamp the transaction with the current time.
	tx, err := sh.transactions.AddTransaction(
		sh.session.ID, time.Time{}, input.Description, input.Category,
		input.Amount, models.TransactionType(input.Type))
	if err != nil {
		return err
	}
	fmt.Printf("Added transaction %d.\n", tx.ID)
	return nil
}

func (sh *shell) editTransaction(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	// The edit path re-prompts everything except date and owner, which this
	// operation never changes.
	input, err := sh.promptTransaction()
	if err != nil {
		return err
	}

	tx, err := sh.transactions.UpdateTransaction(
		id, input.Description, input.Category,
		input.Amount, models.TransactionType(input.Type))
	if err != nil {
		return err
	}
	fmt.Printf("Updated transaction %d.\n", tx.ID)
	return nil
}

func (sh *shell) promptTransaction() (*transactionInput, error) {
	description, _ := sh.readLine("Description: ")
	fmt.Printf("Categories: %s\n", strings.Join(models.Categories, ", "))
	category, _ := sh.readLine("Category: ")
	amountStr, _ := sh.readLine("Amount: ")
	typeStr, _ := sh.readLine("Type (income/expense): ")

	amount, err := money.ParseCents(amountStr)
	if err != nil {
		return nil, err
	}

	input := &transactionInput{
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		Amount:      amount,
		Type:        strings.ToLower(strings.TrimSpace(typeStr)),
	}
	if err := validator.Struct(input); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description, category, and a valid type are required")
	}
	return input, nil
}

func (sh *shell) deleteTransaction(args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := sh.transactions.DeleteTransaction(id); err != nil {
		return err
	}
	fmt.Printf("Deleted transaction %d.\n", id)
	return nil
}

func (sh *shell) listTransactions() error {
	transactions, err := sh.transactions.GetAllTransactions(sh.session.ID)
	if err != nil {
		return err
	}
	sh.printTransactions(transactions)
	return nil
}

func (sh *shell) recentTransactions() error {
	transactions, err := sh.transactions.GetRecentTransactions(sh.session.ID, 5)
	if err != nil {
		return err
	}
	sh.printTransactions(transactions)
	return nil
}

func (sh *shell) printTransactions(transactions []models.Transaction) {
	if len(transactions) == 0 {
		fmt.Println("No transactions.")
		return
	}
	for _, tx := range transactions {
		sign := "+"
		if tx.Type == models.TransactionTypeExpense {
			sign = "-"
		}
		fmt.Printf("%4d  %s  %-14s %s%s  %s\n",
			tx.ID, tx.Date.Format("2006-01-02"), tx.Category,
			sign, money.FormatCents(tx.Amount), tx.Description)
	}
}

func (sh *shell) setBudget(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: budget <category> <amount>")
	}
	amount, err := money.ParseCents(args[len(args)-1])
	if err != nil {
		return err
	}
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must be positive")
	}
	category := strings.Join(args[:len(args)-1], " ")

	budget, err := sh.budgets.UpsertBudget(sh.session.ID, category, amount)
	if err != nil {
		return err
	}
	fmt.Printf("Budget for %s set to %s.\n", budget.Category, money.FormatCents(budget.Amount))
	return nil
}

func (sh *shell) budgetReport() error {
	report, err := sh.reports.BudgetStatus(sh.session.ID)
	if err != nil {
		return err
	}
	if len(report.Lines) == 0 {
		fmt.Println("No budgets set.")
		return nil
	}
	for _, line := range report.Lines {
		label := "On Track"
		if line.Status == services.BudgetStateOverBudget {
			label = "Over Budget"
		}
		fmt.Printf("%-14s budget %10s  spent %10s  remaining %10s  %s\n",
			line.Category, money.FormatCents(line.Budgeted),
			money.FormatCents(line.Spent), money.FormatCents(line.Remaining), label)
	}
	fmt.Printf("Total budget %s, total expenses %s (%.1f%% used)\n",
		money.FormatCents(report.TotalBudget),
		money.FormatCents(report.TotalExpenses),
		report.PercentageUsed)
	return nil
}

func (sh *shell) summary() error {
	summary, err := sh.reports.Summary(sh.session.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Income   %12s\nExpenses %12s\nBalance  %12s\nTransactions %d\n",
		money.FormatCents(summary.TotalIncome),
		money.FormatCents(summary.TotalExpenses),
		money.FormatCents(summary.Balance),
		summary.TransactionCount)
	return nil
}

func (sh *shell) categoryReport() error {
	totals, err := sh.reports.ExpensesByCategory(sh.session.ID)
	if err != nil {
		return err
	}
	for _, entry := range totals {
		fmt.Printf("%-14s %12s\n", entry.Category, money.FormatCents(entry.Total))
	}
	return nil
}

func (sh *shell) monthlyReport() error {
	totals, err := sh.reports.MonthlyExpenses(sh.session.ID)
	if err != nil {
		return err
	}
	for _, entry := range totals {
		fmt.Printf("%s  %12s\n", entry.Month, money.FormatCents(entry.Total))
	}
	return nil
}

func (sh *shell) readLine(prompt string) (string, bool) {
	fmt.Print(prompt)
	if !sh.in.Scan() {
		return "", false
	}
	return sh.in.Text(), true
}

func (sh *shell) argOrPrompt(args []string, prompt string) string {
	if len(args) > 0 {
		return args[0]
	}
	line, _ := sh.readLine(prompt)
	return strings.TrimSpace(line)
}

// readPassword reads a password without echo when stdin is a terminal, and
// falls back to a plain line read otherwise (pipes, tests).
func (sh *shell) readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	line, ok := sh.readLine("")
	if !ok {
		return "", errors.New("no input")
	}
	return line, nil
}

func parseID(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("transaction id required")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid transaction id")
	}
	return uint(id), nil
}
