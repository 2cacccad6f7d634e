package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/witjaksana/loan-pricing/internal/config"
	"github.com/witjaksana/loan-pricing/internal/domain"
	"github.com/witjaksana/loan-pricing/internal/repository"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Connect to postgres database to create test database
	cfg.Database.Name = "postgres"
	adminDB, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to postgres database: %v", err))
	}
	defer adminDB.Close()

	testDBName := "loan_pricing_test"
	adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", testDBName))
	_, err = adminDB.Exec(fmt.Sprintf("CREATE DATABASE %s", testDBName))
	if err != nil {
		panic(fmt.Sprintf("Failed to create test database: %v", err))
	}

	cfg.Database.Name = testDBName
	testDB, err = sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}

	if err := executeInitSQL(testDB); err != nil {
		panic(fmt.Sprintf("Failed to initialize database schema: %v", err))
	}
}

func teardown() {
	if testDB != nil {
		testDB.Close()
	}

	cfg, _ := config.Load()
	cfg.Database.Name = "postgres"

	adminDB, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return
	}
	defer adminDB.Close()

	adminDB.Exec("DROP DATABASE IF EXISTS loan_pricing_test")
}

func executeInitSQL(db *sqlx.DB) error {
	sqlBytes, err := os.ReadFile("../../../scripts/init.sql")
	if err != nil {
		return fmt.Errorf("failed to read init.sql: %w", err)
	}

	_, err = db.Exec(string(sqlBytes))
	if err != nil {
		return fmt.Errorf("failed to execute init.sql: %w", err)
	}

	return nil
}

func setupTestDB(t *testing.T) *sqlx.DB {
	cleanupTestData(testDB)
	return testDB
}

func cleanupTestData(db *sqlx.DB) {
	db.Exec("DELETE FROM payback_transactions")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM selected_loan_terms")
	db.Exec("DELETE FROM loans")
	db.Exec("DELETE FROM loan_offers")
}

func insertLoan(t *testing.T, db *sqlx.DB, loan *domain.Loan) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO loans (id, loan_id, customer_id, program_id, amount, status_code,
			is_early_write_off, is_repayment_capped, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		loan.ID, loan.LoanID, loan.CustomerID, loan.ProgramID, loan.Amount,
		loan.StatusCode, loan.IsEarlyWriteOff, loan.IsRepaymentCapped,
		loan.CreatedAt, loan.UpdatedAt,
	)
	require.NoError(t, err)
}

func testLoan(loanID string) *domain.Loan {
	return &domain.Loan{
		ID:         uuid.New(),
		LoanID:     loanID,
		CustomerID: "628111222333",
		ProgramID:  "DANA-TUNAI",
		Amount:     decimal.NewFromInt(6575000),
		StatusCode: domain.LoanStatusCurrent,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestLoanRepository_GetByLoanID(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewLoanRepository(db)
	ctx := context.Background()

	insertLoan(t, db, testLoan("LOAN-001"))

	result, err := repo.GetByLoanID(ctx, "LOAN-001")
	require.NoError(t, err)
	assert.Equal(t, "LOAN-001", result.LoanID)
	assert.Equal(t, domain.LoanStatusCurrent, result.StatusCode)
	assert.True(t, decimal.NewFromInt(6575000).Equal(result.Amount))
}

func TestLoanRepository_GetByLoanID_NotFound(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewLoanRepository(db)
	ctx := context.Background()

	_, err := repo.GetByLoanID(ctx, "NON-EXISTENT")
	assert.Error(t, err)
}

func TestLoanRepository_GetByCustomerID(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewLoanRepository(db)
	ctx := context.Background()

	first := testLoan("LOAN-001")
	second := testLoan("LOAN-002")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	insertLoan(t, db, first)
	insertLoan(t, db, second)

	loans, err := repo.GetByCustomerID(ctx, "628111222333")
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, "LOAN-001", loans[0].LoanID)
	assert.Equal(t, "LOAN-002", loans[1].LoanID)
}

func TestLoanRepository_UpsertSelectedTerms(t *testing.T) {
	db := setupTestDB(t)

	repo := repository.NewLoanRepository(db)
	ctx := context.Background()

	insertLoan(t, db, testLoan("LOAN-003"))

	terms := &domain.SelectedLoanTerms{
		LoanID:           "LOAN-003",
		Amount:           decimal.NewFromInt(6575000),
		Tenure:           90,
		InterestValue:    decimal.NewFromInt(789000),
		InstalmentAmount: decimal.NewFromInt(81822),
	}

	err := repo.UpsertSelectedTerms(ctx, terms)
	require.NoError(t, err)

	// Resubmission with different values overwrites, never appends.
	terms.Tenure = 120
	terms.InstalmentAmount = decimal.NewFromInt(63867)
	err = repo.UpsertSelectedTerms(ctx, terms)
	require.NoError(t, err)

	result, err := repo.GetSelectedTerms(ctx, "LOAN-003")
	require.NoError(t, err)
	assert.Equal(t, 120, result.Tenure)
	assert.True(t, decimal.NewFromInt(63867).Equal(result.InstalmentAmount))

	var count int
	err = db.Get(&count, "SELECT COUNT(*) FROM selected_loan_terms WHERE loan_id = $1", "LOAN-003")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
