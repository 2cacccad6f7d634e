package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrInvalidAmountRange        = errors.New("requested amount outside offer range")
	ErrInvalidOfferConfiguration = errors.New("loan offer configuration is invalid")
	ErrPlanNotFound              = errors.New("payment plan not found")
	ErrOfferNotFound             = errors.New("loan offer not found")
	ErrLoanNotFound              = errors.New("loan not found")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidAmountRange        = "INVALID_AMOUNT_RANGE"
	ErrCodeInvalidOfferConfiguration = "INVALID_OFFER_CONFIGURATION"
	ErrCodePlanNotFound              = "PLAN_NOT_FOUND"
	ErrCodeOfferNotFound             = "OFFER_NOT_FOUND"
	ErrCodeLoanNotFound              = "LOAN_NOT_FOUND"
	ErrCodeDatabaseError             = "DATABASE_ERROR"
	ErrCodeCacheError                = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapInvalidAmountRange(requested, min, max decimal.Decimal) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmountRange,
		fmt.Sprintf("Requested amount %s is outside the offer range [%s, %s]", requested, min, max),
		ErrInvalidAmountRange,
	)
}

func WrapInvalidOfferConfiguration(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidOfferConfiguration,
		detail,
		ErrInvalidOfferConfiguration,
	)
}

func WrapPlanNotFound(tenure int, repaymentAmount decimal.Decimal) *BusinessError {
	return NewBusinessError(
		ErrCodePlanNotFound,
		fmt.Sprintf("No payment plan matches tenure %d with repayment amount %s", tenure, repaymentAmount),
		ErrPlanNotFound,
	)
}

func WrapOfferNotFound(customerID, programID string) *BusinessError {
	return NewBusinessError(
		ErrCodeOfferNotFound,
		fmt.Sprintf("No loan offer for customer %s under program %s", customerID, programID),
		ErrOfferNotFound,
	)
}

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapNoLoansForCustomer(customerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("No loans found for customer %s", customerID),
		ErrLoanNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"Database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
