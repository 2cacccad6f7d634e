package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/witjaksana/loan-pricing/internal/domain"
	customError "github.com/witjaksana/loan-pricing/pkg/errors"
	"github.com/witjaksana/loan-pricing/pkg/utils"
)

// Config drives pricing presentation. It is injected rather than read from a
// feature-flag store so the engine stays a pure function of its inputs.
type Config struct {
	// BandCount is the number of evenly spaced loan amounts offered in
	// variation mode, inclusive of the offer's min and max.
	BandCount int
	// SmallerLoanFeeDiscount reduces the upfront fee of the lowest amount
	// band in variation mode. The business rule behind the discount is not
	// settled; it stays configuration, never a hard-coded constant.
	SmallerLoanFeeDiscount decimal.Decimal
	// WeeklyInstalmentDays converts a periodic repayment into the
	// weekly_instalment_amount field. Business convention fixes it at 7
	// even for daily-frequency offers.
	WeeklyInstalmentDays int
}

// DefaultConfig matches production presentation: 6 bands, no discount until
// product settles the smaller-loan rule, weekly figure over 7 days.
func DefaultConfig() Config {
	return Config{
		BandCount:              6,
		SmallerLoanFeeDiscount: decimal.Zero,
		WeeklyInstalmentDays:   7,
	}
}

// Engine computes payment-plan options from a loan offer. It performs no I/O
// and holds no mutable state; identical inputs produce identical output.
type Engine struct {
	config Config
}

func NewEngine(config Config) *Engine {
	if config.BandCount <= 0 {
		config.BandCount = 6
	}
	if config.WeeklyInstalmentDays <= 0 {
		config.WeeklyInstalmentDays = 7
	}
	return &Engine{config: config}
}

// GeneratePlans computes the ordered option list for a requested amount.
// Standard mode prices the single requested amount; variation mode ignores
// the requested amount and prices every amount band of the offer.
func (e *Engine) GeneratePlans(offer *domain.LoanOffer, requestedAmount decimal.Decimal, mode string) ([]*domain.PaymentPlanOption, error) {
	if err := ValidateOffer(offer); err != nil {
		return nil, err
	}

	if mode == domain.PricingModeVariation {
		return e.generateVariationPlans(offer)
	}

	if requestedAmount.LessThan(offer.MinLoanAmount) || requestedAmount.GreaterThan(offer.MaxLoanAmount) {
		return nil, customError.WrapInvalidAmountRange(requestedAmount, offer.MinLoanAmount, offer.MaxLoanAmount)
	}

	return e.plansForAmount(offer, requestedAmount, false, decimal.Zero), nil
}

// generateVariationPlans partitions [min, max] into evenly spaced amount
// bands and prices the full tenure ladder for each. The lowest band is the
// smaller-loan option and carries the configured fee discount.
func (e *Engine) generateVariationPlans(offer *domain.LoanOffer) ([]*domain.PaymentPlanOption, error) {
	bands := amountBands(offer.MinLoanAmount, offer.MaxLoanAmount, e.config.BandCount)

	options := make([]*domain.PaymentPlanOption, 0, len(bands)*tenureCount(offer))
	for i, amount := range bands {
		smallerLoan := i == 0
		discount := decimal.Zero
		if smallerLoan {
			discount = e.config.SmallerLoanFeeDiscount
		}
		options = append(options, e.plansForAmount(offer, amount, smallerLoan, discount)...)
	}
	return options, nil
}

// plansForAmount walks the tenure ladder from max down to min and prices each
// step. Rounding happens on final amounts only.
func (e *Engine) plansForAmount(offer *domain.LoanOffer, amount decimal.Decimal, smallerLoan bool, feeDiscount decimal.Decimal) []*domain.PaymentPlanOption {
	fee := upfrontFee(offer, amount).Sub(feeDiscount)
	if fee.IsNegative() {
		fee = decimal.Zero
	}
	fee = utils.RoundRupiah(fee)
	disbursement := amount.Sub(fee)

	periodLength := int64(offer.PeriodLengthDays())
	weeklyDays := decimal.NewFromInt(int64(e.config.WeeklyInstalmentDays))

	options := make([]*domain.PaymentPlanOption, 0, tenureCount(offer))
	for tenure := offer.MaxTenure; tenure >= offer.MinTenure; tenure -= offer.TenureInterval {
		periods := decimal.NewFromInt(int64(tenure) / periodLength)
		totalInterest := amount.Mul(offer.InterestRate).Mul(periods)
		totalRepayment := utils.RoundRupiah(amount.Add(totalInterest))
		periodicRepayment := utils.RoundRupiah(totalRepayment.Div(periods))

		options = append(options, &domain.PaymentPlanOption{
			Tenure:                 tenure,
			DailyRepayment:         periodicRepayment,
			RepaymentAmount:        totalRepayment,
			LoanDisbursementAmount: disbursement,
			WeeklyInstalmentAmount: periodicRepayment.Mul(weeklyDays),
			LoanAmount:             amount,
			SmallerLoanOptionFlag:  smallerLoan,
			UpfrontFee:             fee,
		})
	}
	return options
}

// upfrontFee interprets the offer's fee by type: FLAT is an absolute amount,
// PERCENTAGE is a rate applied to the principal.
func upfrontFee(offer *domain.LoanOffer, amount decimal.Decimal) decimal.Decimal {
	if offer.FeeType == domain.FeeTypePercentage {
		return amount.Mul(offer.FeeValue)
	}
	return offer.FeeValue
}

// amountBands returns count evenly spaced amounts over [min, max], inclusive
// of both ends, rounded to whole Rupiah.
func amountBands(min, max decimal.Decimal, count int) []decimal.Decimal {
	if count <= 1 || min.Equal(max) {
		return []decimal.Decimal{min}
	}
	step := max.Sub(min).Div(decimal.NewFromInt(int64(count - 1)))
	bands := make([]decimal.Decimal, 0, count)
	for i := 0; i < count-1; i++ {
		bands = append(bands, utils.RoundRupiah(min.Add(step.Mul(decimal.NewFromInt(int64(i))))))
	}
	// The top band is the exact max, never a rounded interpolation.
	bands = append(bands, max)
	return bands
}

func tenureCount(offer *domain.LoanOffer) int {
	return (offer.MaxTenure-offer.MinTenure)/offer.TenureInterval + 1
}

// ValidateOffer rejects offers the engine cannot price. Ingestion runs it
// before persisting; GeneratePlans runs it again so a malformed row that
// slipped into storage never reaches the tenure loop.
func ValidateOffer(offer *domain.LoanOffer) error {
	if offer.TenureInterval <= 0 {
		return customError.WrapInvalidOfferConfiguration("tenure_interval must be positive")
	}
	if offer.MinTenure <= 0 || offer.MaxTenure < offer.MinTenure {
		return customError.WrapInvalidOfferConfiguration("tenure range is invalid")
	}
	if offer.MinLoanAmount.GreaterThan(offer.MaxLoanAmount) {
		return customError.WrapInvalidOfferConfiguration("amount range is invalid")
	}
	if offer.MinTenure < offer.PeriodLengthDays() {
		return customError.WrapInvalidOfferConfiguration("tenure shorter than one repayment period")
	}
	return nil
}
