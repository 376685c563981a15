package risk

import (
	"fmt"

	"bloodhound/internal/report"
)

// Rule weights. Each rule fires at most once; the summed score is clamped to
// [0,100] after all rules run.
const (
	maxScore = 100

	weightVeryNewVendor      = 35 // registered under 30 days
	weightNewVendor          = 25 // registered under 90 days
	weightRecentVendor       = 10 // registered under 180 days
	weightShellAddress       = 25 // rented room or virtual office
	weightResidentialAddress = 15
	weightShellNetwork       = 20 // director in more than 30 companies
	weightDirectorSpread     = 10 // director in more than 15 companies
	weightNilGSTR1           = 15
	weightUnfiledGSTR1       = 20
	weightChronicNonFiling   = 30 // GSTR-3B unfiled beyond 3 months
	weightDelayedFilingBase  = 15 // plus 3 per delayed month
	weightCashOverLimit      = 15 // cash payments above Section 40A(3) limit
	weightUnusualITCPattern  = 15 // high ITC with few transactions
)

// Aggregate thresholds the transaction rules fire on.
const (
	cashScoringLimit    = 50000
	unusualITCThreshold = 500000
	lowTransactionCount = 10
)

// Score runs the additive rule chain over validated inputs and returns the
// clamped score, the human-readable factor for every rule that fired in rule
// order, and the resulting tier.
func Score(in Inputs) (int, []string, Tier) {
	score := 0
	var factors []string

	switch {
	case in.RegistrationDays < 30:
		score += weightVeryNewVendor
		factors = append(factors, fmt.Sprintf("⚠️ Recently registered (%d days) - High fraud risk", in.RegistrationDays))
	case in.RegistrationDays < 90:
		score += weightNewVendor
		factors = append(factors, fmt.Sprintf("⚠️ New vendor (%d days) - Enhanced due diligence required", in.RegistrationDays))
	case in.RegistrationDays < 180:
		score += weightRecentVendor
		factors = append(factors, fmt.Sprintf("ℹ️ Relatively new vendor (%d days)", in.RegistrationDays))
	}

	switch in.AddressType {
	case "Rented Room", "Virtual Office":
		score += weightShellAddress
		factors = append(factors, fmt.Sprintf("🏢 Operating from %s - Shell company indicator", in.AddressType))
	case "Residential":
		score += weightResidentialAddress
		factors = append(factors, "🏠 Operating from residential address - Verify legitimacy")
	}

	switch {
	case in.DirectorCompanies > 30:
		score += weightShellNetwork
		factors = append(factors, fmt.Sprintf("👥 Director in %d companies - Shell network risk", in.DirectorCompanies))
	case in.DirectorCompanies > 15:
		score += weightDirectorSpread
		factors = append(factors, fmt.Sprintf("👥 Director in %d companies - Monitor activity", in.DirectorCompanies))
	}

	switch in.GSTR1Status {
	case "Nil Return":
		score += weightNilGSTR1
		factors = append(factors, "📋 NIL GSTR-1 returns - No sales despite ITC claims")
	case "Not Filed":
		score += weightUnfiledGSTR1
		factors = append(factors, "❌ GSTR-1 not filed - Non-compliant vendor")
	}

	switch {
	case in.MonthsNotFiled > 3:
		score += weightChronicNonFiling
		factors = append(factors, fmt.Sprintf("🚨 GSTR-3B not filed for %d months - Cancellation imminent", in.MonthsNotFiled))
	case in.MonthsNotFiled > 0:
		score += weightDelayedFilingBase + in.MonthsNotFiled*3
		factors = append(factors, fmt.Sprintf("⚠️ GSTR-3B delayed by %d months - ITC reversal risk", in.MonthsNotFiled))
	}

	if in.CashPayments > cashScoringLimit {
		score += weightCashOverLimit
		factors = append(factors, fmt.Sprintf("💵 Cash payments ₹%s exceed Section 40A(3) limit", report.FormatAmount(in.CashPayments)))
	}

	if in.TransactionCount < lowTransactionCount && in.ITCAmount > unusualITCThreshold {
		score += weightUnusualITCPattern
		factors = append(factors, fmt.Sprintf("📊 High ITC (₹%s) with low transactions (%d) - Unusual pattern", report.FormatAmount(in.ITCAmount), in.TransactionCount))
	}

	if score > maxScore {
		score = maxScore
	}

	return score, factors, TierFor(score)
}
