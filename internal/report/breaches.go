package report

import "fmt"

// Statutory thresholds for breach reporting. The Section 40A(3) reporting
// threshold is stricter than the scoring weight threshold: a breach line is
// raised from 10,000 while the score only moves above 50,000.
const (
	cashBreachThreshold    = 10000
	nonFilingBreachMonths  = 2
	highITCBreachThreshold = 100000
)

// BreachInputs carries the vendor aggregates the breach rules inspect.
type BreachInputs struct {
	CashPayments   float64
	MonthsNotFiled int
	GSTR1Status    string
	ITCAmount      float64
}

// ComplianceBreaches lists the statutory violations a vendor's aggregates
// trigger. The result is empty when the vendor is clean.
func ComplianceBreaches(in BreachInputs) []string {
	var breaches []string

	if in.CashPayments > cashBreachThreshold {
		breaches = append(breaches, fmt.Sprintf("⚖️ Section 40A(3) Breach: Cash payments ₹%s", FormatAmount(in.CashPayments)))
	}
	if in.MonthsNotFiled > nonFilingBreachMonths {
		breaches = append(breaches, fmt.Sprintf("📋 GST Compliance: %d months non-filing", in.MonthsNotFiled))
	}
	if in.GSTR1Status == "Not Filed" && in.ITCAmount > highITCBreachThreshold {
		breaches = append(breaches, fmt.Sprintf("❌ High ITC (₹%s) from non-compliant vendor", FormatAmount(in.ITCAmount)))
	}

	return breaches
}
