package risk

import (
	"fmt"

	"bloodhound/internal/report"
)

// Action thresholds. These intentionally differ from the scoring weights:
// actions trigger on the scored record, not on raw rule hits.
const (
	blockPaymentsScore     = 90
	dueDiligenceMaxDays    = 30
	itcReversalRiskMonths  = 2
	investigateDirectorMin = 20
	bankTransferCashLimit  = 50000
)

// RecommendationInputs carries the scored vendor fields the action checklist
// inspects.
type RecommendationInputs struct {
	RiskScore         int
	RegistrationDays  int
	MonthsNotFiled    int
	ITCAmount         float64
	DirectorCompanies int
	CashPayments      float64
}

// Recommend produces the action checklist for a scored vendor. The list is
// never empty: a clean vendor gets the standing monitoring action.
func Recommend(in RecommendationInputs) []string {
	var actions []string

	if in.RiskScore >= blockPaymentsScore {
		actions = append(actions,
			"🛑 BLOCK ALL PAYMENTS - Do not process any transactions",
			"🔍 PHYSICAL VERIFICATION - Visit business premises immediately",
		)
	}
	if in.RegistrationDays < dueDiligenceMaxDays {
		actions = append(actions, "📋 ENHANCED DUE DILIGENCE - Verify all documents before payment")
	}
	if in.MonthsNotFiled > itcReversalRiskMonths {
		actions = append(actions,
			fmt.Sprintf("⚠️ ITC REVERSAL RISK - ₹%s may need reversal", report.FormatAmount(in.ITCAmount)),
			"📞 CONTACT VENDOR - Urgent GST compliance required",
		)
	}
	if in.DirectorCompanies > investigateDirectorMin {
		actions = append(actions, "🔎 INVESTIGATE - Check for shell company patterns")
	}
	if in.CashPayments > bankTransferCashLimit {
		actions = append(actions, "💳 PAYMENT METHOD CHANGE - Use bank transfer only")
	}

	if len(actions) == 0 {
		actions = append(actions, "✅ Continue monitoring vendor compliance")
	}
	return actions
}
