package vendor

import (
	"time"

	"bloodhound/internal/enrichment/models"
	"bloodhound/internal/registry"
	"bloodhound/internal/risk"
)

// defaultRegistrationDays is assumed when the tax registry cannot tell us the
// registration date. A year-old vendor scores no age penalty, which is the
// conservative reading of "unknown age".
const defaultRegistrationDays = 365

// inputsFromSnapshot merges registry-derived fields with the caller's
// transaction aggregates into one scoring input.
func inputsFromSnapshot(snapshot *models.Snapshot, agg Aggregates, now time.Time) risk.Inputs {
	return risk.Inputs{
		RegistrationDays:  registrationDays(snapshot.GSTN.RegistrationDate, now),
		AddressType:       agg.AddressType,
		DirectorCompanies: snapshot.MCA.TotalCompanies,
		GSTR1Status:       filingStatus(snapshot.GSTN.GSTR1LastFiled),
		MonthsNotFiled:    monthsNotFiled(snapshot.GSTN, now),
		CashPayments:      agg.CashPayments,
		TransactionCount:  agg.TransactionCount,
		ITCAmount:         agg.ITCAmount,
	}
}

func registrationDays(registered string, now time.Time) int {
	t, err := time.Parse("2006-01-02", registered)
	if err != nil {
		return defaultRegistrationDays
	}
	days := int(now.Sub(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// filingStatus collapses a last-filed value into the scoring engine's status
// vocabulary. Anything that looks like a filing period means the vendor files.
func filingStatus(lastFiled string) string {
	switch lastFiled {
	case "Not Filed", "Nil Return":
		return lastFiled
	case "", registry.StatusUnknown:
		return registry.StatusUnknown
	default:
		return "Filed"
	}
}

// monthsNotFiled derives the GSTR-3B delinquency from the last filed period.
// A vendor that never filed is delinquent since registration; an unknown
// filing state contributes nothing, matching the sentinel's zero counts.
func monthsNotFiled(gstn *registry.GSTNRecord, now time.Time) int {
	switch gstn.GSTR3BLastFiled {
	case "", registry.StatusUnknown:
		return 0
	case "Not Filed":
		return registrationDays(gstn.RegistrationDate, now) / 30
	}

	lastFiled, err := time.Parse("2006-01", gstn.GSTR3BLastFiled)
	if err != nil {
		return 0
	}
	// The return for month X is due in month X+1, so one elapsed month is not
	// yet a delay.
	months := (now.Year()-lastFiled.Year())*12 + int(now.Month()) - int(lastFiled.Month()) - 1
	if months < 0 {
		return 0
	}
	return months
}
