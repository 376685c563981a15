// Package registry wraps the four external registries behind uniform fetch
// contracts. Each registry keeps its own typed record; the only shared shape
// is the FetchedAt stamp and the FetchError taxonomy.
package registry

import "time"

// Source identifies one external registry.
type Source string

const (
	SourceGSTN  Source = "gstn"
	SourceMCA   Source = "mca"
	SourceIBBI  Source = "ibbi"
	SourceUdyam Source = "udyam"
)

// Sources lists all registries in merge order. Snapshot layout follows this
// order regardless of which connector finishes first.
var Sources = []Source{SourceGSTN, SourceMCA, SourceIBBI, SourceUdyam}

// StatusUnknown marks a status field on a sentinel record built after a
// connector failure. "Unknown" is a deliberate degraded state, not a guess.
const StatusUnknown = "Unknown"

// GSTNRecord is the tax-filing registry response for a GSTIN.
type GSTNRecord struct {
	GSTIN              string    `json:"gstin"`
	LegalName          string    `json:"legal_name"`
	TradeName          string    `json:"trade_name"`
	RegistrationDate   string    `json:"registration_date"`
	Status             string    `json:"status"`
	TaxpayerType       string    `json:"taxpayer_type"`
	GSTR1LastFiled     string    `json:"gstr1_last_filed"`
	GSTR3BLastFiled    string    `json:"gstr3b_last_filed"`
	CenterJurisdiction string    `json:"center_jurisdiction"`
	StateJurisdiction  string    `json:"state_jurisdiction"`
	FetchedAt          time.Time `json:"fetched_at"`
}

// MCARecord is the corporate-registry response for a PAN.
type MCARecord struct {
	PAN                  string    `json:"pan"`
	DirectorName         string    `json:"director_name"`
	TotalCompanies       int       `json:"total_companies"`
	ActiveCompanies      int       `json:"active_companies"`
	DissolvedCompanies   int       `json:"dissolved_companies"`
	RecentIncorporations int       `json:"recent_incorporations"`
	FlaggedEntities      int       `json:"flagged_entities"`
	ComplianceStatus     string    `json:"compliance_status"`
	FetchedAt            time.Time `json:"fetched_at"`
}

// IBBIRecord is the insolvency registry response for a PAN.
type IBBIRecord struct {
	PAN              string    `json:"pan"`
	InsolvencyStatus string    `json:"insolvency_status"`
	NCLTCases        int       `json:"nclt_cases"`
	IBBIRegistered   bool      `json:"ibbi_registered"`
	FetchedAt        time.Time `json:"fetched_at"`
}

// UdyamRecord is the small-business registry response for a GSTIN.
type UdyamRecord struct {
	GSTIN            string    `json:"gstin"`
	UdyamRegistered  bool      `json:"udyam_registered"`
	MSMECategory     string    `json:"msme_category"`
	RegistrationDate string    `json:"registration_date"`
	FetchedAt        time.Time `json:"fetched_at"`
}

// UnknownGSTN builds the sentinel record used when the GSTN fetch fails.
func UnknownGSTN(gstin string, at time.Time) *GSTNRecord {
	return &GSTNRecord{
		GSTIN:           gstin,
		Status:          StatusUnknown,
		TaxpayerType:    StatusUnknown,
		GSTR1LastFiled:  StatusUnknown,
		GSTR3BLastFiled: StatusUnknown,
		FetchedAt:       at,
	}
}

// UnknownMCA builds the sentinel record used when the MCA fetch fails.
func UnknownMCA(pan string, at time.Time) *MCARecord {
	return &MCARecord{
		PAN:              pan,
		ComplianceStatus: StatusUnknown,
		FetchedAt:        at,
	}
}

// UnknownIBBI builds the sentinel record used when the IBBI fetch fails.
func UnknownIBBI(pan string, at time.Time) *IBBIRecord {
	return &IBBIRecord{
		PAN:              pan,
		InsolvencyStatus: StatusUnknown,
		FetchedAt:        at,
	}
}

// UnknownUdyam builds the sentinel record used when the Udyam fetch fails.
func UnknownUdyam(gstin string, at time.Time) *UdyamRecord {
	return &UdyamRecord{
		GSTIN:        gstin,
		MSMECategory: StatusUnknown,
		FetchedAt:    at,
	}
}
