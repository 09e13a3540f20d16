// Package domain holds the typed lease record shared by the document
// generator, the exporter and the leases service.
//
// Numeric-looking fields (rent, deposits, day counts) stay strings exactly as
// the landlord typed them; Amount and Count coerce them when a document is
// rendered. Slices keep insertion order.
package domain

import (
	"github.com/google/uuid"
)

// Responsible parties for a utility.
const (
	PartyTenant   = "tenant"
	PartyLandlord = "landlord"
)

// Lease term types.
const (
	TermFixed        = "fixed"
	TermMonthToMonth = "month-to-month"
)

// Lease is the full set of negotiated terms for one lease document.
type Lease struct {
	ID         uuid.UUID           `json:"id"`
	PropertyID string              `json:"propertyId" validate:"omitempty,uuid"`
	Parties    PartyInfo           `json:"parties"`
	Premises   PremisesInfo        `json:"premises"`
	Term       LeaseTerm           `json:"term"`
	Payment    PaymentTerms        `json:"payment"`
	Utilities  []UtilityAssignment `json:"utilities" validate:"omitempty,dive"`
	Policies   PolicyFlags         `json:"policies"`
	Hazards    HazardDisclosures   `json:"hazards"`
	Clauses    ClauseSet           `json:"clauses"`
}

// PartyInfo identifies landlord and tenant.
type PartyInfo struct {
	LandlordName        string `json:"landlordName" validate:"required,max=200"`
	LandlordEmail       string `json:"landlordEmail" validate:"omitempty,email"`
	LandlordPhone       string `json:"landlordPhone" validate:"omitempty,phone_us"`
	LandlordAddress     string `json:"landlordAddress" validate:"max=500"`
	TenantName          string `json:"tenantName" validate:"required,max=200"`
	TenantEmail         string `json:"tenantEmail" validate:"omitempty,email"`
	TenantPhone         string `json:"tenantPhone" validate:"omitempty,phone_us"`
	AdditionalOccupants string `json:"additionalOccupants" validate:"max=1000"`
}

// PremisesInfo describes the rented unit.
type PremisesInfo struct {
	Address        string `json:"address" validate:"required,max=500"`
	Unit           string `json:"unit" validate:"max=50"`
	City           string `json:"city" validate:"max=200"`
	State          string `json:"state" validate:"omitempty,usstate"`
	ZipCode        string `json:"zipCode" validate:"omitempty,zip5"`
	PropertyType   string `json:"propertyType" validate:"max=100"`
	Bedrooms       string `json:"bedrooms" validate:"omitempty,count"`
	Bathrooms      string `json:"bathrooms" validate:"omitempty,amount"`
	ParkingSpaces  string `json:"parkingSpaces" validate:"omitempty,count"`
	Furnished      bool   `json:"furnished"`
	ExistingIssues string `json:"existingIssues" validate:"max=5000"`
	IncludedItems  string `json:"includedItems" validate:"max=5000"`
}

// LeaseTerm holds the dates and renewal rules. Dates are ISO (2006-01-02)
// or RFC3339 strings.
type LeaseTerm struct {
	Type             string `json:"type" validate:"omitempty,oneof=fixed month-to-month"`
	StartDate        string `json:"startDate" validate:"required,leasedate"`
	EndDate          string `json:"endDate" validate:"omitempty,leasedate"`
	RenewalTerms     string `json:"renewalTerms" validate:"max=2000"`
	NoticePeriodDays string `json:"noticePeriodDays" validate:"omitempty,count"`
}

// PaymentTerms holds rent, fees and deposits.
type PaymentTerms struct {
	MonthlyRent           string   `json:"monthlyRent" validate:"required,amount"`
	DueDay                string   `json:"dueDay" validate:"omitempty,count"`
	ProratedRent          string   `json:"proratedRent" validate:"omitempty,amount"`
	LateFeeAmount         string   `json:"lateFeeAmount" validate:"omitempty,amount"`
	GracePeriodDays       string   `json:"gracePeriodDays" validate:"omitempty,count"`
	SecurityDeposit       string   `json:"securityDeposit" validate:"omitempty,amount"`
	DepositReturnDays     string   `json:"depositReturnDays" validate:"omitempty,count"`
	PaymentMethodsAllowed []string `json:"paymentMethodsAllowed" validate:"omitempty,dive,required,max=100"`
	PaymentInstructions   string   `json:"paymentInstructions" validate:"max=2000"`
}

// UtilityAssignment says who pays for one utility.
type UtilityAssignment struct {
	Utility          string `json:"utility" validate:"required,max=100"`
	ResponsibleParty string `json:"responsibleParty" validate:"required,oneof=tenant landlord"`
}

// PolicyFlags holds the house rules.
type PolicyFlags struct {
	PetsAllowed              bool   `json:"petsAllowed"`
	PetTypes                 string `json:"petTypes" validate:"max=500"`
	MaxPets                  string `json:"maxPets" validate:"omitempty,count"`
	PetDeposit               string `json:"petDeposit" validate:"omitempty,amount"`
	PetRent                  string `json:"petRent" validate:"omitempty,amount"`
	SmokingAllowed           bool   `json:"smokingAllowed"`
	SublettingAllowed        bool   `json:"sublettingAllowed"`
	AlterationsAllowed       bool   `json:"alterationsAllowed"`
	RentersInsuranceRequired bool   `json:"rentersInsuranceRequired"`
	InsuranceMinimum         string `json:"insuranceMinimum" validate:"omitempty,amount"`
	MaxOccupants             string `json:"maxOccupants" validate:"omitempty,count"`
	EntryNoticeHours         string `json:"entryNoticeHours" validate:"omitempty,count"`
	TenantMaintenance        string `json:"tenantMaintenance" validate:"max=2000"`
	LandlordMaintenance      string `json:"landlordMaintenance" validate:"max=2000"`
	QuietHours               string `json:"quietHours" validate:"max=200"`
}

// HazardDisclosures holds the statutory disclosures.
type HazardDisclosures struct {
	BuiltBefore1978       bool   `json:"builtBefore1978"`
	LeadPaintKnown        bool   `json:"leadPaintKnown"`
	LeadPaintReportsGiven bool   `json:"leadPaintReportsGiven"`
	MoldDisclosure        string `json:"moldDisclosure" validate:"max=2000"`
	FloodZone             bool   `json:"floodZone"`
	OtherDisclosures      string `json:"otherDisclosures" validate:"max=5000"`
}

// ClauseSet lists predefined clause IDs followed by free-form clauses.
type ClauseSet struct {
	Predefined []string `json:"predefined" validate:"omitempty,dive,clause"`
	Custom     []string `json:"custom" validate:"omitempty,dive,required,max=5000"`
}

// PartyLabel renders a responsible party for documents.
func PartyLabel(party string) string {
	if party == PartyLandlord {
		return "Landlord"
	}
	return "Tenant"
}
