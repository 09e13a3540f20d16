package domain

import (
	"slices"

	"github.com/google/uuid"
)

// LandlordProfile is the account data used to pre-fill a new lease.
type LandlordProfile struct {
	UserID                uuid.UUID `json:"userId"`
	FullName              string    `json:"fullName"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	Address               string    `json:"address"`
	DefaultState          string    `json:"defaultState"`
	DefaultLateFee        string    `json:"defaultLateFee"`
	DefaultGraceDays      string    `json:"defaultGraceDays"`
	DefaultPaymentMethods []string  `json:"defaultPaymentMethods"`
}

// Defaults returns a new lease seeded from the landlord's profile.
func Defaults(profile LandlordProfile) Lease {
	predefined := make([]string, 0)
	for _, c := range Catalog() {
		if c.Default {
			predefined = append(predefined, c.ID)
		}
	}

	methods := slices.Clone(profile.DefaultPaymentMethods)
	if len(methods) == 0 {
		methods = []string{"Check", "Bank Transfer"}
	}

	grace := profile.DefaultGraceDays
	if grace == "" {
		grace = "5"
	}

	return Lease{
		Parties: PartyInfo{
			LandlordName:    profile.FullName,
			LandlordEmail:   profile.Email,
			LandlordPhone:   profile.Phone,
			LandlordAddress: profile.Address,
		},
		Premises: PremisesInfo{
			State: profile.DefaultState,
		},
		Term: LeaseTerm{
			Type:             TermFixed,
			NoticePeriodDays: "30",
		},
		Payment: PaymentTerms{
			DueDay:                "1",
			LateFeeAmount:         profile.DefaultLateFee,
			GracePeriodDays:       grace,
			DepositReturnDays:     "30",
			PaymentMethodsAllowed: methods,
		},
		Utilities: []UtilityAssignment{},
		Policies: PolicyFlags{
			EntryNoticeHours: "24",
		},
		Clauses: ClauseSet{
			Predefined: predefined,
			Custom:     []string{},
		},
	}
}
