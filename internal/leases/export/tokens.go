package export

import (
	"strconv"
	"strings"
	"time"

	"landlord_portal_backend/internal/leases/document"
	"landlord_portal_backend/internal/leases/domain"
)

const (
	missingText   = "N/A"
	missingNumber = "0"
)

// ContractTokens maps every template placeholder name (without braces) to
// its value for lease. Absent text becomes "N/A", absent numbers "0".
func ContractTokens(lease domain.Lease, now time.Time) map[string]string {
	p := lease.Parties
	pr := lease.Premises
	t := lease.Term
	pay := lease.Payment
	pol := lease.Policies
	hz := lease.Hazards

	return map[string]string{
		"landlord_name":    text(p.LandlordName),
		"landlord_email":   text(p.LandlordEmail),
		"landlord_phone":   text(p.LandlordPhone),
		"landlord_address": text(p.LandlordAddress),
		"tenant_name":      text(p.TenantName),
		"tenant_email":     text(p.TenantEmail),
		"tenant_phone":     text(p.TenantPhone),
		"occupants":        text(p.AdditionalOccupants),

		"property_address": text(pr.Address),
		"unit":             text(pr.Unit),
		"city":             text(pr.City),
		"state":            text(pr.State),
		"zip_code":         text(pr.ZipCode),
		"property_type":    text(pr.PropertyType),
		"bedrooms":         count(pr.Bedrooms),
		"bathrooms":        money(pr.Bathrooms),
		"parking_spaces":   count(pr.ParkingSpaces),
		"furnished":        yesNo(pr.Furnished),

		"lease_type":     text(t.Type),
		"start_date":     date(t.StartDate),
		"end_date":       date(t.EndDate),
		"renewal_terms":  text(t.RenewalTerms),
		"notice_period":  count(t.NoticePeriodDays),
		"monthly_rent":   money(pay.MonthlyRent),
		"due_day":        count(pay.DueDay),
		"prorated_rent":  money(pay.ProratedRent),
		"late_fee":       money(pay.LateFeeAmount),
		"grace_period":   count(pay.GracePeriodDays),
		"deposit":        money(pay.SecurityDeposit),
		"deposit_return": count(pay.DepositReturnDays),

		"payment_methods":      list(pay.PaymentMethodsAllowed),
		"payment_instructions": text(pay.PaymentInstructions),
		"utilities":            utilities(lease.Utilities),

		"pets_allowed":      yesNo(pol.PetsAllowed),
		"pet_types":         text(pol.PetTypes),
		"max_pets":          count(pol.MaxPets),
		"pet_deposit":       money(pol.PetDeposit),
		"pet_rent":          money(pol.PetRent),
		"smoking_allowed":   yesNo(pol.SmokingAllowed),
		"subletting":        yesNo(pol.SublettingAllowed),
		"alterations":       yesNo(pol.AlterationsAllowed),
		"renters_insurance": yesNo(pol.RentersInsuranceRequired),
		"insurance_minimum": money(pol.InsuranceMinimum),
		"max_occupants":     count(pol.MaxOccupants),
		"entry_notice":      count(pol.EntryNoticeHours),
		"quiet_hours":       text(pol.QuietHours),

		"built_before_1978": yesNo(hz.BuiltBefore1978),
		"mold_disclosure":   text(hz.MoldDisclosure),
		"flood_zone":        yesNo(hz.FloodZone),
		"other_disclosures": text(hz.OtherDisclosures),

		"clauses":      numbered(domain.ResolveClauses(lease.Clauses)),
		"current_date": now.Format("January 2, 2006"),
	}
}

func text(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return missingText
	}
	return s
}

func money(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return missingNumber
	}
	return strconv.FormatFloat(domain.Amount(raw), 'f', -1, 64)
}

func count(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return missingNumber
	}
	return strconv.Itoa(domain.Count(raw))
}

func date(raw string) string {
	return text(document.FormatDate(raw))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func list(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return text(strings.Join(kept, ", "))
}

func numbered(items []string) string {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		parts = append(parts, strconv.Itoa(i+1)+". "+item)
	}
	return text(strings.Join(parts, " "))
}

func utilities(assignments []domain.UtilityAssignment) string {
	pairs := make([]string, 0, len(assignments))
	for _, u := range assignments {
		pairs = append(pairs, u.Utility+": "+domain.PartyLabel(u.ResponsibleParty))
	}
	return text(strings.Join(pairs, ", "))
}
