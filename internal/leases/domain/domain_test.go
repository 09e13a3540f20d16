package domain

import (
	"testing"

	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/validator"
)

func newValidator(t *testing.T) *validator.Validator {
	t.Helper()
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		t.Fatalf("register validations: %v", err)
	}
	return v
}

func validLease() Lease {
	return Lease{
		PropertyID: "7f1c1a56-6f6e-4b1a-9d4e-2f4f0f3d8a11",
		Parties: PartyInfo{
			LandlordName:  "Jordan Reyes",
			LandlordEmail: "jordan@example.com",
			LandlordPhone: "(415) 555-2671",
			TenantName:    "Sam Patel",
		},
		Premises: PremisesInfo{
			Address: "123 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62704",
		},
		Term: LeaseTerm{
			Type:      TermFixed,
			StartDate: "2025-03-15",
			EndDate:   "2026-03-14",
		},
		Payment: PaymentTerms{
			MonthlyRent:     "$1,500.00",
			DueDay:          "1",
			SecurityDeposit: "1500",
		},
		Utilities: []UtilityAssignment{{Utility: "Water", ResponsibleParty: PartyLandlord}},
		Clauses:   ClauseSet{Predefined: []string{"trash-removal"}},
	}
}

func TestValidateAcceptsCompleteLease(t *testing.T) {
	if err := Validate(newValidator(t), validLease()); err != nil {
		t.Fatalf("expected valid lease, got %v", err)
	}
}

func TestValidateReportsFieldErrors(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		edit  func(*Lease)
		field string
	}{
		{"missing tenant", func(l *Lease) { l.Parties.TenantName = "" }, "Lease.Parties.TenantName"},
		{"bad state", func(l *Lease) { l.Premises.State = "ZZ" }, "Lease.Premises.State"},
		{"bad zip", func(l *Lease) { l.Premises.ZipCode = "6270" }, "Lease.Premises.ZipCode"},
		{"bad phone", func(l *Lease) { l.Parties.LandlordPhone = "12" }, "Lease.Parties.LandlordPhone"},
		{"bad rent", func(l *Lease) { l.Payment.MonthlyRent = "lots" }, "Lease.Payment.MonthlyRent"},
		{"bad date", func(l *Lease) { l.Term.StartDate = "15/03/2025" }, "Lease.Term.StartDate"},
		{"unknown clause", func(l *Lease) { l.Clauses.Predefined = []string{"no-such-clause"} }, "Lease.Clauses.Predefined[0]"},
		{"bad utility party", func(l *Lease) { l.Utilities[0].ResponsibleParty = "city" }, "Lease.Utilities[0].ResponsibleParty"},
		{"end before start", func(l *Lease) { l.Term.EndDate = "2025-01-01" }, "Lease.Term.EndDate"},
		{"due day out of range", func(l *Lease) { l.Payment.DueDay = "32" }, "Lease.Payment.DueDay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lease := validLease()
			tt.edit(&lease)

			err := Validate(v, lease)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var appErr *apperr.Error
			appErr, _ = err.(*apperr.Error)
			details, _ := appErr.Details.(map[string]string)
			if _, ok := details[tt.field]; !ok {
				t.Fatalf("expected %s in details, got %v", tt.field, details)
			}
		})
	}
}

func TestAmountAndCount(t *testing.T) {
	amounts := map[string]float64{
		"$1,500.00": 1500,
		"1500":      1500,
		" 99.5 ":    99.5,
		"":          0,
		"abc":       0,
	}
	for input, want := range amounts {
		if got := Amount(input); got != want {
			t.Fatalf("Amount(%q) = %v, want %v", input, got, want)
		}
	}
	if Count("3") != 3 || Count("x") != 0 || Count("") != 0 {
		t.Fatal("unexpected Count coercion")
	}
}

func TestParseDate(t *testing.T) {
	if _, ok := ParseDate("2025-03-15"); !ok {
		t.Fatal("expected ISO date to parse")
	}
	if _, ok := ParseDate("2025-03-15T10:00:00Z"); !ok {
		t.Fatal("expected RFC3339 to parse")
	}
	if _, ok := ParseDate("March 15"); ok {
		t.Fatal("expected free text to fail")
	}
}

func TestCatalogAndResolveClauses(t *testing.T) {
	catalog := Catalog()
	if len(catalog) == 0 {
		t.Fatal("expected embedded clause catalog")
	}

	texts := ResolveClauses(ClauseSet{
		Predefined: []string{"keys-locks", "missing", "trash-removal"},
		Custom:     []string{"Tenant may keep one bicycle on the porch.", ""},
	})
	if len(texts) != 3 {
		t.Fatalf("expected 3 clause texts, got %d", len(texts))
	}
	keys, _ := ClauseByID("keys-locks")
	if texts[0] != keys.Text {
		t.Fatal("predefined clauses must keep selection order")
	}
	if texts[2] != "Tenant may keep one bicycle on the porch." {
		t.Fatal("custom clauses must follow predefined ones")
	}

	if _, err := parseCatalog([]byte("clauses:\n  - id: a\n    text: x\n  - id: a\n    text: y\n")); err == nil {
		t.Fatal("expected duplicate ids to be rejected")
	}
}

func TestDefaultsSeedFromProfile(t *testing.T) {
	lease := Defaults(LandlordProfile{
		FullName:     "Jordan Reyes",
		Email:        "jordan@example.com",
		DefaultState: "IL",
	})

	if lease.Parties.LandlordName != "Jordan Reyes" || lease.Parties.LandlordEmail != "jordan@example.com" {
		t.Fatalf("expected landlord seeded from profile, got %+v", lease.Parties)
	}
	if lease.Premises.State != "IL" || lease.Payment.DueDay != "1" || lease.Payment.GracePeriodDays != "5" {
		t.Fatalf("unexpected defaults %+v", lease)
	}
	if len(lease.Payment.PaymentMethodsAllowed) == 0 {
		t.Fatal("expected default payment methods")
	}
	for _, id := range lease.Clauses.Predefined {
		c, ok := ClauseByID(id)
		if !ok || !c.Default {
			t.Fatalf("unexpected default clause %q", id)
		}
	}
}
