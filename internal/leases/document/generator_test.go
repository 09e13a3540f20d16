package document

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"landlord_portal_backend/internal/leases/domain"
)

var numberedHeading = regexp.MustCompile(`<h2>(\d+)\. ([^<]+)</h2>`)

func sampleLease() domain.Lease {
	return domain.Lease{
		PropertyID: "7f1c1a56-6f6e-4b1a-9d4e-2f4f0f3d8a11",
		Parties: domain.PartyInfo{
			LandlordName: "Jordan Reyes",
			TenantName:   "Sam Patel",
		},
		Premises: domain.PremisesInfo{
			Address: "123 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62704",
		},
		Term: domain.LeaseTerm{
			Type:      domain.TermFixed,
			StartDate: "2025-03-15",
			EndDate:   "2026-03-14",
		},
		Payment: domain.PaymentTerms{
			MonthlyRent:           "1500",
			SecurityDeposit:       "$2,000",
			LateFeeAmount:         "not a number",
			PaymentMethodsAllowed: []string{"Check", "Zelle"},
		},
		Policies: domain.PolicyFlags{PetsAllowed: true, PetDeposit: "300"},
	}
}

func render(t *testing.T, lease domain.Lease) string {
	t.Helper()
	out, err := GenerateHTML(lease, Options{GeneratedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	return out
}

func headingNumbers(html string) map[string]int {
	numbers := make(map[string]int)
	for _, m := range numberedHeading.FindAllStringSubmatch(html, -1) {
		n, _ := strconv.Atoi(m[1])
		numbers[m[2]] = n
	}
	return numbers
}

func TestGenerateHTMLPetPolicyRenumbersLaterSections(t *testing.T) {
	withPets := sampleLease()
	withoutPets := sampleLease()
	withoutPets.Policies.PetsAllowed = false

	petsHTML := render(t, withPets)
	noPetsHTML := render(t, withoutPets)

	if !strings.Contains(petsHTML, "<h2>11. PET POLICY</h2>") {
		t.Fatal("expected numbered pet policy section when pets are allowed")
	}
	if strings.Contains(noPetsHTML, "PET POLICY") {
		t.Fatal("pet policy heading must be omitted when pets are not allowed")
	}

	with := headingNumbers(petsHTML)
	without := headingNumbers(noPetsHTML)
	petNumber := with["PET POLICY"]

	for title, n := range with {
		if title == "PET POLICY" {
			continue
		}
		got, ok := without[title]
		if !ok {
			t.Fatalf("section %s missing without pets", title)
		}
		want := n
		if n > petNumber {
			want = n - 1
		}
		if got != want {
			t.Fatalf("section %s: got number %d, want %d", title, got, want)
		}
	}
	if without["SMOKING"] != 11 || without["ENTIRE AGREEMENT"] != len(without) {
		t.Fatalf("unexpected numbering without pets: %v", without)
	}
}

func TestGenerateHTMLSectionsAreSequential(t *testing.T) {
	numbers := headingNumbers(render(t, sampleLease()))
	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		seen[n] = true
	}
	for i := 1; i <= len(numbers); i++ {
		if !seen[i] {
			t.Fatalf("missing section number %d in %v", i, numbers)
		}
	}
}

func TestGenerateHTMLFormatsMoneyAndDates(t *testing.T) {
	out := render(t, sampleLease())

	for _, want := range []string{
		"$1,500.00",
		"$2,000.00",
		"late fee of $0.00",
		"March 15, 2025",
		"March 14, 2026",
		"Check, Zelle",
		"Pet deposit: $300.00",
		"Property ID 7f1c1a56-6f6e-4b1a-9d4e-2f4f0f3d8a11",
		"<style>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestGenerateHTMLConditionalBlocks(t *testing.T) {
	lease := sampleLease()
	out := render(t, lease)
	if strings.Contains(out, "<table>") {
		t.Fatal("utilities table must not render without assignments")
	}
	if strings.Contains(out, "<ol>") {
		t.Fatal("clause list must not render when empty")
	}
	if strings.Contains(out, "Existing Issues") || strings.Contains(out, "Included Items") {
		t.Fatal("empty optional sub-sections must be omitted")
	}

	lease.Utilities = []domain.UtilityAssignment{
		{Utility: "Water", ResponsibleParty: domain.PartyLandlord},
		{Utility: "Electric", ResponsibleParty: domain.PartyTenant},
	}
	lease.Clauses = domain.ClauseSet{
		Predefined: []string{"keys-locks"},
		Custom:     []string{"Tenant may keep one bicycle on the porch."},
	}
	lease.Premises.ExistingIssues = "- Scratch on kitchen floor\n- Cracked tile in bathroom"
	out = render(t, lease)

	if !strings.Contains(out, "<td>Water</td><td>Landlord</td>") || !strings.Contains(out, "<td>Electric</td><td>Tenant</td>") {
		t.Fatal("expected one utilities row per assignment")
	}
	keys, _ := domain.ClauseByID("keys-locks")
	predefinedAt := strings.Index(out, keys.Text[:20])
	customAt := strings.Index(out, "one bicycle")
	if predefinedAt < 0 || customAt < 0 || predefinedAt > customAt {
		t.Fatal("expected predefined clauses before custom clauses in one list")
	}
	if strings.Count(out, "<ol>") != 1 {
		t.Fatal("expected a single ordered clause list")
	}
	if !strings.Contains(out, "<h3>Existing Issues</h3>") || !strings.Contains(out, "<li>Cracked tile in bathroom</li>") {
		t.Fatal("expected existing issues sub-section")
	}
}

func TestGenerateHTMLEscapesInput(t *testing.T) {
	lease := sampleLease()
	lease.Parties.TenantName = `<script>alert("x")</script>`
	out := render(t, lease)
	if strings.Contains(out, "<script>") {
		t.Fatal("tenant name must be escaped")
	}
}

func TestGenerateHTMLDeterministic(t *testing.T) {
	a := render(t, sampleLease())
	b := render(t, sampleLease())
	if a != b {
		t.Fatal("expected identical output for identical input and timestamp")
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	rendered := FormatCurrency(1500)
	if rendered != "$1,500.00" {
		t.Fatalf("FormatCurrency(1500) = %q", rendered)
	}
	if got := ParseCurrency(rendered); got != 1500.00 {
		t.Fatalf("ParseCurrency(%q) = %v", rendered, got)
	}
	if FormatAmount("") != "$0.00" || FormatAmount("abc") != "$0.00" {
		t.Fatal("malformed amounts must render as $0.00")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-03-15"); got != "March 15, 2025" {
		t.Fatalf("unexpected date %q", got)
	}
	if FormatDate("") != "" || FormatDate("not a date") != "" {
		t.Fatal("invalid dates must render empty")
	}
}
