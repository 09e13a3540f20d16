// Package document renders a lease record into a standalone HTML document.
//
// The document is a fixed list of section descriptors rendered in order. A
// running counter numbers the numbered sections, so a section whose
// condition is false (Pet Policy when pets are not allowed) shifts every
// later number down by one.
package document

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/platform/sanitize"
)

//go:embed templates/*.html
var templateFS embed.FS

var leaseTemplates = template.Must(template.New("lease").ParseFS(templateFS, "templates/*.html"))

// Options carries the non-deterministic inputs of a render.
type Options struct {
	GeneratedAt time.Time
}

// section describes one block of the lease. Numbered sections get an
// "N. TITLE" heading from the running counter; the others render their
// title as a sub-heading.
type section struct {
	ID        string
	Title     string
	Numbered  bool
	Condition func(domain.Lease) bool
}

func always(domain.Lease) bool { return true }

// sections is the document order. Section bodies live in
// templates/sections.html under the section ID.
var sections = []section{
	{ID: "parties", Title: "Parties", Numbered: true, Condition: always},
	{ID: "premises", Title: "Premises", Numbered: true, Condition: always},
	{ID: "existing-issues", Title: "Existing Issues", Condition: func(l domain.Lease) bool {
		return strings.TrimSpace(l.Premises.ExistingIssues) != ""
	}},
	{ID: "included-items", Title: "Included Items", Condition: func(l domain.Lease) bool {
		return strings.TrimSpace(l.Premises.IncludedItems) != ""
	}},
	{ID: "term", Title: "Term", Numbered: true, Condition: always},
	{ID: "rent", Title: "Rent", Numbered: true, Condition: always},
	{ID: "security-deposit", Title: "Security Deposit", Numbered: true, Condition: always},
	{ID: "utilities", Title: "Utilities", Numbered: true, Condition: always},
	{ID: "use", Title: "Use of Premises", Numbered: true, Condition: always},
	{ID: "maintenance", Title: "Maintenance and Repairs", Numbered: true, Condition: always},
	{ID: "alterations", Title: "Alterations", Numbered: true, Condition: always},
	{ID: "entry", Title: "Entry by Landlord", Numbered: true, Condition: always},
	{ID: "pets", Title: "Pet Policy", Numbered: true, Condition: func(l domain.Lease) bool {
		return l.Policies.PetsAllowed
	}},
	{ID: "smoking", Title: "Smoking", Numbered: true, Condition: always},
	{ID: "assignment", Title: "Assignment and Subletting", Numbered: true, Condition: always},
	{ID: "insurance", Title: "Insurance", Numbered: true, Condition: always},
	{ID: "default", Title: "Default", Numbered: true, Condition: always},
	{ID: "lead-paint", Title: "Lead-Based Paint Disclosure", Numbered: true, Condition: always},
	{ID: "additional", Title: "Additional Provisions", Numbered: true, Condition: always},
	{ID: "entire-agreement", Title: "Entire Agreement", Numbered: true, Condition: always},
	{ID: "signatures", Title: "Signatures", Condition: always},
}

type renderedSection struct {
	ID       string
	Heading  string
	Numbered bool
	Body     template.HTML
}

type utilityRow struct {
	Utility string
	Party   string
}

// leaseView is the pre-formatted data the templates see.
type leaseView struct {
	Lease          domain.Lease
	Rent           string
	ProratedRent   string
	LateFee        string
	Deposit        string
	PetDeposit     string
	PetRent        string
	InsuranceMin   string
	StartDate      string
	EndDate        string
	MonthToMonth   bool
	PaymentMethods string
	Utilities      []utilityRow
	ExistingIssues []string
	IncludedItems  []string
	Clauses        []string
	GeneratedOn    string
	PropertyID     string
	Sections       []renderedSection
}

// GenerateHTML renders lease as a complete HTML document with its own style
// block. Output is deterministic apart from the generated-on timestamp.
func GenerateHTML(lease domain.Lease, opts Options) (string, error) {
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	view := newLeaseView(lease, generatedAt)

	number := 0
	for _, s := range sections {
		if !s.Condition(lease) {
			continue
		}

		var body bytes.Buffer
		if err := leaseTemplates.ExecuteTemplate(&body, s.ID, view); err != nil {
			return "", fmt.Errorf("render lease section %s: %w", s.ID, err)
		}

		heading := s.Title
		if s.Numbered {
			number++
			heading = fmt.Sprintf("%d. %s", number, strings.ToUpper(s.Title))
		}

		view.Sections = append(view.Sections, renderedSection{
			ID:       s.ID,
			Heading:  heading,
			Numbered: s.Numbered,
			Body:     template.HTML(body.String()),
		})
	}

	var out bytes.Buffer
	if err := leaseTemplates.ExecuteTemplate(&out, "document", view); err != nil {
		return "", fmt.Errorf("render lease document: %w", err)
	}
	return out.String(), nil
}

func newLeaseView(lease domain.Lease, generatedAt time.Time) *leaseView {
	utilities := make([]utilityRow, 0, len(lease.Utilities))
	for _, u := range lease.Utilities {
		utilities = append(utilities, utilityRow{
			Utility: sanitize.Text(u.Utility),
			Party:   domain.PartyLabel(u.ResponsibleParty),
		})
	}

	clauses := domain.ResolveClauses(lease.Clauses)
	for i, c := range clauses {
		clauses[i] = sanitize.Paragraphs(c)
	}

	return &leaseView{
		Lease:          lease,
		Rent:           FormatAmount(lease.Payment.MonthlyRent),
		ProratedRent:   FormatAmount(lease.Payment.ProratedRent),
		LateFee:        FormatAmount(lease.Payment.LateFeeAmount),
		Deposit:        FormatAmount(lease.Payment.SecurityDeposit),
		PetDeposit:     FormatAmount(lease.Policies.PetDeposit),
		PetRent:        FormatAmount(lease.Policies.PetRent),
		InsuranceMin:   FormatAmount(lease.Policies.InsuranceMinimum),
		StartDate:      FormatDate(lease.Term.StartDate),
		EndDate:        FormatDate(lease.Term.EndDate),
		MonthToMonth:   lease.Term.Type == domain.TermMonthToMonth || lease.Term.EndDate == "",
		PaymentMethods: strings.Join(sanitize.TextSlice(lease.Payment.PaymentMethodsAllowed), ", "),
		Utilities:      utilities,
		ExistingIssues: lines(lease.Premises.ExistingIssues),
		IncludedItems:  lines(lease.Premises.IncludedItems),
		Clauses:        clauses,
		GeneratedOn:    formatTimestamp(generatedAt),
		PropertyID:     lease.PropertyID,
	}
}

func lines(text string) []string {
	cleaned := sanitize.Paragraphs(text)
	if cleaned == "" {
		return nil
	}
	out := make([]string, 0)
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
