package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type leaseSentEmailData struct {
	baseEmailData
	TenantName      string
	LandlordName    string
	PropertyAddress string
	StartDate       string
	MonthlyRent     string
	HasAttachments  bool
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderLeaseSent(lease LeaseEmail, hasAttachments bool) (string, error) {
	return renderEmailTemplate("lease_sent.html", leaseSentEmailData{
		baseEmailData: baseEmailData{
			Title:   "Your lease agreement",
			Heading: "Your lease agreement is ready",
		},
		TenantName:      lease.TenantName,
		LandlordName:    lease.LandlordName,
		PropertyAddress: lease.PropertyAddress,
		StartDate:       lease.StartDate,
		MonthlyRent:     lease.MonthlyRent,
		HasAttachments:  hasAttachments,
	})
}
