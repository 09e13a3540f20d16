package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/logger"
)

type staticSource struct {
	data []byte
	err  error
}

func (s staticSource) Fetch(context.Context) ([]byte, error) {
	return s.data, s.err
}

func buildTemplate(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := io.WriteString(w, body); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.Bytes()
}

func readEntry(t *testing.T, archive []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		data, err := readPart(f)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("entry %s not found", name)
	return ""
}

func sampleLease() domain.Lease {
	return domain.Lease{
		PropertyID: "3f0e8f3a-4c55-4d1c-9a59-1b0b8d3c1e22",
		Parties: domain.PartyInfo{
			LandlordName: "Ada & Co",
			TenantName:   "Grace Hopper",
		},
		Premises: domain.PremisesInfo{Address: "1 Main St", Bedrooms: "2"},
		Term:     domain.LeaseTerm{Type: domain.TermFixed, StartDate: "2025-03-15"},
		Payment: domain.PaymentTerms{
			MonthlyRent:           "$1,500.50",
			PaymentMethodsAllowed: []string{"Check", "Zelle"},
		},
		Utilities: []domain.UtilityAssignment{
			{Utility: "Water", ResponsibleParty: domain.PartyLandlord},
			{Utility: "Electric", ResponsibleParty: domain.PartyTenant},
		},
	}
}

func TestContractTokens(t *testing.T) {
	tokens := ContractTokens(sampleLease(), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	tests := map[string]string{
		"landlord_name":   "Ada & Co",
		"tenant_email":    "N/A",
		"monthly_rent":    "1500.5",
		"deposit":         "0",
		"bedrooms":        "2",
		"parking_spaces":  "0",
		"start_date":      "March 15, 2025",
		"end_date":        "N/A",
		"payment_methods": "Check, Zelle",
		"utilities":       "Water: Landlord, Electric: Tenant",
		"pets_allowed":    "No",
		"current_date":    "January 2, 2025",
	}
	for name, want := range tests {
		if got := tokens[name]; got != want {
			t.Errorf("token %s = %q, want %q", name, got, want)
		}
	}
	if len(tokens) < 40 {
		t.Errorf("expected at least 40 tokens, got %d", len(tokens))
	}
}

func TestFillTemplateReplacesTokens(t *testing.T) {
	template := buildTemplate(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   "<w:t>{{landlord_name}} leases to {{tenant_name}} ({{unknown}})</w:t>",
		"word/footer1.xml":    "<w:t>{{tenant_name}}</w:t>",
		"docProps/app.xml":    "<w:t>{{tenant_name}}</w:t>",
	})

	out, err := FillTemplate(template, map[string]string{"landlord_name": "Ada & Co", "tenant_name": "Grace"})
	if err != nil {
		t.Fatalf("FillTemplate: %v", err)
	}

	if got := readEntry(t, out, "word/document.xml"); got != "<w:t>Ada &amp; Co leases to Grace ({{unknown}})</w:t>" {
		t.Fatalf("document.xml = %q", got)
	}
	if got := readEntry(t, out, "word/footer1.xml"); got != "<w:t>Grace</w:t>" {
		t.Fatalf("footer1.xml = %q", got)
	}
	if got := readEntry(t, out, "docProps/app.xml"); got != "<w:t>{{tenant_name}}</w:t>" {
		t.Fatalf("non-word parts must be copied unchanged, got %q", got)
	}
}

func TestFillTemplateRejectsMalformed(t *testing.T) {
	if _, err := FillTemplate([]byte("not a zip"), nil); !errors.Is(err, ErrTemplateMalformed) {
		t.Fatalf("expected ErrTemplateMalformed, got %v", err)
	}

	noDocument := buildTemplate(t, map[string]string{"word/styles.xml": "<w:styles/>"})
	if _, err := FillTemplate(noDocument, nil); !errors.Is(err, ErrTemplateMalformed) {
		t.Fatalf("expected ErrTemplateMalformed for missing document, got %v", err)
	}
}

func TestExportContract(t *testing.T) {
	template := buildTemplate(t, map[string]string{
		"word/document.xml": "<w:t>{{tenant_name}} pays {{monthly_rent}}</w:t>",
	})
	exporter := NewExporter(staticSource{data: template}, logger.Discard())

	artifact, err := exporter.Export(context.Background(), ViewContract, sampleLease(), "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if artifact.FileName != "lease-3f0e8f3a-4c55-4d1c-9a59-1b0b8d3c1e22-contract.docx" {
		t.Fatalf("unexpected file name %q", artifact.FileName)
	}
	if artifact.ContentType != ContentTypeDOCX {
		t.Fatalf("unexpected content type %q", artifact.ContentType)
	}
	if got := readEntry(t, artifact.Data, "word/document.xml"); got != "<w:t>Grace Hopper pays 1500.5</w:t>" {
		t.Fatalf("document.xml = %q", got)
	}
}

func TestExportContractErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   TemplateSource
		kind     apperr.Kind
		sentinel error
	}{
		{"fetch failure", staticSource{err: errors.New("connection refused")}, apperr.KindUnavailable, ErrTemplateFetch},
		{"not configured", nil, apperr.KindUnavailable, ErrTemplateFetch},
		{"corrupt template", staticSource{data: []byte("<html>")}, apperr.KindInternal, ErrTemplateMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := NewExporter(tt.source, logger.Discard())
			artifact, err := exporter.Export(context.Background(), ViewContract, sampleLease(), "")
			if err == nil {
				t.Fatal("expected error")
			}
			if artifact != nil {
				t.Fatal("expected no artifact on failure")
			}
			if !apperr.Is(err, tt.kind) {
				t.Fatalf("expected kind %v, got %v", tt.kind, err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected %v in chain, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestHTMLToParagraphs(t *testing.T) {
	analysis := "# Summary\n\nThe rent is **due** on the *first*.\n## Risks\n### Late fees\n- Cap at 5%"

	paragraphs, err := HTMLToParagraphs(AnalysisToHTML(analysis))
	if err != nil {
		t.Fatalf("HTMLToParagraphs: %v", err)
	}

	want := []struct {
		style string
		text  string
	}{
		{StyleHeading1, "Summary"},
		{StyleNormal, ""},
		{StyleNormal, "The rent is due on the first."},
		{StyleHeading2, "Risks"},
		{StyleHeading3, "Late fees"},
		{StyleNormal, "• Cap at 5%"},
	}
	if len(paragraphs) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %+v", len(want), len(paragraphs), paragraphs)
	}
	for i, w := range want {
		if paragraphs[i].Style != w.style || paragraphs[i].Text() != w.text {
			t.Errorf("paragraph %d = (%q, %q), want (%q, %q)", i, paragraphs[i].Style, paragraphs[i].Text(), w.style, w.text)
		}
	}

	var bold, italic bool
	for _, r := range paragraphs[2].Runs {
		if r.Text == "due" && r.Bold {
			bold = true
		}
		if r.Text == "first" && r.Italic {
			italic = true
		}
	}
	if !bold || !italic {
		t.Fatalf("expected bold and italic runs, got %+v", paragraphs[2].Runs)
	}
}

func TestExportLegal(t *testing.T) {
	exporter := NewExporter(nil, logger.Discard())

	lease := sampleLease()
	lease.PropertyID = ""
	artifact, err := exporter.Export(context.Background(), ViewLegal, lease, "# Review\nTenant & landlord <ok>")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if artifact.FileName != "lease-draft-legal.docx" {
		t.Fatalf("unexpected file name %q", artifact.FileName)
	}

	doc := readEntry(t, artifact.Data, "word/document.xml")
	if !strings.Contains(doc, `<w:pStyle w:val="Heading1"/>`) {
		t.Fatalf("expected heading style in %s", doc)
	}
	if !strings.Contains(doc, "Tenant &amp; landlord &lt;ok&gt;") {
		t.Fatalf("expected escaped text in %s", doc)
	}
	for _, part := range []string{"[Content_Types].xml", "_rels/.rels", "word/styles.xml", "word/_rels/document.xml.rels"} {
		readEntry(t, artifact.Data, part)
	}

	if _, err := exporter.Export(context.Background(), ViewLegal, lease, "   "); !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for empty analysis, got %v", err)
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView(""); err != nil || v != ViewContract {
		t.Fatalf("empty view should default to contract, got %q %v", v, err)
	}
	if v, err := ParseView("Legal"); err != nil || v != ViewLegal {
		t.Fatalf("expected legal, got %q %v", v, err)
	}
	if _, err := ParseView("pdf"); err == nil {
		t.Fatal("expected error for unknown view")
	}
}

type stubRenderer struct {
	html []byte
	err  error
}

func (r *stubRenderer) RenderPDF(_ context.Context, html []byte) ([]byte, error) {
	r.html = html
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.7"), nil
}

func TestExportPrint(t *testing.T) {
	exporter := NewExporter(nil, logger.Discard())
	exporter.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	if _, err := exporter.Export(context.Background(), ViewPrint, sampleLease(), ""); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable without renderer, got %v", err)
	}

	renderer := &stubRenderer{}
	exporter.SetPDFRenderer(renderer)
	lease := sampleLease()
	artifact, err := exporter.Export(context.Background(), ViewPrint, lease, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if artifact.ContentType != ContentTypePDF || !strings.HasSuffix(artifact.FileName, "-print.pdf") {
		t.Fatalf("unexpected artifact %s (%s)", artifact.FileName, artifact.ContentType)
	}
	if !strings.Contains(string(renderer.html), "<html") {
		t.Fatalf("expected the generated lease document to be rendered, got %q", renderer.html)
	}

	exporter.SetPDFRenderer(&stubRenderer{err: errors.New("chromium crashed")})
	if _, err := exporter.Export(context.Background(), ViewPrint, lease, ""); !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable on renderer failure, got %v", err)
	}
}

func TestParseViewPrint(t *testing.T) {
	if v, err := ParseView(" print "); err != nil || v != ViewPrint {
		t.Fatalf("expected print, got %q %v", v, err)
	}
	if FileName("", ViewPrint) != "lease-draft-print.pdf" {
		t.Fatalf("unexpected print file name %q", FileName("", ViewPrint))
	}
}
