// Package export turns a lease into a downloadable document.
//
// The contract view fills the landlord's DOCX template by literal
// {{token}} replacement; the legal view builds a fresh Word document from
// the legal-analysis text. The print view renders the generated lease
// markup to PDF.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"landlord_portal_backend/internal/adapters/storage"
	"landlord_portal_backend/internal/leases/document"
	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/logger"
)

// View selects the export strategy.
type View string

const (
	ViewContract View = "contract"
	ViewLegal    View = "legal"
	ViewPrint    View = "print"
)

const (
	ContentTypeDOCX = storage.ContentTypeDOCX
	ContentTypePDF  = storage.ContentTypePDF
)

const msgUnknownView = "view must be contract, legal or print"

// PDFRenderer converts an HTML document to PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

var (
	// ErrTemplateFetch means the contract template could not be downloaded.
	ErrTemplateFetch = errors.New("lease template fetch failed")
	// ErrTemplateMalformed means the template is not a usable DOCX archive.
	ErrTemplateMalformed = errors.New("lease template is malformed")
)

// ParseView validates a view name from a request.
func ParseView(raw string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ViewContract:
		return ViewContract, nil
	case ViewLegal:
		return ViewLegal, nil
	case ViewPrint:
		return ViewPrint, nil
	default:
		return "", apperr.BadRequest(msgUnknownView)
	}
}

// Artifact is a finished export.
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
}

// FileName is the download name for a lease export.
func FileName(propertyID string, view View) string {
	if propertyID == "" {
		propertyID = "draft"
	}
	ext := "docx"
	if view == ViewPrint {
		ext = "pdf"
	}
	return fmt.Sprintf("lease-%s-%s.%s", propertyID, view, ext)
}

// ContentType is the MIME type of the artifact for view.
func ContentType(view View) string {
	if view == ViewPrint {
		return ContentTypePDF
	}
	return ContentTypeDOCX
}

// Exporter builds lease documents.
type Exporter struct {
	source TemplateSource
	pdf    PDFRenderer
	now    func() time.Time
	log    *logger.Logger
}

// NewExporter creates an exporter reading the contract template from source.
func NewExporter(source TemplateSource, log *logger.Logger) *Exporter {
	return &Exporter{source: source, now: time.Now, log: log}
}

// SetPDFRenderer enables the print view.
func (e *Exporter) SetPDFRenderer(r PDFRenderer) {
	e.pdf = r
}

// Export produces the artifact for view. It either returns a complete file
// or an error; a failed template fetch or a corrupt template never yields a
// partial document.
func (e *Exporter) Export(ctx context.Context, view View, lease domain.Lease, legalAnalysis string) (*Artifact, error) {
	var (
		data []byte
		err  error
	)

	switch view {
	case ViewContract:
		data, err = e.exportContract(ctx, lease)
	case ViewLegal:
		data, err = e.exportLegal(legalAnalysis)
	case ViewPrint:
		data, err = e.exportPrint(ctx, lease)
	default:
		return nil, apperr.BadRequest(msgUnknownView)
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{
		FileName:    FileName(lease.PropertyID, view),
		ContentType: ContentType(view),
		Data:        data,
	}, nil
}

func (e *Exporter) exportContract(ctx context.Context, lease domain.Lease) ([]byte, error) {
	if e.source == nil {
		return nil, apperr.Unavailable("lease template is not configured", ErrTemplateFetch)
	}

	template, err := e.source.Fetch(ctx)
	if err != nil {
		e.log.UpstreamError("template", "fetch", 0, err)
		return nil, apperr.Unavailable("the lease template could not be downloaded, please try again",
			fmt.Errorf("%w: %w", ErrTemplateFetch, err))
	}

	filled, err := FillTemplate(template, ContractTokens(lease, e.now()))
	if err != nil {
		e.log.Error("lease template rejected", "error", err)
		return nil, apperr.Wrap(apperr.KindInternal, "the lease template is corrupt and cannot be filled in", err)
	}
	return filled, nil
}

func (e *Exporter) exportLegal(legalAnalysis string) ([]byte, error) {
	if strings.TrimSpace(legalAnalysis) == "" {
		return nil, apperr.BadRequest("legal analysis is empty")
	}

	markup := AnalysisToHTML(legalAnalysis)
	paragraphs, err := HTMLToParagraphs(markup)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "legal analysis could not be converted", err)
	}
	return BuildDocument(paragraphs)
}

func (e *Exporter) exportPrint(ctx context.Context, lease domain.Lease) ([]byte, error) {
	if e.pdf == nil {
		return nil, apperr.Unavailable("PDF export is not configured", nil)
	}

	markup, err := document.GenerateHTML(lease, document.Options{GeneratedAt: e.now()})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "lease could not be rendered", err)
	}

	data, err := e.pdf.RenderPDF(ctx, []byte(markup))
	if err != nil {
		e.log.UpstreamError("gotenberg", "convert", 0, err)
		return nil, apperr.Unavailable("the PDF could not be generated, please try again", err)
	}
	return data, nil
}
