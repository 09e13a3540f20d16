// Package service implements the lease workflow: preview, immutable
// snapshots, legal analysis, document export and delivery to the tenant.
package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"landlord_portal_backend/internal/adapters/storage"
	"landlord_portal_backend/internal/address"
	"landlord_portal_backend/internal/email"
	"landlord_portal_backend/internal/leases/document"
	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/internal/leases/export"
	"landlord_portal_backend/internal/leases/repository"
	"landlord_portal_backend/platform/apperr"
	"landlord_portal_backend/platform/logger"
	"landlord_portal_backend/platform/validator"
)

// Analyzer produces the legal review of a lease.
type Analyzer interface {
	Analyze(ctx context.Context, lease domain.Lease) (string, error)
	Model() string
}

// Service coordinates the lease pipeline.
type Service struct {
	repo         repository.Repository
	val          *validator.Validator
	exporter     *export.Exporter
	analyzer     Analyzer
	storage      storage.StorageService
	exportBucket string
	sender       email.Sender
	log          *logger.Logger
	now          func() time.Time
}

// Deps groups the collaborators of the lease service. Analyzer, Storage and
// Sender may be nil; the features that need them are then unavailable.
type Deps struct {
	Repo         repository.Repository
	Validator    *validator.Validator
	Exporter     *export.Exporter
	Analyzer     Analyzer
	Storage      storage.StorageService
	ExportBucket string
	Sender       email.Sender
	Log          *logger.Logger
}

// New creates a new lease service.
func New(deps Deps) *Service {
	return &Service{
		repo:         deps.Repo,
		val:          deps.Validator,
		exporter:     deps.Exporter,
		analyzer:     deps.Analyzer,
		storage:      deps.Storage,
		exportBucket: deps.ExportBucket,
		sender:       deps.Sender,
		log:          deps.Log,
		now:          time.Now,
	}
}

// Clauses returns the predefined clause catalog.
func (s *Service) Clauses() []domain.Clause {
	return domain.Catalog()
}

// Defaults returns a new lease pre-filled from the landlord's profile.
func (s *Service) Defaults(ctx context.Context, ownerID uuid.UUID) (domain.Lease, error) {
	profile, err := s.repo.GetProfile(ctx, ownerID)
	if err != nil {
		return domain.Lease{}, err
	}
	return domain.Defaults(profile), nil
}

// GetProfile returns the landlord profile used for defaults.
func (s *Service) GetProfile(ctx context.Context, ownerID uuid.UUID) (domain.LandlordProfile, error) {
	return s.repo.GetProfile(ctx, ownerID)
}

// SaveProfile stores the landlord profile.
func (s *Service) SaveProfile(ctx context.Context, profile domain.LandlordProfile) (domain.LandlordProfile, error) {
	if state, ok := address.StateCode(profile.DefaultState); ok {
		profile.DefaultState = state
	}
	return s.repo.UpsertProfile(ctx, profile)
}

// Preview validates lease and renders it without storing anything.
func (s *Service) Preview(ctx context.Context, lease domain.Lease) (string, error) {
	if err := domain.Validate(s.val, lease); err != nil {
		return "", err
	}
	return s.render(lease)
}

// Create validates lease, renders it and stores an immutable snapshot.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, lease domain.Lease) (repository.Snapshot, error) {
	if err := domain.Validate(s.val, lease); err != nil {
		return repository.Snapshot{}, err
	}
	propertyID, err := uuid.Parse(lease.PropertyID)
	if err != nil {
		return repository.Snapshot{}, apperr.Validation("lease validation failed").WithDetails(map[string]string{
			"Lease.PropertyID": "required",
		})
	}

	html, err := s.render(lease)
	if err != nil {
		return repository.Snapshot{}, err
	}

	snapshot, err := s.repo.CreateSnapshot(ctx, repository.CreateSnapshotParams{
		OwnerID:    ownerID,
		PropertyID: propertyID,
		Lease:      lease,
		HTML:       html,
	})
	if err != nil {
		return repository.Snapshot{}, err
	}

	s.log.Info("lease snapshot created", "lease_id", snapshot.ID, "property_id", propertyID, "owner_id", ownerID)
	return snapshot, nil
}

// Get returns a stored snapshot.
func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (repository.Snapshot, error) {
	return s.repo.GetSnapshot(ctx, ownerID, id)
}

// List returns the owner's snapshots, optionally for one property.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID) ([]repository.SnapshotSummary, error) {
	return s.repo.ListSnapshots(ctx, ownerID, propertyID)
}

// Analyze returns the legal analysis of a snapshot, generating and storing
// it when none exists or refresh is set.
func (s *Service) Analyze(ctx context.Context, ownerID, id uuid.UUID, refresh bool) (repository.Analysis, error) {
	snapshot, err := s.repo.GetSnapshot(ctx, ownerID, id)
	if err != nil {
		return repository.Analysis{}, err
	}

	if !refresh {
		stored, ok, err := s.repo.GetAnalysis(ctx, snapshot.ID)
		if err != nil {
			return repository.Analysis{}, err
		}
		if ok {
			return stored, nil
		}
	}

	if s.analyzer == nil {
		return repository.Analysis{}, apperr.Unavailable("legal analysis is not configured", nil)
	}

	text, err := s.analyzer.Analyze(ctx, snapshot.Lease)
	if err != nil {
		return repository.Analysis{}, err
	}

	analysis := repository.Analysis{
		LeaseID:   snapshot.ID,
		Text:      text,
		Model:     s.analyzer.Model(),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.SaveAnalysis(ctx, analysis); err != nil {
		return repository.Analysis{}, err
	}
	return analysis, nil
}

// Export builds the document for view and archives a copy when object
// storage is configured. Archiving failures are logged, not returned.
func (s *Service) Export(ctx context.Context, ownerID, id uuid.UUID, view export.View) (*export.Artifact, error) {
	snapshot, err := s.repo.GetSnapshot(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	var analysis string
	if view == export.ViewLegal {
		a, err := s.Analyze(ctx, ownerID, id, false)
		if err != nil {
			return nil, err
		}
		analysis = a.Text
	}

	artifact, err := s.exporter.Export(ctx, view, snapshot.Lease, analysis)
	if err != nil {
		return nil, err
	}

	if _, err := s.archive(ctx, snapshot.ID, view, artifact); err != nil {
		s.log.Warn("lease export not archived", "lease_id", snapshot.ID, "view", view, "error", err)
	}
	return artifact, nil
}

// ListExports returns the archived exports of a lease.
func (s *Service) ListExports(ctx context.Context, ownerID, leaseID uuid.UUID) ([]repository.ExportRecord, error) {
	if _, err := s.repo.GetSnapshot(ctx, ownerID, leaseID); err != nil {
		return nil, err
	}
	return s.repo.ListExports(ctx, ownerID, leaseID)
}

// ExportDownloadURL returns a presigned link to an archived export.
func (s *Service) ExportDownloadURL(ctx context.Context, ownerID, leaseID, exportID uuid.UUID) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, apperr.Unavailable("document storage is not configured", nil)
	}

	records, err := s.ListExports(ctx, ownerID, leaseID)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ID == exportID {
			return s.storage.GenerateDownloadURL(ctx, s.exportBucket, record.FileKey)
		}
	}
	return nil, apperr.NotFound("export not found")
}

// Send emails the lease documents to the tenant. The contract is always
// attached; the legal review is attached when one has been generated.
func (s *Service) Send(ctx context.Context, ownerID, id uuid.UUID) error {
	snapshot, err := s.repo.GetSnapshot(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if s.sender == nil {
		return apperr.Unavailable("email delivery is not configured", nil)
	}
	lease := snapshot.Lease
	if lease.Parties.TenantEmail == "" {
		return apperr.Validation("tenant email is required to send the lease").WithDetails(map[string]string{
			"Lease.Parties.TenantEmail": "required",
		})
	}

	stored, hasAnalysis, err := s.repo.GetAnalysis(ctx, snapshot.ID)
	if err != nil {
		return err
	}

	var contract, legal *export.Artifact
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contract, err = s.exporter.Export(gctx, export.ViewContract, lease, "")
		return err
	})
	if hasAnalysis {
		g.Go(func() error {
			var err error
			legal, err = s.exporter.Export(gctx, export.ViewLegal, lease, stored.Text)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	attachments := []email.Attachment{toAttachment(contract)}
	if legal != nil {
		attachments = append(attachments, toAttachment(legal))
	}

	premises := lease.Premises
	err = s.sender.SendLeaseEmail(ctx, email.LeaseEmail{
		ToEmail:         lease.Parties.TenantEmail,
		TenantName:      lease.Parties.TenantName,
		LandlordName:    lease.Parties.LandlordName,
		PropertyAddress: address.Compose(premises.Address, premises.City, premises.State, premises.ZipCode),
		StartDate:       document.FormatDate(lease.Term.StartDate),
		MonthlyRent:     document.FormatAmount(lease.Payment.MonthlyRent),
	}, attachments...)
	if err != nil {
		s.log.UpstreamError("smtp", "send_lease", 0, err)
		return apperr.Unavailable("the lease email could not be sent, please try again", err)
	}

	s.log.Info("lease sent to tenant", "lease_id", snapshot.ID, "attachments", len(attachments))
	return nil
}

func (s *Service) render(lease domain.Lease) (string, error) {
	html, err := document.GenerateHTML(lease, document.Options{GeneratedAt: s.now()})
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "failed to render lease", err)
	}
	return html, nil
}

func (s *Service) archive(ctx context.Context, leaseID uuid.UUID, view export.View, artifact *export.Artifact) (*repository.ExportRecord, error) {
	if s.storage == nil || s.exportBucket == "" {
		return nil, nil
	}

	size := int64(len(artifact.Data))
	folder := fmt.Sprintf("leases/%s", leaseID)
	key, err := s.storage.UploadFile(ctx, s.exportBucket, folder, artifact.FileName, artifact.ContentType, bytes.NewReader(artifact.Data), size)
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	record, err := s.repo.RecordExport(ctx, repository.ExportRecord{
		LeaseID:   leaseID,
		View:      string(view),
		FileName:  artifact.FileName,
		FileKey:   key,
		SizeBytes: size,
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func toAttachment(a *export.Artifact) email.Attachment {
	return email.Attachment{Content: a.Data, FileName: a.FileName, MIMEType: a.ContentType}
}
