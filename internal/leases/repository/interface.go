package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"landlord_portal_backend/internal/leases/domain"
)

// Snapshot is an immutable generated lease: the submitted terms and the
// markup rendered from them. Regenerating a lease creates a new snapshot.
type Snapshot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	PropertyID  uuid.UUID
	Lease       domain.Lease
	HTML        string
	GeneratedAt time.Time
}

// SnapshotSummary is a list entry without the heavy payloads.
type SnapshotSummary struct {
	ID          uuid.UUID
	PropertyID  uuid.UUID
	TenantName  string
	StartDate   string
	GeneratedAt time.Time
}

// CreateSnapshotParams contains data for storing a generated lease.
type CreateSnapshotParams struct {
	OwnerID    uuid.UUID
	PropertyID uuid.UUID
	Lease      domain.Lease
	HTML       string
}

// ExportRecord tracks a document archived to object storage.
type ExportRecord struct {
	ID        uuid.UUID
	LeaseID   uuid.UUID
	View      string
	FileName  string
	FileKey   string
	SizeBytes int64
	CreatedAt time.Time
}

// Analysis is the stored legal review of a snapshot.
type Analysis struct {
	LeaseID   uuid.UUID
	Text      string
	Model     string
	CreatedAt time.Time
}

// Repository defines persistence for lease snapshots, exports and the
// landlord profile used for defaults.
type Repository interface {
	CreateSnapshot(ctx context.Context, params CreateSnapshotParams) (Snapshot, error)
	GetSnapshot(ctx context.Context, ownerID, id uuid.UUID) (Snapshot, error)
	ListSnapshots(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID) ([]SnapshotSummary, error)

	RecordExport(ctx context.Context, record ExportRecord) (ExportRecord, error)
	ListExports(ctx context.Context, ownerID, leaseID uuid.UUID) ([]ExportRecord, error)

	SaveAnalysis(ctx context.Context, analysis Analysis) error
	GetAnalysis(ctx context.Context, leaseID uuid.UUID) (Analysis, bool, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (domain.LandlordProfile, error)
	UpsertProfile(ctx context.Context, profile domain.LandlordProfile) (domain.LandlordProfile, error)
}
