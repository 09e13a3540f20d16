package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/platform/apperr"
)

const (
	leaseNotFoundMessage    = "lease not found"
	propertyNotFoundMessage = "property not found"
)

// Repo implements the leases repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leases repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateSnapshot stores a generated lease. The property must belong to the
// owner and not be deleted.
func (r *Repo) CreateSnapshot(ctx context.Context, params CreateSnapshotParams) (Snapshot, error) {
	data, err := json.Marshal(params.Lease)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode lease: %w", err)
	}

	query := `
		INSERT INTO lease_snapshots (owner_id, property_id, data, html)
		SELECT $1, $2, $3, $4
		WHERE EXISTS (
			SELECT 1 FROM properties WHERE id = $2 AND owner_id = $1 AND deleted_at IS NULL
		)
		RETURNING id, generated_at`

	snapshot := Snapshot{
		OwnerID:    params.OwnerID,
		PropertyID: params.PropertyID,
		Lease:      params.Lease,
		HTML:       params.HTML,
	}
	if err := r.pool.QueryRow(ctx, query, params.OwnerID, params.PropertyID, data, params.HTML).Scan(
		&snapshot.ID, &snapshot.GeneratedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Snapshot{}, fmt.Errorf("create lease snapshot: %w", err)
	}

	snapshot.Lease.ID = snapshot.ID
	return snapshot, nil
}

// GetSnapshot retrieves a snapshot owned by ownerID.
func (r *Repo) GetSnapshot(ctx context.Context, ownerID, id uuid.UUID) (Snapshot, error) {
	query := `
		SELECT id, owner_id, property_id, data, html, generated_at
		FROM lease_snapshots
		WHERE id = $1 AND owner_id = $2`

	var snapshot Snapshot
	var data []byte
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&snapshot.ID, &snapshot.OwnerID, &snapshot.PropertyID, &data, &snapshot.HTML, &snapshot.GeneratedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Snapshot{}, apperr.NotFound(leaseNotFoundMessage)
		}
		return Snapshot{}, fmt.Errorf("get lease snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &snapshot.Lease); err != nil {
		return Snapshot{}, fmt.Errorf("decode lease snapshot %s: %w", id, err)
	}
	snapshot.Lease.ID = snapshot.ID
	return snapshot, nil
}

// ListSnapshots lists the owner's snapshots, newest first, optionally for
// one property.
func (r *Repo) ListSnapshots(ctx context.Context, ownerID uuid.UUID, propertyID *uuid.UUID) ([]SnapshotSummary, error) {
	query := `
		SELECT id, property_id,
			COALESCE(data->'parties'->>'tenantName', ''),
			COALESCE(data->'term'->>'startDate', ''),
			generated_at
		FROM lease_snapshots
		WHERE owner_id = $1 AND ($2::uuid IS NULL OR property_id = $2)
		ORDER BY generated_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID, propertyID)
	if err != nil {
		return nil, fmt.Errorf("list lease snapshots: %w", err)
	}
	defer rows.Close()

	items := make([]SnapshotSummary, 0)
	for rows.Next() {
		var s SnapshotSummary
		if err := rows.Scan(&s.ID, &s.PropertyID, &s.TenantName, &s.StartDate, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan lease snapshot: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lease snapshots: %w", err)
	}
	return items, nil
}

// RecordExport stores metadata for an archived export.
func (r *Repo) RecordExport(ctx context.Context, record ExportRecord) (ExportRecord, error) {
	query := `
		INSERT INTO lease_exports (lease_id, view, file_name, file_key, size_bytes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	if err := r.pool.QueryRow(ctx, query,
		record.LeaseID, record.View, record.FileName, record.FileKey, record.SizeBytes,
	).Scan(&record.ID, &record.CreatedAt); err != nil {
		return ExportRecord{}, fmt.Errorf("record lease export: %w", err)
	}
	return record, nil
}

// ListExports lists archived exports of a lease owned by ownerID.
func (r *Repo) ListExports(ctx context.Context, ownerID, leaseID uuid.UUID) ([]ExportRecord, error) {
	query := `
		SELECT e.id, e.lease_id, e.view, e.file_name, e.file_key, e.size_bytes, e.created_at
		FROM lease_exports e
		JOIN lease_snapshots s ON s.id = e.lease_id
		WHERE e.lease_id = $1 AND s.owner_id = $2
		ORDER BY e.created_at DESC`

	rows, err := r.pool.Query(ctx, query, leaseID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list lease exports: %w", err)
	}
	defer rows.Close()

	items := make([]ExportRecord, 0)
	for rows.Next() {
		var e ExportRecord
		if err := rows.Scan(&e.ID, &e.LeaseID, &e.View, &e.FileName, &e.FileKey, &e.SizeBytes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lease export: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lease exports: %w", err)
	}
	return items, nil
}

// SaveAnalysis stores or replaces the legal analysis of a lease.
func (r *Repo) SaveAnalysis(ctx context.Context, analysis Analysis) error {
	query := `
		INSERT INTO lease_analyses (lease_id, analysis, model)
		VALUES ($1, $2, $3)
		ON CONFLICT (lease_id) DO UPDATE
		SET analysis = EXCLUDED.analysis, model = EXCLUDED.model, created_at = now()`

	if _, err := r.pool.Exec(ctx, query, analysis.LeaseID, analysis.Text, analysis.Model); err != nil {
		return fmt.Errorf("save lease analysis: %w", err)
	}
	return nil
}

// GetAnalysis returns the stored analysis, if any.
func (r *Repo) GetAnalysis(ctx context.Context, leaseID uuid.UUID) (Analysis, bool, error) {
	query := `SELECT lease_id, analysis, model, created_at FROM lease_analyses WHERE lease_id = $1`

	var a Analysis
	if err := r.pool.QueryRow(ctx, query, leaseID).Scan(&a.LeaseID, &a.Text, &a.Model, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Analysis{}, false, nil
		}
		return Analysis{}, false, fmt.Errorf("get lease analysis: %w", err)
	}
	return a, true, nil
}

// GetProfile returns the landlord profile. A landlord without a stored
// profile gets an empty one.
func (r *Repo) GetProfile(ctx context.Context, userID uuid.UUID) (domain.LandlordProfile, error) {
	query := `
		SELECT user_id, full_name, email, phone, address,
			default_state, default_late_fee, default_grace_days, default_payment_methods
		FROM landlord_profiles
		WHERE user_id = $1`

	var p domain.LandlordProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.Email, &p.Phone, &p.Address,
		&p.DefaultState, &p.DefaultLateFee, &p.DefaultGraceDays, &p.DefaultPaymentMethods,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LandlordProfile{UserID: userID}, nil
		}
		return domain.LandlordProfile{}, fmt.Errorf("get landlord profile: %w", err)
	}
	return p, nil
}

// UpsertProfile stores the landlord profile.
func (r *Repo) UpsertProfile(ctx context.Context, p domain.LandlordProfile) (domain.LandlordProfile, error) {
	methods := p.DefaultPaymentMethods
	if methods == nil {
		methods = []string{}
	}

	query := `
		INSERT INTO landlord_profiles (user_id, full_name, email, phone, address,
			default_state, default_late_fee, default_grace_days, default_payment_methods)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			default_state = EXCLUDED.default_state,
			default_late_fee = EXCLUDED.default_late_fee,
			default_grace_days = EXCLUDED.default_grace_days,
			default_payment_methods = EXCLUDED.default_payment_methods,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query,
		p.UserID, p.FullName, p.Email, p.Phone, p.Address,
		p.DefaultState, p.DefaultLateFee, p.DefaultGraceDays, methods,
	); err != nil {
		return domain.LandlordProfile{}, fmt.Errorf("upsert landlord profile: %w", err)
	}
	p.DefaultPaymentMethods = methods
	return p, nil
}
