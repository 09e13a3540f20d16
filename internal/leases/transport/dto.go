package transport

import (
	"time"

	"github.com/google/uuid"

	"landlord_portal_backend/internal/leases/domain"
	"landlord_portal_backend/internal/leases/repository"
)

// ListLeasesRequest filters the snapshot list.
type ListLeasesRequest struct {
	PropertyID string `form:"propertyId" validate:"omitempty,uuid"`
}

// ExportRequest selects the export view.
type ExportRequest struct {
	View string `form:"view" validate:"omitempty,oneof=contract legal"`
}

// AnalysisRequest forces a new review instead of the stored one.
type AnalysisRequest struct {
	Refresh bool `json:"refresh"`
}

// ProfileRequest updates the landlord profile.
type ProfileRequest struct {
	FullName              string   `json:"fullName" validate:"max=200"`
	Email                 string   `json:"email" validate:"omitempty,email"`
	Phone                 string   `json:"phone" validate:"omitempty,phone_us"`
	Address               string   `json:"address" validate:"max=500"`
	DefaultState          string   `json:"defaultState" validate:"omitempty,usstate"`
	DefaultLateFee        string   `json:"defaultLateFee" validate:"omitempty,amount"`
	DefaultGraceDays      string   `json:"defaultGraceDays" validate:"omitempty,count"`
	DefaultPaymentMethods []string `json:"defaultPaymentMethods" validate:"omitempty,dive,required,max=100"`
}

// PreviewResponse carries rendered lease markup.
type PreviewResponse struct {
	HTML string `json:"html"`
}

// LeaseResponse is a stored snapshot.
type LeaseResponse struct {
	ID          uuid.UUID    `json:"id"`
	PropertyID  uuid.UUID    `json:"propertyId"`
	Lease       domain.Lease `json:"lease"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// LeaseSummaryResponse is a snapshot list entry.
type LeaseSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"propertyId"`
	TenantName  string    `json:"tenantName"`
	StartDate   string    `json:"startDate"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// AnalysisResponse is the legal review of a snapshot.
type AnalysisResponse struct {
	LeaseID   uuid.UUID `json:"leaseId"`
	Analysis  string    `json:"analysis"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExportRecordResponse is an archived export.
type ExportRecordResponse struct {
	ID        uuid.UUID `json:"id"`
	View      string    `json:"view"`
	FileName  string    `json:"fileName"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToLeaseResponse maps a snapshot to its response.
func ToLeaseResponse(s repository.Snapshot) LeaseResponse {
	return LeaseResponse{ID: s.ID, PropertyID: s.PropertyID, Lease: s.Lease, GeneratedAt: s.GeneratedAt}
}

// ToLeaseSummaries maps list entries to responses.
func ToLeaseSummaries(items []repository.SnapshotSummary) []LeaseSummaryResponse {
	out := make([]LeaseSummaryResponse, 0, len(items))
	for _, s := range items {
		out = append(out, LeaseSummaryResponse{
			ID:          s.ID,
			PropertyID:  s.PropertyID,
			TenantName:  s.TenantName,
			StartDate:   s.StartDate,
			GeneratedAt: s.GeneratedAt,
		})
	}
	return out
}

// ToAnalysisResponse maps a stored analysis.
func ToAnalysisResponse(a repository.Analysis) AnalysisResponse {
	return AnalysisResponse{LeaseID: a.LeaseID, Analysis: a.Text, Model: a.Model, CreatedAt: a.CreatedAt}
}

// ToExportRecords maps archived exports.
func ToExportRecords(items []repository.ExportRecord) []ExportRecordResponse {
	out := make([]ExportRecordResponse, 0, len(items))
	for _, e := range items {
		out = append(out, ExportRecordResponse{
			ID:        e.ID,
			View:      e.View,
			FileName:  e.FileName,
			SizeBytes: e.SizeBytes,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
