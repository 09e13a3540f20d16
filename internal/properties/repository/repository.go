package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"landlord_portal_backend/platform/apperr"
)

const propertyNotFoundMessage = "property not found"

const propertyColumns = `id, owner_id, name, full_address, street_address, city, state, zip_code,
	latitude, longitude, property_type, year_built, created_at, updated_at`

// Repo implements the properties repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new properties repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

func scanProperty(row pgx.Row) (Property, error) {
	var p Property
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.FullAddress, &p.StreetAddress, &p.City, &p.State, &p.ZipCode,
		&p.Latitude, &p.Longitude, &p.PropertyType, &p.YearBuilt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create inserts a property.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Property, error) {
	query := `
		INSERT INTO properties (owner_id, name, full_address, street_address, city, state, zip_code,
			latitude, longitude, property_type, year_built)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + propertyColumns

	p, err := scanProperty(r.pool.QueryRow(ctx, query,
		params.OwnerID, params.Name, params.FullAddress, params.StreetAddress, params.City, params.State,
		params.ZipCode, params.Latitude, params.Longitude, params.PropertyType, params.YearBuilt,
	))
	if err != nil {
		return Property{}, fmt.Errorf("create property: %w", err)
	}
	return p, nil
}

// GetByID retrieves a property owned by ownerID.
func (r *Repo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

// List returns the owner's properties by name.
func (r *Repo) List(ctx context.Context, ownerID uuid.UUID) ([]Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY name, created_at`

	return r.queryProperties(ctx, "list properties", query, ownerID)
}

// Update replaces the editable fields of a property.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Property, error) {
	query := `
		UPDATE properties
		SET name = $3, full_address = $4, street_address = $5, city = $6, state = $7, zip_code = $8,
			latitude = $9, longitude = $10, property_type = $11, year_built = $12, updated_at = now(),
			geocode_missed_at = CASE WHEN full_address = $4 THEN geocode_missed_at END
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
		RETURNING ` + propertyColumns

	p, err := scanProperty(r.pool.QueryRow(ctx, query,
		params.ID, params.OwnerID, params.Name, params.FullAddress, params.StreetAddress, params.City,
		params.State, params.ZipCode, params.Latitude, params.Longitude, params.PropertyType, params.YearBuilt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("update property: %w", err)
	}
	return p, nil
}

// Delete soft-deletes a property. Lease snapshots keep referencing it.
func (r *Repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `UPDATE properties SET deleted_at = now() WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL`
	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(propertyNotFoundMessage)
	}
	return nil
}

// GetForGeocoding loads a live property by id alone.
func (r *Repo) GetForGeocoding(ctx context.Context, id uuid.UUID) (Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 AND deleted_at IS NULL`

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Property{}, apperr.NotFound(propertyNotFoundMessage)
		}
		return Property{}, fmt.Errorf("get property for geocoding: %w", err)
	}
	return p, nil
}

// SetCoordinates stores the geocoded position.
func (r *Repo) SetCoordinates(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	query := `UPDATE properties SET latitude = $2, longitude = $3, updated_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id, lat, lon); err != nil {
		return fmt.Errorf("set property coordinates: %w", err)
	}
	return nil
}

// MarkGeocodeMiss stamps a property the geocoder could not place so the
// sweeper moves on to other addresses.
func (r *Repo) MarkGeocodeMiss(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE properties SET geocode_missed_at = now() WHERE id = $1`
	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("mark property geocode miss: %w", err)
	}
	return nil
}

// ListMissingCoordinates returns properties without coordinates, never-tried
// ones first.
func (r *Repo) ListMissingCoordinates(ctx context.Context, limit int) ([]Property, error) {
	query := `SELECT ` + propertyColumns + `
		FROM properties
		WHERE deleted_at IS NULL AND (latitude IS NULL OR longitude IS NULL)
		ORDER BY geocode_missed_at NULLS FIRST, created_at
		LIMIT $1`

	return r.queryProperties(ctx, "list properties missing coordinates", query, limit)
}

func (r *Repo) queryProperties(ctx context.Context, op, query string, args ...any) ([]Property, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
