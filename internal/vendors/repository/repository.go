package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"landlord_portal_backend/platform/apperr"
)

// Repo implements the vendors repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vendors repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a vendor.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Vendor, error) {
	query := `
		INSERT INTO vendors (owner_id, name, specialty, rating, phone, email, address, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, owner_id, name, specialty, rating, phone, email, address, latitude, longitude, false, created_at`

	v, err := scanVendor(r.pool.QueryRow(ctx, query,
		params.OwnerID, params.Name, params.Specialty, params.Rating, params.Phone, params.Email,
		params.Address, params.Latitude, params.Longitude,
	))
	if err != nil {
		return Vendor{}, fmt.Errorf("create vendor: %w", err)
	}
	return v, nil
}

// List returns the owner's vendors with their favorite flag.
func (r *Repo) List(ctx context.Context, ownerID uuid.UUID, specialty string) ([]Vendor, error) {
	query := `
		SELECT v.id, v.owner_id, v.name, v.specialty, v.rating, v.phone, v.email, v.address,
			v.latitude, v.longitude, (f.vendor_id IS NOT NULL) AS favorite, v.created_at
		FROM vendors v
		LEFT JOIN favorite_vendors f ON f.vendor_id = v.id AND f.owner_id = v.owner_id
		WHERE v.owner_id = $1 AND ($2 = '' OR lower(v.specialty) = lower($2))
		ORDER BY v.name`

	rows, err := r.pool.Query(ctx, query, ownerID, specialty)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	items := make([]Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("list vendors: scan: %w", err)
		}
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return items, nil
}

// AddFavorite marks a vendor as favorite. Repeating it is a no-op.
func (r *Repo) AddFavorite(ctx context.Context, ownerID, vendorID uuid.UUID) error {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM vendors WHERE id = $1 AND owner_id = $2)`, vendorID, ownerID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check vendor: %w", err)
	}
	if !exists {
		return apperr.NotFound("vendor not found")
	}

	query := `INSERT INTO favorite_vendors (owner_id, vendor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.pool.Exec(ctx, query, ownerID, vendorID); err != nil {
		return fmt.Errorf("add favorite vendor: %w", err)
	}
	return nil
}

// RemoveFavorite unmarks a vendor. Removing a missing favorite is a no-op.
func (r *Repo) RemoveFavorite(ctx context.Context, ownerID, vendorID uuid.UUID) error {
	query := `DELETE FROM favorite_vendors WHERE owner_id = $1 AND vendor_id = $2`
	if _, err := r.pool.Exec(ctx, query, ownerID, vendorID); err != nil {
		return fmt.Errorf("remove favorite vendor: %w", err)
	}
	return nil
}

func scanVendor(row pgx.Row) (Vendor, error) {
	var v Vendor
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Specialty, &v.Rating, &v.Phone, &v.Email, &v.Address,
		&v.Latitude, &v.Longitude, &v.Favorite, &v.CreatedAt,
	)
	return v, err
}
