package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/reviewqr/reviewqr/internal/model"
)

// Common errors for business repository operations.
var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrQRCodeIDExists   = errors.New("qr code id already exists")
)

// CreateBusiness inserts a new business into the database.
func (r *Repository) CreateBusiness(ctx context.Context, business *model.Business) error {
	query := `
		INSERT INTO businesses (id, user_id, business_name, google_review_url, qr_code_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		business.ID,
		business.UserID,
		business.BusinessName,
		business.GoogleReviewURL,
		business.QRCodeID,
		business.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrQRCodeIDExists
		}
		return fmt.Errorf("failed to create business: %w", err)
	}

	return nil
}

// GetBusinessByID retrieves a business by its internal ID.
func (r *Repository) GetBusinessByID(ctx context.Context, id string) (*model.Business, error) {
	query := `
		SELECT id, user_id, business_name, google_review_url, qr_code_id, created_at
		FROM businesses
		WHERE id = $1
	`

	business, err := scanBusiness(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business by ID: %w", err)
	}

	return business, nil
}

// GetBusinessByQRCodeID retrieves a business by its public QR identifier.
// This is the hot path for scanned codes.
func (r *Repository) GetBusinessByQRCodeID(ctx context.Context, qrCodeID string) (*model.Business, error) {
	query := `
		SELECT id, user_id, business_name, google_review_url, qr_code_id, created_at
		FROM businesses
		WHERE qr_code_id = $1
	`

	business, err := scanBusiness(r.pool.QueryRow(ctx, query, qrCodeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("failed to get business by qr code id: %w", err)
	}

	return business, nil
}

// ListBusinessesByOwner retrieves all businesses owned by a user,
// newest first.
func (r *Repository) ListBusinessesByOwner(ctx context.Context, ownerID string) ([]*model.Business, error) {
	query := `
		SELECT id, user_id, business_name, google_review_url, qr_code_id, created_at
		FROM businesses
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	defer rows.Close()

	var businesses []*model.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, business)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating businesses: %w", err)
	}

	return businesses, nil
}

// scanBusiness scans a single row into a Business model.
func scanBusiness(row pgx.Row) (*model.Business, error) {
	var business model.Business
	err := row.Scan(
		&business.ID,
		&business.UserID,
		&business.BusinessName,
		&business.GoogleReviewURL,
		&business.QRCodeID,
		&business.CreatedAt,
	)
	return &business, err
}
