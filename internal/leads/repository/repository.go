package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lead is one inquiry record as stored in the leads table.
// Status is free text: legacy rows may hold values outside the current
// enum, which is why scoring matches by substring.
type Lead struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Zipcode      string
	PropertyType string
	Status       string
	InquiryDate  time.Time
	CreatedAt    time.Time
}

type CreateLeadParams struct {
	Name         string
	Email        string
	Zipcode      string
	PropertyType string
	Status       string
	InquiryDate  time.Time
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a new lead and returns it with the assigned id.
func (r *Repository) Insert(ctx context.Context, params CreateLeadParams) (Lead, error) {
	var lead Lead
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, email, zipcode, property_type, status, inquiry_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, email, zipcode, property_type, status, inquiry_date, created_at
	`,
		params.Name, params.Email, params.Zipcode, params.PropertyType, params.Status, params.InquiryDate,
	).Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Zipcode, &lead.PropertyType, &lead.Status,
		&lead.InquiryDate, &lead.CreatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	return lead, nil
}

// FetchAll returns every stored lead, unfiltered and unsorted beyond
// insertion order. The dashboard works on a full snapshot per view.
func (r *Repository) FetchAll(ctx context.Context) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, zipcode, property_type, status, inquiry_date, created_at
		FROM leads
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(
			&lead.ID, &lead.Name, &lead.Email, &lead.Zipcode, &lead.PropertyType, &lead.Status,
			&lead.InquiryDate, &lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return leads, nil
}

// Ping reports whether the backing store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
