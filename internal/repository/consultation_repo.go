package repository

import (
	"context"
	"fmt"
	"time"

	"pet_constitution/internal/model"
)

// ConsultationRepository defines operations for consultation bookings
type ConsultationRepository interface {
	Create(ctx context.Context, c *model.Consultation) error
	FindByUser(ctx context.Context, userID int64) ([]model.Consultation, error)
	FindAll(ctx context.Context) ([]model.Consultation, error)
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)
}

type consultationRepository struct {
	db DB
}

// NewConsultationRepository creates a new ConsultationRepository
func NewConsultationRepository(db DB) ConsultationRepository {
	return &consultationRepository{db: db}
}

// Create inserts a booking
func (r *consultationRepository) Create(ctx context.Context, c *model.Consultation) error {
	sql := `INSERT INTO consultations (user_id, name, phone, preferred_date, content, status)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, sql, c.UserID, c.Name, c.Phone, c.PreferredDate, c.Content, c.Status).
		Scan(&c.ID, &c.CreatedAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	c.UpdatedAt = &updatedAt
	return nil
}

// FindByUser returns a user's bookings with full detail, newest first.
func (r *consultationRepository) FindByUser(ctx context.Context, userID int64) ([]model.Consultation, error) {
	sql := `SELECT id, name, phone, preferred_date, content, status, created_at, updated_at
            FROM consultations
            WHERE user_id = $1
            ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query consultations by user: %w", err)
	}
	defer rows.Close()

	consultations := []model.Consultation{}
	for rows.Next() {
		var c model.Consultation
		var updatedAt time.Time
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.PreferredDate, &c.Content, &c.Status,
			&c.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan consultation row: %w", err)
		}
		c.UpdatedAt = &updatedAt
		consultations = append(consultations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultation rows: %w", err)
	}
	return consultations, nil
}

// FindAll returns every booking, newest first. updated_at is not part of
// this listing.
func (r *consultationRepository) FindAll(ctx context.Context) ([]model.Consultation, error) {
	sql := `SELECT id, name, phone, preferred_date, content, status, created_at
            FROM consultations
            ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query consultations: %w", err)
	}
	defer rows.Close()

	consultations := []model.Consultation{}
	for rows.Next() {
		var c model.Consultation
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.PreferredDate, &c.Content, &c.Status,
			&c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan consultation row: %w", err)
		}
		consultations = append(consultations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultation rows: %w", err)
	}
	return consultations, nil
}

// UpdateStatus sets status and updated_at; it reports whether the booking exists.
func (r *consultationRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	sql := `UPDATE consultations SET status = $1, updated_at = NOW() WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update consultation status: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
