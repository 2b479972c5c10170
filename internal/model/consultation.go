package model

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ConsultationStatuses lists every value the status column may hold.
var ConsultationStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Consultation represents a booking request
type Consultation struct {
	ID            int64      `json:"id"`
	UserID        *int64     `json:"-"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	PreferredDate string     `json:"preferred_date"` // YYYY-MM-DD
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"` // not selected by the all-consultations listing
}

// CreateConsultationRequest is the body of POST /api/consultations
type CreateConsultationRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	PreferredDate string `json:"preferredDate"`
	Content       string `json:"content"`
}

type UpdateConsultationStatusRequest struct {
	Status string `json:"status"`
}
