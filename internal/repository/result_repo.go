package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pet_constitution/internal/model"

	"github.com/jackc/pgx/v5"
)

// ResultRepository defines operations for questionnaire results
type ResultRepository interface {
	Create(ctx context.Context, result *model.Result) error
	FindByID(ctx context.Context, id int64) (*model.Result, error)
	FindByIDForUser(ctx context.Context, id, userID int64) (*model.Result, error)
	FindByUser(ctx context.Context, userID int64) ([]model.Result, error)
	DeleteForUser(ctx context.Context, id, userID int64) (bool, error)
}

type resultRepository struct {
	db DB
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db DB) ResultRepository {
	return &resultRepository{db: db}
}

// Create inserts a result; answers are stored as a JSON array.
func (r *resultRepository) Create(ctx context.Context, res *model.Result) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	sql := `INSERT INTO results (user_id, pet_name, pet_age, pet_weight, pet_symptoms, answers, constitution)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`
	err = r.db.QueryRow(ctx, sql, res.UserID, res.PetName, res.PetAge, res.PetWeight, res.PetSymptoms,
		string(answers), res.Constitution).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

const resultColumns = `id, user_id, pet_name, pet_age, pet_weight, pet_symptoms, answers, constitution, created_at`

func scanFullResult(row pgx.Row) (*model.Result, error) {
	var res model.Result
	var answers string
	if err := row.Scan(&res.ID, &res.UserID, &res.PetName, &res.PetAge, &res.PetWeight,
		&res.PetSymptoms, &answers, &res.Constitution, &res.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodeAnswers(answers, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FindByID retrieves a result regardless of owner.
func (r *resultRepository) FindByID(ctx context.Context, id int64) (*model.Result, error) {
	sql := `SELECT ` + resultColumns + ` FROM results WHERE id = $1`
	res, err := scanFullResult(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find result by ID: %w", err)
	}
	return res, nil
}

// FindByIDForUser retrieves a result only when userID owns it.
func (r *resultRepository) FindByIDForUser(ctx context.Context, id, userID int64) (*model.Result, error) {
	sql := `SELECT ` + resultColumns + ` FROM results WHERE id = $1 AND user_id = $2`
	res, err := scanFullResult(r.db.QueryRow(ctx, sql, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find result by ID for user: %w", err)
	}
	return res, nil
}

// FindByUser returns a user's results, newest first. user_id is not selected.
func (r *resultRepository) FindByUser(ctx context.Context, userID int64) ([]model.Result, error) {
	sql := `SELECT id, pet_name, pet_age, pet_weight, pet_symptoms, answers, constitution, created_at
            FROM results
            WHERE user_id = $1
            ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results by user: %w", err)
	}
	defer rows.Close()

	results := []model.Result{}
	for rows.Next() {
		var res model.Result
		var answers string
		if err := rows.Scan(&res.ID, &res.PetName, &res.PetAge, &res.PetWeight, &res.PetSymptoms,
			&answers, &res.Constitution, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		if err := decodeAnswers(answers, &res); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}
	return results, nil
}

// DeleteForUser removes a result owned by userID and reports whether it existed.
func (r *resultRepository) DeleteForUser(ctx context.Context, id, userID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM results WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete result: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func decodeAnswers(raw string, res *model.Result) error {
	if err := json.Unmarshal([]byte(raw), &res.Answers); err != nil {
		return fmt.Errorf("failed to decode answers of result %d: %w", res.ID, err)
	}
	return nil
}
