package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkfleet/internal/models"
)

// JobApplicationRepository reads driver candidates.
type JobApplicationRepository struct {
	db *sql.DB
}

// NewJobApplicationRepository returns repository.
func NewJobApplicationRepository(db *sql.DB) *JobApplicationRepository {
	return &JobApplicationRepository{db: db}
}

// Get returns a candidate by id.
func (r *JobApplicationRepository) Get(ctx context.Context, id int64) (*models.JobApplication, error) {
	const query = `
		SELECT id, first_name, second_name, email, phone_number, created_at
		FROM job_applications
		WHERE id = $1
	`
	var app models.JobApplication
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.FirstName,
		&app.SecondName,
		&app.Email,
		&app.PhoneNumber,
		&app.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job application id=%d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}
