package postgres

import (
	"context"
	"errors"
	"fmt"

	"childcare-cv-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

const experienceColumns = `id, user_id, job_title, company_name, job_duration, job_description, created_at, updated_at`

func scanExperience(row pgx.Row) (*domain.ProfessionalExperience, error) {
	var e domain.ProfessionalExperience
	err := row.Scan(&e.ID, &e.UserID, &e.JobTitle, &e.CompanyName, &e.JobDuration, &e.JobDescription, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *profileStore) CountExperiences(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM professional_experiences WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count experiences: %w", err)
	}
	return count, nil
}

func (r *profileStore) ListExperiences(ctx context.Context, userID string) ([]domain.ProfessionalExperience, error) {
	query := `SELECT ` + experienceColumns + ` FROM professional_experiences WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch experiences: %w", err)
	}
	defer rows.Close()

	experiences := []domain.ProfessionalExperience{}
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}
		experiences = append(experiences, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating experiences: %w", err)
	}
	return experiences, nil
}

func (r *profileStore) GetExperience(ctx context.Context, userID, id string) (*domain.ProfessionalExperience, error) {
	query := `SELECT ` + experienceColumns + ` FROM professional_experiences WHERE id = $1 AND user_id = $2`
	e, err := scanExperience(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch experience: %w", err)
	}
	return e, nil
}

func (r *profileStore) InsertExperience(ctx context.Context, exp *domain.ProfessionalExperience) error {
	query := `
		INSERT INTO professional_experiences (id, user_id, job_title, company_name, job_duration, job_description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		exp.ID, exp.UserID, exp.JobTitle, exp.CompanyName, exp.JobDuration, exp.JobDescription,
	).Scan(&exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert experience: %w", err)
	}
	return nil
}

func (r *profileStore) UpdateExperience(ctx context.Context, exp *domain.ProfessionalExperience) error {
	query := `
		UPDATE professional_experiences
		SET job_title = $1, company_name = $2, job_duration = $3, job_description = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		exp.JobTitle, exp.CompanyName, exp.JobDuration, exp.JobDescription, exp.ID, exp.UserID,
	).Scan(&exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update experience: %w", err)
	}
	return nil
}

func (r *profileStore) DeleteExperience(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM professional_experiences WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
